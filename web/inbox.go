package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pebblenet/pebble/domain"
)

type notificationResponse struct {
	Id        uuid.UUID `json:"id"`
	User      uuid.UUID `json:"user"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type messageRequest struct {
	Recipient uuid.UUID `json:"recipient"`
	Content   string    `json:"content"`
}

type messageResponse struct {
	Id        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Recipient uuid.UUID `json:"recipient"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		Id:        n.Id,
		User:      n.AccountId,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		Id:        m.Id,
		Sender:    m.Sender,
		Recipient: m.RecipientId,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

func (api *API) HandleListNotifications(c *gin.Context) {
	notifications, err := api.notifications.List(actorFrom(c))
	if err != nil {
		renderError(c, err)
		return
	}

	responses := make([]notificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, toNotificationResponse(&notifications[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (api *API) HandleMarkNotificationRead(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	notification, err := api.notifications.MarkRead(actorFrom(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNotificationResponse(notification))
}

func (api *API) HandleSendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, fmt.Errorf("malformed request body: %w", domain.ErrValidation))
		return
	}

	message, err := api.messages.Send(actorFrom(c), req.Recipient, req.Content)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMessageResponse(message))
}

func (api *API) HandleListMessages(c *gin.Context) {
	messages, err := api.messages.List(actorFrom(c))
	if err != nil {
		renderError(c, err)
		return
	}

	responses := make([]messageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, toMessageResponse(&messages[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (api *API) HandleGetMessage(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	message, err := api.messages.Retrieve(actorFrom(c), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMessageResponse(message))
}
