package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pebblenet/pebble/domain"
)

type commentRequest struct {
	Post uuid.UUID `json:"post"`
	Text string    `json:"text"`
}

type commentUpdateRequest struct {
	Text string `json:"text"`
}

type commentResponse struct {
	Id        uuid.UUID `json:"id"`
	Post      uuid.UUID `json:"post"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func toCommentResponse(comment *domain.Comment) commentResponse {
	return commentResponse{
		Id:        comment.Id,
		Post:      comment.PostId,
		User:      comment.Author,
		Text:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
}

func toCommentResponses(comments []domain.Comment) []commentResponse {
	responses := make([]commentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, toCommentResponse(&comments[i]))
	}
	return responses
}

func (api *API) HandleCreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, fmt.Errorf("malformed request body: %w", domain.ErrValidation))
		return
	}

	comment, err := api.comments.Create(actorFrom(c), req.Post, req.Text)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

func (api *API) HandleListComments(c *gin.Context) {
	comments, err := api.comments.List()
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommentResponses(comments))
}

func (api *API) HandleGetComment(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	comment, err := api.comments.Retrieve(id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommentResponse(comment))
}

func (api *API) HandleListCommentsByPost(c *gin.Context) {
	postId, ok := pathId(c, "post_id")
	if !ok {
		return
	}

	comments, err := api.comments.ListByPost(postId)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommentResponses(comments))
}

func (api *API) HandleUpdateComment(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req commentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, fmt.Errorf("malformed request body: %w", domain.ErrValidation))
		return
	}

	comment, err := api.comments.Update(actorFrom(c), id, req.Text)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommentResponse(comment))
}

func (api *API) HandleDeleteComment(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	if err := api.comments.Delete(actorFrom(c), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
