package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pebblenet/pebble/domain"
	"github.com/pebblenet/pebble/service"
)

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type postResponse struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
	LikesCount int       `json:"likes_count"`
	Likers     []string  `json:"likers"`
}

func toPostResponse(view *service.PostView) postResponse {
	return postResponse{
		Id:         view.Id,
		Title:      view.Title,
		Content:    view.Content,
		Author:     view.Author,
		CreatedAt:  view.CreatedAt,
		LikesCount: view.LikesCount,
		Likers:     view.Likers,
	}
}

func (api *API) HandleCreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, fmt.Errorf("malformed request body: %w", domain.ErrValidation))
		return
	}

	view, err := api.posts.Create(actorFrom(c), req.Title, req.Content)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPostResponse(view))
}

func (api *API) HandleListPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	views, err := api.posts.List(limit)
	if err != nil {
		renderError(c, err)
		return
	}

	responses := make([]postResponse, 0, len(views))
	for i := range views {
		responses = append(responses, toPostResponse(&views[i]))
	}
	c.JSON(http.StatusOK, responses)
}

func (api *API) HandleGetPost(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	view, err := api.posts.Retrieve(id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(view))
}

func (api *API) HandleUpdatePost(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, fmt.Errorf("malformed request body: %w", domain.ErrValidation))
		return
	}

	view, err := api.posts.Update(actorFrom(c), id, req.Title, req.Content)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(view))
}

func (api *API) HandleDeletePost(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	if err := api.posts.Delete(actorFrom(c), id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *API) HandleLikePost(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	if _, err := api.ledger.Like(actorFrom(c), id); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusResponse{Status: "liked"})
}

func (api *API) HandleUnlikePost(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	if err := api.ledger.Unlike(actorFrom(c), id); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusResponse{Status: "unliked"})
}
