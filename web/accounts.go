package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pebblenet/pebble/domain"
)

type registerRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialsResponse struct {
	Token    string    `json:"token"`
	UserId   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

type accountSummary struct {
	Id       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (api *API) HandleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, fmt.Errorf("malformed request body: %w", domain.ErrValidation))
		return
	}

	acc, token, err := api.accounts.Register(req.Email, req.Username, req.Password, req.Password2)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, credentialsResponse{
		Token:    token.Key,
		UserId:   acc.Id,
		Email:    acc.Email,
		Username: acc.Username,
	})
}

func (api *API) HandleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, fmt.Errorf("malformed request body: %w", domain.ErrValidation))
		return
	}

	acc, token, err := api.accounts.Login(req.Email, req.Password)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, credentialsResponse{
		Token:    token.Key,
		UserId:   acc.Id,
		Email:    acc.Email,
		Username: acc.Username,
	})
}

func (api *API) HandleFollow(c *gin.Context) {
	targetId, ok := pathId(c, "id")
	if !ok {
		return
	}

	if _, err := api.ledger.Follow(actorFrom(c), targetId); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusResponse{Status: "followed"})
}

func (api *API) HandleUnfollow(c *gin.Context) {
	targetId, ok := pathId(c, "id")
	if !ok {
		return
	}

	if err := api.ledger.Unfollow(actorFrom(c), targetId); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, statusResponse{Status: "unfollowed"})
}

func (api *API) HandleFollowers(c *gin.Context) {
	accountId, ok := pathId(c, "id")
	if !ok {
		return
	}

	followers, err := api.ledger.Followers(accountId)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(followers),
		"followers": toAccountSummaries(followers),
	})
}

func (api *API) HandleFollowing(c *gin.Context) {
	accountId, ok := pathId(c, "id")
	if !ok {
		return
	}

	following, err := api.ledger.Following(accountId)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     len(following),
		"following": toAccountSummaries(following),
	})
}

func (api *API) HandleDeleteAccount(c *gin.Context) {
	if err := api.accounts.Delete(actorFrom(c).Id); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toAccountSummaries(accounts []domain.Account) []accountSummary {
	summaries := make([]accountSummary, 0, len(accounts))
	for _, acc := range accounts {
		summaries = append(summaries, accountSummary{Id: acc.Id, Email: acc.Email, Username: acc.Username})
	}
	return summaries
}
