package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pebblenet/pebble/db"
	"github.com/pebblenet/pebble/domain"
	"github.com/pebblenet/pebble/perm"
	"github.com/pebblenet/pebble/service"
	"github.com/pebblenet/pebble/util"
)

// API bundles the resource services behind the HTTP surface. Policies
// are fixed here, at construction.
type API struct {
	conf          *util.AppConfig
	accounts      *service.Accounts
	ledger        *service.Ledger
	posts         *service.Posts
	comments      *service.Comments
	notifications *service.Notifications
	messages      *service.Messages
}

func NewAPI(conf *util.AppConfig, database *db.DB) *API {
	return &API{
		conf:          conf,
		accounts:      service.NewAccounts(database),
		ledger:        service.NewLedger(database),
		posts:         service.NewPosts(database, perm.PublicOwned()),
		comments:      service.NewComments(database, perm.PublicOwned()),
		notifications: service.NewNotifications(database, perm.PrivateOwned()),
		messages:      service.NewMessages(database, perm.Conversation()),
	}
}

const actorKey = "actor"

// actorFrom returns the authenticated account set by requireAuth.
func actorFrom(c *gin.Context) *domain.Account {
	return c.MustGet(actorKey).(*domain.Account)
}

// renderError translates the service error taxonomy to status codes.
func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// pathId parses the given uuid path parameter; a malformed id renders
// 404, the same as a well-formed id that matches nothing.
func pathId(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return uuid.Nil, false
	}
	return id, true
}
