package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hims-api/internal/handler"
	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/pkg/auth"
	"github.com/jwalitptl/hims-api/pkg/security"
)

// Handler unlocks the application: the app password is exchanged for a
// session token.
type Handler struct {
	hasher       security.SecretHasher
	passwordHash string
	jwt          auth.JWTService
	now          func() time.Time
}

func NewHandler(hasher security.SecretHasher, appPasswordHash string, jwt auth.JWTService, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{hasher: hasher, passwordHash: appPasswordHash, jwt: jwt, now: now}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/session", h.CreateSession)
}

func (h *Handler) CreateSession(c *gin.Context) {
	var req model.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, handler.BindingError(err))
		return
	}

	if err := h.hasher.Compare(h.passwordHash, req.Password); err != nil {
		log.Warn().Str("client_ip", c.ClientIP()).Msg("Rejected app password")
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Invalid password"))
		return
	}

	token, expiresAt, err := h.jwt.GenerateSessionToken(h.now())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(model.Session{Token: token, ExpiresAt: expiresAt}))
}
