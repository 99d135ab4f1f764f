package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/felipevm/batepapo-api/internal/api/http/converter"
	"github.com/felipevm/batepapo-api/internal/domain"
	"github.com/felipevm/batepapo-api/internal/sanitize"
	"github.com/felipevm/batepapo-api/internal/service"
	"github.com/felipevm/batepapo-api/lib/logger/sl"
	"github.com/gin-gonic/gin"
)

// UserHeader carries the requester's participant name on every call except
// join.
const UserHeader = "user"

type ParticipantController struct {
	presence service.PresenceInteractor
	messages service.MessageInteractor
	log      *slog.Logger
}

func NewParticipantController(presence service.PresenceInteractor, messages service.MessageInteractor, log *slog.Logger) *ParticipantController {
	if log == nil {
		log = slog.Default()
	}
	return &ParticipantController{presence: presence, messages: messages, log: log}
}

func (c *ParticipantController) Join(ctx *gin.Context) {
	type request struct {
		Name string `json:"name"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	name := sanitize.Clean(req.Name)
	if err := sanitize.ValidateJoin(sanitize.JoinRequest{Name: name}); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "name is required"})
		return
	}

	participant, err := c.presence.Join(ctx.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrNameTaken) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "participant name already taken"})
			return
		}
		c.log.Error("join failed", sl.Err(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	// The join and its notice are a best-effort pair: a failed notice never
	// undoes the join.
	if _, err := c.messages.AppendStatus(ctx.Request.Context(), name, domain.StatusJoined); err != nil {
		c.log.Error("join notice failed", slog.String("name", name), sl.Err(err))
	}

	ctx.JSON(http.StatusCreated, gin.H{"participant": converter.ParticipantToApi(participant)})
}

func (c *ParticipantController) List(ctx *gin.Context) {
	participants, err := c.presence.List(ctx.Request.Context())
	if err != nil {
		c.log.Error("listing participants failed", sl.Err(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"participants": converter.ParticipantsToApi(participants)})
}

func (c *ParticipantController) Heartbeat(ctx *gin.Context) {
	name := sanitize.Clean(ctx.GetHeader(UserHeader))
	if name == "" {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
		return
	}

	if err := c.presence.Heartbeat(ctx.Request.Context(), name); err != nil {
		if errors.Is(err, service.ErrParticipantNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
			return
		}
		c.log.Error("heartbeat failed", sl.Err(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	ctx.Status(http.StatusOK)
}
