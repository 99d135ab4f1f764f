package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/felipevm/batepapo-api/internal/api/http/converter"
	"github.com/felipevm/batepapo-api/internal/domain"
	"github.com/felipevm/batepapo-api/internal/sanitize"
	"github.com/felipevm/batepapo-api/internal/service"
	"github.com/felipevm/batepapo-api/lib/logger/sl"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MessageController struct {
	messages service.MessageInteractor
	log      *slog.Logger
}

func NewMessageController(messages service.MessageInteractor, log *slog.Logger) *MessageController {
	if log == nil {
		log = slog.Default()
	}
	return &MessageController{messages: messages, log: log}
}

// messageBody is the raw send/edit body before sanitization.
type messageBody struct {
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// cleanMessageBody sanitizes and validates a send/edit body. Cleaning runs
// first so validation and every later lookup see the normalized values.
func cleanMessageBody(body messageBody) (sanitize.MessageRequest, error) {
	req := sanitize.MessageRequest{
		To:   sanitize.Clean(body.To),
		Text: sanitize.Clean(body.Text),
		Type: sanitize.Clean(body.Type),
	}
	return req, sanitize.ValidateMessage(req)
}

func (c *MessageController) Send(ctx *gin.Context) {
	from := sanitize.Clean(ctx.GetHeader(UserHeader))
	if from == "" {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "user header is required"})
		return
	}

	var body messageBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	req, err := cleanMessageBody(body)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "to, text and a valid type are required"})
		return
	}

	msg, err := c.messages.Send(ctx.Request.Context(), from, req.To, req.Text, domain.MessageType(req.Type))
	if err != nil {
		if errors.Is(err, service.ErrUnknownSender) {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "sender is not in the room"})
			return
		}
		c.log.Error("send failed", sl.Err(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": converter.MessageToApi(msg)})
}

func (c *MessageController) List(ctx *gin.Context) {
	requester := sanitize.Clean(ctx.GetHeader(UserHeader))

	messages, err := c.messages.ListVisible(ctx.Request.Context(), requester, parseLimit(ctx.Query("limit")))
	if err != nil {
		c.log.Error("listing messages failed", sl.Err(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"messages": converter.MessagesToApi(messages)})
}

func (c *MessageController) Edit(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}

	requester := sanitize.Clean(ctx.GetHeader(UserHeader))

	var body messageBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	req, err := cleanMessageBody(body)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "to, text and a valid type are required"})
		return
	}

	err = c.messages.Edit(ctx.Request.Context(), id, requester, req.To, req.Text, domain.MessageType(req.Type))
	if err != nil {
		c.respondMutationError(ctx, err)
		return
	}

	ctx.Status(http.StatusCreated)
}

func (c *MessageController) Delete(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}

	requester := sanitize.Clean(ctx.GetHeader(UserHeader))

	if err := c.messages.Remove(ctx.Request.Context(), id, requester); err != nil {
		c.respondMutationError(ctx, err)
		return
	}

	ctx.Status(http.StatusCreated)
}

func (c *MessageController) respondMutationError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMessageNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
	case errors.Is(err, service.ErrNotMessageOwner):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "requester does not own the message"})
	default:
		c.log.Error("message mutation failed", sl.Err(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseLimit interprets the limit query: a positive integer enables tail
// truncation, anything else disables it.
func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0
	}
	return limit
}
