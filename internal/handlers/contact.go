package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/serroba/portfolio-go/internal/messaging"
	"github.com/serroba/portfolio-go/internal/notify"
	"github.com/serroba/portfolio-go/internal/portfolio"
	"go.uber.org/zap"
)

// ContactHandler handles contact form submissions and their admin listing.
type ContactHandler struct {
	repo           portfolio.ContactRepository
	publishMessage messaging.Publish[notify.ContactMessageEvent]
	logger         *zap.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(
	repo portfolio.ContactRepository,
	publishMessage messaging.Publish[notify.ContactMessageEvent],
	logger *zap.Logger,
) *ContactHandler {
	return &ContactHandler{
		repo:           repo,
		publishMessage: publishMessage,
		logger:         logger,
	}
}

func (h *ContactHandler) SubmitContact(ctx context.Context, req *ContactRequest) (*ContactResponse, error) {
	msg := &portfolio.ContactMessage{
		ID:         uuid.New(),
		Name:       req.Body.Name,
		Email:      req.Body.Email,
		Subject:    req.Body.Subject,
		Body:       req.Body.Message,
		ReceivedAt: time.Now(),
	}

	if err := h.repo.SaveMessage(ctx, msg); err != nil {
		return nil, huma.Error500InternalServerError("failed to store message")
	}

	meta := RequestMetaFromContext(ctx)

	event := &notify.ContactMessageEvent{
		ID:         msg.ID.String(),
		Name:       msg.Name,
		Email:      msg.Email,
		Subject:    msg.Subject,
		Body:       msg.Body,
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		ReceivedAt: msg.ReceivedAt,
	}

	// The message is stored either way; notification is best-effort.
	if err := h.publishMessage(event); err != nil {
		h.logger.Error("failed to publish contact message event",
			zap.String("id", event.ID),
			zap.Error(err),
		)
	}

	resp := &ContactResponse{Status: http.StatusAccepted}
	resp.Body.ID = msg.ID.String()
	resp.Body.Status = "received"

	return resp, nil
}

func (h *ContactHandler) ListMessages(ctx context.Context, _ *struct{}) (*ListMessagesResponse, error) {
	messages, err := h.repo.ListMessages(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list messages")
	}

	resp := &ListMessagesResponse{}
	resp.Body.Messages = make([]ContactMessageView, 0, len(messages))

	for _, m := range messages {
		resp.Body.Messages = append(resp.Body.Messages, ContactMessageView{
			ID:         m.ID.String(),
			Name:       m.Name,
			Email:      m.Email,
			Subject:    m.Subject,
			Message:    m.Body,
			ReceivedAt: m.ReceivedAt,
		})
	}

	return resp, nil
}
