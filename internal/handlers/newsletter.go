package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/serroba/portfolio-go/internal/messaging"
	"github.com/serroba/portfolio-go/internal/notify"
	"github.com/serroba/portfolio-go/internal/portfolio"
	"go.uber.org/zap"
)

// TokenGenerator produces opaque unsubscribe tokens.
type TokenGenerator func() string

// NewsletterHandler handles subscriptions and admin newsletter sends.
type NewsletterHandler struct {
	repo          portfolio.SubscriberRepository
	generateToken TokenGenerator
	publishIssue  messaging.Publish[notify.NewsletterIssueEvent]
	logger        *zap.Logger
}

// NewNewsletterHandler creates a new newsletter handler.
func NewNewsletterHandler(
	repo portfolio.SubscriberRepository,
	generateToken TokenGenerator,
	publishIssue messaging.Publish[notify.NewsletterIssueEvent],
	logger *zap.Logger,
) *NewsletterHandler {
	return &NewsletterHandler{
		repo:          repo,
		generateToken: generateToken,
		publishIssue:  publishIssue,
		logger:        logger,
	}
}

func (h *NewsletterHandler) Subscribe(ctx context.Context, req *SubscribeRequest) (*SubscribeResponse, error) {
	sub := &portfolio.Subscriber{
		ID:               uuid.New(),
		Email:            req.Body.Email,
		Status:           portfolio.SubscriberActive,
		UnsubscribeToken: h.generateToken(),
		SubscribedAt:     time.Now(),
	}

	if err := h.repo.AddSubscriber(ctx, sub); err != nil {
		if errors.Is(err, portfolio.ErrDuplicate) {
			return nil, huma.Error409Conflict("email already subscribed")
		}

		return nil, huma.Error500InternalServerError("failed to subscribe")
	}

	resp := &SubscribeResponse{Status: http.StatusCreated}
	resp.Body.Status = "subscribed"

	return resp, nil
}

func (h *NewsletterHandler) Unsubscribe(ctx context.Context, req *UnsubscribeRequest) (*UnsubscribeResponse, error) {
	sub, err := h.repo.GetSubscriberByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			return nil, huma.Error404NotFound("unknown unsubscribe token")
		}

		return nil, huma.Error500InternalServerError("failed to unsubscribe")
	}

	err = h.repo.UpdateSubscriberStatus(ctx, sub.ID.String(), portfolio.SubscriberUnsubscribed)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to unsubscribe")
	}

	resp := &UnsubscribeResponse{}
	resp.Body.Status = "unsubscribed"

	return resp, nil
}

func (h *NewsletterHandler) SendIssue(ctx context.Context, req *SendIssueRequest) (*SendIssueResponse, error) {
	event := &notify.NewsletterIssueEvent{
		IssueID:  uuid.NewString(),
		Subject:  req.Body.Subject,
		Body:     req.Body.Content,
		QueuedAt: time.Now(),
	}

	// Unlike contact notifications, the queued event IS the send; a
	// publish failure means nothing will go out, so surface it.
	if err := h.publishIssue(event); err != nil {
		h.logger.Error("failed to queue newsletter issue",
			zap.String("issueId", event.IssueID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to queue issue")
	}

	resp := &SendIssueResponse{Status: http.StatusAccepted}
	resp.Body.IssueID = event.IssueID
	resp.Body.Status = "queued"

	return resp, nil
}

func (h *NewsletterHandler) ListSubscribers(ctx context.Context, _ *struct{}) (*ListSubscribersResponse, error) {
	subs, err := h.repo.ListSubscribers(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list subscribers")
	}

	resp := &ListSubscribersResponse{}
	resp.Body.Subscribers = make([]SubscriberView, 0, len(subs))

	for _, sub := range subs {
		resp.Body.Subscribers = append(resp.Body.Subscribers, SubscriberView{
			ID:           sub.ID.String(),
			Email:        sub.Email,
			Status:       string(sub.Status),
			SubscribedAt: sub.SubscribedAt,
		})
	}

	return resp, nil
}
