package video

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/logger"
	"github.com/baechuer/vidshare/internal/metrics"
	appCtx "github.com/baechuer/vidshare/internal/pkg/context"
)

const (
	EventVersion  = 1
	EventProducer = "vidshare"

	RoutingVideoCreated = "video.created"
	RoutingVideoUpdated = "video.updated"
	RoutingVideoDeleted = "video.deleted"
	RoutingVideoViewed  = "video.viewed"
)

// DomainEventEnvelope is the contract for every event this service emits.
type DomainEventEnvelope[T any] struct {
	Version    int       `json:"version"`
	Producer   string    `json:"producer"`
	MessageID  string    `json:"message_id"`
	TraceID    string    `json:"trace_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    T         `json:"payload"`
}

// EventMessageID lets transports reuse the envelope id as the broker message id.
func (e DomainEventEnvelope[T]) EventMessageID() string { return e.MessageID }

type VideoChangedPayload struct {
	VideoID     string `json:"video_id"`
	OwnerID     string `json:"owner_id"`
	Title       string `json:"title,omitempty"`
	IsPublished bool   `json:"is_published"`
}

type VideoViewedPayload struct {
	VideoID  string `json:"video_id"`
	ViewerID string `json:"viewer_id"`
	NewView  bool   `json:"new_view"`
}

// publish is best-effort: the state change is already committed.
func publish[T any](ctx context.Context, pub EventPublisher, rk string, at time.Time, payload T) {
	if pub == nil {
		return
	}
	env := DomainEventEnvelope[T]{
		Version:    EventVersion,
		Producer:   EventProducer,
		MessageID:  uuid.NewString(),
		TraceID:    appCtx.GetRequestID(ctx),
		OccurredAt: at,
		Payload:    payload,
	}
	if err := pub.PublishEvent(ctx, rk, env); err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(rk, "error").Inc()
		logger.WithCtx(ctx).Error().
			Err(err).
			Str("rk", rk).
			Msg("publish domain event failed")
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues(rk, "ok").Inc()
}
