package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/baechuer/vidshare/internal/domain"
	appCtx "github.com/baechuer/vidshare/internal/pkg/context"
)

// Logger provides structured audit logging for state-changing actions.
type Logger struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Bool("audit", true).Logger(),
	}
}

// Nop discards everything. Used where no audit sink is wired.
func Nop() *Logger {
	return &Logger{log: zerolog.Nop()}
}

func (l *Logger) RelationToggled(ctx context.Context, actorID uuid.UUID, kind domain.RelationKind, targetID uuid.UUID, state domain.ToggleState) {
	l.log.Info().
		Str("action", "relation_toggled").
		Str("actor_id", actorID.String()).
		Str("kind", string(kind)).
		Str("target_id", targetID.String()).
		Str("state", string(state)).
		Str("trace_id", appCtx.GetRequestID(ctx)).
		Msg("Relation toggled")
}

func (l *Logger) ViewRecorded(ctx context.Context, actorID, videoID uuid.UUID, historyLen int) {
	l.log.Info().
		Str("action", "view_recorded").
		Str("actor_id", actorID.String()).
		Str("video_id", videoID.String()).
		Int("history_len", historyLen).
		Str("trace_id", appCtx.GetRequestID(ctx)).
		Msg("Video view recorded")
}

// EntityDeleted logs removal of an owned entity (video, tweet, comment, playlist).
func (l *Logger) EntityDeleted(ctx context.Context, actorID uuid.UUID, entity string, entityID uuid.UUID) {
	l.log.Warn().
		Str("action", "entity_deleted").
		Str("actor_id", actorID.String()).
		Str("entity", entity).
		Str("entity_id", entityID.String()).
		Str("trace_id", appCtx.GetRequestID(ctx)).
		Msg("Entity deleted")
}

func (l *Logger) ProfileRegistered(ctx context.Context, userID uuid.UUID, username string) {
	l.log.Info().
		Str("action", "profile_registered").
		Str("user_id", userID.String()).
		Str("username", username).
		Str("trace_id", appCtx.GetRequestID(ctx)).
		Msg("Profile registered")
}
