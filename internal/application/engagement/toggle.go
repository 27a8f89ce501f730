package engagement

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
	"github.com/baechuer/vidshare/internal/logger"
	"github.com/baechuer/vidshare/internal/metrics"
)

// Toggle flips the (actor, kind, target) relation and returns the resulting state.
// The existence check and the mutation run in one storage transaction; the primary
// key on the tuple turns a concurrent double insert into a Conflict, and a delete that
// finds nothing left to delete is reported the same way.
func (s *Service) Toggle(ctx context.Context, actorID uuid.UUID, kind domain.RelationKind, targetID uuid.UUID) (domain.ToggleState, error) {
	if actorID == uuid.Nil {
		return "", domain.ErrValidationMeta("missing actor", map[string]string{"actor": "required"})
	}
	if !kind.Valid() {
		return "", domain.ErrValidationMeta("invalid relation kind", map[string]string{"kind": string(kind)})
	}
	if targetID == uuid.Nil {
		return "", domain.ErrValidationMeta("invalid identifier", map[string]string{"targetId": "must be uuid"})
	}

	ok, err := s.store.TargetVisible(ctx, kind, targetID, domain.Viewer(actorID))
	if err != nil {
		metrics.RelationTogglesTotal.WithLabelValues(string(kind), "error").Inc()
		return "", err
	}
	if !ok {
		return "", domain.ErrNotFound(kind.Target() + " not found")
	}

	var state domain.ToggleState
	err = s.store.WithRelationTx(ctx, func(tx RelationTx) error {
		present, err := tx.RelationExists(ctx, actorID, kind, targetID)
		if err != nil {
			return err
		}
		if present {
			deleted, err := tx.DeleteRelation(ctx, actorID, kind, targetID)
			if err != nil {
				return err
			}
			if !deleted {
				return domain.ErrConflict("relation changed concurrently")
			}
			state = domain.StateUnliked
			return nil
		}

		if err := tx.InsertRelation(ctx, domain.Relation{
			ActorID:   actorID,
			Kind:      kind,
			TargetID:  targetID,
			CreatedAt: s.clock.Now().UTC(),
		}); err != nil {
			return err
		}
		state = domain.StateLiked
		return nil
	})
	if err != nil {
		outcome := "error"
		if domain.IsCode(err, domain.CodeConflict) {
			outcome = "conflict"
		}
		metrics.RelationTogglesTotal.WithLabelValues(string(kind), outcome).Inc()
		logger.WithCtx(ctx).Warn().
			Err(err).
			Str("kind", string(kind)).
			Str("target_id", targetID.String()).
			Msg("relation toggle failed")
		return "", err
	}

	metrics.RelationTogglesTotal.WithLabelValues(string(kind), string(state)).Inc()
	s.audit.RelationToggled(ctx, actorID, kind, targetID, state)
	return state, nil
}

func (s *Service) ToggleVideoLike(ctx context.Context, actorID, videoID uuid.UUID) (domain.ToggleState, error) {
	return s.Toggle(ctx, actorID, domain.KindLikesVideo, videoID)
}

func (s *Service) ToggleCommentLike(ctx context.Context, actorID, commentID uuid.UUID) (domain.ToggleState, error) {
	return s.Toggle(ctx, actorID, domain.KindLikesComment, commentID)
}

func (s *Service) ToggleTweetLike(ctx context.Context, actorID, tweetID uuid.UUID) (domain.ToggleState, error) {
	return s.Toggle(ctx, actorID, domain.KindLikesTweet, tweetID)
}

func (s *Service) ToggleSubscription(ctx context.Context, subscriberID, channelID uuid.UUID) (domain.ToggleState, error) {
	return s.Toggle(ctx, subscriberID, domain.KindSubscribes, channelID)
}
