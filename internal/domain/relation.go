package domain

import (
	"time"

	"github.com/google/uuid"
)

// RelationKind is part of the relation identity: the same target id under two kinds
// names two unrelated relations.
type RelationKind string

const (
	KindLikesVideo   RelationKind = "likes-video"
	KindLikesComment RelationKind = "likes-comment"
	KindLikesTweet   RelationKind = "likes-tweet"
	KindSubscribes   RelationKind = "subscribes"
)

var relationKinds = []RelationKind{KindLikesVideo, KindLikesComment, KindLikesTweet, KindSubscribes}

func (k RelationKind) Valid() bool {
	for _, v := range relationKinds {
		if k == v {
			return true
		}
	}
	return false
}

// Target names the entity type a kind points at.
func (k RelationKind) Target() string {
	switch k {
	case KindLikesVideo:
		return "video"
	case KindLikesComment:
		return "comment"
	case KindLikesTweet:
		return "tweet"
	case KindSubscribes:
		return "channel"
	default:
		return "target"
	}
}

// ParseRelationKind accepts the canonical kind or the short path form (v, c, t, s).
func ParseRelationKind(raw string) (RelationKind, error) {
	switch raw {
	case "v", "video":
		return KindLikesVideo, nil
	case "c", "comment":
		return KindLikesComment, nil
	case "t", "tweet":
		return KindLikesTweet, nil
	case "s", "channel":
		return KindSubscribes, nil
	}
	k := RelationKind(raw)
	if !k.Valid() {
		return "", ErrValidationMeta("invalid relation kind", map[string]string{
			"kind": "must be one of: likes-video, likes-comment, likes-tweet, subscribes",
		})
	}
	return k, nil
}

type Relation struct {
	ActorID   uuid.UUID
	Kind      RelationKind
	TargetID  uuid.UUID
	CreatedAt time.Time
}

type ToggleState string

const (
	StateLiked   ToggleState = "liked"
	StateUnliked ToggleState = "unliked"
)

// Active reports whether the relation exists after the toggle.
func (s ToggleState) Active() bool { return s == StateLiked }

// RelationSummary is the raw aggregation of one (kind, target) pair for a viewer.
type RelationSummary struct {
	Kind     RelationKind
	TargetID uuid.UUID
	Count    int
	IsActive bool
}
