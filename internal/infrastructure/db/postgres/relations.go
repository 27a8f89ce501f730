package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/application/engagement"
	"github.com/baechuer/vidshare/internal/domain"
)

// RelationStore backs the engagement service: likes and subscriptions share the
// relations table and differ only by kind.
type RelationStore struct {
	db *sql.DB
}

func NewRelationStore(db *sql.DB) *RelationStore { return &RelationStore{db: db} }

// Video targets take the viewer as $2; a NULL viewer only sees published videos.
var videoTargetQueries = map[domain.RelationKind]string{
	domain.KindLikesVideo: `
SELECT EXISTS(SELECT 1 FROM videos v WHERE v.id = $1 AND (v.is_published OR v.owner_id = $2))`,
	domain.KindLikesComment: `
SELECT EXISTS(SELECT 1 FROM comments c JOIN videos v ON v.id = c.video_id
WHERE c.id = $1 AND (v.is_published OR v.owner_id = $2))`,
}

var targetTables = map[domain.RelationKind]string{
	domain.KindLikesTweet: "tweets",
	domain.KindSubscribes: "users",
}

func (s *RelationStore) TargetVisible(ctx context.Context, kind domain.RelationKind, targetID uuid.UUID, viewer uuid.NullUUID) (bool, error) {
	if q, ok := videoTargetQueries[kind]; ok {
		return exists(ctx, s.db, q, targetID, viewer)
	}
	table, ok := targetTables[kind]
	if !ok {
		return false, domain.ErrValidationMeta("invalid relation kind", map[string]string{"kind": string(kind)})
	}
	return exists(ctx, s.db, fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)`, table), targetID)
}

func (s *RelationStore) WithRelationTx(ctx context.Context, fn func(tx engagement.RelationTx) error) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(&relationTx{tx: tx})
	})
}

type relationTx struct {
	tx *sql.Tx
}

func (r *relationTx) RelationExists(ctx context.Context, actorID uuid.UUID, kind domain.RelationKind, targetID uuid.UUID) (bool, error) {
	return exists(ctx, r.tx, `
SELECT EXISTS(SELECT 1 FROM relations WHERE actor_id = $1 AND kind = $2 AND target_id = $3)
`, actorID, string(kind), targetID)
}

func (r *relationTx) InsertRelation(ctx context.Context, rel domain.Relation) error {
	_, err := r.tx.ExecContext(ctx, `
INSERT INTO relations (actor_id, kind, target_id, created_at) VALUES ($1, $2, $3, $4)
`, rel.ActorID, string(rel.Kind), rel.TargetID, rel.CreatedAt)
	if isUniqueViolation(err) {
		return &domain.AppError{Code: domain.CodeConflict, Message: "concurrent toggle on the same relation", Err: err}
	}
	return mapErr(err, "relation")
}

func (r *relationTx) DeleteRelation(ctx context.Context, actorID uuid.UUID, kind domain.RelationKind, targetID uuid.UUID) (bool, error) {
	res, err := r.tx.ExecContext(ctx, `
DELETE FROM relations WHERE actor_id = $1 AND kind = $2 AND target_id = $3
`, actorID, string(kind), targetID)
	if err != nil {
		return false, mapErr(err, "relation")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, mapErr(err, "relation")
	}
	return n > 0, nil
}

// Summary counts relations of kind on target. A NULL viewer never matches actor_id.
func (s *RelationStore) Summary(ctx context.Context, kind domain.RelationKind, targetID uuid.UUID, viewer uuid.NullUUID) (domain.RelationSummary, error) {
	sum := domain.RelationSummary{Kind: kind, TargetID: targetID}
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(BOOL_OR(actor_id = $3), false)
FROM relations
WHERE kind = $1 AND target_id = $2
`, string(kind), targetID, viewer).Scan(&sum.Count, &sum.IsActive)
	if err != nil {
		return domain.RelationSummary{}, mapErr(err, "relation")
	}
	return sum, nil
}

func (s *RelationStore) ListLikedVideos(ctx context.Context, actorID uuid.UUID, req domain.PageRequest) ([]domain.LikedVideo, int, error) {
	total, err := count(ctx, s.db, `
SELECT COUNT(*)
FROM relations r JOIN videos v ON v.id = r.target_id
WHERE r.actor_id = $1 AND r.kind = 'likes-video' AND (v.is_published OR v.owner_id = $1)
`, actorID)
	if err != nil {
		return nil, 0, err
	}

	dir := "DESC"
	if req.SortDir == domain.SortAsc {
		dir = "ASC"
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT `+videoCardCols+`, r.created_at
FROM relations r
JOIN videos v ON v.id = r.target_id
JOIN users o ON o.id = v.owner_id
WHERE r.actor_id = $1 AND r.kind = 'likes-video' AND (v.is_published OR v.owner_id = $1)
ORDER BY r.created_at `+dir+`, v.id ASC
LIMIT $2 OFFSET $3
`, actorID, req.Limit, req.Offset())
	if err != nil {
		return nil, 0, mapErr(err, "video")
	}
	defer rows.Close()

	var out []domain.LikedVideo
	for rows.Next() {
		var lv domain.LikedVideo
		if err := rows.Scan(append(videoCardDest(&lv.VideoCard), &lv.LikedAt)...); err != nil {
			return nil, 0, mapErr(err, "video")
		}
		out = append(out, lv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr(err, "video")
	}
	return out, total, nil
}

const channelEntryCols = `
u.id, u.username, u.fullname, u.avatar,
(SELECT COUNT(*) FROM relations s WHERE s.kind = 'subscribes' AND s.target_id = u.id) AS subscribers_count,
EXISTS(SELECT 1 FROM relations s WHERE s.kind = 'subscribes' AND s.target_id = u.id AND s.actor_id = $2) AS is_subscribed,
r.created_at`

// ListSubscribers lists the users subscribed to channelID.
func (s *RelationStore) ListSubscribers(ctx context.Context, channelID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) ([]domain.SubscriptionEntry, int, error) {
	return s.listChannels(ctx, "r.target_id = $1", "u.id = r.actor_id", channelID, viewer, req)
}

// ListSubscriptions lists the channels subscriberID is subscribed to.
func (s *RelationStore) ListSubscriptions(ctx context.Context, subscriberID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) ([]domain.SubscriptionEntry, int, error) {
	return s.listChannels(ctx, "r.actor_id = $1", "u.id = r.target_id", subscriberID, viewer, req)
}

func (s *RelationStore) listChannels(ctx context.Context, where, join string, id uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) ([]domain.SubscriptionEntry, int, error) {
	order, err := orderBy(req, channelSortCols, "u.id")
	if err != nil {
		return nil, 0, err
	}
	total, err := count(ctx, s.db, `
SELECT COUNT(*) FROM relations r JOIN users u ON `+join+`
WHERE r.kind = 'subscribes' AND `+where, id)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT `+channelEntryCols+`
FROM relations r JOIN users u ON `+join+`
WHERE r.kind = 'subscribes' AND `+where+`
`+order+`
LIMIT $3 OFFSET $4
`, id, viewer, req.Limit, req.Offset())
	if err != nil {
		return nil, 0, mapErr(err, "subscription")
	}
	defer rows.Close()

	var out []domain.SubscriptionEntry
	for rows.Next() {
		var e domain.SubscriptionEntry
		c := &e.Channel
		if err := rows.Scan(
			&c.ID, &c.Username, &c.Fullname, &c.Avatar,
			&c.SubscribersCount, &c.IsSubscribed, &e.SubscribedAt,
		); err != nil {
			return nil, 0, mapErr(err, "subscription")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr(err, "subscription")
	}
	return out, total, nil
}
