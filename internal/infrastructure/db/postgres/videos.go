package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/baechuer/vidshare/internal/application/video"
	"github.com/baechuer/vidshare/internal/domain"
)

type VideoRepo struct {
	db *sql.DB
}

func NewVideoRepo(db *sql.DB) *VideoRepo { return &VideoRepo{db: db} }

const videoCols = `v.id, v.owner_id, v.video_file, v.thumbnail, v.title, v.description,
v.duration, v.is_published, v.created_at, v.updated_at`

// videoCardCols expects videos as v and the owner as o.
const videoCardCols = videoCols + `,
o.id, o.username, o.fullname, o.avatar,
(SELECT COUNT(*) FROM relations l WHERE l.kind = 'likes-video' AND l.target_id = v.id) AS likes_count,
(SELECT COUNT(*) FROM video_views vv WHERE vv.video_id = v.id) AS views_count,
(SELECT COUNT(*) FROM comments c WHERE c.video_id = v.id) AS comments_count`

func videoDest(v *domain.Video) []any {
	return []any{
		&v.ID, &v.OwnerID, &v.VideoFile, &v.Thumbnail, &v.Title, &v.Description,
		&v.Duration, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
	}
}

func videoCardDest(c *domain.VideoCard) []any {
	return append(videoDest(&c.Video),
		&c.Owner.ID, &c.Owner.Username, &c.Owner.Fullname, &c.Owner.Avatar,
		&c.LikesCount, &c.ViewsCount, &c.CommentsCount,
	)
}

func (r *VideoRepo) Create(ctx context.Context, v *domain.Video) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO videos (id, owner_id, video_file, thumbnail, title, description,
  duration, is_published, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`, v.ID, v.OwnerID, v.VideoFile, v.Thumbnail, v.Title, v.Description,
		v.Duration, v.IsPublished, v.CreatedAt, v.UpdatedAt)
	return mapErr(err, "video")
}

func (r *VideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	var v domain.Video
	err := r.db.QueryRowContext(ctx, `SELECT `+videoCols+` FROM videos v WHERE v.id = $1`, id).
		Scan(videoDest(&v)...)
	if err != nil {
		return nil, mapErr(err, "video")
	}
	return &v, nil
}

func (r *VideoRepo) Update(ctx context.Context, v *domain.Video) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE videos SET
  title=$2, description=$3, thumbnail=$4, is_published=$5, updated_at=$6
WHERE id=$1
`, v.ID, v.Title, v.Description, v.Thumbnail, v.IsPublished, v.UpdatedAt)
	return affectedOne(res, err, "video")
}

// Delete removes the video and, in the same transaction, the likes on it and on its
// comments. Views, comments and playlist entries go with the row by cascade.
func (r *VideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
DELETE FROM relations
WHERE kind = 'likes-comment' AND target_id IN (SELECT id FROM comments WHERE video_id = $1)
`, id); err != nil {
			return mapErr(err, "video")
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM relations WHERE kind = 'likes-video' AND target_id = $1`, id); err != nil {
			return mapErr(err, "video")
		}
		if _, err := tx.ExecContext(ctx, `
UPDATE users SET watch_history = array_remove(watch_history, $1) WHERE $1 = ANY(watch_history)
`, id); err != nil {
			return mapErr(err, "video")
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
		return affectedOne(res, err, "video")
	})
}

func (r *VideoRepo) GetDetail(ctx context.Context, id uuid.UUID, viewer uuid.NullUUID) (*domain.VideoDetail, error) {
	var d domain.VideoDetail
	o := &d.Owner
	dest := append(videoDest(&d.Video),
		&o.ID, &o.Username, &o.Fullname, &o.Avatar, &o.SubscribersCount, &o.IsSubscribed,
		&d.LikesCount, &d.IsLiked, &d.ViewsCount, &d.CommentsCount,
	)
	err := r.db.QueryRowContext(ctx, `
SELECT `+videoCols+`,
  o.id, o.username, o.fullname, o.avatar,
  (SELECT COUNT(*) FROM relations s WHERE s.kind = 'subscribes' AND s.target_id = o.id),
  EXISTS(SELECT 1 FROM relations s WHERE s.kind = 'subscribes' AND s.target_id = o.id AND s.actor_id = $2),
  (SELECT COUNT(*) FROM relations l WHERE l.kind = 'likes-video' AND l.target_id = v.id),
  EXISTS(SELECT 1 FROM relations l WHERE l.kind = 'likes-video' AND l.target_id = v.id AND l.actor_id = $2),
  (SELECT COUNT(*) FROM video_views vv WHERE vv.video_id = v.id),
  (SELECT COUNT(*) FROM comments c WHERE c.video_id = v.id)
FROM videos v JOIN users o ON o.id = v.owner_id
WHERE v.id = $1
`, id, viewer).Scan(dest...)
	if err != nil {
		return nil, mapErr(err, "video")
	}
	return &d, nil
}

func (r *VideoRepo) List(ctx context.Context, f video.ListFilter, req domain.PageRequest) ([]domain.VideoCard, int, error) {
	order, err := orderBy(req, videoSortCols, "v.id")
	if err != nil {
		return nil, 0, err
	}

	var where []string
	var args []any
	add := func(condFmt string, val any) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(condFmt, len(args)))
	}
	if !f.IncludeUnpublished {
		where = append(where, "v.is_published")
	}
	if f.OwnerID.Valid {
		add("v.owner_id = $%d", f.OwnerID.UUID)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		add("v.title ILIKE $%d", "%"+escapeLike(q)+"%")
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM videos v `+whereSQL, args...)
	if err != nil {
		return nil, 0, err
	}

	n := len(args)
	args = append(args, req.Limit, req.Offset())
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
SELECT %s
FROM videos v JOIN users o ON o.id = v.owner_id
%s
%s
LIMIT $%d OFFSET $%d
`, videoCardCols, whereSQL, order, n+1, n+2), args...)
	if err != nil {
		return nil, 0, mapErr(err, "video")
	}
	return scanVideoCards(rows, total)
}

func (r *VideoRepo) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
}

// RecordView inserts the view and rewrites the actor's watch history in one
// transaction. The actor's row is locked first so concurrent views by the same actor
// apply one after another.
func (r *VideoRepo) RecordView(ctx context.Context, videoID, actorID uuid.UUID, at time.Time, fn func([]uuid.UUID) []uuid.UUID) (bool, []uuid.UUID, error) {
	var (
		added bool
		out   []uuid.UUID
	)
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var raw []string
		if err := tx.QueryRowContext(ctx, `
SELECT watch_history::text FROM users WHERE id = $1 FOR UPDATE
`, actorID).Scan(pq.Array(&raw)); err != nil {
			return mapErr(err, "user")
		}
		history, err := parseIDs(raw)
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
INSERT INTO video_views (video_id, viewer_id, created_at) VALUES ($1, $2, $3)
ON CONFLICT (video_id, viewer_id) DO NOTHING
`, videoID, actorID, at)
		if err != nil {
			return mapErr(err, "view")
		}
		n, err := res.RowsAffected()
		if err != nil {
			return mapErr(err, "view")
		}
		added = n > 0

		out = fn(history)
		_, err = tx.ExecContext(ctx, `
UPDATE users SET watch_history = $2::uuid[] WHERE id = $1
`, actorID, pq.Array(formatIDs(out)))
		return mapErr(err, "user")
	})
	if err != nil {
		return false, nil, err
	}
	return added, out, nil
}

// ListHistory pages through the watch history in stored order. Entries pointing at
// deleted or hidden videos are skipped.
func (r *VideoRepo) ListHistory(ctx context.Context, actorID uuid.UUID, req domain.PageRequest) ([]domain.VideoCard, int, error) {
	const from = `
FROM users u
CROSS JOIN LATERAL unnest(u.watch_history) WITH ORDINALITY AS h(video_id, pos)
JOIN videos v ON v.id = h.video_id
JOIN users o ON o.id = v.owner_id
WHERE u.id = $1 AND (v.is_published OR v.owner_id = $1)`

	total, err := count(ctx, r.db, `SELECT COUNT(*) `+from, actorID)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+videoCardCols+from+`
ORDER BY h.pos ASC
LIMIT $2 OFFSET $3
`, actorID, req.Limit, req.Offset())
	if err != nil {
		return nil, 0, mapErr(err, "video")
	}
	return scanVideoCards(rows, total)
}

func (r *VideoRepo) ChannelStats(ctx context.Context, channelID uuid.UUID) (domain.ChannelStats, error) {
	st := domain.ChannelStats{ChannelID: channelID}
	err := r.db.QueryRowContext(ctx, `
SELECT
  (SELECT COUNT(*) FROM relations WHERE kind = 'subscribes' AND target_id = $1),
  (SELECT COUNT(*) FROM relations WHERE kind = 'subscribes' AND actor_id = $1),
  (SELECT COUNT(*) FROM video_views vv JOIN videos v ON v.id = vv.video_id WHERE v.owner_id = $1),
  (SELECT COUNT(*) FROM videos WHERE owner_id = $1),
  (SELECT COUNT(*) FROM relations l JOIN videos v ON v.id = l.target_id
     WHERE l.kind = 'likes-video' AND v.owner_id = $1)
`, channelID).Scan(&st.TotalSubscribers, &st.SubscribedChannels, &st.TotalViews, &st.TotalVideos, &st.TotalLikes)
	if err != nil {
		return domain.ChannelStats{}, mapErr(err, "channel")
	}
	return st, nil
}

func scanVideoCards(rows *sql.Rows, total int) ([]domain.VideoCard, int, error) {
	defer rows.Close()
	var out []domain.VideoCard
	for rows.Next() {
		var c domain.VideoCard
		if err := rows.Scan(videoCardDest(&c)...); err != nil {
			return nil, 0, mapErr(err, "video")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr(err, "video")
	}
	return out, total, nil
}

func affectedOne(res sql.Result, err error, entity string) error {
	if err != nil {
		return mapErr(err, entity)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapErr(err, entity)
	}
	if n == 0 {
		return domain.ErrNotFound(entity + " not found")
	}
	return nil
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, domain.ErrInternal("corrupt watch history", err)
		}
		out = append(out, id)
	}
	return out, nil
}

func formatIDs(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
