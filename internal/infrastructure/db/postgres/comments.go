package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) VideoVisible(ctx context.Context, videoID uuid.UUID, viewer uuid.NullUUID) (bool, error) {
	return exists(ctx, r.db, `
SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1 AND (is_published OR owner_id = $2))
`, videoID, viewer)
}

func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO comments (id, video_id, owner_id, content, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, c.ID, c.VideoID, c.OwnerID, c.Content, c.CreatedAt, c.UpdatedAt)
	return mapErr(err, "comment")
}

func (r *CommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.QueryRowContext(ctx, `
SELECT id, video_id, owner_id, content, created_at, updated_at FROM comments WHERE id = $1
`, id).Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapErr(err, "comment")
	}
	return &c, nil
}

func (r *CommentRepo) Update(ctx context.Context, c *domain.Comment) error {
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET content=$2, updated_at=$3 WHERE id=$1`,
		c.ID, c.Content, c.UpdatedAt)
	return affectedOne(res, err, "comment")
}

func (r *CommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM relations WHERE kind = 'likes-comment' AND target_id = $1`, id); err != nil {
			return mapErr(err, "comment")
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
		return affectedOne(res, err, "comment")
	})
}

func (r *CommentRepo) ListByVideo(ctx context.Context, videoID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) ([]domain.CommentView, int, error) {
	order, err := orderBy(req, commentSortCols, "c.id")
	if err != nil {
		return nil, 0, err
	}
	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM comments WHERE video_id = $1`, videoID)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
  o.id, o.username, o.fullname, o.avatar,
  (SELECT COUNT(*) FROM relations l WHERE l.kind = 'likes-comment' AND l.target_id = c.id),
  EXISTS(SELECT 1 FROM relations l WHERE l.kind = 'likes-comment' AND l.target_id = c.id AND l.actor_id = $2)
FROM comments c JOIN users o ON o.id = c.owner_id
WHERE c.video_id = $1
`+order+`
LIMIT $3 OFFSET $4
`, videoID, viewer, req.Limit, req.Offset())
	if err != nil {
		return nil, 0, mapErr(err, "comment")
	}
	defer rows.Close()

	var out []domain.CommentView
	for rows.Next() {
		var v domain.CommentView
		if err := rows.Scan(
			&v.ID, &v.VideoID, &v.OwnerID, &v.Content, &v.CreatedAt, &v.UpdatedAt,
			&v.Owner.ID, &v.Owner.Username, &v.Owner.Fullname, &v.Owner.Avatar,
			&v.LikesCount, &v.IsLiked,
		); err != nil {
			return nil, 0, mapErr(err, "comment")
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr(err, "comment")
	}
	return out, total, nil
}
