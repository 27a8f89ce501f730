package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

type TweetRepo struct {
	db *sql.DB
}

func NewTweetRepo(db *sql.DB) *TweetRepo { return &TweetRepo{db: db} }

const tweetViewCols = `t.id, t.owner_id, t.content, t.image, t.created_at, t.updated_at,
  o.id, o.username, o.fullname, o.avatar,
  (SELECT COUNT(*) FROM relations l WHERE l.kind = 'likes-tweet' AND l.target_id = t.id),
  EXISTS(SELECT 1 FROM relations l WHERE l.kind = 'likes-tweet' AND l.target_id = t.id AND l.actor_id = $2)`

func tweetViewDest(v *domain.TweetView) []any {
	return []any{
		&v.ID, &v.OwnerID, &v.Content, &v.Image, &v.CreatedAt, &v.UpdatedAt,
		&v.Owner.ID, &v.Owner.Username, &v.Owner.Fullname, &v.Owner.Avatar,
		&v.LikesCount, &v.IsLiked,
	}
}

func (r *TweetRepo) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
}

func (r *TweetRepo) Create(ctx context.Context, t *domain.Tweet) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO tweets (id, owner_id, content, image, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, t.ID, t.OwnerID, t.Content, t.Image, t.CreatedAt, t.UpdatedAt)
	return mapErr(err, "tweet")
}

func (r *TweetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	var t domain.Tweet
	err := r.db.QueryRowContext(ctx, `
SELECT id, owner_id, content, image, created_at, updated_at FROM tweets WHERE id = $1
`, id).Scan(&t.ID, &t.OwnerID, &t.Content, &t.Image, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapErr(err, "tweet")
	}
	return &t, nil
}

func (r *TweetRepo) GetView(ctx context.Context, id uuid.UUID, viewer uuid.NullUUID) (*domain.TweetView, error) {
	var v domain.TweetView
	err := r.db.QueryRowContext(ctx, `
SELECT `+tweetViewCols+`
FROM tweets t JOIN users o ON o.id = t.owner_id
WHERE t.id = $1
`, id, viewer).Scan(tweetViewDest(&v)...)
	if err != nil {
		return nil, mapErr(err, "tweet")
	}
	return &v, nil
}

func (r *TweetRepo) Update(ctx context.Context, t *domain.Tweet) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tweets SET content=$2, updated_at=$3 WHERE id=$1`,
		t.ID, t.Content, t.UpdatedAt)
	return affectedOne(res, err, "tweet")
}

func (r *TweetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM relations WHERE kind = 'likes-tweet' AND target_id = $1`, id); err != nil {
			return mapErr(err, "tweet")
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM tweets WHERE id = $1`, id)
		return affectedOne(res, err, "tweet")
	})
}

func (r *TweetRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) ([]domain.TweetView, int, error) {
	order, err := orderBy(req, tweetSortCols, "t.id")
	if err != nil {
		return nil, 0, err
	}
	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM tweets WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT `+tweetViewCols+`
FROM tweets t JOIN users o ON o.id = t.owner_id
WHERE t.owner_id = $1
`+order+`
LIMIT $3 OFFSET $4
`, ownerID, viewer, req.Limit, req.Offset())
	if err != nil {
		return nil, 0, mapErr(err, "tweet")
	}
	defer rows.Close()

	var out []domain.TweetView
	for rows.Next() {
		var v domain.TweetView
		if err := rows.Scan(tweetViewDest(&v)...); err != nil {
			return nil, 0, mapErr(err, "tweet")
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr(err, "tweet")
	}
	return out, total, nil
}
