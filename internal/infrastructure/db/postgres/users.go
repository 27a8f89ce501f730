package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/baechuer/vidshare/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, username, email, fullname, avatar, cover_image, watch_history, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7::uuid[],$8,$9)
`, u.ID, u.Username, u.Email, u.Fullname, u.Avatar, u.CoverImage,
		pq.Array(formatIDs(u.WatchHistory)), u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err) {
		return &domain.AppError{Code: domain.CodeConflict, Message: "profile, username or email already exists", Err: err}
	}
	return mapErr(err, "user")
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	var history []string
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, email, fullname, avatar, cover_image, watch_history::text, created_at, updated_at
FROM users WHERE id = $1
`, id).Scan(&u.ID, &u.Username, &u.Email, &u.Fullname, &u.Avatar, &u.CoverImage,
		pq.Array(&history), &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapErr(err, "user")
	}
	if u.WatchHistory, err = parseIDs(history); err != nil {
		return nil, err
	}
	return &u, nil
}

// Update writes profile fields only; watch history is owned by VideoRepo.RecordView.
func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users SET fullname=$2, email=$3, avatar=$4, cover_image=$5, updated_at=$6 WHERE id=$1
`, u.ID, u.Fullname, u.Email, u.Avatar, u.CoverImage, u.UpdatedAt)
	if isUniqueViolation(err) {
		return &domain.AppError{Code: domain.CodeConflict, Message: "email already in use", Err: err}
	}
	return affectedOne(res, err, "user")
}

func (r *UserRepo) ChannelProfile(ctx context.Context, username string, viewer uuid.NullUUID) (*domain.ChannelProfile, error) {
	var p domain.ChannelProfile
	err := r.db.QueryRowContext(ctx, `
SELECT u.id, u.username, u.fullname, u.avatar, u.email, u.cover_image, u.created_at,
  (SELECT COUNT(*) FROM relations s WHERE s.kind = 'subscribes' AND s.target_id = u.id),
  (SELECT COUNT(*) FROM relations s WHERE s.kind = 'subscribes' AND s.actor_id = u.id),
  EXISTS(SELECT 1 FROM relations s WHERE s.kind = 'subscribes' AND s.target_id = u.id AND s.actor_id = $2)
FROM users u WHERE u.username = $1
`, username, viewer).Scan(
		&p.ID, &p.Username, &p.Fullname, &p.Avatar, &p.Email, &p.CoverImage, &p.CreatedAt,
		&p.SubscribersCount, &p.SubscribedToCount, &p.IsSubscribed,
	)
	if err != nil {
		return nil, mapErr(err, "channel")
	}
	return &p, nil
}
