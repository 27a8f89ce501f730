package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/domain"
)

type PlaylistRepo struct {
	db *sql.DB
}

func NewPlaylistRepo(db *sql.DB) *PlaylistRepo { return &PlaylistRepo{db: db} }

func playlistDest(p *domain.Playlist) []any {
	return []any{&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt}
}

func (r *PlaylistRepo) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
}

func (r *PlaylistRepo) VideoExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM videos WHERE id = $1)`, id)
}

func (r *PlaylistRepo) Create(ctx context.Context, p *domain.Playlist) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO playlists (id, owner_id, name, description, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, p.ID, p.OwnerID, p.Name, p.Description, p.CreatedAt, p.UpdatedAt)
	return mapErr(err, "playlist")
}

func (r *PlaylistRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	var p domain.Playlist
	err := r.db.QueryRowContext(ctx, `
SELECT id, owner_id, name, description, created_at, updated_at FROM playlists WHERE id = $1
`, id).Scan(playlistDest(&p)...)
	if err != nil {
		return nil, mapErr(err, "playlist")
	}
	return &p, nil
}

func (r *PlaylistRepo) GetDetail(ctx context.Context, id uuid.UUID) (*domain.PlaylistDetail, error) {
	var d domain.PlaylistDetail
	dest := append(playlistDest(&d.Playlist), &d.Owner.ID, &d.Owner.Username, &d.Owner.Fullname, &d.Owner.Avatar)
	err := r.db.QueryRowContext(ctx, `
SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at,
  o.id, o.username, o.fullname, o.avatar
FROM playlists p JOIN users o ON o.id = p.owner_id
WHERE p.id = $1
`, id).Scan(dest...)
	if err != nil {
		return nil, mapErr(err, "playlist")
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT v.id, v.title, v.thumbnail, v.duration, v.is_published, v.created_at, pv.added_at,
  o.id, o.username, o.fullname, o.avatar
FROM playlist_videos pv
JOIN videos v ON v.id = pv.video_id
JOIN users o ON o.id = v.owner_id
WHERE pv.playlist_id = $1
ORDER BY pv.added_at ASC, v.id ASC
`, id)
	if err != nil {
		return nil, mapErr(err, "playlist")
	}
	defer rows.Close()

	d.Videos = []domain.PlaylistVideo{}
	for rows.Next() {
		var v domain.PlaylistVideo
		if err := rows.Scan(
			&v.ID, &v.Title, &v.Thumbnail, &v.Duration, &v.IsPublished, &v.CreatedAt, &v.AddedAt,
			&v.Owner.ID, &v.Owner.Username, &v.Owner.Fullname, &v.Owner.Avatar,
		); err != nil {
			return nil, mapErr(err, "playlist")
		}
		d.Videos = append(d.Videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr(err, "playlist")
	}
	d.TotalVideos = len(d.Videos)
	return &d, nil
}

// ListByOwner returns summaries; the cover is the thumbnail of the first published member.
func (r *PlaylistRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, req domain.PageRequest) ([]domain.PlaylistSummary, int, error) {
	order, err := orderBy(req, playlistSortCols, "p.id")
	if err != nil {
		return nil, 0, err
	}
	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM playlists WHERE owner_id = $1`, ownerID)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at,
  (SELECT COUNT(*) FROM playlist_videos pv JOIN videos v ON v.id = pv.video_id
     WHERE pv.playlist_id = p.id AND (v.is_published OR v.owner_id = p.owner_id)),
  COALESCE((SELECT v.thumbnail FROM playlist_videos pv JOIN videos v ON v.id = pv.video_id
     WHERE pv.playlist_id = p.id AND v.is_published
     ORDER BY pv.added_at ASC, v.id ASC LIMIT 1), '')
FROM playlists p
WHERE p.owner_id = $1
`+order+`
LIMIT $2 OFFSET $3
`, ownerID, req.Limit, req.Offset())
	if err != nil {
		return nil, 0, mapErr(err, "playlist")
	}
	defer rows.Close()

	var out []domain.PlaylistSummary
	for rows.Next() {
		var s domain.PlaylistSummary
		if err := rows.Scan(append(playlistDest(&s.Playlist), &s.TotalVideos, &s.Thumbnail)...); err != nil {
			return nil, 0, mapErr(err, "playlist")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapErr(err, "playlist")
	}
	return out, total, nil
}

func (r *PlaylistRepo) Update(ctx context.Context, p *domain.Playlist) error {
	res, err := r.db.ExecContext(ctx, `UPDATE playlists SET name=$2, description=$3, updated_at=$4 WHERE id=$1`,
		p.ID, p.Name, p.Description, p.UpdatedAt)
	return affectedOne(res, err, "playlist")
}

func (r *PlaylistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	return affectedOne(res, err, "playlist")
}

func (r *PlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO playlist_videos (playlist_id, video_id, added_at) VALUES ($1, $2, $3)
`, playlistID, videoID, at)
	if isUniqueViolation(err) {
		return &domain.AppError{Code: domain.CodeConflict, Message: "video already in playlist", Err: err}
	}
	return mapErr(err, "playlist")
}

func (r *PlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`,
		playlistID, videoID)
	if err != nil {
		return false, mapErr(err, "playlist")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, mapErr(err, "playlist")
	}
	return n > 0, nil
}

func (r *PlaylistRepo) ContainsVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	return exists(ctx, r.db, `
SELECT EXISTS(SELECT 1 FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2)
`, playlistID, videoID)
}
