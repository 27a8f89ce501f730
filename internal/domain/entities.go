package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	Fullname     string
	Avatar       string
	CoverImage   string
	WatchHistory []uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Video struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	VideoFile   string
	Thumbnail   string
	Title       string
	Description string
	Duration    float64
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VisibleTo reports whether viewer may see the video. Unpublished videos are owner-only.
func (v *Video) VisibleTo(viewer uuid.NullUUID) bool {
	return v.IsPublished || IsViewer(viewer, v.OwnerID)
}

// MediaRefs returns the non-empty asset references held by the video.
func (v *Video) MediaRefs() []string {
	return nonEmpty(v.VideoFile, v.Thumbnail)
}

type Comment struct {
	ID        uuid.UUID
	VideoID   uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Tweet struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Content   string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Playlist struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanManage is the single ownership rule for owned entities.
func CanManage(ownerID, actorID uuid.UUID) bool {
	return actorID != uuid.Nil && ownerID == actorID
}

func nonEmpty(refs ...string) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}
