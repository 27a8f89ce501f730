package playlist

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/audit"
	"github.com/baechuer/vidshare/internal/domain"
)

type Service struct {
	repo  Repo
	clock Clock
	audit *audit.Logger
}

func New(repo Repo, clock Clock, auditLog *audit.Logger) *Service {
	if auditLog == nil {
		auditLog = audit.Nop()
	}
	return &Service{repo: repo, clock: clock, audit: auditLog}
}

type CreateCmd struct {
	ActorID     uuid.UUID
	Name        string
	Description string
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Playlist, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, domain.ErrValidationMeta("invalid playlist", map[string]string{"name": "required"})
	}
	ok, err := s.repo.UserExists(ctx, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound("user profile not found")
	}
	now := s.clock.Now().UTC()
	p := &domain.Playlist{
		ID:          uuid.New(),
		OwnerID:     cmd.ActorID,
		Name:        name,
		Description: strings.TrimSpace(cmd.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the playlist with its videos. Unpublished members are shown only to their owner.
func (s *Service) Get(ctx context.Context, id uuid.UUID, viewer uuid.NullUUID) (*domain.PlaylistDetail, error) {
	d, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	visible := d.Videos[:0]
	for _, v := range d.Videos {
		if v.IsPublished || domain.IsViewer(viewer, v.Owner.ID) {
			visible = append(visible, v)
		}
	}
	d.Videos = visible
	d.TotalVideos = len(visible)
	return d, nil
}

func (s *Service) ListByUser(ctx context.Context, ownerID uuid.UUID, req domain.PageRequest) (domain.Page[domain.PlaylistSummary], error) {
	if err := req.RequireSort(domain.PlaylistSortFields...); err != nil {
		return domain.Page[domain.PlaylistSummary]{}, err
	}
	ok, err := s.repo.UserExists(ctx, ownerID)
	if err != nil {
		return domain.Page[domain.PlaylistSummary]{}, err
	}
	if !ok {
		return domain.Page[domain.PlaylistSummary]{}, domain.ErrNotFound("user not found")
	}
	items, total, err := s.repo.ListByOwner(ctx, ownerID, req)
	if err != nil {
		return domain.Page[domain.PlaylistSummary]{}, err
	}
	return domain.NewPage(items, req, total), nil
}

type UpdateCmd struct {
	ActorID     uuid.UUID
	PlaylistID  uuid.UUID
	Name        *string
	Description *string
}

func (s *Service) Update(ctx context.Context, cmd UpdateCmd) (*domain.Playlist, error) {
	if cmd.Name == nil && cmd.Description == nil {
		return nil, domain.ErrValidation("nothing to update")
	}
	p, err := s.loadOwned(ctx, cmd.ActorID, cmd.PlaylistID)
	if err != nil {
		return nil, err
	}
	if cmd.Name != nil {
		n := strings.TrimSpace(*cmd.Name)
		if n == "" {
			return nil, domain.ErrValidationMeta("invalid playlist", map[string]string{"name": "must not be empty"})
		}
		p.Name = n
	}
	if cmd.Description != nil {
		p.Description = strings.TrimSpace(*cmd.Description)
	}
	p.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, actorID, playlistID uuid.UUID) error {
	p, err := s.loadOwned(ctx, actorID, playlistID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return err
	}
	s.audit.EntityDeleted(ctx, actorID, "playlist", p.ID)
	return nil
}

func (s *Service) AddVideo(ctx context.Context, actorID, playlistID, videoID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, actorID, playlistID); err != nil {
		return err
	}
	ok, err := s.repo.VideoExists(ctx, videoID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound("video not found")
	}
	return s.repo.AddVideo(ctx, playlistID, videoID, s.clock.Now().UTC())
}

func (s *Service) RemoveVideo(ctx context.Context, actorID, playlistID, videoID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, actorID, playlistID); err != nil {
		return err
	}
	removed, err := s.repo.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFound("video not in playlist")
	}
	return nil
}

func (s *Service) Contains(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	if _, err := s.repo.GetByID(ctx, playlistID); err != nil {
		return false, err
	}
	return s.repo.ContainsVideo(ctx, playlistID, videoID)
}

func (s *Service) loadOwned(ctx context.Context, actorID, playlistID uuid.UUID) (*domain.Playlist, error) {
	p, err := s.repo.GetByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManage(p.OwnerID, actorID) {
		return nil, domain.ErrUnauthorized("only the owner can modify this playlist")
	}
	return p, nil
}
