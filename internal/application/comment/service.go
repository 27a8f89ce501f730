package comment

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/audit"
	"github.com/baechuer/vidshare/internal/domain"
)

const maxContentLen = 2000

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

func (s *Service) List(ctx context.Context, videoID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.CommentView], error) {
	if err := req.RequireSort(domain.CommentSortFields...); err != nil {
		return domain.Page[domain.CommentView]{}, err
	}
	if err := s.requireVideo(ctx, videoID, viewer); err != nil {
		return domain.Page[domain.CommentView]{}, err
	}
	items, total, err := s.repo.ListByVideo(ctx, videoID, viewer, req)
	if err != nil {
		return domain.Page[domain.CommentView]{}, err
	}
	if !viewer.Valid {
		for i := range items {
			items[i].IsLiked = false
		}
	}
	return domain.NewPage(items, req, total), nil
}

func (s *Service) Add(ctx context.Context, actorID, videoID uuid.UUID, content string) (*domain.Comment, error) {
	content, err := cleanContent(content)
	if err != nil {
		return nil, err
	}
	if err := s.requireVideo(ctx, videoID, domain.Viewer(actorID)); err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	c := &domain.Comment{
		ID:        uuid.New(),
		VideoID:   videoID,
		OwnerID:   actorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, actorID, commentID uuid.UUID, content string) (*domain.Comment, error) {
	content, err := cleanContent(content)
	if err != nil {
		return nil, err
	}
	c, err := s.loadOwned(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}
	c.Content = content
	c.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, actorID, commentID uuid.UUID) error {
	c, err := s.loadOwned(ctx, actorID, commentID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, c.ID); err != nil {
		return err
	}
	s.audit.EntityDeleted(ctx, actorID, "comment", c.ID)
	return nil
}

func (s *Service) loadOwned(ctx context.Context, actorID, commentID uuid.UUID) (*domain.Comment, error) {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManage(c.OwnerID, actorID) {
		return nil, domain.ErrUnauthorized("only the owner can modify this comment")
	}
	return c, nil
}

func (s *Service) requireVideo(ctx context.Context, videoID uuid.UUID, viewer uuid.NullUUID) error {
	ok, err := s.repo.VideoVisible(ctx, videoID, viewer)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound("video not found")
	}
	return nil
}

func cleanContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", domain.ErrValidationMeta("invalid comment", map[string]string{"content": "required"})
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "", domain.ErrValidationMeta("invalid comment", map[string]string{"content": "too long"})
	}
	return content, nil
}
