package tweet

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/baechuer/vidshare/internal/audit"
	"github.com/baechuer/vidshare/internal/domain"
)

const maxContentLen = 500

type Service struct {
	repo   Repo
	assets AssetStore
	clock  Clock
	audit  *audit.Logger
}

func New(repo Repo, assets AssetStore, clock Clock, auditLog *audit.Logger) *Service {
	if auditLog == nil {
		auditLog = audit.Nop()
	}
	return &Service{repo: repo, assets: assets, clock: clock, audit: auditLog}
}

type CreateCmd struct {
	ActorID uuid.UUID
	Content string
	Image   string
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Tweet, error) {
	content, err := cleanContent(cmd.Content)
	if err != nil {
		return nil, err
	}
	ok, err := s.repo.UserExists(ctx, cmd.ActorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound("user profile not found")
	}
	now := s.clock.Now().UTC()
	t := &domain.Tweet{
		ID:        uuid.New(),
		OwnerID:   cmd.ActorID,
		Content:   content,
		Image:     strings.TrimSpace(cmd.Image),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID, viewer uuid.NullUUID) (*domain.TweetView, error) {
	v, err := s.repo.GetView(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	if !viewer.Valid {
		v.IsLiked = false
	}
	return v, nil
}

func (s *Service) ListByUser(ctx context.Context, ownerID uuid.UUID, viewer uuid.NullUUID, req domain.PageRequest) (domain.Page[domain.TweetView], error) {
	if err := req.RequireSort(domain.TweetSortFields...); err != nil {
		return domain.Page[domain.TweetView]{}, err
	}
	ok, err := s.repo.UserExists(ctx, ownerID)
	if err != nil {
		return domain.Page[domain.TweetView]{}, err
	}
	if !ok {
		return domain.Page[domain.TweetView]{}, domain.ErrNotFound("user not found")
	}
	items, total, err := s.repo.ListByOwner(ctx, ownerID, viewer, req)
	if err != nil {
		return domain.Page[domain.TweetView]{}, err
	}
	if !viewer.Valid {
		for i := range items {
			items[i].IsLiked = false
		}
	}
	return domain.NewPage(items, req, total), nil
}

func (s *Service) Update(ctx context.Context, actorID, tweetID uuid.UUID, content string) (*domain.Tweet, error) {
	content, err := cleanContent(content)
	if err != nil {
		return nil, err
	}
	t, err := s.loadOwned(ctx, actorID, tweetID)
	if err != nil {
		return nil, err
	}
	t.Content = content
	t.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the image before the row, matching video deletion: a failed
// asset delete leaves the tweet in place for a retry.
func (s *Service) Delete(ctx context.Context, actorID, tweetID uuid.UUID) error {
	t, err := s.loadOwned(ctx, actorID, tweetID)
	if err != nil {
		return err
	}
	if t.Image != "" && s.assets != nil {
		if err := s.assets.DeleteAsset(ctx, t.Image); err != nil {
			return domain.ErrInternal("failed to delete tweet image", err)
		}
	}
	if err := s.repo.Delete(ctx, t.ID); err != nil {
		return err
	}
	s.audit.EntityDeleted(ctx, actorID, "tweet", t.ID)
	return nil
}

func (s *Service) loadOwned(ctx context.Context, actorID, tweetID uuid.UUID) (*domain.Tweet, error) {
	t, err := s.repo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManage(t.OwnerID, actorID) {
		return nil, domain.ErrUnauthorized("only the owner can modify this tweet")
	}
	return t, nil
}

func cleanContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", domain.ErrValidationMeta("invalid tweet", map[string]string{"content": "required"})
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "", domain.ErrValidationMeta("invalid tweet", map[string]string{"content": "too long"})
	}
	return content, nil
}
