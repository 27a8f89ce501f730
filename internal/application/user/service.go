package user

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/vidshare/internal/audit"
	"github.com/baechuer/vidshare/internal/domain"
)

var usernameRe = regexp.MustCompile(`^[a-z0-9_.]{3,30}$`)

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

type RegisterCmd struct {
	ActorID    uuid.UUID
	Username   string
	Email      string
	Fullname   string
	Avatar     string
	CoverImage string
}

// Register creates the profile for an identity issued by the auth provider.
func (s *Service) Register(ctx context.Context, cmd RegisterCmd) (*domain.User, error) {
	username := strings.ToLower(strings.TrimSpace(cmd.Username))
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	fullname := strings.TrimSpace(cmd.Fullname)

	meta := map[string]string{}
	if !usernameRe.MatchString(username) {
		meta["username"] = "3-30 chars of a-z, 0-9, '_' or '.'"
	}
	if email == "" || !strings.Contains(email, "@") {
		meta["email"] = "must be a valid email"
	}
	if fullname == "" {
		meta["fullname"] = "required"
	}
	if len(meta) > 0 {
		return nil, domain.ErrValidationMeta("invalid profile", meta)
	}

	now := s.clock.Now().UTC()
	u := &domain.User{
		ID:           cmd.ActorID,
		Username:     username,
		Email:        email,
		Fullname:     fullname,
		Avatar:       strings.TrimSpace(cmd.Avatar),
		CoverImage:   strings.TrimSpace(cmd.CoverImage),
		WatchHistory: []uuid.UUID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.audit.ProfileRegistered(ctx, u.ID, u.Username)
	return u, nil
}

func (s *Service) Me(ctx context.Context, actorID uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, actorID)
}

type UpdateCmd struct {
	ActorID    uuid.UUID
	Fullname   *string
	Email      *string
	Avatar     *string
	CoverImage *string
}

// UpdateAccount changes profile fields. Replaced media is deleted best-effort once
// the new reference is stored.
func (s *Service) UpdateAccount(ctx context.Context, cmd UpdateCmd) (*domain.User, error) {
	if cmd.Fullname == nil && cmd.Email == nil && cmd.Avatar == nil && cmd.CoverImage == nil {
		return nil, domain.ErrValidation("nothing to update")
	}
	u, err := s.repo.GetByID(ctx, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	if cmd.Fullname != nil {
		f := strings.TrimSpace(*cmd.Fullname)
		if f == "" {
			return nil, domain.ErrValidationMeta("invalid profile", map[string]string{"fullname": "must not be empty"})
		}
		u.Fullname = f
	}
	if cmd.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*cmd.Email))
		if !strings.Contains(e, "@") {
			return nil, domain.ErrValidationMeta("invalid profile", map[string]string{"email": "must be a valid email"})
		}
		u.Email = e
	}
	var replaced []string
	if cmd.Avatar != nil {
		if a := strings.TrimSpace(*cmd.Avatar); a != u.Avatar {
			replaced = append(replaced, u.Avatar)
			u.Avatar = a
		}
	}
	if cmd.CoverImage != nil {
		if c := strings.TrimSpace(*cmd.CoverImage); c != u.CoverImage {
			replaced = append(replaced, u.CoverImage)
			u.CoverImage = c
		}
	}

	u.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	if s.assets != nil {
		for _, ref := range replaced {
			if ref == "" {
				continue
			}
			if err := s.assets.DeleteAsset(ctx, ref); err != nil {
				zlog.Warn().Err(err).Str("user_id", u.ID.String()).Msg("delete replaced profile media failed")
			}
		}
	}
	return u, nil
}

func (s *Service) ChannelProfile(ctx context.Context, username string, viewer uuid.NullUUID) (*domain.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, domain.ErrValidationMeta("invalid path param", map[string]string{"username": "required"})
	}
	p, err := s.repo.ChannelProfile(ctx, username, viewer)
	if err != nil {
		return nil, err
	}
	if !viewer.Valid {
		p.IsSubscribed = false
	}
	// email is only shown to the channel owner
	if !domain.IsViewer(viewer, p.ID) {
		p.Email = ""
	}
	return p, nil
}
