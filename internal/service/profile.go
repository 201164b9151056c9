package service

import (
	"context"
	"strings"

	"github.com/tazhibayda/threads-service/internal/apperr"
	"github.com/tazhibayda/threads-service/internal/domain"
	"github.com/tazhibayda/threads-service/internal/log"
	"github.com/tazhibayda/threads-service/internal/queue"
	"go.uber.org/zap"
)

// ProfileEditPath is the only page path whose cached rendering a profile save
// invalidates.
const ProfileEditPath = "profile/edit"

const opSaveProfile = "failed to save profile"

type ProfileInput struct {
	ExternalID string
	Username   string
	Name       string
	Bio        string
	Image      string
	Path       string // page the save came from
	RequestID  string
}

type ProfileService struct {
	users    UserStore
	cache    Invalidator
	events   queue.Publisher
	exchange string
}

func NewProfileService(users UserStore, cache Invalidator, events queue.Publisher, exchange string) *ProfileService {
	if events == nil {
		events = queue.NewNoop()
	}
	return &ProfileService{users: users, cache: cache, events: events, exchange: exchange}
}

// SaveProfile upserts the user keyed by in.ExternalID and marks it onboarded.
func (s *ProfileService) SaveProfile(ctx context.Context, in ProfileInput) error {
	externalID := strings.TrimSpace(in.ExternalID)
	if externalID == "" {
		return apperr.Invalid(opSaveProfile, "external id is required")
	}
	p := domain.Profile{
		ExternalID: externalID,
		Username:   strings.ToLower(in.Username),
		Name:       in.Name,
		Bio:        in.Bio,
		Image:      in.Image,
	}

	created, err := s.users.UpsertProfile(ctx, p)
	if err != nil {
		return apperr.Wrap(opSaveProfile, err)
	}
	logger := log.FromContext(ctx, zap.String("external_id", externalID))

	if in.Path == ProfileEditPath && s.cache != nil {
		if err := s.cache.Invalidate(ctx, in.Path); err != nil {
			logger.Warn("render cache invalidation failed", zap.String("path", in.Path), zap.Error(err))
		}
	}

	ev := queue.ProfileSaved{ExternalID: externalID, Username: p.Username, Name: p.Name, Created: created}
	if err := s.events.Publish(ctx, s.exchange, queue.KeyProfileSaved, ev, in.RequestID); err != nil {
		logger.Warn("publish profile.saved failed", zap.Error(err))
	}

	logger.Info("profile saved", zap.Bool("created", created))
	return nil
}
