package services

import (
	"context"

	"github.com/stackltd/API-for-onlinestore/internal/model"
)

type ProfileService struct {
	Profiles ProfileStore
}

func NewProfileService(p ProfileStore) *ProfileService {
	return &ProfileService{Profiles: p}
}

func (s *ProfileService) Get(ctx context.Context, userID int64) (*model.Profile, error) {
	return s.Profiles.GetOrCreate(ctx, userID)
}

// Update applies the patch to the user's profile; absent fields are kept.
func (s *ProfileService) Update(ctx context.Context, userID int64, patch model.ProfilePatch) (*model.Profile, error) {
	p, err := s.Profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)
	if err := s.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
