package entitlement

import (
	"context"
	"time"

	"homepage/internal/models"
)

// AddVerified creates a verified-user record. Unlike VIP grants there is no
// upsert: an existing record for the email fails with ErrDuplicate.
func (s *Service) AddVerified(ctx context.Context, email, name string) (models.VerifiedUser, error) {
	added := models.VerifiedUser{
		Email:      email,
		Name:       name,
		VerifiedAt: time.Now().UTC(),
	}

	err := s.registry.UpdateVerifiedUsers(ctx, func(users []models.VerifiedUser) ([]models.VerifiedUser, error) {
		for _, u := range users {
			if u.Email == email {
				return nil, ErrDuplicate
			}
		}
		return append(users, added), nil
	})
	if err != nil {
		return models.VerifiedUser{}, err
	}

	return added, nil
}

func (s *Service) RemoveVerified(ctx context.Context, email string) error {
	return s.registry.UpdateVerifiedUsers(ctx, func(users []models.VerifiedUser) ([]models.VerifiedUser, error) {
		for i, u := range users {
			if u.Email == email {
				return append(users[:i], users[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

func (s *Service) IsVerified(ctx context.Context, email string) (bool, error) {
	users, err := s.registry.VerifiedUsers(ctx)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) ListVerifiedUsers(ctx context.Context) ([]models.VerifiedUser, error) {
	return s.registry.VerifiedUsers(ctx)
}
