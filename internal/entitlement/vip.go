package entitlement

import (
	"context"
	"time"

	"homepage/internal/models"
)

// VipStatus is the read-time evaluation of an email's VIP standing.
type VipStatus struct {
	IsVip      bool
	Expired    bool
	Level      string
	ExpiryDate time.Time
}

// CheckVip evaluates VIP standing at read time. Expired records are reported
// as not-VIP with the expired flag set but are left in the store.
func (s *Service) CheckVip(ctx context.Context, email string) (VipStatus, error) {
	users, err := s.registry.VipUsers(ctx)
	if err != nil {
		return VipStatus{}, err
	}

	for _, u := range users {
		if u.Email != email {
			continue
		}
		if time.Now().UTC().After(u.ExpiryDate) {
			return VipStatus{IsVip: false, Expired: true}, nil
		}
		return VipStatus{IsVip: true, Level: u.Level, ExpiryDate: u.ExpiryDate}, nil
	}

	return VipStatus{IsVip: false}, nil
}

// GrantVip upserts a VIP record keyed by email. The expiry is always
// recomputed as now + days; granting again replaces the previous record
// rather than extending it.
func (s *Service) GrantVip(ctx context.Context, email, level string, days int) (models.VipUser, error) {
	now := time.Now().UTC()
	granted := models.VipUser{
		Email:      email,
		Level:      level,
		ExpiryDate: now.AddDate(0, 0, days),
		CreatedAt:  now,
	}

	err := s.registry.UpdateVipUsers(ctx, func(users []models.VipUser) ([]models.VipUser, error) {
		for i := range users {
			if users[i].Email == email {
				users[i] = granted
				return users, nil
			}
		}
		return append(users, granted), nil
	})
	if err != nil {
		return models.VipUser{}, err
	}

	return granted, nil
}

func (s *Service) RevokeVip(ctx context.Context, email string) error {
	return s.registry.UpdateVipUsers(ctx, func(users []models.VipUser) ([]models.VipUser, error) {
		for i, u := range users {
			if u.Email == email {
				return append(users[:i], users[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

func (s *Service) ListVipUsers(ctx context.Context) ([]models.VipUser, error) {
	return s.registry.VipUsers(ctx)
}
