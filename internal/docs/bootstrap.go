package docs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homepage/internal/models"
	"homepage/internal/store"
)

// Defaults holds the content seeded on first run.
type Defaults struct {
	Credentials  models.AdminCredentials
	Profile      models.Profile
	Announcement models.Announcement
	Portals      []models.Portal
}

// DefaultContent returns placeholder site content with the given admin
// credentials. Collection documents always start empty and are not part of
// the struct.
func DefaultContent(adminUsername, adminPassword string) Defaults {
	return Defaults{
		Credentials: models.AdminCredentials{
			Username: adminUsername,
			Password: adminPassword,
		},
		Profile: models.Profile{
			Name: "Your Name",
			Bio:  "A short introduction about yourself.",
		},
		Announcement: models.Announcement{
			Title:   "Welcome",
			Content: "This site is up and running.",
			Enabled: true,
		},
		Portals: []models.Portal{
			{
				ID:          uuid.NewString(),
				Name:        "GitHub",
				URL:         "https://github.com",
				Icon:        "github",
				Description: "Code and projects",
				Enabled:     true,
			},
			{
				ID:          uuid.NewString(),
				Name:        "Blog",
				URL:         "https://example.com/blog",
				Icon:        "pencil",
				Description: "Writing",
				Enabled:     true,
			},
		},
	}
}

// EnsureInitialized probes the credentials document and, when it is absent,
// seeds all seven documents in one pass. Runs once at process start; calling
// it again is a no-op read.
func (r *Registry) EnsureInitialized(ctx context.Context, defaults Defaults) error {
	_, err := r.kv.Get(ctx, r.keys.Credentials)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("probing credentials document: %w", err)
	}

	defaults.Announcement.UpdatedAt = time.Now().UTC()

	if err := r.SaveCredentials(ctx, defaults.Credentials); err != nil {
		return fmt.Errorf("seeding credentials: %w", err)
	}
	if err := r.SaveProfile(ctx, defaults.Profile); err != nil {
		return fmt.Errorf("seeding profile: %w", err)
	}
	if err := r.SaveAnnouncement(ctx, defaults.Announcement); err != nil {
		return fmt.Errorf("seeding announcement: %w", err)
	}
	if err := r.SavePortals(ctx, defaults.Portals); err != nil {
		return fmt.Errorf("seeding portals: %w", err)
	}
	if err := save(ctx, r, r.keys.RedeemCodes, []models.RedeemCode{}); err != nil {
		return fmt.Errorf("seeding redeem codes: %w", err)
	}
	if err := save(ctx, r, r.keys.VipUsers, []models.VipUser{}); err != nil {
		return fmt.Errorf("seeding vip users: %w", err)
	}
	if err := save(ctx, r, r.keys.VerifiedUsers, []models.VerifiedUser{}); err != nil {
		return fmt.Errorf("seeding verified users: %w", err)
	}

	return nil
}
