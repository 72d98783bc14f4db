package docs

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"homepage/internal/models"
	"homepage/internal/store"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	registry := NewRegistry(store.NewMemoryStore(), DefaultKeys())
	if err := registry.EnsureInitialized(context.Background(), DefaultContent("admin", "secret123")); err != nil {
		t.Fatalf("EnsureInitialized() error = %v", err)
	}
	return registry
}

func TestEnsureInitializedSeedsAllDocuments(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	creds, err := registry.Credentials(ctx)
	if err != nil {
		t.Fatalf("Credentials() error = %v", err)
	}
	if creds.Username != "admin" || creds.Password != "secret123" {
		t.Fatalf("credentials = %+v, want configured defaults", creds)
	}

	if _, err := registry.Profile(ctx); err != nil {
		t.Fatalf("Profile() error = %v", err)
	}

	announcement, err := registry.Announcement(ctx)
	if err != nil {
		t.Fatalf("Announcement() error = %v", err)
	}
	if announcement.UpdatedAt.IsZero() {
		t.Fatalf("announcement updatedAt not set: %+v", announcement)
	}

	portals, err := registry.Portals(ctx)
	if err != nil {
		t.Fatalf("Portals() error = %v", err)
	}
	if len(portals) != 2 {
		t.Fatalf("len(portals) = %d, want 2 example entries", len(portals))
	}

	codes, err := registry.RedeemCodes(ctx)
	if err != nil {
		t.Fatalf("RedeemCodes() error = %v", err)
	}
	if len(codes) != 0 {
		t.Fatalf("len(codes) = %d, want empty collection", len(codes))
	}
}

func TestEnsureInitializedIsIdempotent(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	if err := registry.SaveProfile(ctx, models.Profile{Name: "Alice"}); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	// A second call must not reseed over existing content.
	if err := registry.EnsureInitialized(ctx, DefaultContent("admin", "other-password")); err != nil {
		t.Fatalf("second EnsureInitialized() error = %v", err)
	}

	profile, err := registry.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if profile.Name != "Alice" {
		t.Fatalf("profile.Name = %q, want %q", profile.Name, "Alice")
	}

	creds, err := registry.Credentials(ctx)
	if err != nil {
		t.Fatalf("Credentials() error = %v", err)
	}
	if creds.Password != "secret123" {
		t.Fatalf("password = %q, want original seed kept", creds.Password)
	}
}

func TestConcurrentUpdatesDoNotClobber(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := registry.UpdateVipUsers(ctx, func(users []models.VipUser) ([]models.VipUser, error) {
				return append(users, models.VipUser{Email: fmt.Sprintf("user%d@example.com", i)}), nil
			})
			if err != nil {
				t.Errorf("UpdateVipUsers() error = %v", err)
			}
		}(i)
	}
	wg.Wait()

	users, err := registry.VipUsers(ctx)
	if err != nil {
		t.Fatalf("VipUsers() error = %v", err)
	}
	if len(users) != writers {
		t.Fatalf("len(users) = %d, want %d (no lost updates)", len(users), writers)
	}
}
