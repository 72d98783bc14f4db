// Package docs maps the fixed set of site documents onto the key-value
// store. Every document is stored as one whole-value JSON blob; mutations
// load the document, change it in memory, and rewrite it completely.
package docs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"homepage/internal/models"
	"homepage/internal/store"
)

// Keys names the storage key of each document. Passed at construction so
// tests can run against isolated stores without ambient globals.
type Keys struct {
	Credentials   string
	Profile       string
	Announcement  string
	Portals       string
	RedeemCodes   string
	VipUsers      string
	VerifiedUsers string
}

func DefaultKeys() Keys {
	return Keys{
		Credentials:   "admin_credentials",
		Profile:       "profile",
		Announcement:  "announcement",
		Portals:       "portals",
		RedeemCodes:   "redeem_codes",
		VipUsers:      "vip_users",
		VerifiedUsers: "verified_users",
	}
}

// Registry provides typed access to the documents. Writes to a given
// document are serialized with an in-process mutex per key, so concurrent
// read-modify-write cycles within one process cannot clobber each other.
// Concurrent writers in separate processes can still race; the KV contract
// has no compare-and-swap.
type Registry struct {
	kv    store.KV
	keys  Keys
	locks map[string]*sync.Mutex
}

func NewRegistry(kv store.KV, keys Keys) *Registry {
	locks := make(map[string]*sync.Mutex)
	for _, key := range []string{
		keys.Credentials, keys.Profile, keys.Announcement, keys.Portals,
		keys.RedeemCodes, keys.VipUsers, keys.VerifiedUsers,
	} {
		locks[key] = &sync.Mutex{}
	}
	return &Registry{kv: kv, keys: keys, locks: locks}
}

func (r *Registry) Ping(ctx context.Context) error {
	return r.kv.Ping(ctx)
}

func load[T any](ctx context.Context, r *Registry, key string) (T, error) {
	var doc T
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		return doc, err
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return doc, fmt.Errorf("decoding document %q: %w", key, err)
	}
	return doc, nil
}

func save[T any](ctx context.Context, r *Registry, key string, doc T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document %q: %w", key, err)
	}
	if err := r.kv.Put(ctx, key, string(raw)); err != nil {
		return err
	}
	return nil
}

// update runs one locked read-modify-write cycle against a list document.
func update[T any](ctx context.Context, r *Registry, key string, fn func([]T) ([]T, error)) error {
	mu := r.locks[key]
	mu.Lock()
	defer mu.Unlock()

	list, err := load[[]T](ctx, r, key)
	if err != nil {
		return err
	}
	list, err = fn(list)
	if err != nil {
		return err
	}
	return save(ctx, r, key, list)
}

func (r *Registry) Credentials(ctx context.Context) (models.AdminCredentials, error) {
	return load[models.AdminCredentials](ctx, r, r.keys.Credentials)
}

func (r *Registry) SaveCredentials(ctx context.Context, creds models.AdminCredentials) error {
	mu := r.locks[r.keys.Credentials]
	mu.Lock()
	defer mu.Unlock()
	return save(ctx, r, r.keys.Credentials, creds)
}

func (r *Registry) Profile(ctx context.Context) (models.Profile, error) {
	return load[models.Profile](ctx, r, r.keys.Profile)
}

func (r *Registry) SaveProfile(ctx context.Context, profile models.Profile) error {
	mu := r.locks[r.keys.Profile]
	mu.Lock()
	defer mu.Unlock()
	return save(ctx, r, r.keys.Profile, profile)
}

func (r *Registry) Announcement(ctx context.Context) (models.Announcement, error) {
	return load[models.Announcement](ctx, r, r.keys.Announcement)
}

func (r *Registry) SaveAnnouncement(ctx context.Context, announcement models.Announcement) error {
	mu := r.locks[r.keys.Announcement]
	mu.Lock()
	defer mu.Unlock()
	return save(ctx, r, r.keys.Announcement, announcement)
}

func (r *Registry) Portals(ctx context.Context) ([]models.Portal, error) {
	return load[[]models.Portal](ctx, r, r.keys.Portals)
}

func (r *Registry) SavePortals(ctx context.Context, portals []models.Portal) error {
	mu := r.locks[r.keys.Portals]
	mu.Lock()
	defer mu.Unlock()
	return save(ctx, r, r.keys.Portals, portals)
}

func (r *Registry) RedeemCodes(ctx context.Context) ([]models.RedeemCode, error) {
	return load[[]models.RedeemCode](ctx, r, r.keys.RedeemCodes)
}

func (r *Registry) UpdateRedeemCodes(ctx context.Context, fn func([]models.RedeemCode) ([]models.RedeemCode, error)) error {
	return update(ctx, r, r.keys.RedeemCodes, fn)
}

func (r *Registry) VipUsers(ctx context.Context) ([]models.VipUser, error) {
	return load[[]models.VipUser](ctx, r, r.keys.VipUsers)
}

func (r *Registry) UpdateVipUsers(ctx context.Context, fn func([]models.VipUser) ([]models.VipUser, error)) error {
	return update(ctx, r, r.keys.VipUsers, fn)
}

func (r *Registry) VerifiedUsers(ctx context.Context) ([]models.VerifiedUser, error) {
	return load[[]models.VerifiedUser](ctx, r, r.keys.VerifiedUsers)
}

func (r *Registry) UpdateVerifiedUsers(ctx context.Context, fn func([]models.VerifiedUser) ([]models.VerifiedUser, error)) error {
	return update(ctx, r, r.keys.VerifiedUsers, fn)
}
