package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rakaarfi/roster-system-be/internal/models"
	zlog "github.com/rs/zerolog/log"
)

type memoryDoc struct {
	raw          []byte
	revision     int64
	passwordHash string
}

// staffMemoryRepo keeps encoded documents so every read goes through the same
// decoding path as the SQL stores.
type staffMemoryRepo struct {
	mu   sync.RWMutex
	docs map[string]memoryDoc
}

func NewStaffMemoryRepository() StaffRepository {
	return &staffMemoryRepo{docs: map[string]memoryDoc{}}
}

// SeedRaw stores a document as-is, bypassing encoding. Used to load fixtures
// written by other clients.
func SeedRaw(repo StaffRepository, id, passwordHash string, raw []byte) error {
	m, ok := repo.(*staffMemoryRepo)
	if !ok {
		return fmt.Errorf("seeding raw documents is only supported by the memory store")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[strings.Clone(id)] = memoryDoc{raw: raw, passwordHash: passwordHash}
	return nil
}

func (r *staffMemoryRepo) CreateStaff(ctx context.Context, profile *models.StaffProfile, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[profile.ID]; exists {
		zlog.Warn().Str("staff_id", profile.ID).Msg("Staff id already taken")
		return fmt.Errorf("%w: id %s", ErrDuplicate, profile.ID)
	}
	for id, d := range r.docs {
		existing, err := DecodeStaffDocument(id, d.raw)
		if err == nil && strings.EqualFold(existing.Email, profile.Email) {
			zlog.Warn().Str("staff_id", profile.ID).Str("email", profile.Email).Msg("Staff email already taken")
			return fmt.Errorf("%w: email %s", ErrDuplicate, profile.Email)
		}
	}

	raw, err := EncodeStaffDocument(profile)
	if err != nil {
		return fmt.Errorf("error encoding staff %s: %w", profile.ID, err)
	}
	profile.Revision = 1
	r.docs[strings.Clone(profile.ID)] = memoryDoc{raw: raw, revision: 1, passwordHash: passwordHash}
	zlog.Info().Str("staff_id", profile.ID).Msg("Staff created successfully")
	return nil
}

func (r *staffMemoryRepo) load(id string) (*models.StaffProfile, memoryDoc, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, memoryDoc{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	p, err := DecodeStaffDocument(id, d.raw)
	if err != nil {
		return nil, memoryDoc{}, err
	}
	p.Revision = d.revision
	return p, d, nil
}

func (r *staffMemoryRepo) GetStaff(ctx context.Context, id string) (*models.StaffProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, _, err := r.load(id)
	return p, err
}

func (r *staffMemoryRepo) QueryStaffByRole(ctx context.Context, q StaffQuery, page, limit int) ([]models.StaffProfile, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.docs))
	for id := range r.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	matched := []models.StaffProfile{}
	for _, id := range ids {
		p, _, err := r.load(id)
		if err != nil {
			zlog.Warn().Err(err).Str("staff_id", id).Msg("Skipping unreadable staff document")
			continue
		}
		if matchesQuery(*p, q) {
			matched = append(matched, *p)
		}
	}

	total := len(matched)
	if limit <= 0 {
		return matched, total, nil
	}
	start := offsetFor(page, limit)
	if start >= total {
		return []models.StaffProfile{}, total, nil
	}
	end := min(start+limit, total)
	return matched[start:end], total, nil
}

func (r *staffMemoryRepo) UpdateStaff(ctx context.Context, id string, patch StaffPatch) (*models.StaffProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, d, err := r.load(id)
	if err != nil {
		return nil, err
	}
	if patch.empty() {
		return p, nil
	}
	if err := applyPatch(p, patch); err != nil {
		zlog.Warn().Err(err).Str("staff_id", id).Msg("Staff update rejected")
		return nil, err
	}
	raw, err := EncodeStaffDocument(p)
	if err != nil {
		return nil, fmt.Errorf("error encoding staff %s: %w", id, err)
	}
	r.docs[strings.Clone(id)] = memoryDoc{raw: raw, revision: p.Revision, passwordHash: d.passwordHash}
	zlog.Debug().Str("staff_id", id).Int64("revision", p.Revision).Msg("Staff updated")
	return p, nil
}

func (r *staffMemoryRepo) GetCredentials(ctx context.Context, id string) (*models.Credentials, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, d, err := r.load(id)
	if err != nil {
		return nil, err
	}
	return &models.Credentials{
		Principal:    models.Principal{UserID: p.ID, Name: p.Name, Role: p.Role, Email: p.Email},
		PasswordHash: d.passwordHash,
		Active:       p.Active,
	}, nil
}
