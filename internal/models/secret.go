package models

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
)

var (
	ErrSecretNotFound = errors.New("secret not found")
	ErrVendorMismatch = errors.New("secret belongs to another vendor")
)

// Secret is a stored cloud credential together with the resource inventory
// reachable through it.
type Secret struct {
	ID             string                      `json:"id"`
	Name           string                      `json:"name"`
	Vendor         enumor.Vendor               `json:"vendor"`
	CloudSecretID  string                      `json:"cloud_secret_id"`
	CloudSecretKey string                      `json:"cloud_secret_key,omitempty"`
	Resources      map[enumor.ResourceType]int `json:"resources,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
	LastSyncedAt   *time.Time                  `json:"last_synced_at,omitempty"`
}

// MaskedKey returns a masked form of the secret key for display.
func (s *Secret) MaskedKey() string {
	if s.CloudSecretKey == "" {
		return ""
	}
	return "••••••••"
}

// Public returns a copy safe to send to clients.
func (s *Secret) Public() Secret {
	out := *s
	out.CloudSecretKey = s.MaskedKey()
	if s.Resources != nil {
		out.Resources = make(map[enumor.ResourceType]int, len(s.Resources))
		for k, v := range s.Resources {
			out.Resources[k] = v
		}
	}
	return out
}

// SecretStore is an in-memory thread-safe store for secrets.
type SecretStore struct {
	mu      sync.RWMutex
	secrets map[string]*Secret
}

// NewSecretStore creates an empty secret store.
func NewSecretStore() *SecretStore {
	return &SecretStore{secrets: make(map[string]*Secret)}
}

// Create adds a new secret. A UUID is assigned unless the secret already
// carries an id.
func (s *SecretStore) Create(sec *Secret) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sec.ID == "" {
		sec.ID = uuid.New().String()
	}
	if sec.CreatedAt.IsZero() {
		sec.CreatedAt = time.Now()
	}
	s.secrets[sec.ID] = sec
}

// Get returns a secret by ID, or nil if not found.
func (s *SecretStore) Get(id string) *Secret {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secrets[id]
}

// GetForVendor returns the secret only when it belongs to vendor.
func (s *SecretStore) GetForVendor(id string, vendor enumor.Vendor) (*Secret, error) {
	sec := s.Get(id)
	if sec == nil {
		return nil, ErrSecretNotFound
	}
	if sec.Vendor != vendor {
		return nil, ErrVendorMismatch
	}
	return sec, nil
}

// List returns masked copies of the secrets of vendor, or of every secret
// when vendor is empty, oldest first.
func (s *SecretStore) List(vendor enumor.Vendor) []Secret {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Secret, 0, len(s.secrets))
	for _, sec := range s.secrets {
		if vendor != "" && sec.Vendor != vendor {
			continue
		}
		result = append(result, sec.Public())
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Delete removes a secret by ID.
func (s *SecretStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.secrets[id]; !ok {
		return false
	}
	delete(s.secrets, id)
	return true
}

// MarkSynced records a completed resource sync.
func (s *SecretStore) MarkSynced(id string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sec, ok := s.secrets[id]; ok {
		sec.LastSyncedAt = &at
	}
}
