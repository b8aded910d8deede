package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	llmHandlers "tvbank-assistant-backend/internal/llm_handlers"
	"tvbank-assistant-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// keyPrefix namespaces credential rows, mirroring the original demo's
// "tvbank-ai-<provider>" browser-storage keys.
const keyPrefix = "tvbank-ai-"

// CredentialStore persists per-provider configuration. Writes overwrite the
// full record (last-write-wins); reads at call time, never cached.
type CredentialStore interface {
	Get(provider llmHandlers.Provider) (llmHandlers.ProviderConfig, bool, error)
	Put(provider llmHandlers.Provider, config llmHandlers.ProviderConfig) error
}

// GormCredentialStore keeps configs in the provider_credentials table with
// the config serialized as a JSON column.
type GormCredentialStore struct {
	db *gorm.DB
}

func NewGormCredentialStore(db *gorm.DB) *GormCredentialStore {
	return &GormCredentialStore{db: db}
}

func (s *GormCredentialStore) Get(provider llmHandlers.Provider) (llmHandlers.ProviderConfig, bool, error) {
	var row models.ProviderCredential
	err := s.db.First(&row, "provider = ?", keyPrefix+string(provider)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return llmHandlers.ProviderConfig{}, false, nil
	}
	if err != nil {
		return llmHandlers.ProviderConfig{}, false, fmt.Errorf("load credential: %w", err)
	}

	var config llmHandlers.ProviderConfig
	if err := json.Unmarshal(row.Config, &config); err != nil {
		return llmHandlers.ProviderConfig{}, false, fmt.Errorf("decode credential: %w", err)
	}
	return config, true, nil
}

func (s *GormCredentialStore) Put(provider llmHandlers.Provider, config llmHandlers.ProviderConfig) error {
	raw, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	row := models.ProviderCredential{
		Provider: keyPrefix + string(provider),
		Config:   raw,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}},
		UpdateAll: true,
	}).Create(&row).Error
}

// MemoryCredentialStore is a process-local store for tests and DB-less runs.
type MemoryCredentialStore struct {
	mu      sync.RWMutex
	configs map[llmHandlers.Provider]llmHandlers.ProviderConfig
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{configs: make(map[llmHandlers.Provider]llmHandlers.ProviderConfig)}
}

func (s *MemoryCredentialStore) Get(provider llmHandlers.Provider) (llmHandlers.ProviderConfig, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	config, ok := s.configs[provider]
	return config, ok, nil
}

func (s *MemoryCredentialStore) Put(provider llmHandlers.Provider, config llmHandlers.ProviderConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[provider] = config
	return nil
}
