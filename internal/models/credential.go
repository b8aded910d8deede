package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProviderCredential holds the JSON-serialized provider configuration,
// one row per provider, keyed by the namespaced provider name.
type ProviderCredential struct {
	Provider  string         `gorm:"primaryKey" json:"provider"`
	Config    datatypes.JSON `gorm:"not null" json:"config"`
	UpdatedAt time.Time      `json:"updated_at"`
}
