package brand

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"brandTracker/internal/models/stamp"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusArchived Status = "archived"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusArchived:
		return true
	default:
		return false
	}
}

// ID - идентификатор backend, приходящий JSON строкой или числом.
// Сравнивается всегда в строковом виде.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("идентификатор: %w", err)
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("идентификатор: %w", err)
		}
		*id = ID(n.String())
		return nil
	}
}

func (id ID) String() string {
	return string(id)
}

type Brand struct {
	MongoID     ID         `json:"_id,omitempty" yaml:"-"`
	ID          ID         `json:"id" yaml:"-"`
	Name        string     `json:"name" yaml:"name"`
	Company     string     `json:"company" yaml:"company"`
	Category    string     `json:"category,omitempty" yaml:"category,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Logo        string     `json:"logo,omitempty" yaml:"logo,omitempty"`
	Website     string     `json:"website,omitempty" yaml:"website,omitempty"`
	Status      Status     `json:"status,omitempty" yaml:"status,omitempty"`
	CreatedAt   stamp.Time `json:"createdAt,omitzero" yaml:"-"`
	CreatedBy   string     `json:"createdBy,omitempty" yaml:"-"`
	// Synthetic помечает бренды из каталога по умолчанию; они никогда не сохраняются.
	Synthetic bool `json:"synthetic,omitempty" yaml:"-"`
}

// Normalize копирует _id backend в ID.
func (b *Brand) Normalize() {
	if b.MongoID != "" {
		b.ID = b.MongoID
	}
}

// SameIdentity сообщает, совпадают ли название и компания без учёта регистра.
func (b Brand) SameIdentity(other Brand) bool {
	return strings.EqualFold(b.Name, other.Name) && strings.EqualFold(b.Company, other.Company)
}

// CreateBrandDto - тело POST /brands.
type CreateBrandDto struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Website     string `json:"website,omitempty"`
	Status      Status `json:"status,omitempty"`
}

// Update - частичное тело PUT /brands/{id}.
type Update struct {
	Name        *string `json:"name,omitempty"`
	Company     *string `json:"company,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Logo        *string `json:"logo,omitempty"`
	Website     *string `json:"website,omitempty"`
	Status      *Status `json:"status,omitempty"`
}

// Query - необязательные фильтры GET /brands.
type Query struct {
	Search  string
	Status  Status
	Company string
}

// SyntheticPrefix помечает идентификаторы брендов из каталога по умолчанию.
const SyntheticPrefix = "default-"

func IsSyntheticID(id ID) bool {
	return strings.HasPrefix(string(id), SyntheticPrefix)
}
