package models

import (
	"time"
	"visitrack/src/types"
)

// Event is reference data only. Visitors denormalize from it at registration;
// there are no event CRUD endpoints in this service.
type Event struct {
	ID        string            `gorm:"primaryKey;size:24" json:"id"`
	Name      string            `json:"name,omitempty"`
	Location  string            `json:"location,omitempty"`
	StartDate *time.Time        `json:"start_date,omitempty"`
	EndDate   *time.Time        `json:"end_date,omitempty"`
	Status    types.EventStatus `gorm:"default:'upcoming'" json:"status,omitempty"`

	Visitors []Visitor `json:"visitors,omitempty"`

	types.Timestamps
}
