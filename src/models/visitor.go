package models

import (
	"time"
	"visitrack/src/types"
)

type Visitor struct {
	ID      string `gorm:"primaryKey;size:24" json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `gorm:"index" json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`

	EventID        string     `gorm:"size:24;index" json:"event_id,omitempty"`
	EventName      string     `json:"event_name,omitempty"`
	EventLocation  string     `json:"event_location,omitempty"`
	EventStartDate *time.Time `json:"event_start_date,omitempty"`
	EventEndDate   *time.Time `json:"event_end_date,omitempty"`

	Status       types.VisitorStatus `gorm:"default:'registered'" json:"status,omitempty"`
	CheckInTime  *time.Time          `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time          `json:"check_out_time,omitempty"`

	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`

	types.Timestamps
}

// Info returns the denormalized slice of the visitor used in check-in results.
func (v *Visitor) Info() types.VisitorInfo {
	return types.VisitorInfo{
		ID:        v.ID,
		Name:      v.Name,
		Company:   v.Company,
		EventID:   v.EventID,
		EventName: v.EventName,
		Status:    v.Status,
	}
}
