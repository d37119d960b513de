package models

import (
	"time"
	"visitrack/src/types"
)

// QRScan is one check-in attempt. The unique index on VisitorID is what makes
// concurrent scans of the same code collapse to a single successful record.
type QRScan struct {
	ID uint `gorm:"primarykey" json:"id"`

	VisitorID string `gorm:"uniqueIndex;size:24" json:"visitor_id"`
	EventID   string `gorm:"size:24;index" json:"event_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Company   string `json:"company,omitempty"`
	EventName string `json:"event_name,omitempty"`

	ScanTime   time.Time        `json:"scan_time"`
	EntryType  types.EntryType  `gorm:"default:'QR'" json:"entry_type,omitempty"`
	Status     types.ScanStatus `gorm:"default:'Visited'" json:"status,omitempty"`
	Error      *string          `json:"error,omitempty"`
	DeviceInfo *string          `json:"device_info,omitempty"`

	types.Timestamps
}

// Info returns the denormalized visitor slice stored on the scan record.
func (s *QRScan) Info() types.VisitorInfo {
	return types.VisitorInfo{
		ID:        s.VisitorID,
		Name:      s.Name,
		Company:   s.Company,
		EventID:   s.EventID,
		EventName: s.EventName,
		Status:    types.VISITOR_VISITED,
	}
}
