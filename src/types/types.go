package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type VisitorStatus string
type ScanStatus string
type EntryType string
type EventStatus string

const (
	VISITOR_REGISTERED VisitorStatus = "registered"
	// VISITOR_VISITED is the canonical terminal status written by the check-in flow.
	// VISITOR_CHECKED_IN is a legacy alias that is honored on read but never written.
	VISITOR_VISITED     VisitorStatus = "Visited"
	VISITOR_CHECKED_IN  VisitorStatus = "checked_in"
	VISITOR_CHECKED_OUT VisitorStatus = "checked_out"
	VISITOR_CANCELLED   VisitorStatus = "cancelled"
)

const (
	SCAN_VISITED ScanStatus = "Visited"
	SCAN_FAILED  ScanStatus = "failed"
)

const (
	ENTRY_QR     EntryType = "QR"
	ENTRY_MANUAL EntryType = "Manual"
)

const (
	EVENT_UPCOMING  EventStatus = "upcoming"
	EVENT_ONGOING   EventStatus = "ongoing"
	EVENT_COMPLETED EventStatus = "completed"
)

// IsArrived reports whether a visitor status counts as "already arrived"
// for the dedup double-check.
func (s VisitorStatus) IsArrived() bool {
	return s == VISITOR_VISITED || s == VISITOR_CHECKED_IN
}

type SimpleRequestParams struct {
	ID string `uri:"id" binding:"required,hexid24"`
}

type ScanURIParams struct {
	VisitorID string `uri:"visitorId" binding:"required,hexid24"`
}

type CreateVisitorRequestBody struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	EventID string `json:"eventId" binding:"required,hexid24"`
}

type CreateScanRequestBody struct {
	VisitorID  string  `json:"visitorId" binding:"required,hexid24"`
	EventID    string  `json:"eventId,omitempty" binding:"omitempty,hexid24"`
	Name       string  `json:"name,omitempty"`
	Company    string  `json:"company,omitempty"`
	EventName  string  `json:"eventName,omitempty"`
	ScanTime   *string `json:"scanTime,omitempty"`
	EntryType  string  `json:"entryType,omitempty" binding:"omitempty,oneof=QR Manual"`
	DeviceInfo *string `json:"deviceInfo,omitempty"`
}

type VisitorCheckInRequestBody struct {
	Status      string `json:"status" binding:"required,oneof=Visited"`
	CheckInTime string `json:"checkInTime" binding:"required"`
}

type MarkScanFailedRequestBody struct {
	Status string `json:"status" binding:"required,oneof=failed"`
	Error  string `json:"error" binding:"required"`
}

type CheckInRequestBody struct {
	Code      string `json:"code" binding:"required"`
	EntryType string `json:"entryType,omitempty" binding:"omitempty,oneof=QR Manual"`
}

// VisitorInfo is the denormalized slice of a visitor carried on check-in results.
type VisitorInfo struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Company   string        `json:"company,omitempty"`
	EventID   string        `json:"eventId,omitempty"`
	EventName string        `json:"eventName,omitempty"`
	Status    VisitorStatus `json:"status,omitempty"`
}

type CheckInResult struct {
	AlreadyCheckedIn bool        `json:"alreadyCheckedIn"`
	Visitor          VisitorInfo `json:"visitor"`
	ScanTime         time.Time   `json:"scanTime"`
	EntryType        EntryType   `json:"entryType,omitempty"`
}
