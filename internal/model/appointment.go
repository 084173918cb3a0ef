// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"
	"time"
)

// VisitStatus classifies the outcome of a scheduled visit.
type VisitStatus string

// Visit status constants.
const (
	StatusScheduled VisitStatus = "SCHEDULED"
	StatusCompleted VisitStatus = "COMPLETED"
	StatusCancelled VisitStatus = "CANCELLED"
	StatusNoShow    VisitStatus = "NO_SHOW"
	StatusOther     VisitStatus = "OTHER"
)

// ParseVisitStatus folds a raw schedule status string into a VisitStatus.
// Unknown values map to StatusOther; the raw string is retained on the
// record for display.
func ParseVisitStatus(raw string) VisitStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "seen", "completed", "complete", "checked out":
		return StatusCompleted
	case "scheduled", "pending", "confirmed":
		return StatusScheduled
	case "canceled", "cancelled":
		return StatusCancelled
	case "no show", "no-show", "noshow", "missed":
		return StatusNoShow
	default:
		return StatusOther
	}
}

// AppointmentRecord represents a single row of the appointment schedule.
// Records are immutable once parsed; Extras carries source columns the
// pipeline does not interpret.
type AppointmentRecord struct {
	Time            time.Time
	RawTime         string
	RawPatientName  string
	RawProviderName string
	Status          VisitStatus
	RawStatus       string
	Extras          map[string]string
}
