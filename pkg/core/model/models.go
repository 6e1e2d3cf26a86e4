package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) IsValid() bool {
	return s == PaymentPending || s == PaymentPaid
}

type WorkerStatus string

const (
	WorkerActive   WorkerStatus = "active"
	WorkerInactive WorkerStatus = "inactive"
)

// IsActive treats an empty status as active; rosters imported from sheets often leave it blank
func (s WorkerStatus) IsActive() bool {
	return s == "" || strings.EqualFold(string(s), string(WorkerActive))
}

// PositionRequirement is a named role and the headcount an event needs for it
type PositionRequirement struct {
	Name        string `json:"name" validate:"required"`
	CountNeeded int    `json:"countNeeded" validate:"min=1"`
}

// Event is a single party/booking that needs staff.
// Date is "YYYY-MM-DD"; StartTime and EndTime are "HH:MM" in venue-local time.
type Event struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Date         string                `json:"date"`
	StartTime    string                `json:"startTime"`
	EndTime      string                `json:"endTime,omitempty"` // empty if unknown
	Venue        string                `json:"venue"`
	IsLakeGeneva bool                  `json:"isLakeGeneva"`
	IsHoliday    bool                  `json:"isHoliday"`
	Positions    []PositionRequirement `json:"positions"`
	SeriesID     string                `json:"seriesId,omitempty"` // empty unless created from a recurrence rule
	Notes        string                `json:"notes,omitempty"`
}

// HasEndTime reports whether the event's end time is known
func (e Event) HasEndTime() bool {
	return e.EndTime != ""
}

// Requirement returns the requirement for the named position (exact match)
func (e Event) Requirement(position string) (PositionRequirement, bool) {
	for _, p := range e.Positions {
		if p.Name == position {
			return p, true
		}
	}
	return PositionRequirement{}, false
}

// Worker represents a member of the staffing roster
type Worker struct {
	ID        string       `json:"id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone,omitempty"`
	Address   string       `json:"address,omitempty"`
	Skills    []string     `json:"skills"`
	Status    WorkerStatus `json:"status"`
}

// FullName returns "FirstName LastName", trimmed when a part is missing
func (w Worker) FullName() string {
	return strings.TrimSpace(w.FirstName + " " + w.LastName)
}

// Assignment binds one worker to one position at one event and carries
// the pay breakdown computed when it was made.
type Assignment struct {
	ID           string           `json:"id"`
	EventID      string           `json:"eventId"`
	WorkerID     string           `json:"workerId"`
	Position     string           `json:"position"`
	Hours        decimal.Decimal  `json:"hours"`
	Miles        *decimal.Decimal `json:"miles"` // nil when mileage is unset (lookup failed, not yet entered)
	IsLakeGeneva bool             `json:"isLakeGeneva"`
	IsHoliday    bool             `json:"isHoliday"`

	// Pay breakdown
	BasePay           decimal.Decimal `json:"basePay"`
	TravelPay         decimal.Decimal `json:"travelPay"`
	LakeGenevaBonus   decimal.Decimal `json:"lakeGenevaBonus"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	HolidayMultiplier decimal.Decimal `json:"holidayMultiplier"`
	TotalPay          decimal.Decimal `json:"totalPay"`

	// Payment tracking
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// IsPaid reports whether the assignment has been marked as paid
func (a Assignment) IsPaid() bool {
	return a.PaymentStatus == PaymentPaid
}
