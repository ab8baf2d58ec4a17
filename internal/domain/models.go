package domain

import "time"

// Enumerations
const (
	StatusActive   WorkerStatus = "ACTIVE"
	StatusInactive WorkerStatus = "INACTIVE"

	AttendanceFullDay AttendanceKind = "FULL_DAY"
	AttendanceHalfDay AttendanceKind = "HALF_DAY"
	AttendanceAbsent  AttendanceKind = "ABSENT"
	AttendanceCustom  AttendanceKind = "CUSTOM"

	PaymentAdvance PaymentKind = "ADVANCE"
	PaymentSalary  PaymentKind = "SALARY"
	PaymentBonus   PaymentKind = "BONUS"
	PaymentOther   PaymentKind = "OTHER"
)

type WorkerStatus string
type AttendanceKind string
type PaymentKind string

func (s WorkerStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

func (k AttendanceKind) Valid() bool {
	switch k {
	case AttendanceFullDay, AttendanceHalfDay, AttendanceAbsent, AttendanceCustom:
		return true
	}
	return false
}

func (k PaymentKind) Valid() bool {
	switch k {
	case PaymentAdvance, PaymentSalary, PaymentBonus, PaymentOther:
		return true
	}
	return false
}

type Worker struct {
	ID            int64
	FullName      string
	Phone         string
	Role          string
	DefaultSiteID *int64
	// DailyWage is the canonical pay-per-full-day figure in whole rupees.
	// MonthlySalary is the legacy column kept only for the wagemigrate tool.
	DailyWage     int64
	MonthlySalary *int64
	JoiningDate   time.Time
	Status        WorkerStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Site struct {
	ID          int64
	Name        string
	Address     string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Attendance is one entry per (worker, calendar day). Date is truncated to
// midnight; the natural key (worker_id, att_date) is unique in the store.
type Attendance struct {
	ID         int64
	WorkerID   int64
	WorkerName string
	SiteID     *int64
	SiteName   *string
	Date       time.Time
	Kind       AttendanceKind
	CheckIn    *time.Time
	CheckOut   *time.Time
	TotalHours *float64
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Payment struct {
	ID         int64
	WorkerID   int64
	WorkerName string
	Date       time.Time
	Amount     int64
	Kind       PaymentKind
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AttendanceKindCount is a store-side group-by row: occurrences of one
// attendance kind for one worker within a date range, plus summed custom hours.
type AttendanceKindCount struct {
	WorkerID   int64
	Kind       AttendanceKind
	Count      int64
	TotalHours float64
}

// PaymentKindSum is a store-side group-by row: total paid per payment kind
// within a date range.
type PaymentKindSum struct {
	Kind  PaymentKind
	Total int64
}

// PaymentWorkerTotal aggregates one worker's payments within a date range.
type PaymentWorkerTotal struct {
	WorkerID        int64
	TotalPaid       int64
	LastPaymentDate *time.Time
}
