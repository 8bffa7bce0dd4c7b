package duty

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Session is one trip sheet. End readings and derived figures are nil until
// the session is closed.
type Session struct {
	ID            string
	DriverID      string
	VehicleID     string
	BranchID      string
	Status        Status
	StartOdometer decimal.Decimal
	EndOdometer   *decimal.Decimal
	StartFuel     decimal.Decimal
	EndFuel       *decimal.Decimal
	Distance      *decimal.Decimal
	FuelConsumed  *decimal.Decimal
	StartTime     time.Time
	EndTime       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Closing carries the readings applied when a session is completed.
type Closing struct {
	EndOdometer  decimal.Decimal
	EndFuel      decimal.Decimal
	Distance     decimal.Decimal
	FuelConsumed decimal.Decimal
	EndTime      time.Time
}

// Close validates the end readings against the session and derives distance
// and fuel consumed.
func (s Session) Close(endOdometer, endFuel decimal.Decimal, at time.Time) (Closing, error) {
	if s.Status == StatusCompleted {
		return Closing{}, ErrSessionAlreadyCompleted
	}
	if endOdometer.LessThan(s.StartOdometer) {
		return Closing{}, ErrNegativeDistance
	}
	if at.Before(s.StartTime) {
		return Closing{}, ErrEndBeforeStart
	}
	return Closing{
		EndOdometer:  endOdometer,
		EndFuel:      endFuel,
		Distance:     endOdometer.Sub(s.StartOdometer),
		FuelConsumed: endFuel.Sub(s.StartFuel),
		EndTime:      at,
	}, nil
}

// Apply returns a copy of s completed with c.
func (s Session) Apply(c Closing) Session {
	s.Status = StatusCompleted
	s.EndOdometer = &c.EndOdometer
	s.EndFuel = &c.EndFuel
	s.Distance = &c.Distance
	s.FuelConsumed = &c.FuelConsumed
	s.EndTime = &c.EndTime
	s.UpdatedAt = c.EndTime
	return s
}
