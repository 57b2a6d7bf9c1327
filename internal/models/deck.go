package models

import "time"

// IntervalUnit is the calendar unit a deck schedules its cards in.
type IntervalUnit string

const (
	UnitHours  IntervalUnit = "hours"
	UnitDays   IntervalUnit = "days"
	UnitWeeks  IntervalUnit = "weeks"
	UnitMonths IntervalUnit = "months"
	UnitYears  IntervalUnit = "years"
)

// ParseIntervalUnit maps a string onto a known unit, falling back to days.
func ParseIntervalUnit(s string) IntervalUnit {
	switch IntervalUnit(s) {
	case UnitHours, UnitDays, UnitWeeks, UnitMonths, UnitYears:
		return IntervalUnit(s)
	}
	return UnitDays
}

type Deck struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	StartingInterval int          `json:"starting_interval"`
	IntervalUnit     IntervalUnit `json:"interval_unit"`
	QueueLimit       int          `json:"queue_limit"` // 0 means unlimited
	MaxNewCards      int          `json:"max_new_cards"`
	CreatedAt        string       `json:"created_at"`      // civil date, YYYY-MM-DD
	CreatedAtReal    time.Time    `json:"created_at_real"` // wall-clock, survives simulated time
}

// Settings extracts the scheduling knobs the core consumes.
func (d Deck) Settings() DeckSettings {
	return DeckSettings{
		StartingInterval: d.StartingInterval,
		IntervalUnit:     d.IntervalUnit,
		QueueLimit:       d.QueueLimit,
		MaxNewCards:      d.MaxNewCards,
	}.Sanitized()
}

// DeckSettings groups the per-deck scheduling configuration.
type DeckSettings struct {
	StartingInterval int          `json:"starting_interval"`
	IntervalUnit     IntervalUnit `json:"interval_unit"`
	QueueLimit       int          `json:"queue_limit"`
	MaxNewCards      int          `json:"max_new_cards"`
}

// Sanitized substitutes defaults for invalid values so the scheduling core
// never sees a bad configuration: non-positive QueueLimit means unlimited,
// MaxNewCards defaults to 1, StartingInterval to 2, unknown units to days.
func (s DeckSettings) Sanitized() DeckSettings {
	if s.StartingInterval <= 0 {
		s.StartingInterval = 2
	}
	if s.QueueLimit < 0 {
		s.QueueLimit = 0
	}
	if s.MaxNewCards <= 0 {
		s.MaxNewCards = 1
	}
	s.IntervalUnit = ParseIntervalUnit(string(s.IntervalUnit))
	return s
}
