package models

// DeckStats summarizes a deck for the sidebar.
type DeckStats struct {
	Active    int  `json:"active"`
	Retired   int  `json:"retired"`
	Scheduled int  `json:"scheduled"` // never reviewed, not yet due
	NextDueIn *int `json:"next_due_in,omitempty"`
}

// CalendarDay is one cell of the month view: past days count reviews that
// happened on the day, today and future days count cards falling due.
type CalendarDay struct {
	Day           int    `json:"day"`
	Date          string `json:"date"`
	IsPast        bool   `json:"is_past"`
	IsToday       bool   `json:"is_today"`
	ReviewedCount int    `json:"reviewed_count"`
	DueCount      int    `json:"due_count"`
}

type CalendarMonth struct {
	Year           int           `json:"year"`
	Month          int           `json:"month"` // 1-12
	StartDayOfWeek int           `json:"start_day_of_week"`
	Days           []CalendarDay `json:"days"`
}
