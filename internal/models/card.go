package models

import "time"

type Card struct {
	ID              string         `json:"id"`
	DeckID          string         `json:"deck_id"`
	Content         string         `json:"content"`
	Reminder        string         `json:"reminder,omitempty"` // shown on first presentation only
	CurrentInterval int            `json:"current_interval"`
	CreatedAt       string         `json:"created_at"` // civil date, YYYY-MM-DD
	CreatedAtReal   time.Time      `json:"created_at_real"`
	LastReviewDate  string         `json:"last_review_date,omitempty"` // empty means never reviewed
	NextDueDate     string         `json:"next_due_date"`
	Retired         bool           `json:"retired"`
	Deleted         bool           `json:"deleted"`
	History         []ReviewRecord `json:"history,omitempty"`
}

// Reviewed reports whether the card has been reviewed at least once.
func (c Card) Reviewed() bool {
	return c.LastReviewDate != ""
}

// DueOn reports whether the card is eligible for review on the given day.
// Civil dates compare lexicographically.
func (c Card) DueOn(today string) bool {
	return c.NextDueDate <= today
}

// ReviewRecord is one entry in a card's append-only review history.
type ReviewRecord struct {
	Date            string       `json:"date"`
	Interval        int          `json:"interval"`
	IntervalUnit    IntervalUnit `json:"interval_unit"`
	Reflection      string       `json:"reflection,omitempty"`
	PreviousContent string       `json:"previous_content,omitempty"` // set when content was edited during the review
}

// CardUpdate is the patch produced by a review: the caller persists it and
// only then folds it into its local view of the card.
type CardUpdate struct {
	CurrentInterval int          `json:"current_interval"`
	LastReviewDate  string       `json:"last_review_date"`
	NextDueDate     string       `json:"next_due_date"`
	Entry           ReviewRecord `json:"entry"`
	Content         *string      `json:"content,omitempty"` // non-nil when the review edited the card text
}

// Apply folds the update into a card value.
func (u CardUpdate) Apply(c Card) Card {
	c.CurrentInterval = u.CurrentInterval
	c.LastReviewDate = u.LastReviewDate
	c.NextDueDate = u.NextDueDate
	c.History = append(c.History, u.Entry)
	if u.Content != nil {
		c.Content = *u.Content
	}
	return c
}

// CardFilter narrows card listings.
type CardFilter struct {
	IncludeRetired bool
	IncludeDeleted bool
	WithHistory    bool
	NeverReviewed  *bool
	DueOnOrBefore  string
}
