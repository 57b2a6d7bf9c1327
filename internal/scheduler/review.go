// Package scheduler is the due-card selection and interval-scheduling core.
// Everything here is a pure function over a snapshot of cards, deck settings
// and "today": no I/O, no clocks, no hidden state. Callers load the snapshot,
// compute, persist the resulting patch, and only then update their own view.
package scheduler

import (
	"time"

	"github.com/fireminder/fireminder/internal/dates"
	"github.com/fireminder/fireminder/internal/interval"
	"github.com/fireminder/fireminder/internal/models"
)

// Choice is the reviewer's verdict on how the interval should move.
type Choice string

const (
	// ChoiceShorter repeats the current interval without advancing.
	ChoiceShorter Choice = "shorter"
	// ChoiceDefault advances one Fibonacci step.
	ChoiceDefault Choice = "default"
	// ChoiceLonger advances two Fibonacci steps, one beyond default.
	ChoiceLonger Choice = "longer"
)

// ParseChoice maps a string onto a known choice, falling back to default.
func ParseChoice(s string) Choice {
	switch Choice(s) {
	case ChoiceShorter, ChoiceDefault, ChoiceLonger:
		return Choice(s)
	}
	return ChoiceDefault
}

// NextInterval returns the candidate interval for a review choice, before any
// overdue decay.
func NextInterval(current int, choice Choice) int {
	switch choice {
	case ChoiceShorter:
		return current
	case ChoiceLonger:
		return interval.StepUp(interval.StepUp(current))
	default:
		return interval.StepUp(current)
	}
}

// ApplyReview computes the patch a review produces: the new interval (with
// overdue decay applied), the next due date, and the history entry to append.
// The card itself is not mutated; persistence is the caller's job.
//
// Overdue decay: reviewing a card late must not reward it with a longer
// interval. For every full current-interval the card sat overdue, the
// candidate interval drops one Fibonacci step, floored at the deck's
// starting interval. First reviews never decay.
func ApplyReview(card models.Card, settings models.DeckSettings, now time.Time, choice Choice, reflection, editedContent string) models.CardUpdate {
	settings = settings.Sanitized()
	today := dates.Format(now)

	newInterval := NextInterval(card.CurrentInterval, choice)
	if card.Reviewed() && card.NextDueDate < today && card.CurrentInterval > 0 {
		overdueDays := daysBetween(card.NextDueDate, today)
		intervalsOverdue := overdueDays / card.CurrentInterval

		idx := interval.IndexOf(newInterval) - intervalsOverdue
		if idx < 0 {
			idx = 0
		}
		if minIdx := interval.IndexOf(settings.StartingInterval); idx < minIdx {
			idx = minIdx
		}
		newInterval = interval.ValueAt(idx)
	}

	nextDue := dates.Format(dates.AddInterval(now, newInterval, settings.IntervalUnit))

	entry := models.ReviewRecord{
		Date:         today,
		Interval:     newInterval,
		IntervalUnit: settings.IntervalUnit,
		Reflection:   reflection,
	}

	update := models.CardUpdate{
		CurrentInterval: newInterval,
		LastReviewDate:  today,
		NextDueDate:     nextDue,
		Entry:           entry,
	}

	if editedContent != "" && editedContent != card.Content {
		update.Entry.PreviousContent = card.Content
		update.Content = &editedContent
	}

	return update
}

// daysBetween is dates.DaysBetween with malformed dates treated as zero
// distance, keeping the core tolerant of whatever storage hands it.
func daysBetween(a, b string) int {
	d, err := dates.DaysBetween(a, b)
	if err != nil {
		return 0
	}
	return d
}
