package scheduler_test

import (
	"testing"
	"time"

	"github.com/fireminder/fireminder/internal/dates"
	"github.com/fireminder/fireminder/internal/models"
	"github.com/fireminder/fireminder/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dates.Parse(s)
	require.NoError(t, err)
	return d
}

func defaultSettings() models.DeckSettings {
	return models.DeckSettings{
		StartingInterval: 2,
		IntervalUnit:     models.UnitDays,
		MaxNewCards:      1,
	}
}

func TestNextInterval(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		choice   scheduler.Choice
		expected int
	}{
		{"shorter repeats current", 5, scheduler.ChoiceShorter, 5},
		{"default steps up once", 5, scheduler.ChoiceDefault, 8},
		{"longer steps up twice", 5, scheduler.ChoiceLonger, 13},
		{"default saturates at top", 377, scheduler.ChoiceDefault, 377},
		{"longer saturates at top", 233, scheduler.ChoiceLonger, 377},
		{"unknown current snaps to index 1 first", 7, scheduler.ChoiceDefault, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scheduler.NextInterval(tt.current, tt.choice))
		})
	}
}

func TestParseChoice(t *testing.T) {
	assert.Equal(t, scheduler.ChoiceShorter, scheduler.ParseChoice("shorter"))
	assert.Equal(t, scheduler.ChoiceLonger, scheduler.ParseChoice("longer"))
	assert.Equal(t, scheduler.ChoiceDefault, scheduler.ParseChoice(""))
	assert.Equal(t, scheduler.ChoiceDefault, scheduler.ParseChoice("banana"))
}

func TestApplyReview_Default(t *testing.T) {
	card := models.Card{
		ID:              "c1",
		Content:         "What is a monad?",
		CurrentInterval: 2,
		LastReviewDate:  "2025-03-08",
		NextDueDate:     "2025-03-10",
	}

	update := scheduler.ApplyReview(card, defaultSettings(), day(t, "2025-03-10"), scheduler.ChoiceDefault, "", "")

	assert.Equal(t, 3, update.CurrentInterval)
	assert.Equal(t, "2025-03-10", update.LastReviewDate)
	assert.Equal(t, "2025-03-13", update.NextDueDate)
	assert.Equal(t, models.ReviewRecord{
		Date:         "2025-03-10",
		Interval:     3,
		IntervalUnit: models.UnitDays,
	}, update.Entry)
	assert.Nil(t, update.Content)
}

func TestApplyReview_OverdueDecay(t *testing.T) {
	// Interval 5, due 12 days ago. Default choice lifts
	// 5 -> 8 (index 4); floor(12/5) = 2 steps of decay -> index 2 -> value 3,
	// which stays above the deck's starting-interval floor (2, index 1).
	card := models.Card{
		ID:              "c1",
		CurrentInterval: 5,
		LastReviewDate:  "2025-02-20",
		NextDueDate:     "2025-02-25",
	}

	update := scheduler.ApplyReview(card, defaultSettings(), day(t, "2025-03-09"), scheduler.ChoiceDefault, "", "")

	assert.Equal(t, 3, update.CurrentInterval)
	assert.Equal(t, "2025-03-12", update.NextDueDate)
}

func TestApplyReview_DecayFloorsAtStartingInterval(t *testing.T) {
	// Massively overdue: decay would push below the deck's configured
	// minimum, so it holds there instead of falling to index 0.
	settings := defaultSettings()
	settings.StartingInterval = 3

	card := models.Card{
		CurrentInterval: 2,
		LastReviewDate:  "2025-01-01",
		NextDueDate:     "2025-01-03",
	}

	update := scheduler.ApplyReview(card, settings, day(t, "2025-03-01"), scheduler.ChoiceDefault, "", "")

	assert.Equal(t, 3, update.CurrentInterval)
}

func TestApplyReview_FirstReviewNeverDecays(t *testing.T) {
	// Never-reviewed card that is long overdue still advances normally.
	card := models.Card{
		CurrentInterval: 2,
		NextDueDate:     "2025-01-01",
	}

	update := scheduler.ApplyReview(card, defaultSettings(), day(t, "2025-02-01"), scheduler.ChoiceDefault, "", "")

	assert.Equal(t, 3, update.CurrentInterval)
	assert.Equal(t, "2025-02-01", update.LastReviewDate)
}

func TestApplyReview_OnTimeNoDecay(t *testing.T) {
	card := models.Card{
		CurrentInterval: 8,
		LastReviewDate:  "2025-03-02",
		NextDueDate:     "2025-03-10",
	}

	update := scheduler.ApplyReview(card, defaultSettings(), day(t, "2025-03-10"), scheduler.ChoiceDefault, "", "")

	assert.Equal(t, 13, update.CurrentInterval)
}

func TestApplyReview_Shorter(t *testing.T) {
	card := models.Card{
		CurrentInterval: 8,
		LastReviewDate:  "2025-03-02",
		NextDueDate:     "2025-03-10",
	}

	update := scheduler.ApplyReview(card, defaultSettings(), day(t, "2025-03-10"), scheduler.ChoiceShorter, "", "")

	assert.Equal(t, 8, update.CurrentInterval)
	assert.Equal(t, "2025-03-18", update.NextDueDate)
}

func TestApplyReview_Reflection(t *testing.T) {
	card := models.Card{
		CurrentInterval: 2,
		NextDueDate:     "2025-03-10",
	}

	update := scheduler.ApplyReview(card, defaultSettings(), day(t, "2025-03-10"), scheduler.ChoiceDefault, "still shaky on this", "")

	assert.Equal(t, "still shaky on this", update.Entry.Reflection)
}

func TestApplyReview_ContentEdit(t *testing.T) {
	card := models.Card{
		Content:         "old text",
		CurrentInterval: 2,
		NextDueDate:     "2025-03-10",
	}

	update := scheduler.ApplyReview(card, defaultSettings(), day(t, "2025-03-10"), scheduler.ChoiceDefault, "", "new text")

	require.NotNil(t, update.Content)
	assert.Equal(t, "new text", *update.Content)
	assert.Equal(t, "old text", update.Entry.PreviousContent)

	applied := update.Apply(card)
	assert.Equal(t, "new text", applied.Content)
	assert.Len(t, applied.History, 1)
}

func TestApplyReview_UnchangedContentNotRecorded(t *testing.T) {
	card := models.Card{
		Content:         "same",
		CurrentInterval: 2,
		NextDueDate:     "2025-03-10",
	}

	update := scheduler.ApplyReview(card, defaultSettings(), day(t, "2025-03-10"), scheduler.ChoiceDefault, "", "same")

	assert.Nil(t, update.Content)
	assert.Empty(t, update.Entry.PreviousContent)
}

func TestApplyReview_HoursUnitRollsDay(t *testing.T) {
	settings := defaultSettings()
	settings.IntervalUnit = models.UnitHours

	card := models.Card{
		CurrentInterval: 13,
		NextDueDate:     "2025-03-10",
	}

	// 13 -> 21 hours from local midnight stays on the same calendar day;
	// stepping again would roll over.
	update := scheduler.ApplyReview(card, settings, day(t, "2025-03-10"), scheduler.ChoiceDefault, "", "")
	assert.Equal(t, 21, update.CurrentInterval)
	assert.Equal(t, "2025-03-10", update.NextDueDate)

	update = scheduler.ApplyReview(card, settings, day(t, "2025-03-10"), scheduler.ChoiceLonger, "", "")
	assert.Equal(t, 34, update.CurrentInterval)
	assert.Equal(t, "2025-03-11", update.NextDueDate)
}
