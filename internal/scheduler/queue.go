package scheduler

import (
	"sort"

	"github.com/fireminder/fireminder/internal/models"
)

// Session holds the per-session presentation flags. They are never persisted:
// a skipped card drops out of today's queue, a bumped card moves to its end.
// Both reset when the session goes away.
type Session struct {
	Skipped map[string]bool
	Bumped  map[string]bool
}

// penaltyStep is applied per same-interval card already selected and per card
// over the queue target.
const penaltyStep = 0.1

type scoredCard struct {
	card      models.Card
	baseScore float64
	period    int
}

// ComputeDueQueue produces today's ordered review queue for one deck.
//
// Reviewed cards that are due get a base score of (intervalsOverdue+1) /
// currentInterval: shorter intervals and longer overdue spans surface first.
// Selection is greedy and iterative; each round re-adjusts scores with a
// penalty for every already-selected card of the same interval (interleaving)
// and a penalty for exceeding the queue target (a soft cap that only clearly
// urgent cards push past), then takes the best remaining candidate while its
// adjusted score stays positive.
//
// Never-reviewed cards are admitted afterwards in creation order, while the
// queue is under target and the per-day new-card ceiling is not reached.
// Bumped cards finally move, stably, to the end.
func ComputeDueQueue(cards []models.Card, settings models.DeckSettings, today string, session Session) []models.Card {
	settings = settings.Sanitized()

	var candidates []scoredCard
	var fresh []models.Card
	for _, c := range cards {
		if c.Retired || c.Deleted || session.Skipped[c.ID] || !c.DueOn(today) {
			continue
		}
		if !c.Reviewed() {
			fresh = append(fresh, c)
			continue
		}
		period := c.CurrentInterval
		if period <= 0 {
			period = settings.StartingInterval
		}
		intervalsOverdue := float64(daysBetween(c.NextDueDate, today)) / float64(period)
		candidates = append(candidates, scoredCard{
			card:      c,
			baseScore: (intervalsOverdue + 1) / float64(period),
			period:    period,
		})
	}

	var selected []models.Card
	periodCounts := make(map[int]int)

	for len(candidates) > 0 {
		best := -1
		bestScore := 0.0
		for i, sc := range candidates {
			adjusted := sc.baseScore - penaltyStep*float64(periodCounts[sc.period]) - overTargetPenalty(len(selected), settings.QueueLimit)
			// Strict comparison keeps ties in input order.
			if adjusted > 0 && (best == -1 || adjusted > bestScore) {
				best = i
				bestScore = adjusted
			}
		}
		if best == -1 {
			break // every remaining candidate is rejected for today
		}
		sc := candidates[best]
		selected = append(selected, sc.card)
		periodCounts[sc.period]++
		candidates = append(candidates[:best], candidates[best+1:]...)
	}

	// New-card admission, FIFO by creation date.
	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].CreatedAt < fresh[j].CreatedAt
	})
	admitted := 0
	for _, c := range fresh {
		underTarget := settings.QueueLimit == 0 || len(selected) < settings.QueueLimit
		if !underTarget || admitted >= settings.MaxNewCards {
			break
		}
		selected = append(selected, c)
		admitted++
	}

	// Bumped cards go to the end; relative order is otherwise preserved.
	if len(session.Bumped) > 0 {
		sort.SliceStable(selected, func(i, j int) bool {
			return !session.Bumped[selected[i].ID] && session.Bumped[selected[j].ID]
		})
	}

	return selected
}

func overTargetPenalty(selectedCount, queueLimit int) float64 {
	if queueLimit == 0 {
		return 0 // unlimited target
	}
	over := selectedCount - queueLimit + 1
	if over < 0 {
		over = 0
	}
	return penaltyStep * float64(over)
}
