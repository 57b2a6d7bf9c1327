package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fireminder/fireminder/internal/clock"
	"github.com/fireminder/fireminder/internal/dates"
	"github.com/fireminder/fireminder/internal/errors"
	"github.com/fireminder/fireminder/internal/logger"
	"github.com/fireminder/fireminder/internal/models"
	"github.com/fireminder/fireminder/internal/repository"
	"github.com/google/uuid"
)

// TransferService moves deck content in and out as markdown
type TransferService interface {
	ExportDeck(ctx context.Context, deckID string) (string, error)
	ImportCards(ctx context.Context, deckID string, markdown string) ([]models.Card, error)
}

type transferService struct {
	decks repository.DeckRepository
	cards repository.CardRepository
	clk   clock.Clock
	real  clock.Clock
}

// NewTransferService creates a new TransferService.
func NewTransferService(decks repository.DeckRepository, cards repository.CardRepository, clk clock.Clock, real clock.Clock) TransferService {
	if real == nil {
		real = clock.System{}
	}
	return &transferService{decks: decks, cards: cards, clk: clk, real: real}
}

// ExportDeck renders a deck and its non-deleted cards as a markdown document:
// deck settings up top, then one numbered section per card with its full
// content and review history.
func (s *transferService) ExportDeck(ctx context.Context, deckID string) (string, error) {
	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return "", errors.NewInternalError(err)
	}
	if deck == nil {
		return "", errors.NewNotFoundError("deck", deckID)
	}

	cards, err := s.cards.ListByDeck(ctx, deckID, models.CardFilter{
		IncludeRetired: true,
		WithHistory:    true,
	})
	if err != nil {
		return "", errors.NewInternalError(err)
	}

	settings := deck.Settings()
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", deck.Name)
	fmt.Fprintf(&b, "- **Starting interval:** %s\n", formatIntervalWithUnit(settings.StartingInterval, settings.IntervalUnit))
	if settings.QueueLimit > 0 {
		fmt.Fprintf(&b, "- **Max cards/day:** %d\n", settings.QueueLimit)
	}
	b.WriteString("\n---\n\n")
	fmt.Fprintf(&b, "## Cards (%d)\n\n", len(cards))

	for i, card := range cards {
		title := card.Content
		suffix := ""
		if runes := []rune(title); len(runes) > 50 {
			title = string(runes[:50])
			suffix = "..."
		}
		prefix := ""
		if card.Retired {
			prefix = "[RETIRED] "
		}
		fmt.Fprintf(&b, "### %d. %s%s%s\n\n", i+1, prefix, title, suffix)
		fmt.Fprintf(&b, "%s\n\n", card.Content)

		if len(card.History) > 0 {
			b.WriteString("**Review history:**\n")
			for _, h := range card.History {
				unit := h.IntervalUnit
				if unit == "" {
					unit = settings.IntervalUnit
				}
				fmt.Fprintf(&b, "- %s: %s", h.Date, formatIntervalWithUnit(h.Interval, unit))
				if h.Reflection != "" {
					fmt.Fprintf(&b, " — %q", h.Reflection)
				}
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
		b.WriteString("---\n\n")
	}
	return b.String(), nil
}

var historyLinePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}:`)

// ImportCards turns each non-empty paragraph of a markdown document into a
// card. Header and metadata lines are skipped, and paragraphs whose content
// already exists in the deck are filtered out, so re-importing an export is a
// no-op for the cards it already contains.
func (s *transferService) ImportCards(ctx context.Context, deckID string, markdown string) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	existing, err := s.cards.ListByDeck(ctx, deckID, models.CardFilter{
		IncludeRetired: true,
		IncludeDeleted: true,
	})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		seen[strings.ToLower(strings.TrimSpace(c.Content))] = true
	}

	var contents []string
	for _, paragraph := range splitParagraphs(markdown) {
		key := strings.ToLower(paragraph)
		if seen[key] {
			continue
		}
		seen[key] = true
		contents = append(contents, paragraph)
	}

	settings := deck.Settings()
	now := s.clk.Now()
	today := dates.Format(now)
	nextDue := dates.Format(dates.AddInterval(now, settings.StartingInterval, settings.IntervalUnit))

	created := make([]models.Card, 0, len(contents))
	for _, content := range contents {
		card := models.Card{
			ID:              uuid.NewString(),
			DeckID:          deckID,
			Content:         content,
			CurrentInterval: settings.StartingInterval,
			CreatedAt:       today,
			CreatedAtReal:   s.real.Now(),
			NextDueDate:     nextDue,
		}
		if err := s.cards.Insert(ctx, card); err != nil {
			log.Error("failed to import card: %v", err)
			return nil, errors.NewInternalError(err)
		}
		created = append(created, card)
	}

	log.Debug("imported cards: deck_id=%s count=%d", deckID, len(created))
	return created, nil
}

// splitParagraphs extracts card paragraphs from markdown: headers, metadata
// bullets, horizontal rules, and review-history lines are skipped; blank
// lines separate paragraphs; a paragraph's lines join with single spaces.
func splitParagraphs(markdown string) []string {
	var paragraphs []string
	var current strings.Builder

	flush := func() {
		if p := strings.TrimSpace(current.String()); p != "" {
			paragraphs = append(paragraphs, p)
		}
		current.Reset()
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "**") {
			flush()
			continue
		}
		if historyLinePattern.MatchString(trimmed) {
			continue
		}
		if trimmed == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(trimmed)
	}
	flush()
	return paragraphs
}

func formatIntervalWithUnit(value int, unit models.IntervalUnit) string {
	name := string(unit)
	if value == 1 {
		name = strings.TrimSuffix(name, "s")
	}
	return fmt.Sprintf("%d %s", value, name)
}
