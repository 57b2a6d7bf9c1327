package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/fireminder/fireminder/internal/logger"
	"github.com/fireminder/fireminder/internal/models"
	"github.com/fireminder/fireminder/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

const cardColumns = "id, deck_id, content, reminder, current_interval, created_at, created_at_real, last_review_date, next_due_date, retired, deleted"

func scanCard(scanner interface{ Scan(...any) error }) (models.Card, error) {
	var c models.Card
	err := scanner.Scan(&c.ID, &c.DeckID, &c.Content, &c.Reminder, &c.CurrentInterval,
		&c.CreatedAt, &c.CreatedAtReal, &c.LastReviewDate, &c.NextDueDate, &c.Retired, &c.Deleted)
	return c, err
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: id=%s deck_id=%s", c.ID, c.DeckID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO cards (id, deck_id, content, reminder, current_interval, created_at, created_at_real, last_review_date, next_due_date, retired, deleted)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.ID, c.DeckID, c.Content, c.Reminder, c.CurrentInterval, c.CreatedAt, c.CreatedAtReal, c.LastReviewDate, c.NextDueDate, c.Retired, c.Deleted)
	if err != nil {
		log.Error("failed to insert card: %v", err)
	}
	return err
}

func (r *cardRepository) Get(ctx context.Context, id string) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%s", id)

	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}

	history, err := r.history(ctx, id)
	if err != nil {
		return nil, err
	}
	c.History = history
	return &c, nil
}

func (r *cardRepository) ListByDeck(ctx context.Context, deckID string, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: deck_id=%s", deckID)

	query := sqlBuilder.Select(cardColumns).From("cards").
		Where(squirrel.Eq{"deck_id": deckID}).
		OrderBy("created_at_real ASC")
	if !filter.IncludeRetired {
		query = query.Where(squirrel.Eq{"retired": false})
	}
	if !filter.IncludeDeleted {
		query = query.Where(squirrel.Eq{"deleted": false})
	}
	if filter.NeverReviewed != nil {
		if *filter.NeverReviewed {
			query = query.Where(squirrel.Eq{"last_review_date": ""})
		} else {
			query = query.Where(squirrel.NotEq{"last_review_date": ""})
		}
	}
	if filter.DueOnOrBefore != "" {
		query = query.Where(squirrel.LtOrEq{"next_due_date": filter.DueOnOrBefore})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build card query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if filter.WithHistory {
		if err := r.attachHistory(ctx, deckID, cards); err != nil {
			return nil, err
		}
	}

	log.Debug("found %d cards", len(cards))
	return cards, nil
}

func (r *cardRepository) ApplyReview(ctx context.Context, id string, update models.CardUpdate) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("applying review: card_id=%s interval=%d next_due=%s", id, update.CurrentInterval, update.NextDueDate)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	defer tx.Rollback()

	if update.Content != nil {
		_, err = tx.ExecContext(ctx, `
UPDATE cards
SET current_interval = ?, last_review_date = ?, next_due_date = ?, content = ?
WHERE id = ?
`, update.CurrentInterval, update.LastReviewDate, update.NextDueDate, *update.Content, id)
	} else {
		_, err = tx.ExecContext(ctx, `
UPDATE cards
SET current_interval = ?, last_review_date = ?, next_due_date = ?
WHERE id = ?
`, update.CurrentInterval, update.LastReviewDate, update.NextDueDate, id)
	}
	if err != nil {
		log.Error("failed to update card: %v", err)
		return err
	}

	e := update.Entry
	if _, err := tx.ExecContext(ctx, `
INSERT INTO card_history (card_id, review_date, interval_value, interval_unit, reflection, previous_content)
VALUES (?, ?, ?, ?, ?, ?)
`, id, e.Date, e.Interval, string(e.IntervalUnit), e.Reflection, e.PreviousContent); err != nil {
		log.Error("failed to insert history entry: %v", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit review: %v", err)
		return err
	}
	return nil
}

func (r *cardRepository) UpdateContent(ctx context.Context, id, content string) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card content: id=%s", id)

	_, err := r.db.ExecContext(ctx, `UPDATE cards SET content = ? WHERE id = ?`, content, id)
	if err != nil {
		log.Error("failed to update card content: %v", err)
	}
	return err
}

func (r *cardRepository) MoveToDeck(ctx context.Context, id, deckID string) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("moving card: id=%s deck_id=%s", id, deckID)

	_, err := r.db.ExecContext(ctx, `UPDATE cards SET deck_id = ? WHERE id = ?`, deckID, id)
	if err != nil {
		log.Error("failed to move card: %v", err)
	}
	return err
}

func (r *cardRepository) SetRetired(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("retiring card: id=%s", id)

	_, err := r.db.ExecContext(ctx, `UPDATE cards SET retired = 1 WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to retire card: %v", err)
	}
	return err
}

func (r *cardRepository) SetDeleted(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("soft-deleting card: id=%s", id)

	_, err := r.db.ExecContext(ctx, `UPDATE cards SET deleted = 1 WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to soft-delete card: %v", err)
	}
	return err
}

func (r *cardRepository) DeleteCreatedAfter(ctx context.Context, t time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("discarding cards created after %s", t)

	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE created_at_real > ?`, t)
	if err != nil {
		log.Error("failed to discard cards: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Debug("discarded %d cards", n)
	return n, nil
}

func (r *cardRepository) history(ctx context.Context, cardID string) ([]models.ReviewRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT review_date, interval_value, interval_unit, reflection, previous_content
FROM card_history
WHERE card_id = ?
ORDER BY id ASC
`, cardID)
	if err != nil {
		log.Error("failed to query card history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.ReviewRecord
	for rows.Next() {
		var rec models.ReviewRecord
		var unit string
		if err := rows.Scan(&rec.Date, &rec.Interval, &unit, &rec.Reflection, &rec.PreviousContent); err != nil {
			log.Error("failed to scan history row: %v", err)
			return nil, err
		}
		rec.IntervalUnit = models.ParseIntervalUnit(unit)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *cardRepository) attachHistory(ctx context.Context, deckID string, cards []models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT h.card_id, h.review_date, h.interval_value, h.interval_unit, h.reflection, h.previous_content
FROM card_history h
JOIN cards c ON c.id = h.card_id
WHERE c.deck_id = ?
ORDER BY h.id ASC
`, deckID)
	if err != nil {
		log.Error("failed to query deck history: %v", err)
		return err
	}
	defer rows.Close()

	byCard := make(map[string][]models.ReviewRecord)
	for rows.Next() {
		var cardID, unit string
		var rec models.ReviewRecord
		if err := rows.Scan(&cardID, &rec.Date, &rec.Interval, &unit, &rec.Reflection, &rec.PreviousContent); err != nil {
			log.Error("failed to scan history row: %v", err)
			return err
		}
		rec.IntervalUnit = models.ParseIntervalUnit(unit)
		byCard[cardID] = append(byCard[cardID], rec)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range cards {
		cards[i].History = byCard[cards[i].ID]
	}
	return nil
}
