package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fireminder/fireminder/internal/logger"
	"github.com/fireminder/fireminder/internal/models"
	"github.com/fireminder/fireminder/internal/repository"
)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Insert(ctx context.Context, d models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: id=%s name=%s", d.ID, d.Name)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO decks (id, name, starting_interval, interval_unit, queue_limit, max_new_cards, created_at, created_at_real)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, d.ID, d.Name, d.StartingInterval, string(d.IntervalUnit), d.QueueLimit, d.MaxNewCards, d.CreatedAt, d.CreatedAtReal)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
	}
	return err
}

func (r *deckRepository) Get(ctx context.Context, id string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%s", id)

	var d models.Deck
	var unit string
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, starting_interval, interval_unit, queue_limit, max_new_cards, created_at, created_at_real
FROM decks
WHERE id = ?
`, id).Scan(&d.ID, &d.Name, &d.StartingInterval, &unit, &d.QueueLimit, &d.MaxNewCards, &d.CreatedAt, &d.CreatedAtReal)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	d.IntervalUnit = models.ParseIntervalUnit(unit)
	return &d, nil
}

func (r *deckRepository) List(ctx context.Context) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, starting_interval, interval_unit, queue_limit, max_new_cards, created_at, created_at_real
FROM decks
ORDER BY created_at_real ASC
`)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		var unit string
		if err := rows.Scan(&d.ID, &d.Name, &d.StartingInterval, &unit, &d.QueueLimit, &d.MaxNewCards, &d.CreatedAt, &d.CreatedAtReal); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		d.IntervalUnit = models.ParseIntervalUnit(unit)
		decks = append(decks, d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Update(ctx context.Context, d models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("updating deck: id=%s", d.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE decks
SET name = ?, starting_interval = ?, interval_unit = ?, queue_limit = ?, max_new_cards = ?
WHERE id = ?
`, d.Name, d.StartingInterval, string(d.IntervalUnit), d.QueueLimit, d.MaxNewCards, d.ID)
	if err != nil {
		log.Error("failed to update deck: %v", err)
	}
	return err
}

func (r *deckRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%s", id)

	// Cards cascade via foreign key.
	_, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
	}
	return err
}

func (r *deckRepository) DeleteCreatedAfter(ctx context.Context, t time.Time) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("discarding decks created after %s", t)

	res, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE created_at_real > ?`, t)
	if err != nil {
		log.Error("failed to discard decks: %v", err)
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Debug("discarded %d decks", n)
	return n, nil
}
