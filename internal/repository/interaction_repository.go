package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/interaction-analytics/internal/domain"
)

// InteractionRepository encapsulates persistence of normalized interaction
// records.
type InteractionRepository interface {
	ListAll(ctx context.Context) ([]domain.Event, error)
	InsertBatch(ctx context.Context, events []domain.Event) (int, error)
}

type interactionRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewInteractionRepository instantiates the repository.
func NewInteractionRepository(pool *pgxpool.Pool, logger *zap.Logger) InteractionRepository {
	return &interactionRepository{pool: pool, logger: logger}
}

// ListAll loads the full interaction snapshot. Rows carrying values outside
// the closed enums are dropped and counted, never fatal: the snapshot must
// be total over the valid subset.
func (r *interactionRepository) ListAll(ctx context.Context) ([]domain.Event, error) {
	const query = `
        SELECT id, occurred_on, hour_of_day, sector, channel, product_group, tags, process, status
        FROM interactions
        ORDER BY occurred_on, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	dropped := 0
	for rows.Next() {
		event, ok := r.scanEvent(rows)
		if !ok {
			dropped++
			continue
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	if dropped > 0 {
		r.logger.Warn("dropped malformed interaction rows", zap.Int("count", dropped))
	}
	return events, nil
}

func (r *interactionRepository) scanEvent(rows pgx.Rows) (domain.Event, bool) {
	var (
		event      domain.Event
		occurredOn time.Time
		sector     string
		channel    string
		group      string
		tags       []string
	)
	if err := rows.Scan(&event.ID, &occurredOn, &event.Hour, &sector, &channel, &group, &tags, &event.Process, &event.Status); err != nil {
		r.logger.Warn("scan interaction row", zap.Error(err))
		return domain.Event{}, false
	}
	event.CalendarDate = domain.Day(occurredOn)

	var ok bool
	if event.Sector, ok = domain.ParseSector(sector); !ok {
		return domain.Event{}, false
	}
	if event.Channel, ok = domain.ParseChannel(channel); !ok {
		return domain.Event{}, false
	}
	if event.ProductGroup, ok = domain.ParseProductGroup(group); !ok || event.ProductGroup == domain.ProductGroupAll {
		return domain.Event{}, false
	}
	if event.Hour < 0 || event.Hour > 23 {
		return domain.Event{}, false
	}

	event.Tags = domain.NewTagSet()
	for _, raw := range tags {
		tag, known := domain.ParseProblemTag(raw)
		if !known {
			return domain.Event{}, false
		}
		event.Tags[tag] = struct{}{}
	}
	return event, true
}

// InsertBatch persists already-validated interaction records and returns the
// number written.
func (r *interactionRepository) InsertBatch(ctx context.Context, events []domain.Event) (int, error) {
	const query = `
        INSERT INTO interactions (id, occurred_on, hour_of_day, sector, channel, product_group, tags, process, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (id) DO NOTHING`

	batch := &pgx.Batch{}
	for _, e := range events {
		tags := make([]string, 0, e.Tags.Len())
		for _, t := range e.Tags.Slice() {
			tags = append(tags, string(t))
		}
		batch.Queue(query,
			e.ID,
			e.CalendarDate,
			e.Hour,
			string(e.Sector),
			string(e.Channel),
			string(e.ProductGroup),
			tags,
			e.Process,
			e.Status,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range events {
		cmd, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("insert interactions: %w", err)
		}
		inserted += int(cmd.RowsAffected())
	}
	return inserted, nil
}
