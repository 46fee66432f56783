package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID        int64  `json:"id"`
	Organizer string `json:"organizer"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
}

// MonthlyCount is the number of admission tickets sold in a calendar month (1-12).
type MonthlyCount struct {
	Month       int `json:"month"`
	TicketCount int `json:"ticket_count"`
}

// OrderStatusPaid marks orders that count towards ticket sales.
const OrderStatusPaid = "p"

const monthlyTicketsQuery = `
SELECT EXTRACT(MONTH FROM o.datetime)::int AS month, COUNT(op.id)::int AS ticket_count
FROM order_positions op
JOIN orders o ON o.id = op.order_id
JOIN items i ON i.id = op.item_id
WHERE o.event_id = $1 AND o.status = $2 AND i.admission
GROUP BY month
ORDER BY month`

// Store reads ticket statistics from Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EventBySlug looks an event up by organizer and slug, which are unique together.
func (s *Store) EventBySlug(ctx context.Context, organizer, slug string) (*Event, error) {
	var e Event
	err := s.pool.QueryRow(ctx,
		`SELECT id, organizer, slug, name FROM events WHERE organizer = $1 AND slug = $2`,
		organizer, slug,
	).Scan(&e.ID, &e.Organizer, &e.Slug, &e.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query event %q: %w", slug, err)
	}
	return &e, nil
}

// OtherEvents lists the organizer's events except excludeID.
func (s *Store) OtherEvents(ctx context.Context, organizer string, excludeID int64) ([]Event, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, organizer, slug, name FROM events WHERE organizer = $1 AND id <> $2 ORDER BY name`,
		organizer, excludeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	events, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Event])
	if err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}
	return events, nil
}

func (s *Store) HasOrders(ctx context.Context, eventID int64) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE event_id = $1)`, eventID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query orders: %w", err)
	}
	return exists, nil
}

func (s *Store) MonthlyTicketCounts(ctx context.Context, eventID int64) ([]MonthlyCount, error) {
	rows, err := s.pool.Query(ctx, monthlyTicketsQuery, eventID, OrderStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("query ticket counts: %w", err)
	}
	counts, err := pgx.CollectRows(rows, pgx.RowToStructByPos[MonthlyCount])
	if err != nil {
		return nil, fmt.Errorf("scan ticket counts: %w", err)
	}
	return counts, nil
}
