package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var eventColumns = []string{
	"id", "title", "description", "date", "time", "location", "created_at", "updated_at",
}

// pgEventRepository serves both the events and the meetings table.
type pgEventRepository struct {
	pool  *pgxpool.Pool
	table string
}

func NewEventRepository(pool *pgxpool.Pool, table string) EventRepository {
	return &pgEventRepository{pool: pool, table: table}
}

func (r *pgEventRepository) Create(ctx context.Context, event *Event) error {
	query := `
		INSERT INTO ` + r.table + ` (title, description, date, time, location)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		event.Title, event.Description, event.Date, event.Time, event.Location,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	return mapPgError(err, "insert "+r.table)
}

func (r *pgEventRepository) FindByID(ctx context.Context, id string) (*Event, error) {
	sql, args, err := buildSelect(ctx, r.table, eventColumns, ListOptions{
		Filters: []Filter{{Column: "id", Value: id}},
	})
	if err != nil {
		return nil, err
	}
	e, err := scanEvent(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapPgError(err, "find "+r.table)
	}
	return e, nil
}

func (r *pgEventRepository) List(ctx context.Context, opts ListOptions) ([]*Event, error) {
	sql, args, err := buildSelect(ctx, r.table, eventColumns, opts.orDefault("date", false))
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapPgError(err, "list "+r.table)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, mapPgError(err, "scan "+r.table)
		}
		events = append(events, e)
	}
	return events, mapPgError(rows.Err(), "list "+r.table)
}

func (r *pgEventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err, "delete "+r.table)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*Event, error) {
	e := &Event{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}
