package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"hotel_bookings/internal/bookings"
	"hotel_bookings/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// InsertBatch replaces batch n with rows, keeping their order in seq.
func (r *Repo) InsertBatch(ctx context.Context, n int, rows bookings.Table) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteBatchSQL, n); err != nil {
		return err
	}
	if len(rows) == 0 {
		return tx.Commit()
	}

	values := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*(bookings.NumFields+2))
	for i, rec := range rows {
		values = append(values, bookingPlaceholders)
		args = append(args, n, i)
		for _, f := range rec.Fields() {
			args = append(args, f)
		}
	}
	if _, err = tx.ExecContext(ctx, insertBookingsPrefix+strings.Join(values, ","), args...); err != nil {
		return fmt.Errorf("insert %d bookings: %w", len(rows), err)
	}
	return tx.Commit()
}

// PruneBatches removes every batch numbered from or above.
func (r *Repo) PruneBatches(ctx context.Context, from int) error {
	_, err := r.db.ExecContext(ctx, pruneBatchesSQL, from)
	return err
}

func (r *Repo) List(ctx context.Context) (bookings.Table, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := bookings.Table{}
	for rows.Next() {
		var rec bookings.Record
		if err := rows.Scan(
			&rec.Hotel, &rec.ArrivalDate, &rec.BookedNights, &rec.Adults, &rec.Children,
			&rec.Babies, &rec.Meal, &rec.Country, &rec.Status, &rec.StatusDate,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Load makes the repository usable as a domain.BookingSource.
func (r *Repo) Load(ctx context.Context) (bookings.Table, error) { return r.List(ctx) }

func (r *Repo) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	rows, err := r.db.QueryContext(ctx, countByStatusSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.StatusCount
	for rows.Next() {
		var sc domain.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
