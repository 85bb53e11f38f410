package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"hotel_bookings/internal/adapters/observability"
	"hotel_bookings/internal/bookings"
	"hotel_bookings/internal/domain"
)

type QueryService struct {
	src      domain.BookingSource
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewQueryService wires the queries to a source. c may be nil to disable caching.
func NewQueryService(src domain.BookingSource, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{src: src, cache: c, cacheTTL: ttl}
}

// Table loads the current booking table, uncached.
func (s *QueryService) Table(ctx context.Context) (bookings.Table, error) {
	return s.src.Load(ctx)
}

func (s *QueryService) ByStatus(ctx context.Context, status string) (domain.BookingsPage, error) {
	return cached(ctx, s, "status", cacheKey("status", url.Values{"status": {status}}), func(t bookings.Table) (domain.BookingsPage, error) {
		rows, err := bookings.ByStatus(t, status)
		if err != nil {
			return domain.BookingsPage{}, err
		}
		return domain.BookingsPage{Items: rows, Total: len(rows)}, nil
	})
}

func (s *QueryService) ByDate(ctx context.Context, from, to string) (domain.BookingsPage, error) {
	return cached(ctx, s, "dates", cacheKey("dates", url.Values{"from": {from}, "to": {to}}), func(t bookings.Table) (domain.BookingsPage, error) {
		rows, err := bookings.ByDate(t, from, to)
		if err != nil {
			return domain.BookingsPage{}, err
		}
		return domain.BookingsPage{Items: rows, Total: len(rows)}, nil
	})
}

func (s *QueryService) Children(ctx context.Context, date, hotel string) (domain.ChildrenCount, error) {
	return cached(ctx, s, "children", cacheKey("children", url.Values{"date": {date}, "hotel": {hotel}}), func(t bookings.Table) (domain.ChildrenCount, error) {
		n, err := bookings.ChildrenOn(t, date, hotel)
		if err != nil {
			return domain.ChildrenCount{}, err
		}
		return domain.ChildrenCount{Date: date, Hotel: hotel, Children: n}, nil
	})
}

func (s *QueryService) Reservations(ctx context.Context, date string) ([]bookings.Reservation, error) {
	return cached(ctx, s, "reservations", cacheKey("reservations", url.Values{"date": {date}}), func(t bookings.Table) ([]bookings.Reservation, error) {
		return bookings.Reservations(t, date)
	})
}

// Invalidate drops every cached result.
func (s *QueryService) Invalidate(ctx context.Context) error {
	return bumpGeneration(ctx, s.cache)
}

// cacheKey escapes every argument, so distinct argument lists never share
// a key even when a value contains ':' or '&'.
func cacheKey(op string, args url.Values) string {
	return op + "?" + args.Encode()
}

// cached serves key from the cache, or loads the table, runs q and stores
// the result. Errors are never cached.
func cached[T any](ctx context.Context, s *QueryService, op, key string, q func(bookings.Table) (T, error)) (T, error) {
	var zero T
	if s.cache != nil {
		key = fmt.Sprintf("bookings:%d:%s", generation(ctx, s.cache), key)
		var out T
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			observability.ObserveQuery(op, "cached")
			return out, nil
		}
	}

	t, err := s.src.Load(ctx)
	if err != nil {
		observability.ObserveQuery(op, "error")
		return zero, err
	}
	out, err := q(t)
	if err != nil {
		observability.ObserveQuery(op, resultLabel(err))
		return zero, err
	}
	observability.ObserveQuery(op, "ok")

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, bookings.ErrBadRecord):
		return "bad_data"
	case errors.Is(err, bookings.ErrStatusNotPresent):
		return "not_found"
	case errors.Is(err, bookings.ErrDateFormat):
		return "bad_input"
	default:
		return "error"
	}
}

const generationKey = "bookings:generation"

// generation is the current cache namespace; results stored under an
// older one are unreachable after bumpGeneration.
func generation(ctx context.Context, c domain.Cache) int64 {
	var g int64
	if ok, err := c.Get(ctx, generationKey, &g); err != nil || !ok {
		return 0
	}
	return g
}

func bumpGeneration(ctx context.Context, c domain.Cache) error {
	if c == nil {
		return nil
	}
	return c.Set(ctx, generationKey, time.Now().UnixNano(), 0)
}
