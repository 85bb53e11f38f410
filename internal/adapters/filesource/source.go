package filesource

import (
	"context"

	"hotel_bookings/internal/bookings"
)

// Source reads the booking file from disk on every Load.
type Source struct{ path string }

func New(path string) *Source {
	if path == "" {
		path = bookings.DefaultFile
	}
	return &Source{path: path}
}

func (s *Source) Path() string { return s.path }

func (s *Source) Load(ctx context.Context) (bookings.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return bookings.Import(s.path)
}
