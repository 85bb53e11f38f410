package sources

import (
	"context"
	"fmt"

	"hotel_bookings/internal/adapters/filesource"
	"hotel_bookings/internal/adapters/remote"
	"hotel_bookings/internal/domain"
	"hotel_bookings/internal/shared"
	mysqlrepo "hotel_bookings/internal/storage/mysql"
)

// FromConfig picks the booking source named by cfg.Source. A MySQL source
// opens its own connection; the returned close func releases it.
func FromConfig(ctx context.Context, cfg shared.Config) (domain.BookingSource, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Source {
	case "", shared.SourceFile:
		return filesource.New(cfg.BookingsFile), noop, nil
	case shared.SourceURL:
		c, err := remote.New(cfg.BookingsURL, cfg.RemoteRPS)
		if err != nil {
			return nil, nil, err
		}
		return c, noop, nil
	case shared.SourceMySQL:
		db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		return mysqlrepo.New(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown BOOKINGS_SOURCE %q", cfg.Source)
	}
}
