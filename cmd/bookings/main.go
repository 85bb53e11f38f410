// Command bookings queries a booking file from the command line.
//
//	bookings [-file booking.txt] status Cancelled
//	bookings range 01/01/2017 02/01/2017
//	bookings children 01/22/2017 "Resort Hotel"
//	bookings display
//	bookings reservations [01/23/2017]
//	bookings export out.txt [w|a]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hotel_bookings/internal/adapters/observability"
	"hotel_bookings/internal/adapters/sources"
	"hotel_bookings/internal/app"
	"hotel_bookings/internal/bookings"
	"hotel_bookings/internal/shared"
)

var errUsage = errors.New("usage")

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	observability.SetLevel(cfg.LogLevel)

	fs := flag.NewFlagSet("bookings", flag.ExitOnError)
	file := fs.String("file", cfg.BookingsFile, "booking file (semicolon separated)")
	_ = fs.Parse(os.Args[1:])
	cfg.BookingsFile = *file

	if err := run(context.Background(), cfg, fs.Args(), os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "usage: bookings [-file path] status|range|children|display|reservations|export ...")
			os.Exit(2)
		}
		log.Error().Err(err).Msg("bookings failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg shared.Config, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	src, closeSrc, err := sources.FromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeSrc() }()
	q := app.NewQueryService(src, nil, 0)

	cmd, rest := args[0], args[1:]
	switch {
	case cmd == "status" && len(rest) == 1:
		page, err := q.ByStatus(ctx, rest[0])
		if err != nil {
			return err
		}
		return bookings.Display(out, page.Items)

	case cmd == "range" && len(rest) == 2:
		page, err := q.ByDate(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		return bookings.Display(out, page.Items)

	case cmd == "children" && len(rest) == 2:
		c, err := q.Children(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, c.Children)
		return err

	case cmd == "display" && len(rest) == 0:
		t, err := q.Table(ctx)
		if err != nil {
			return err
		}
		return bookings.Display(out, t)

	case cmd == "reservations" && len(rest) <= 1:
		date := ""
		if len(rest) == 1 {
			date = rest[0]
		}
		t, err := q.Table(ctx)
		if err != nil {
			return err
		}
		return bookings.RenderReservations(out, t, date)

	case cmd == "export" && (len(rest) == 1 || len(rest) == 2):
		mode := bookings.ModeAppend
		if len(rest) == 2 {
			mode = bookings.WriteMode(rest[1])
		}
		n, err := app.NewExportService(src).Export(ctx, rest[0], mode)
		if err != nil {
			return err
		}
		log.Info().Int("rows", n).Str("path", rest[0]).Str("mode", string(mode)).Msg("exported")
		return nil
	}
	return errUsage
}
