package filesource_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"hotel_bookings/internal/adapters/filesource"
	"hotel_bookings/internal/bookings"
)

func TestSource_Load(t *testing.T) {
	p := filepath.Join(t.TempDir(), "booking.txt")
	if err := os.WriteFile(p, []byte("City Hotel;01/22/2017;2;2;0;0;NO;FR;Cancelled;09/20/2022\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	src := filesource.New(p)

	tbl, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tbl) != 1 || tbl[0].Status != "Cancelled" {
		t.Fatalf("unexpected table: %+v", tbl)
	}

	// each Load returns a fresh table
	tbl[0].Status = "changed"
	again, _ := src.Load(context.Background())
	if again[0].Status != "Cancelled" {
		t.Fatalf("expected fresh table, got %+v", again)
	}
}

func TestSource_Defaults(t *testing.T) {
	if got := filesource.New("").Path(); got != bookings.DefaultFile {
		t.Fatalf("expected default path, got %s", got)
	}
	_, err := filesource.New(filepath.Join(t.TempDir(), "missing.txt")).Load(context.Background())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
