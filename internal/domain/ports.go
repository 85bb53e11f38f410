package domain

import (
	"context"

	"hotel_bookings/internal/bookings"
)

// BookingSource yields a fresh booking table on every call.
type BookingSource interface {
	Load(ctx context.Context) (bookings.Table, error)
}

type BookingRepository interface {
	// Write paths
	InsertBatch(ctx context.Context, batch int, rows bookings.Table) error
	PruneBatches(ctx context.Context, from int) error

	// Read paths
	List(ctx context.Context) (bookings.Table, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type ChildrenCount struct {
	Date     string `json:"date"`
	Hotel    string `json:"hotel"`
	Children int    `json:"children"`
}

type BookingsPage struct {
	Items []bookings.Record `json:"items"`
	Total int               `json:"total"`
}
