package bookings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NumFields is the column count of a booking line:
// hotel;arrival_date;booked_nights;adults;children;babies;meal;country;reservation_status;reservation_status_date
const NumFields = 10

// DateLayout is the MM/DD/YYYY layout used by arrival and status dates.
const DateLayout = "01/02/2006"

var (
	ErrFieldCount = errors.New("bookings: wrong field count")
	ErrDateFormat = errors.New("bookings: malformed date")
	// ErrBadRecord marks a failure caused by a stored record rather than
	// by the arguments of the call.
	ErrBadRecord = errors.New("bookings: bad record")
)

// Record is one booking. Values are kept exactly as read from the file;
// numeric and date views are parsed when asked for.
type Record struct {
	Hotel        string `json:"hotel"`
	ArrivalDate  string `json:"arrival_date"`
	BookedNights string `json:"booked_nights"`
	Adults       string `json:"adults"`
	Children     string `json:"children"`
	Babies       string `json:"babies"`
	Meal         string `json:"meal"`
	Country      string `json:"country"`
	Status       string `json:"reservation_status"`
	StatusDate   string `json:"reservation_status_date"`
}

// Table is an ordered list of records, in file line order.
type Table []Record

// FromFields builds a Record from its positional fields.
func FromFields(f []string) (Record, error) {
	if len(f) != NumFields {
		return Record{}, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(f), NumFields)
	}
	return Record{
		Hotel:        f[0],
		ArrivalDate:  f[1],
		BookedNights: f[2],
		Adults:       f[3],
		Children:     f[4],
		Babies:       f[5],
		Meal:         f[6],
		Country:      f[7],
		Status:       f[8],
		StatusDate:   f[9],
	}, nil
}

// Fields returns the record in file column order.
func (r Record) Fields() []string {
	return []string{
		r.Hotel, r.ArrivalDate, r.BookedNights, r.Adults, r.Children,
		r.Babies, r.Meal, r.Country, r.Status, r.StatusDate,
	}
}

func (r Record) ChildrenCount() (int, error) {
	n, err := strconv.Atoi(r.Children)
	if err != nil {
		return 0, fmt.Errorf("children of %q on %s: %w", r.Hotel, r.ArrivalDate, err)
	}
	return n, nil
}

func (r Record) Nights() (int, error) {
	n, err := strconv.Atoi(r.BookedNights)
	if err != nil {
		return 0, fmt.Errorf("booked nights of %q on %s: %w", r.Hotel, r.ArrivalDate, err)
	}
	return n, nil
}

func (r Record) ArrivalKey() (int, error) { return DateKey(r.ArrivalDate) }

// CheckIn parses the arrival date as a calendar date.
func (r Record) CheckIn() (time.Time, error) {
	t, err := time.Parse(DateLayout, r.ArrivalDate)
	if err != nil {
		return time.Time{}, &DateError{Value: r.ArrivalDate, Err: err}
	}
	return t, nil
}

// CheckOut is the arrival date plus the booked nights.
func (r Record) CheckOut() (time.Time, error) {
	in, err := r.CheckIn()
	if err != nil {
		return time.Time{}, err
	}
	n, err := r.Nights()
	if err != nil {
		return time.Time{}, err
	}
	return in.AddDate(0, 0, n), nil
}

// RecordError wraps a parse failure of the record at Index in a table.
type RecordError struct {
	Index int
	Err   error
}

func (e *RecordError) Error() string { return fmt.Sprintf("record %d: %v", e.Index, e.Err) }

func (e *RecordError) Unwrap() []error { return []error{ErrBadRecord, e.Err} }

// DateError reports a date string that could not be turned into a key.
type DateError struct {
	Value string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrDateFormat, e.Value, e.Err)
}

func (e *DateError) Unwrap() []error { return []error{ErrDateFormat, e.Err} }

// DateKey turns "MM/DD/YYYY" into the integer formed by the digits
// year, month, day in that order, e.g. "01/22/2017" -> 20170122.
// Components are concatenated as written, not zero padded.
func DateKey(s string) (int, error) {
	p := strings.Split(s, "/")
	if len(p) != 3 {
		return 0, &DateError{Value: s, Err: fmt.Errorf("want 3 components, got %d", len(p))}
	}
	for _, c := range p {
		if c == "" {
			return 0, &DateError{Value: s, Err: errors.New("empty component")}
		}
	}
	k, err := strconv.Atoi(p[2] + p[0] + p[1])
	if err != nil {
		return 0, &DateError{Value: s, Err: err}
	}
	return k, nil
}
