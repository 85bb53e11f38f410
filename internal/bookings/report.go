package bookings

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// DisplaySep joins the fields of a displayed record.
const DisplaySep = "|"

// Display writes every record, raw fields joined by DisplaySep, one per line.
func Display(w io.Writer, rows Table) error {
	for _, r := range rows {
		if _, err := io.WriteString(w, strings.Join(r.Fields(), DisplaySep)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

var reservationHeader = []string{"hotel", "check in", "check out", "adults", "children", "babies", "status"}

// Reservation is one line of the reservation view.
type Reservation struct {
	Hotel    string    `json:"hotel"`
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
	Adults   string    `json:"adults"`
	Children string    `json:"children"`
	Babies   string    `json:"babies"`
	Status   string    `json:"status"`
}

// Covers reports whether the stay includes day d. A zero-night stay
// covers its arrival day only.
func (r Reservation) Covers(d time.Time) bool {
	if d.Equal(r.CheckIn) {
		return true
	}
	return d.After(r.CheckIn) && d.Before(r.CheckOut)
}

// Reservations derives the reservation view of rows. With a non-empty
// date (MM/DD/YYYY) only stays covering that day are kept.
func Reservations(rows Table, date string) ([]Reservation, error) {
	var (
		day    time.Time
		filter = date != ""
	)
	if filter {
		d, err := time.Parse(DateLayout, date)
		if err != nil {
			return nil, &DateError{Value: date, Err: err}
		}
		day = d
	}

	out := []Reservation{}
	for i, r := range rows {
		in, err := r.CheckIn()
		if err != nil {
			return nil, &RecordError{Index: i, Err: err}
		}
		co, err := r.CheckOut()
		if err != nil {
			return nil, &RecordError{Index: i, Err: err}
		}
		res := Reservation{
			Hotel:    r.Hotel,
			CheckIn:  in,
			CheckOut: co,
			Adults:   r.Adults,
			Children: r.Children,
			Babies:   r.Babies,
			Status:   r.Status,
		}
		if filter && !res.Covers(day) {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

// RenderReservations writes the reservation view as an aligned table:
//
//	hotel        | check in   | check out  | adults | children | babies | status
//	Resort Hotel | 01/22/2017 | 01/26/2017 | 2      | 0        | 0      | Check-Out
func RenderReservations(w io.Writer, rows Table, date string) error {
	res, err := Reservations(rows, date)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.Debug)
	writeRow := func(cells []string) {
		fmt.Fprintln(tw, strings.Join(cells, "\t "))
	}
	writeRow(reservationHeader)
	for _, r := range res {
		writeRow([]string{
			r.Hotel,
			r.CheckIn.Format(DateLayout),
			r.CheckOut.Format(DateLayout),
			r.Adults, r.Children, r.Babies, r.Status,
		})
	}
	return tw.Flush()
}
