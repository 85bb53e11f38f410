package bookings

import "errors"

var ErrStatusNotPresent = errors.New("Status is not present in list") //nolint:staticcheck // message is part of the contract

// ByStatus returns the records whose Status equals status exactly.
// Finding none is an error, also for an empty table.
func ByStatus(rows Table, status string) (Table, error) {
	out := Table{}
	for _, r := range rows {
		if r.Status == status {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, ErrStatusNotPresent
	}
	return out, nil
}

// ByDate returns the records arriving strictly after dateIn and strictly
// before dateOut, compared by DateKey. No match gives an empty table.
func ByDate(rows Table, dateIn, dateOut string) (Table, error) {
	from, err := DateKey(dateIn)
	if err != nil {
		return nil, err
	}
	to, err := DateKey(dateOut)
	if err != nil {
		return nil, err
	}
	out := Table{}
	for i, r := range rows {
		k, err := r.ArrivalKey()
		if err != nil {
			return nil, &RecordError{Index: i, Err: err}
		}
		if from < k && k < to {
			out = append(out, r)
		}
	}
	return out, nil
}

// ChildrenOn sums the children of every record arriving on date at hotel.
func ChildrenOn(rows Table, date, hotel string) (int, error) {
	total := 0
	for i, r := range rows {
		if r.ArrivalDate != date || r.Hotel != hotel {
			continue
		}
		n, err := r.ChildrenCount()
		if err != nil {
			return 0, &RecordError{Index: i, Err: err}
		}
		total += n
	}
	return total, nil
}
