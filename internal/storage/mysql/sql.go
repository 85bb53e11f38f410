package mysql

// Values stay strings, exactly as read from the booking file.
const insertBookingsPrefix = "INSERT INTO bookings\n" +
	"  (batch_no, seq, hotel, arrival_date, booked_nights, adults, children, babies, meal, country, reservation_status, reservation_status_date)\n" +
	"VALUES "

const bookingPlaceholders = "(?,?,?,?,?,?,?,?,?,?,?,?)"

const deleteBatchSQL = `DELETE FROM bookings WHERE batch_no = ?`

const pruneBatchesSQL = `DELETE FROM bookings WHERE batch_no >= ?`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// File order is (batch_no, seq).
const listBookingsSQL = `
SELECT hotel, arrival_date, booked_nights, adults, children, babies,
       meal, country, reservation_status, reservation_status_date
FROM bookings
ORDER BY batch_no, seq
`

const countByStatusSQL = `
SELECT reservation_status, COUNT(*)
FROM bookings
GROUP BY reservation_status
ORDER BY reservation_status
`
