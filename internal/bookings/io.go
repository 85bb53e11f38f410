package bookings

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	DefaultFile = "booking.txt"

	// ImportSep separates fields in the source file.
	ImportSep = ";"
	// ExportSep separates fields in exported files. It differs from
	// ImportSep, so an exported file is not read back by Import as is.
	ExportSep = ","
)

// WriteMode selects how Export opens its file.
type WriteMode string

const (
	ModeAppend    WriteMode = "a"
	ModeOverwrite WriteMode = "w"
)

var ErrWrongWriteMode = errors.New("Wrong write mode") //nolint:staticcheck // message is part of the contract

// RowError points at the line of the source that could not be read.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *RowError) Unwrap() error { return e.Err }

// Import reads the booking file at path. An empty path means DefaultFile.
func Import(path string) (Table, error) {
	if path == "" {
		path = DefaultFile
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("import bookings: %w", err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return t, nil
}

// Parse reads one record per line, fields separated by ImportSep.
// Trailing whitespace is dropped and blank lines are skipped.
func Parse(r io.Reader) (Table, error) {
	var (
		t    Table
		line int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), " \t\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec, err := FromFields(strings.Split(text, ImportSep))
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		t = append(t, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if t == nil {
		t = Table{}
	}
	return t, nil
}

func (m WriteMode) valid() bool { return m == ModeAppend || m == ModeOverwrite }

func (m WriteMode) flags() int {
	if m == ModeOverwrite {
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	return os.O_WRONLY | os.O_CREATE | os.O_APPEND
}

// Export writes rows to path, truncating it first for ModeOverwrite or
// appending for ModeAppend. An empty path means DefaultFile.
func Export(rows Table, path string, mode WriteMode) (err error) {
	if !mode.valid() {
		return ErrWrongWriteMode
	}
	if path == "" {
		path = DefaultFile
	}
	f, err := os.OpenFile(path, mode.flags(), 0o644)
	if err != nil {
		return fmt.Errorf("export bookings: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export bookings: %w", cerr)
		}
	}()
	return Write(f, rows)
}

// Write emits each record as its fields joined by ExportSep.
func Write(w io.Writer, rows Table) error {
	bw := bufio.NewWriter(w)
	for _, r := range rows {
		if _, err := bw.WriteString(strings.Join(r.Fields(), ExportSep) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
