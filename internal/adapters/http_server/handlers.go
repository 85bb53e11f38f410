package httpserver

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"hotel_bookings/internal/app"
	"hotel_bookings/internal/bookings"
)

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/bookings", h.byStatus)
	s.mux.Get("/v1/bookings/range", h.byDate)
	s.mux.Get("/v1/bookings/children", h.children)
	s.mux.Get("/v1/bookings/display", h.display)
	s.mux.Get("/v1/bookings/reservations", h.reservations)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps query errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bookings.ErrBadRecord):
		// the request was fine, the stored data is not
		log.Error().Err(err).Msg("booking data contains a malformed record")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "booking data contains a malformed record")
	case errors.Is(err, bookings.ErrStatusNotPresent):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, bookings.ErrDateFormat):
		writeProblem(w, http.StatusBadRequest, "Invalid date", err.Error())
	default:
		log.Error().Err(err).Msg("booking query failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "booking data unavailable")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

func writeText(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write text body")
	}
}

func (h *Handlers) byStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		writeProblem(w, http.StatusBadRequest, "Missing status", "status query parameter is required")
		return
	}
	out, err := h.Q.ByStatus(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) byDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		writeProblem(w, http.StatusBadRequest, "Missing range", "from and to (MM/DD/YYYY) are required")
		return
	}
	out, err := h.Q.ByDate(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) children(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, hotel := q.Get("date"), q.Get("hotel")
	if date == "" || hotel == "" {
		writeProblem(w, http.StatusBadRequest, "Missing parameters", "date and hotel are required")
		return
	}
	out, err := h.Q.Children(r.Context(), date, hotel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) display(w http.ResponseWriter, r *http.Request) {
	t, err := h.Q.Table(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := bookings.Display(&buf, t); err != nil {
		writeError(w, err)
		return
	}
	writeText(w, buf.Bytes())
}

func (h *Handlers) reservations(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if r.URL.Query().Get("format") == "json" {
		out, err := h.Q.Reservations(r.Context(), date)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, r, out)
		return
	}

	t, err := h.Q.Table(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := bookings.RenderReservations(&buf, t, date); err != nil {
		writeError(w, err)
		return
	}
	writeText(w, buf.Bytes())
}
