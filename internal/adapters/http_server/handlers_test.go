package httpserver_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	httpserver "hotel_bookings/internal/adapters/http_server"
	"hotel_bookings/internal/app"
	"hotel_bookings/internal/bookings"
	"hotel_bookings/internal/domain"
)

type staticSource struct{ t bookings.Table }

func (s staticSource) Load(ctx context.Context) (bookings.Table, error) {
	return append(bookings.Table(nil), s.t...), nil
}

func newTestServer(t *testing.T, opts httpserver.Options) *httptest.Server {
	t.Helper()
	return newTableServer(t, opts, bookings.Table{
		{Hotel: "Resort Hotel", ArrivalDate: "01/22/2017", BookedNights: "4", Adults: "2", Children: "1", Babies: "0", Meal: "YES", Country: "PL", Status: "Check-Out", StatusDate: "09/20/2022"},
		{Hotel: "City Hotel", ArrivalDate: "01/22/2017", BookedNights: "2", Adults: "2", Children: "0", Babies: "0", Meal: "NO", Country: "FR", Status: "Cancelled", StatusDate: "09/20/2022"},
	})
}

func newTableServer(t *testing.T, opts httpserver.Options, table bookings.Table) *httptest.Server {
	t.Helper()
	srv := httpserver.New(opts)
	srv.MountHandlers(&httpserver.Handlers{Q: app.NewQueryService(staticSource{t: table}, nil, time.Minute)})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, rawURL string, hdr map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestByStatus_OKAndETag(t *testing.T) {
	ts := newTestServer(t, httpserver.Options{})

	resp := get(t, ts.URL+"/v1/bookings?status=Cancelled", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	var page domain.BookingsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Total != 1 || page.Items[0].Hotel != "City Hotel" {
		t.Fatalf("unexpected page: %+v", page)
	}

	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}
	again := get(t, ts.URL+"/v1/bookings?status=Cancelled", map[string]string{"If-None-Match": etag})
	if again.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", again.StatusCode)
	}
}

func TestByStatus_Errors(t *testing.T) {
	ts := newTestServer(t, httpserver.Options{})

	if resp := get(t, ts.URL+"/v1/bookings?status=No-Show", nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	resp := get(t, ts.URL+"/v1/bookings", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("unexpected content type %s", ct)
	}
}

func TestByDate(t *testing.T) {
	ts := newTestServer(t, httpserver.Options{})

	q := url.Values{"from": {"01/21/2017"}, "to": {"01/23/2017"}}
	resp := get(t, ts.URL+"/v1/bookings/range?"+q.Encode(), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	var page domain.BookingsPage
	_ = json.NewDecoder(resp.Body).Decode(&page)
	if page.Total != 2 {
		t.Fatalf("expected 2 rows, got %d", page.Total)
	}

	q = url.Values{"from": {"2017-01-21"}, "to": {"01/23/2017"}}
	if resp := get(t, ts.URL+"/v1/bookings/range?"+q.Encode(), nil); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestChildren(t *testing.T) {
	ts := newTestServer(t, httpserver.Options{})

	q := url.Values{"date": {"01/22/2017"}, "hotel": {"Resort Hotel"}}
	resp := get(t, ts.URL+"/v1/bookings/children?"+q.Encode(), nil)
	var out domain.ChildrenCount
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Children != 1 {
		t.Fatalf("expected 1 child, got %+v", out)
	}
}

func TestDisplayAndReservations(t *testing.T) {
	ts := newTestServer(t, httpserver.Options{})

	resp := get(t, ts.URL+"/v1/bookings/display", nil)
	body, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(body), "Resort Hotel|01/22/2017|4|") {
		t.Fatalf("unexpected display body: %q", body)
	}

	q := url.Values{"date": {"01/25/2017"}}
	resp = get(t, ts.URL+"/v1/bookings/reservations?"+q.Encode(), nil)
	body, _ = io.ReadAll(resp.Body)
	if strings.Count(string(body), "\n") != 2 || !strings.Contains(string(body), "01/26/2017") {
		t.Fatalf("unexpected reservations body: %q", body)
	}
}

func TestBadStoredRecordIsServerError(t *testing.T) {
	ts := newTableServer(t, httpserver.Options{}, bookings.Table{
		{Hotel: "Resort Hotel", ArrivalDate: "1/5/2017", BookedNights: "4", Adults: "2", Children: "1", Babies: "0", Meal: "YES", Country: "PL", Status: "Check-Out", StatusDate: "09/20/2022"},
	})

	for _, path := range []string{
		"/v1/bookings/reservations?date=01/05/2017&format=json",
		"/v1/bookings/range?from=01/01/2017&to=12/31/2017",
	} {
		if resp := get(t, ts.URL+path, nil); resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", path, resp.StatusCode)
		}
	}
	// the caller's own bad date is still a 400
	if resp := get(t, ts.URL+"/v1/bookings/reservations?date=1/5/2017", nil); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, httpserver.Options{RPS: 1})

	if resp := get(t, ts.URL+"/healthz", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("first request: %d", resp.StatusCode)
	}
	if resp := get(t, ts.URL+"/healthz", nil); resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
}
