package pkgrouter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNormalizeCID(t *testing.T) {
	if got := normalizeCID("  abc  "); got != "abc" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := normalizeCID("\n"); got != "" {
		t.Fatalf("expected empty for newline, got %q", got)
	}
	long := strings.Repeat("a", 200)
	if got := normalizeCID(long); len(got) != 128 {
		t.Fatalf("expected length 128, got %d", len(got))
	}
}

func TestMaskHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "secret")
	headers.Set("X-Correlation-ID", "ok")

	masked := maskHeaders(headers)
	if got := masked.Get("Authorization"); got != "***" {
		t.Fatalf("expected masked authorization, got %q", got)
	}
	if got := masked.Get("X-Correlation-ID"); got != "ok" {
		t.Fatalf("expected correlation id to stay, got %q", got)
	}
	if got := headers.Get("Authorization"); got != "secret" {
		t.Fatalf("expected original headers unchanged, got %q", got)
	}
}

func TestLoggableBody(t *testing.T) {
	parsed := loggableBody([]byte(`{"token":"secret","transfers":[{"api_key":"k","amount":"10"}]}`))

	m, ok := parsed.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", parsed)
	}
	if m["token"] != "***" {
		t.Fatal("expected masked token")
	}
	item := m["transfers"].([]any)[0].(map[string]any)
	if item["api_key"] != "***" || item["amount"] != "10" {
		t.Fatalf("unexpected nested masking: %v", item)
	}

	if got := loggableBody([]byte{0xff, 0xfe}); got != "<binary body omitted>" {
		t.Fatalf("expected binary body omission, got %v", got)
	}
	if got := loggableBody(nil); got != nil {
		t.Fatalf("expected nil for empty body, got %v", got)
	}
}

func TestMiddlewareLoggingKeepsRequestBody(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	var seen string
	h := middlewareLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Amount string `json:"amount"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		seen = body.Amount
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(`{"amount":"25.50"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "25.50" {
		t.Fatalf("handler saw amount %q", seen)
	}

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log record: %v", err)
	}
	if record["status"] != float64(http.StatusCreated) || record["route"] != "/transfers" {
		t.Fatalf("unexpected log record: %v", record)
	}
}
