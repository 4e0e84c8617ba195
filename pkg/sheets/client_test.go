package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAppendValues_sendsRawRows(t *testing.T) {
	t.Parallel()

	var got struct {
		Values [][]any `json:"values"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, ":append") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if !strings.Contains(r.URL.Path, "/spreadsheets/sheet-1/values/") {
			t.Errorf("path = %s", r.URL.Path)
		}
		if v := r.URL.Query().Get("valueInputOption"); v != "RAW" {
			t.Errorf("valueInputOption = %q", v)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"updates":{"updatedRows":2}}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), Config{Endpoint: srv.URL + "/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	n, err := c.AppendValues(context.Background(), "sheet-1", TabRange("Jobs"), [][]any{
		{"Go Developer", "Acme"},
		{"Designer", "Globex"},
	})
	if err != nil {
		t.Fatalf("AppendValues: %v", err)
	}
	if n != 2 {
		t.Errorf("rows = %d, want 2", n)
	}
	if len(got.Values) != 2 || got.Values[0][0] != "Go Developer" {
		t.Errorf("body values = %v", got.Values)
	}
}

func TestClearValues_wrapsAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), Config{Endpoint: srv.URL + "/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	err = c.ClearValues(context.Background(), "sheet-1", ClearRange(""))
	if err == nil || !strings.Contains(err.Error(), "sheets: clear Sheet1!A2:Z") {
		t.Errorf("err = %v", err)
	}
}

func TestNewClient_requiresCredentials(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(context.Background(), Config{}); err == nil {
		t.Error("expected error without credentials")
	}
}

func TestRanges(t *testing.T) {
	t.Parallel()

	if got := TabRange(""); got != "Sheet1!A1" {
		t.Errorf("TabRange = %q", got)
	}
	if got := ClearRange("Jobs"); got != "Jobs!A2:Z" {
		t.Errorf("ClearRange = %q", got)
	}
}
