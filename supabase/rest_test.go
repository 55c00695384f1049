package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSelectBuildsPostgRESTQuery(t *testing.T) {
	var gotPath, gotQuery string
	var gotAuth, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"audio-21"},{"id":"audio-45"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	var rows []struct {
		ID string `json:"id"`
	}
	err := client.Select(context.Background(), "audio_tracks", "id",
		[]Filter{Like("id", "audio-%")},
		&Order{Column: "created_at", Ascending: false},
		&rows)
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}

	if gotPath != "/rest/v1/audio_tracks" {
		t.Errorf("path = %q", gotPath)
	}
	wantQuery := "id=like.audio-%25&order=created_at.desc&select=id"
	if gotQuery != wantQuery {
		t.Errorf("query = %q, want %q", gotQuery, wantQuery)
	}
	if gotKey != "anon-key" || gotAuth != "Bearer anon-key" {
		t.Errorf("auth headers = %q / %q", gotKey, gotAuth)
	}
	if len(rows) != 2 || rows[0].ID != "audio-21" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestSelectOneNoRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/vnd.pgrst.object+json" {
			t.Errorf("Accept header = %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotAcceptable)
		w.Write([]byte(`{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	var row struct{}
	err := client.SelectOne(context.Background(), "allowed_moderators", "artist_name",
		[]Filter{Eq("artist_name", "Nobody")}, &row)
	if err == nil {
		t.Fatal("SelectOne succeeded on no rows")
	}
	if !IsNoRows(err) {
		t.Errorf("IsNoRows(%v) = false", err)
	}
	if IsDuplicate(err) {
		t.Errorf("IsDuplicate(%v) = true", err)
	}
}

func TestInsertDuplicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"code":"23505","message":"duplicate key value violates unique constraint"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	err := client.Insert(context.Background(), "audio_tracks", map[string]string{"id": "audio-26"})
	if err == nil {
		t.Fatal("Insert succeeded on duplicate key")
	}
	if !IsDuplicate(err) {
		t.Errorf("IsDuplicate(%v) = false", err)
	}
}

func TestDeleteNoMatchIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %q", r.Method)
		}
		if got := r.URL.Query().Get("id"); got != "eq.pen-gone" {
			t.Errorf("id filter = %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	if err := client.Delete(context.Background(), "pending_tracks", []Filter{Eq("id", "pen-gone")}); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
}

func TestCountParsesContentRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %q", r.Method)
		}
		if got := r.Header.Get("Prefer"); got != "count=exact" {
			t.Errorf("Prefer header = %q", got)
		}
		w.Header().Set("Content-Range", "0-24/57")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	n, err := client.Count(context.Background(), "audio_tracks", nil)
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if n != 57 {
		t.Errorf("Count = %d, want 57", n)
	}
}

func TestCountEmptyTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Range", "*/0")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	n, err := client.Count(context.Background(), "pending_tracks", nil)
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}

func TestErrorsPassThroughUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message":"upstream connect error"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "anon-key")

	var rows []struct{}
	err := client.Select(context.Background(), "audio_tracks", "*", nil, nil, &rows)
	if err == nil {
		t.Fatal("Select succeeded on a failing store")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.Status != http.StatusServiceUnavailable || apiErr.Message != "upstream connect error" {
		t.Errorf("error = %+v", apiErr)
	}
}
