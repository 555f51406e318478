package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Kleo07/MindSpaceX/pkg/assessment/types"
)

func TestUpsertAssessment(t *testing.T) {
	var gotAuth string
	var gotBody types.AssessmentDocument

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/assessment/upsert" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "data": gotBody})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		RootURL:       server.URL,
		TokenProvider: func() (string, error) { return "test-token", nil },
	})

	doc := types.AssessmentDocument{
		UserID: "u1",
		Email:  "u1@example.com",
		AssessmentRecord: types.AssessmentRecord{
			Goal: types.StrPtr(types.GOAL_REDUCE_STRESS),
		},
	}
	result, err := client.UpsertAssessment(context.Background(), doc)
	if err != nil {
		t.Fatalf("UpsertAssessment: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("authorization header = %q", gotAuth)
	}
	if gotBody.UserID != "u1" || gotBody.Goal == nil {
		t.Errorf("unexpected payload on the wire: %+v", gotBody)
	}
	if result == nil || result.UserID != "u1" {
		t.Errorf("unexpected result document: %+v", result)
	}
}

func TestUpsertRejectionIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "userId required"})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{RootURL: server.URL})
	_, err := client.UpsertAssessment(context.Background(), types.AssessmentDocument{})
	if err == nil {
		t.Fatal("expected an error for a rejected upsert")
	}
}

func TestFetchAssessmentDistinguishesNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/assessment/u1":
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "data": types.AssessmentDocument{UserID: "u1"}})
		case "/api/assessment/missing":
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "data": nil})
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "server error"})
		}
	}))
	defer server.Close()

	client := NewClient(ClientConfig{RootURL: server.URL})

	doc, found, err := client.FetchAssessment(context.Background(), "u1")
	if err != nil || !found || doc.UserID != "u1" {
		t.Errorf("existing document: doc=%+v found=%v err=%v", doc, found, err)
	}

	doc, found, err = client.FetchAssessment(context.Background(), "missing")
	if err != nil {
		t.Errorf("not-found must not be an error, got %v", err)
	}
	if found || doc != nil {
		t.Errorf("missing document reported as found: %+v", doc)
	}

	_, _, err = client.FetchAssessment(context.Background(), "boom")
	if err == nil {
		t.Error("server error must surface as an error")
	}
}

func TestUpsertAsyncDeliversResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "data": types.AssessmentDocument{UserID: "u1"}})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{RootURL: server.URL})
	select {
	case err := <-client.UpsertAsync(types.AssessmentDocument{UserID: "u1"}):
		if err != nil {
			t.Errorf("async upsert failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("async upsert did not complete")
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "status": "UP"})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{RootURL: server.URL})
	if err := client.Health(context.Background()); err != nil {
		t.Errorf("Health: %v", err)
	}
}
