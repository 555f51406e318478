package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Kleo07/MindSpaceX/pkg/assessment/types"
	synccoordinator "github.com/Kleo07/MindSpaceX/pkg/sync-coordinator"
)

type fakeBackend struct {
	mu       sync.Mutex
	docs     map[string]types.AssessmentDocument
	upserted int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{docs: map[string]types.AssessmentDocument{}}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/assessment/upsert", func(w http.ResponseWriter, r *http.Request) {
		var doc types.AssessmentDocument
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "bad payload"})
			return
		}
		b.mu.Lock()
		prev := b.docs[doc.UserID]
		doc.AssessmentRecord = types.Merge(prev.AssessmentRecord, doc.AssessmentRecord)
		b.docs[doc.UserID] = doc
		b.upserted++
		b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "data": doc})
	})
	mux.HandleFunc("GET /api/assessment/{userId}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		doc, ok := b.docs[r.PathValue("userId")]
		b.mu.Unlock()
		if !ok {
			json.NewEncoder(w).Encode(map[string]any{"ok": true, "data": nil})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "data": doc})
	})
	return mux
}

func newTestApp(t *testing.T, serverURL string) *App {
	t.Helper()
	a, err := New(Config{
		CacheDBPath:    filepath.Join(t.TempDir(), "cache.db"),
		ServerRootURL:  serverURL,
		RequestTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("constructing app: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestSaveStepMergesAndPushes(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	a := newTestApp(t, server.URL)
	a.OnUserAuthenticated(context.Background(), "u1", "u1@example.com")

	if err := <-a.SaveStep(types.AssessmentRecord{Goal: types.StrPtr(types.GOAL_REDUCE_STRESS)}); err != nil {
		t.Fatalf("saving step: %v", err)
	}
	if err := <-a.SaveStep(types.AssessmentRecord{Mood: types.StrPtr(types.MOOD_HAPPY)}); err != nil {
		t.Fatalf("saving step: %v", err)
	}

	record := a.Container.Record()
	if record.Goal == nil || *record.Goal != types.GOAL_REDUCE_STRESS {
		t.Errorf("goal not kept after second step: %+v", record)
	}
	if record.Mood == nil || *record.Mood != types.MOOD_HAPPY {
		t.Errorf("mood not merged: %+v", record)
	}

	backend.mu.Lock()
	remote := backend.docs["u1"]
	backend.mu.Unlock()
	if remote.AssessmentRecord.Goal == nil || remote.AssessmentRecord.Mood == nil {
		t.Errorf("server document incomplete: %+v", remote.AssessmentRecord)
	}
}

func TestLoginOnFreshDeviceAppliesRemote(t *testing.T) {
	backend := newFakeBackend()
	backend.docs["u1"] = types.AssessmentDocument{
		UserID: "u1",
		AssessmentRecord: types.AssessmentRecord{
			Goal: types.StrPtr(types.GOAL_AI_THERAPY),
		},
	}
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	a := newTestApp(t, server.URL)
	resolution := a.OnUserAuthenticated(context.Background(), "u1", "u1@example.com")
	if resolution != synccoordinator.ResolutionAppliedRemote {
		t.Fatalf("resolution = %v, want applied-remote", resolution)
	}

	record := a.Container.Record()
	if record.Goal == nil || *record.Goal != types.GOAL_AI_THERAPY {
		t.Errorf("remote record not applied: %+v", record)
	}
}

func TestWellnessScoreFollowsRecord(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	a := newTestApp(t, server.URL)
	a.OnUserAuthenticated(context.Background(), "u1", "u1@example.com")

	if got := a.WellnessScore(); got != 0 {
		t.Fatalf("score of empty record = %d, want 0", got)
	}

	<-a.SaveStep(types.AssessmentRecord{
		Goal: types.StrPtr(types.GOAL_REDUCE_STRESS),
		Mood: types.StrPtr(types.MOOD_HAPPY),
	})
	if got := a.WellnessScore(); got != 45 {
		t.Errorf("score = %d, want 45", got)
	}
}

func TestLogoutClearsState(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend.handler())
	defer server.Close()

	a := newTestApp(t, server.URL)
	a.OnUserAuthenticated(context.Background(), "u1", "u1@example.com")
	<-a.SaveStep(types.AssessmentRecord{Goal: types.StrPtr(types.GOAL_TRYING_OUT)})

	a.OnLogout()

	if !a.Container.Record().IsEmpty() {
		t.Errorf("record not empty after logout: %+v", a.Container.Record())
	}
	if a.Coordinator.State() != synccoordinator.StateIdle {
		t.Errorf("coordinator state = %v, want idle", a.Coordinator.State())
	}
}
