package synccoordinator

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Kleo07/MindSpaceX/pkg/assessment/types"
)

// State of the coordinator. Reconciliation is a one-shot per authentication
// event, not continuous background sync.
type State int

const (
	StateIdle State = iota
	StateResolving
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateSettled:
		return "settled"
	}
	return "unknown"
}

// Resolution describes what a reconciliation run did.
type Resolution string

const (
	ResolutionNone          Resolution = "none"
	ResolutionKeptLocal     Resolution = "kept-local"
	ResolutionAppliedRemote Resolution = "applied-remote"
	ResolutionClearedLocal  Resolution = "cleared-local"
)

// LocalCache is the slice of the local store the coordinator depends on.
type LocalCache interface {
	HasAny(namespace string) bool
	LastActiveUser() (string, bool)
	SetLastActiveUser(userID string)
	ClearLastActiveUser()
}

// StateContainer is the slice of the assessment state container the
// coordinator drives.
type StateContainer interface {
	ActivateUser(userID string)
	Replace(record types.AssessmentRecord)
	Clear()
}

// RemoteStore fetches the server side assessment document.
type RemoteStore interface {
	FetchAssessment(ctx context.Context, userID string) (*types.AssessmentDocument, bool, error)
}

// Coordinator decides, once per sign-in or user switch, whether the local
// cache is trustworthy or must be replaced by the remote document. When in
// doubt it fails toward an empty local state: showing a previous user's
// answers is worse than asking the user to redo the assessment.
type Coordinator struct {
	mu        sync.Mutex
	state     State
	container StateContainer
	cache     LocalCache
	remote    RemoteStore

	settledUserID string
}

func NewCoordinator(container StateContainer, cache LocalCache, remote RemoteStore) *Coordinator {
	return &Coordinator{
		state:     StateIdle,
		container: container,
		cache:     cache,
		remote:    remote,
	}
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnAuthChange reconciles local and remote state for the newly authenticated
// user. An empty userID means "not authenticated" and leaves the coordinator
// idle. Calling it again for an already settled user is a no-op.
func (c *Coordinator) OnAuthChange(ctx context.Context, userID string) Resolution {
	c.mu.Lock()
	defer c.mu.Unlock()

	if userID == "" {
		c.state = StateIdle
		c.settledUserID = ""
		return ResolutionNone
	}

	if c.state == StateSettled && c.settledUserID == userID {
		return ResolutionNone
	}

	c.state = StateResolving
	c.container.ActivateUser(userID)

	lastUserID, _ := c.cache.LastActiveUser()
	localHasData := c.cache.HasAny(userID)

	resolution := ResolutionKeptLocal
	if lastUserID != userID || !localHasData {
		resolution = c.resolveFromRemote(ctx, userID)
	}

	c.cache.SetLastActiveUser(userID)
	c.state = StateSettled
	c.settledUserID = userID

	slog.Debug("assessment sync settled",
		slog.String("userId", userID),
		slog.String("resolution", string(resolution)))
	return resolution
}

// OnLogout clears the active user's local state and the last-user marker,
// then returns the coordinator to idle.
func (c *Coordinator) OnLogout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.container.Clear()
	c.cache.ClearLastActiveUser()
	c.container.ActivateUser("")
	c.state = StateIdle
	c.settledUserID = ""
}

// resolveFromRemote pulls the server document. Not-found and fetch errors
// both clear the local cache rather than guessing.
func (c *Coordinator) resolveFromRemote(ctx context.Context, userID string) Resolution {
	doc, found, err := c.remote.FetchAssessment(ctx, userID)
	if err != nil {
		slog.Warn("remote assessment fetch failed, clearing local cache",
			slog.String("userId", userID),
			slog.String("error", err.Error()))
		c.container.Clear()
		return ResolutionClearedLocal
	}
	if !found {
		c.container.Clear()
		return ResolutionClearedLocal
	}

	c.container.Replace(doc.AssessmentRecord)
	return ResolutionAppliedRemote
}
