package app

import (
	"context"
	"time"

	apiclient "github.com/Kleo07/MindSpaceX/pkg/api-client"
	"github.com/Kleo07/MindSpaceX/pkg/assessment/scoring"
	"github.com/Kleo07/MindSpaceX/pkg/assessment/state"
	"github.com/Kleo07/MindSpaceX/pkg/assessment/types"
	localstore "github.com/Kleo07/MindSpaceX/pkg/local-store"
	synccoordinator "github.com/Kleo07/MindSpaceX/pkg/sync-coordinator"
)

type Config struct {
	CacheDBPath    string
	ServerRootURL  string
	RequestTimeout time.Duration
	TokenProvider  apiclient.TokenProvider
}

// App is the client side composition root: the local cache, the state
// container, the API client and the sync coordinator constructed once and
// handed to the UI layer. Screens talk to the App, never to the stores
// directly.
type App struct {
	Store       *localstore.Store
	Container   *state.Container
	Client      *apiclient.Client
	Coordinator *synccoordinator.Coordinator

	userID string
	email  string
}

func New(config Config) (*App, error) {
	store, err := localstore.Open(config.CacheDBPath)
	if err != nil {
		return nil, err
	}

	container := state.NewContainer(store)
	client := apiclient.NewClient(apiclient.ClientConfig{
		RootURL:       config.ServerRootURL,
		Timeout:       config.RequestTimeout,
		TokenProvider: config.TokenProvider,
	})
	coordinator := synccoordinator.NewCoordinator(container, store, client)

	return &App{
		Store:       store,
		Container:   container,
		Client:      client,
		Coordinator: coordinator,
	}, nil
}

// OnUserAuthenticated runs the login-time reconciliation for the signed-in
// user and remembers the identity for subsequent saves.
func (a *App) OnUserAuthenticated(ctx context.Context, userID string, email string) synccoordinator.Resolution {
	a.userID = userID
	a.email = email
	return a.Coordinator.OnAuthChange(ctx, userID)
}

// SaveStep records one wizard step's answers: the update is merged into the
// container (which persists the local snapshot) and the full record is pushed
// to the server in the background. Navigation never waits on the server.
func (a *App) SaveStep(update types.AssessmentRecord) <-chan error {
	a.Container.Set(update)
	return a.pushSnapshot()
}

// SaveAll pushes the current full record to the server, used by the final
// summary screen.
func (a *App) SaveAll() <-chan error {
	return a.pushSnapshot()
}

// WellnessScore computes the score of the current record for the dashboard.
func (a *App) WellnessScore() int {
	return scoring.WellnessScore(a.Container.Record())
}

// OnLogout clears the user's local state and forgets the active identity.
func (a *App) OnLogout() {
	a.Coordinator.OnLogout()
	a.userID = ""
	a.email = ""
}

func (a *App) Close() error {
	return a.Store.Close()
}

func (a *App) pushSnapshot() <-chan error {
	doc := types.AssessmentDocument{
		UserID:           a.userID,
		Email:            a.email,
		AssessmentRecord: a.Container.Record(),
	}
	return a.Client.UpsertAsync(doc)
}
