// Package oktatest is an in-memory Okta tenant for handler tests.
package oktatest

import (
	"context"
	"sync"

	"iga-backend/lib/external-services/okta/oktaclient"
	"iga-backend/models"
	oktaapimodels "iga-backend/models/api/okta"
	dbmodels "iga-backend/models/db"
)

type Fake struct {
	mu sync.Mutex
	// app id -> groups
	AppGroups map[string][]oktaapimodels.Group
	// group id -> members
	GroupUsers map[string][]oktaapimodels.User
	// returned by every call when set
	Err       error
	RemoveErr error
	Removed   []string
	Calls     int
}

func New() *Fake {
	return &Fake{
		AppGroups:  map[string][]oktaapimodels.Group{},
		GroupUsers: map[string][]oktaapimodels.User{},
	}
}

// AddGroup links a group with its members to an app.
func (f *Fake) AddGroup(appID, groupID, name string, emails ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AppGroups[appID] = append(f.AppGroups[appID], oktaapimodels.Group{
		ID:      groupID,
		Profile: oktaapimodels.GroupProfile{Name: name},
	})
	for _, email := range emails {
		f.GroupUsers[groupID] = append(f.GroupUsers[groupID], oktaapimodels.User{
			ID:      "user-" + email,
			Profile: oktaapimodels.UserProfile{Email: email, Login: email},
		})
	}
}

func (f *Fake) Factory() oktaclient.Factory {
	return func(settings dbmodels.SystemSettings) oktaclient.Provider {
		return f
	}
}

func (f *Fake) ListAppGroups(ctx context.Context, appID string) ([]oktaapimodels.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]oktaapimodels.Group{}, f.AppGroups[appID]...), nil
}

func (f *Fake) ListGroupUsers(ctx context.Context, groupID string) ([]oktaapimodels.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]oktaapimodels.User{}, f.GroupUsers[groupID]...), nil
}

func (f *Fake) RemoveUserFromGroup(ctx context.Context, groupID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.Err != nil {
		return f.Err
	}
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	f.Removed = append(f.Removed, groupID+"/"+userID)
	return nil
}

func (f *Fake) CheckCredentials(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	return f.Err
}

// UnavailableError mimics a failed Okta call.
func UnavailableError() error {
	return models.UpstreamError("Okta: unexpected status 503")
}
