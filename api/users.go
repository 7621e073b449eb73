package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fiji-flo/basket/types"
)

const (
	pathUser       = "/news/user/{token}/"
	pathDebugUser  = "/news/debug-user/"
	pathLookupUser = "/news/lookup-user/"
)

// Users implements basket's user record endpoints.
// Read methods return the envelope payload untouched: its shape belongs
// to the service, see the parsers package for typed access.
type Users struct {
	api *apiClient
}

func NewUsersApi(settings Settings) *Users {
	return &Users{
		api: newApiClient(settings),
	}
}

func (u *Users) Get(ctx context.Context, token string) (map[string]any, error) {
	path, err := u.api.tokenPath(http.MethodGet, pathUser, token)
	if err != nil {
		return nil, err
	}
	data, apiErr := u.api.get(ctx, pathUser, path, nil)
	return toNilErr(data, apiErr)
}

// Update sends a partial update: only the fields set in req are transmitted.
func (u *Users) Update(ctx context.Context, token string, req types.UpdateUserRequest) error {
	path, err := u.api.tokenPath(http.MethodPost, pathUser, token)
	if err != nil {
		return err
	}
	return toNilError(u.api.postForm(
		ctx, pathUser, path, nil, updateUserForm(req, u.api.flags),
	))
}

func (u *Users) Debug(ctx context.Context, email string, supertoken string) (map[string]any, error) {
	query := url.Values{}
	query.Set(fieldEmail, email)
	query.Set(fieldSupertoken, supertoken)
	data, apiErr := u.api.get(ctx, pathDebugUser, pathDebugUser, query)
	return toNilErr(data, apiErr)
}

// Lookup finds a user by email. It authenticates with the API key.
func (u *Users) Lookup(ctx context.Context, email string) (map[string]any, error) {
	query := url.Values{}
	query.Set(fieldEmail, email)
	data, apiErr := u.api.get(ctx, pathLookupUser, pathLookupUser, u.api.withApiKey(query))
	return toNilErr(data, apiErr)
}
