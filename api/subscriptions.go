package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fiji-flo/basket/types"
)

const (
	pathSubscribe   = "/news/subscribe/"
	pathUnsubscribe = "/news/unsubscribe/{token}/"
	pathRecover     = "/news/recover/"
)

// Subscriptions implements the write side of basket's /news API:
// subscribe, unsubscribe and token recovery.
// See: https://basket.readthedocs.io/newsletter_api.html
type Subscriptions struct {
	api *apiClient
}

func NewSubscriptionsApi(settings Settings) *Subscriptions {
	return &Subscriptions{
		api: newApiClient(settings),
	}
}

// Subscribe is the public self-service subscription; it sends no credential.
// opts may be nil.
func (s *Subscriptions) Subscribe(
	ctx context.Context,
	email string,
	newsletters []string,
	opts *types.SubscribeOptions,
) error {
	return s.subscribe(ctx, email, newsletters, opts, nil)
}

// SubscribePrivate authenticates with the API key, which lets basket
// honor privileged options such as Optin.
func (s *Subscriptions) SubscribePrivate(
	ctx context.Context,
	email string,
	newsletters []string,
	opts *types.SubscribeOptions,
) error {
	return s.subscribe(ctx, email, newsletters, opts, s.api.withApiKey(nil))
}

func (s *Subscriptions) subscribe(
	ctx context.Context,
	email string,
	newsletters []string,
	opts *types.SubscribeOptions,
	query url.Values,
) error {
	req := types.SubscribeRequest{
		Email:       email,
		Newsletters: newsletters,
		Options:     opts,
	}
	return toNilError(s.api.postForm(
		ctx, pathSubscribe, pathSubscribe, query, subscribeForm(req, s.api.flags),
	))
}

// Unsubscribe removes the user identified by token from newsletters.
// With optout set, basket unsubscribes the user from everything.
func (s *Subscriptions) Unsubscribe(
	ctx context.Context,
	token string,
	newsletters []string,
	optout bool,
) error {
	path, err := s.api.tokenPath(http.MethodPost, pathUnsubscribe, token)
	if err != nil {
		return err
	}
	req := types.UnsubscribeRequest{
		Newsletters: newsletters,
		Optout:      optout,
	}
	return toNilError(s.api.postForm(
		ctx, pathUnsubscribe, path, nil, unsubscribeForm(req, s.api.flags),
	))
}

// Recover asks basket to email the user a link to manage their subscriptions.
func (s *Subscriptions) Recover(ctx context.Context, email string) error {
	form := url.Values{}
	form.Set(fieldEmail, email)
	return toNilError(s.api.postForm(ctx, pathRecover, pathRecover, nil, form))
}
