package api

import (
	"context"
)

const (
	pathNewsletters = "/news/newsletters/"
)

type Newsletters struct {
	api *apiClient
}

func NewNewslettersApi(settings Settings) *Newsletters {
	return &Newsletters{
		api: newApiClient(settings),
	}
}

// All returns the newsletter listing payload, keyed by "newsletters".
func (n *Newsletters) All(ctx context.Context) (map[string]any, error) {
	data, apiErr := n.api.get(ctx, pathNewsletters, pathNewsletters, nil)
	return toNilErr(data, apiErr)
}
