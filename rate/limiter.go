package rate

import "net/http"

// Limiter is a hook called with every prepared request right before
// it is sent to basket.
//
// The client applies no rate limiting policy of its own. Callers that
// share a basket instance with other services can plug in a token
// bucket, a shared quota, or anything that blocks until the request
// may go out:
//
//	type bucket struct{ l *rate.Limiter } // golang.org/x/time/rate
//
//	func (b bucket) Limit(req *http.Request) {
//	    _ = b.l.Wait(req.Context())
//	}
//
//	client := basket.NewClient(apiKey, baseUrl, basket.WithRateLimiter(bucket{l}))
type Limiter interface {
	// Limit may block. The request's method and URL path can be used
	// to apply different limits to different endpoints.
	Limit(req *http.Request)
}
