package transport

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/s0up4200/marquee/credentials"
)

// TokenPair is the credential pair issued by the token endpoints.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Refresher renews the access credential when a request is rejected with 401
// and replays the request once.
type Refresher struct {
	send   Handler
	store  credentials.Store
	logger zerolog.Logger
	group  singleflight.Group
}

// NewRefresher creates a Refresher that calls the renewal endpoint through send.
// send must not itself be intercepted.
func NewRefresher(send Handler, store credentials.Store, logger zerolog.Logger) *Refresher {
	return &Refresher{
		send:   send,
		store:  store,
		logger: logger,
	}
}

// Intercept implements Interceptor.
func (r *Refresher) Intercept(next Handler) Handler {
	return func(ctx context.Context, req *Request) (*Response, error) {
		resp, err := next(ctx, req)
		if err == nil || req.Anonymous || req.retried || !isUnauthorized(err) {
			return resp, err
		}
		req.retried = true

		renewal, ok := r.store.Renewal()
		if !ok {
			r.logger.Debug().Str("path", req.Path).Msg("Access credential rejected and no renewal credential available")
			r.dropRejected(req.sentToken)
			return nil, err
		}

		if err := r.renew(ctx, req.sentToken, renewal); err != nil {
			return nil, err
		}

		return next(ctx, req)
	}
}

// renew exchanges the renewal credential unless another request already
// replaced the rejected access credential. Concurrent callers share one exchange.
func (r *Refresher) renew(ctx context.Context, rejected, renewal string) error {
	if current, ok := r.store.Access(); ok && current != rejected {
		return nil
	}

	_, err, shared := r.group.Do(renewal, func() (any, error) {
		// A flight that finished just before this one started has already
		// stored a replacement.
		if current, ok := r.store.Access(); ok && current != rejected {
			return nil, nil
		}
		return nil, r.exchange(context.WithoutCancel(ctx), renewal)
	})
	if shared {
		r.logger.Debug().Msg("Joined in-flight credential renewal")
	}
	return err
}

// exchange calls the renewal endpoint and persists the result. On any failure
// both credentials are cleared.
func (r *Refresher) exchange(ctx context.Context, renewal string) error {
	resp, err := r.send(ctx, &Request{
		Method:    http.MethodPost,
		Path:      RefreshPath,
		Body:      refreshRequest{Refresh: renewal},
		Anonymous: true,
	})
	if err != nil {
		return r.fail(err)
	}

	var tokens TokenPair
	if err := resp.Decode(&tokens); err != nil {
		return r.fail(err)
	}
	if tokens.Access == "" {
		return r.fail(fmt.Errorf("renewal response carried no access token"))
	}

	// Servers that rotate renewal credentials return a new one.
	if tokens.Refresh == "" {
		tokens.Refresh = renewal
	}
	if err := r.store.Save(tokens.Access, tokens.Refresh); err != nil {
		return r.fail(err)
	}

	r.logger.Info().Msg("Renewed access credential")
	return nil
}

func (r *Refresher) fail(err error) error {
	if clearErr := r.store.Clear(); clearErr != nil {
		r.logger.Error().Err(clearErr).Msg("Failed to clear credentials")
	}
	r.logger.Warn().Err(err).Msg("Credential renewal failed, re-authentication required")
	return &RefreshFailedError{Err: err}
}

// dropRejected forgets an access credential the server refused, unless it has
// been replaced in the meantime.
func (r *Refresher) dropRejected(rejected string) {
	if rejected == "" {
		return
	}
	if current, ok := r.store.Access(); ok && current == rejected {
		if err := r.store.Clear(); err != nil {
			r.logger.Error().Err(err).Msg("Failed to clear rejected credential")
		}
	}
}
