// Package transport is the HTTP client used to talk to the movie API.
//
// Every request goes through Client.Do, which tags it with the session's access
// credential and hands it to the single installed Interceptor. By default the
// interceptor is a Refresher: when a request is rejected with 401 it exchanges
// the renewal credential for a new access credential and replays the request
// exactly once.
//
// # Usage
//
//	store := credentials.NewMemoryStore()
//	client, err := transport.NewClient(
//		"http://localhost:8000/api",
//		store,
//		logger,
//		transport.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	resp, err := client.Do(ctx, &transport.Request{
//		Method: http.MethodGet,
//		Path:   "/favorites/",
//	})
//
// # Error Handling
//
// The package defines several error types:
//
//   - ErrTransport: network failure or 5xx response
//   - ErrAuthExpired: 401 response that could not be recovered
//   - ErrRefreshFailed: the renewal exchange itself failed; credentials were cleared
//   - ValidationError: 400 response carrying per-field messages
//   - APIError: any other non-2xx response
//
// Check RefreshFailedError before ErrAuthExpired: a rejected renewal wraps the
// renewal endpoint's own 401.
//
// # Renewal
//
// Renewal is single-flight. Concurrent requests rejected with the same access
// credential share one call to the renewal endpoint; a request whose credential
// was already replaced replays with the current one without renewing again.
package transport
