// Package catalog provides typed request builders for the movie API's resource
// groups: authentication, movies, favorites, watchlist, ratings and
// recommendations.
//
// Services shape parameters into transport.Request values and decode the
// responses. They hold no state of their own; the one side effect is the
// credential write performed by AuthService on a successful login or
// registration.
package catalog
