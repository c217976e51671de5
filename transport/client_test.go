package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/credentials"
)

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		baseURL string
		store   credentials.Store
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			baseURL: "http://localhost:8000/api/",
			store:   credentials.NewMemoryStore(),
		},
		{
			name:    "missing URL",
			baseURL: "",
			store:   credentials.NewMemoryStore(),
			wantErr: true,
			errMsg:  "API URL is required",
		},
		{
			name:    "relative URL",
			baseURL: "api",
			store:   credentials.NewMemoryStore(),
			wantErr: true,
			errMsg:  "invalid API URL",
		},
		{
			name:    "missing store",
			baseURL: "http://localhost:8000/api",
			wantErr: true,
			errMsg:  "credential store is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, tt.store, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:8000/api", client.BaseURL())
			assert.NotNil(t, client.refresher, "refresher is installed by default")
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()
	store := credentials.NewMemoryStore()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("http://localhost", store, logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("http://localhost", store, logger, WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})

	t.Run("without interceptor", func(t *testing.T) {
		client, err := NewClient("http://localhost", store, logger, WithInterceptor(nil))
		require.NoError(t, err)
		assert.Nil(t, client.interceptor)
		assert.Nil(t, client.refresher)
	})
}

func TestClientAttachesCredential(t *testing.T) {
	store := credentials.NewMemoryStore()
	require.NoError(t, store.Save("access-1", "renew-1"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/movies/", r.URL.Path)
		assert.Equal(t, "inception", r.URL.Query().Get("search"))
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		assert.Equal(t, "marquee-test", r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "title": "Inception"}})
	}))
	defer server.Close()

	client, err := NewClient(server.URL+"/api", store, zerolog.Nop(), WithUserAgent("marquee-test"))
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), &Request{
		Path:  "/movies/",
		Query: map[string][]string{"search": {"inception"}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var movies []struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, resp.Decode(&movies))
	require.Len(t, movies, 1)
	assert.Equal(t, "Inception", movies[0].Title)
}

func TestClientAnonymousRequest(t *testing.T) {
	store := credentials.NewMemoryStore()
	require.NoError(t, store.Save("access-1", "renew-1"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "neo", body["username"])
		json.NewEncoder(w).Encode(TokenPair{Access: "a", Refresh: "r"})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, store, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.Do(context.Background(), &Request{
		Method:    http.MethodPost,
		Path:      TokenPath,
		Body:      map[string]string{"username": "neo", "password": "red-pill"},
		Anonymous: true,
	})
	require.NoError(t, err)
}

func TestClientErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "validation error",
			status: http.StatusBadRequest,
			body:   `{"username": ["A user with that username already exists."], "password": "This field is required."}`,
			check: func(t *testing.T, err error) {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "A user with that username already exists.", ve.Field("username"))
				assert.Equal(t, "This field is required.", ve.Field("password"))
				assert.Equal(t, "", ve.Field("email"))
				assert.Contains(t, ve.Error(), "password: This field is required.; username:")
			},
		},
		{
			name:   "bad request with error message",
			status: http.StatusBadRequest,
			body:   `{"error": "movie_id is required"}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "movie_id is required", apiErr.Message)
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"detail": "Not found."}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNotFound)
				assert.NotErrorIs(t, err, ErrTransport)
				assert.Equal(t, "API error: status 404: Not found.", err.Error())
			},
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			body:   `<html>bad gateway</html>`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrTransport)
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "Bad Gateway", apiErr.Message)
			},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			body:   `{"detail": "You do not have permission to perform this action."}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.True(t, apiErr.IsForbidden())
				assert.False(t, apiErr.IsUnauthorized())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewClient(server.URL, credentials.NewMemoryStore(), zerolog.Nop())
			require.NoError(t, err)

			_, err = client.Do(context.Background(), &Request{Path: "/movies/"})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClientNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(url, credentials.NewMemoryStore(), zerolog.Nop())
	require.NoError(t, err)

	_, err = client.Do(context.Background(), &Request{Path: "/movies/"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.MethodGet, te.Method)
}

func TestClientCanceledContextIsNotTransportFailure(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	client, err := NewClient(server.URL, credentials.NewMemoryStore(), zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Do(ctx, &Request{Path: "/movies/"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrTransport)

	var te *TransportError
	assert.False(t, errors.As(err, &te))
}

func TestResponseDecodeEmptyBody(t *testing.T) {
	resp := &Response{StatusCode: http.StatusNoContent}
	var v map[string]any
	assert.ErrorIs(t, resp.Decode(&v), ErrEmptyBody)
}

func TestAPIError(t *testing.T) {
	t.Run("IsUnauthorized", func(t *testing.T) {
		tests := []struct {
			code     int
			expected bool
		}{
			{401, true},
			{403, false},
			{404, false},
			{500, false},
		}

		for _, tt := range tests {
			err := &APIError{StatusCode: tt.code}
			assert.Equal(t, tt.expected, err.IsUnauthorized())
			assert.Equal(t, tt.expected, errors.Is(err, ErrAuthExpired))
		}
	})

	t.Run("IsServerError", func(t *testing.T) {
		assert.True(t, (&APIError{StatusCode: 500}).IsServerError())
		assert.True(t, (&APIError{StatusCode: 503}).IsServerError())
		assert.False(t, (&APIError{StatusCode: 499}).IsServerError())
	})
}
