package state

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/s0up4200/marquee/catalog"
)

type mockMembership struct {
	mock.Mock
}

func (m *mockMembership) List(ctx context.Context) ([]catalog.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Entry), args.Error(1)
}

func (m *mockMembership) Add(ctx context.Context, movieID int64) (*catalog.Entry, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Entry), args.Error(1)
}

func (m *mockMembership) Toggle(ctx context.Context, movieID int64) (*catalog.ToggleResult, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ToggleResult), args.Error(1)
}

func (m *mockMembership) Remove(ctx context.Context, entryID int64) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) List(ctx context.Context, query catalog.MovieQuery) (*catalog.MovieList, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.MovieList), args.Error(1)
}

func (m *mockCatalog) Get(ctx context.Context, movieID int64) (*catalog.Movie, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Movie), args.Error(1)
}

func (m *mockCatalog) Recommendations(ctx context.Context, kind catalog.RecommendationType) ([]catalog.Movie, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Movie), args.Error(1)
}

func (m *mockCatalog) Similar(ctx context.Context, movieID int64) ([]catalog.Movie, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Movie), args.Error(1)
}

func entry(id, movieID int64) catalog.Entry {
	return catalog.Entry{ID: id, Movie: catalog.Movie{ID: movieID, Title: "movie"}}
}
