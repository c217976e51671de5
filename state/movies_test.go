package state

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/catalog"
)

func listOf(count int, ids ...int64) *catalog.MovieList {
	list := &catalog.MovieList{Count: count, Paginated: true}
	for _, id := range ids {
		list.Results = append(list.Results, catalog.Movie{ID: id})
	}
	return list
}

func TestMoviesFetch(t *testing.T) {
	query := catalog.MovieQuery{Search: "heat", Page: 2}
	cat := new(mockCatalog)
	cat.On("List", mock.Anything, query).Return(listOf(45, 1, 2), nil)

	movies := NewMovies(cat, zerolog.Nop())
	require.NoError(t, movies.Fetch(context.Background(), query).Wait())

	s := movies.Snapshot()
	assert.Len(t, s.Results, 2)
	assert.Equal(t, 3, s.TotalPages)
	assert.Equal(t, 2, s.CurrentPage)
	assert.Equal(t, query, s.Query)
	assert.False(t, s.Loading)
}

func TestMoviesSearchAndGenreStartAtFirstPage(t *testing.T) {
	cat := new(mockCatalog)
	cat.On("List", mock.Anything, catalog.MovieQuery{Search: "ran"}).Return(listOf(1, 5), nil).Once()
	cat.On("List", mock.Anything, catalog.MovieQuery{Genre: "Drama"}).Return(listOf(2, 6, 7), nil).Once()

	movies := NewMovies(cat, zerolog.Nop())
	movies.SetPage(4)

	require.NoError(t, movies.Search(context.Background(), "ran").Wait())
	assert.Equal(t, 1, movies.Snapshot().CurrentPage)

	require.NoError(t, movies.FilterByGenre(context.Background(), "Drama").Wait())
	s := movies.Snapshot()
	assert.Len(t, s.Results, 2)
	assert.Equal(t, "Drama", s.Query.Genre)
	cat.AssertExpectations(t)
}

func TestMoviesDropsDuplicateMovies(t *testing.T) {
	cat := new(mockCatalog)
	cat.On("List", mock.Anything, catalog.MovieQuery{Search: "heat"}).Return(listOf(3, 10, 10, 20), nil).Once()
	cat.On("List", mock.Anything, catalog.MovieQuery{Trending: true}).Return(listOf(2, 8, 8), nil).Once()
	cat.On("Recommendations", mock.Anything, catalog.RecommendCollaborative).Return([]catalog.Movie{{ID: 4}, {ID: 4}}, nil).Once()
	cat.On("Similar", mock.Anything, int64(3)).Return([]catalog.Movie{{ID: 5}, {ID: 6}, {ID: 5}}, nil).Once()

	movies := NewMovies(cat, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, movies.Search(ctx, "heat").Wait())
	require.NoError(t, movies.FetchTrending(ctx).Wait())
	require.NoError(t, movies.FetchRecommendations(ctx, catalog.RecommendCollaborative).Wait())
	require.NoError(t, movies.FetchSimilar(ctx, 3).Wait())

	ids := func(list []catalog.Movie) []int64 {
		out := make([]int64, 0, len(list))
		for _, m := range list {
			out = append(out, m.ID)
		}
		return out
	}

	s := movies.Snapshot()
	assert.Equal(t, []int64{10, 20}, ids(s.Results))
	assert.Equal(t, []int64{8}, ids(s.Trending))
	assert.Equal(t, []int64{4}, ids(s.Recommendations))
	assert.Equal(t, []int64{5, 6}, ids(s.Similar))
	cat.AssertExpectations(t)
}

func TestMoviesFetchPageKeepsQuery(t *testing.T) {
	cat := new(mockCatalog)
	cat.On("List", mock.Anything, catalog.MovieQuery{Genre: "Crime"}).Return(listOf(30, 1), nil).Once()
	cat.On("List", mock.Anything, catalog.MovieQuery{Genre: "Crime", Page: 2}).Return(listOf(30, 21), nil).Once()

	movies := NewMovies(cat, zerolog.Nop())
	require.NoError(t, movies.FilterByGenre(context.Background(), "Crime").Wait())
	require.NoError(t, movies.FetchPage(context.Background(), 2).Wait())

	s := movies.Snapshot()
	assert.Equal(t, 2, s.CurrentPage)
	assert.Equal(t, 2, s.TotalPages)
	assert.Equal(t, int64(21), s.Results[0].ID)
	cat.AssertExpectations(t)
}

func TestMoviesDetailAndLists(t *testing.T) {
	cat := new(mockCatalog)
	cat.On("Get", mock.Anything, int64(3)).Return(&catalog.Movie{ID: 3, Title: "Heat"}, nil)
	cat.On("List", mock.Anything, catalog.MovieQuery{Trending: true}).Return(listOf(2, 8, 9), nil)
	cat.On("Recommendations", mock.Anything, catalog.RecommendContentBased).Return([]catalog.Movie{{ID: 4}}, nil)
	cat.On("Similar", mock.Anything, int64(3)).Return([]catalog.Movie{{ID: 5}, {ID: 6}}, nil)

	movies := NewMovies(cat, zerolog.Nop())
	ctx := context.Background()

	tasks := []*Task{
		movies.FetchMovie(ctx, 3),
		movies.FetchTrending(ctx),
		movies.FetchRecommendations(ctx, catalog.RecommendContentBased),
		movies.FetchSimilar(ctx, 3),
	}
	for _, task := range tasks {
		require.NoError(t, task.Wait())
	}

	s := movies.Snapshot()
	require.NotNil(t, s.Current)
	assert.Equal(t, "Heat", s.Current.Title)
	assert.Len(t, s.Trending, 2)
	assert.Len(t, s.Recommendations, 1)
	assert.Len(t, s.Similar, 2)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Results, "listing untouched by other fetches")

	movies.ClearCurrent()
	assert.Nil(t, movies.Snapshot().Current)
}

func TestMoviesErrorKeepsData(t *testing.T) {
	boom := errors.New("boom")
	cat := new(mockCatalog)
	cat.On("List", mock.Anything, catalog.MovieQuery{}).Return(listOf(1, 1), nil).Once()
	cat.On("List", mock.Anything, catalog.MovieQuery{Page: 2}).Return(nil, boom).Once()

	movies := NewMovies(cat, zerolog.Nop())
	require.NoError(t, movies.Fetch(context.Background(), catalog.MovieQuery{}).Wait())
	assert.ErrorIs(t, movies.FetchPage(context.Background(), 2).Wait(), boom)

	s := movies.Snapshot()
	assert.Len(t, s.Results, 1)
	assert.Equal(t, 1, s.CurrentPage)
	assert.ErrorIs(t, s.Err, boom)

	movies.ClearError()
	assert.NoError(t, movies.Snapshot().Err)
}

func TestMoviesSnapshotDefaults(t *testing.T) {
	movies := NewMovies(new(mockCatalog), zerolog.Nop())

	s := movies.Snapshot()
	assert.Equal(t, 1, s.TotalPages)
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Equal(t, "idle", s.Phase.String())
}

func TestMoviesReset(t *testing.T) {
	cat := new(mockCatalog)
	cat.On("Get", mock.Anything, int64(3)).Return(&catalog.Movie{ID: 3}, nil)

	movies := NewMovies(cat, zerolog.Nop())
	require.NoError(t, movies.FetchMovie(context.Background(), 3).Wait())
	movies.Reset()

	assert.Nil(t, movies.Snapshot().Current)
}
