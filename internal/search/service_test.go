package search

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/termindex/index"
	"github.com/gcbaptista/termindex/internal/errors"
)

func newTestIndex() index.InvertedIndex {
	return index.InvertedIndex{
		"data": {
			{DocID: "page1", Score: 0.10},
			{DocID: "page2", Score: 0.04},
			{DocID: "page3", Score: 0.01},
		},
		"trees": {
			{DocID: "page3", Score: 0.08},
			{DocID: "page2", Score: 0.05},
		},
		"ghost": {},
	}
}

func TestArticles(t *testing.T) {
	inverted := newTestIndex()

	t.Run("found term keeps stored order", func(t *testing.T) {
		docs, err := Articles("trees", inverted)
		require.NoError(t, err)
		assert.Equal(t, []string{"page3", "page2"}, docs)
	})

	t.Run("absent term is not found", func(t *testing.T) {
		docs, err := Articles("mallarme", inverted)
		require.Error(t, err)
		assert.Nil(t, docs)
		assert.True(t, stderrors.Is(err, errors.ErrTermNotFound))

		var notFound *errors.TermNotFoundError
		require.True(t, stderrors.As(err, &notFound))
		assert.Equal(t, "mallarme", notFound.Term)
	})

	t.Run("present term without documents is found and empty", func(t *testing.T) {
		docs, err := Articles("ghost", inverted)
		require.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})

	t.Run("matching is exact", func(t *testing.T) {
		_, err := Articles("Data", inverted)
		assert.ErrorIs(t, err, errors.ErrTermNotFound)
	})
}

func TestNewService(t *testing.T) {
	_, err := NewService(nil)
	assert.Error(t, err)

	svc, err := NewService(newTestIndex())
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestService_Search(t *testing.T) {
	svc, err := NewService(newTestIndex())
	require.NoError(t, err)

	result, err := svc.Search("data")
	require.NoError(t, err)
	assert.Equal(t, "data", result.Term)
	assert.Equal(t, []string{"page1", "page2", "page3"}, result.DocIDs)
	assert.Equal(t, 3, result.Total)
	assert.NotEmpty(t, result.QueryId)

	second, err := svc.Search("data")
	require.NoError(t, err)
	assert.NotEqual(t, result.QueryId, second.QueryId)

	_, err = svc.Search("absent")
	assert.ErrorIs(t, err, errors.ErrTermNotFound)
}
