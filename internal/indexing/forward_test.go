package indexing

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/termindex/model"
)

func TestBuildForwardIndex_TwoDocuments(t *testing.T) {
	docs := model.Corpus{
		"doc1": {"a", "a", "b"},
		"doc2": {"b", "c"},
	}

	forward, err := BuildForwardIndex(context.Background(), docs, 2)
	require.NoError(t, err)
	require.Len(t, forward, 2)

	// TF("a", doc1) = 2/3, DF("a") = 1, IDF("a") = ln(2)
	assert.InDelta(t, 0.462, forward["doc1"]["a"], 1e-3)
	assert.InDelta(t, 2.0/3.0*math.Log(2), forward["doc1"]["a"], 1e-12)

	// "b" is in every document, so IDF is zero
	assert.Equal(t, 0.0, forward["doc1"]["b"])
	assert.Equal(t, 0.0, forward["doc2"]["b"])

	assert.InDelta(t, 0.5*math.Log(2), forward["doc2"]["c"], 1e-12)

	assert.Equal(t, []string{"a", "b"}, forward["doc1"].Terms())
	assert.Equal(t, []string{"b", "c"}, forward["doc2"].Terms())
	assert.Equal(t, []string{"doc1", "doc2"}, forward.DocIDs())
}

func TestBuildForwardIndex_SampleFeed(t *testing.T) {
	docs := sampleCorpus()

	assert.Len(t, docs[page1], 10)
	assert.Len(t, docs[page2], 55)
	assert.Len(t, docs[page3], 33)
	assert.Len(t, docs[page4], 22)
	assert.Len(t, docs[page5], 18)

	forward, err := BuildForwardIndex(context.Background(), docs, 4)
	require.NoError(t, err)

	assert.InDelta(t, 0.1021, forward[page1]["data"], 1e-4)
	assert.InDelta(t, 0.183, forward[page1]["structures"], 1e-3)
	assert.InDelta(t, 0.046, forward[page2]["data"], 1e-3)
	assert.InDelta(t, 0.0894, forward[page5]["categorization"], 1e-4)
	assert.InDelta(t, 0.0277, forward[page3]["binary"], 1e-4)
}

func TestBuildForwardIndex_EmptyDocument(t *testing.T) {
	docs := model.Corpus{
		"full":  {"x"},
		"empty": {},
	}

	forward, err := BuildForwardIndex(context.Background(), docs, 1)
	require.NoError(t, err)

	require.Contains(t, forward, "empty")
	assert.Empty(t, forward["empty"])
	// The empty document still counts towards N
	assert.InDelta(t, math.Log(2), forward["full"]["x"], 1e-12)
}

func TestBuildForwardIndex_EmptyCorpus(t *testing.T) {
	forward, err := BuildForwardIndex(context.Background(), model.Corpus{}, 4)
	require.NoError(t, err)
	assert.Empty(t, forward)
}

func TestBuildForwardIndex_OrderIndependent(t *testing.T) {
	docs := sampleCorpus()

	sequential, err := BuildForwardIndex(context.Background(), docs, 1)
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 8, 64} {
		parallel, err := BuildForwardIndex(context.Background(), docs, workers)
		require.NoError(t, err)
		assert.Equal(t, sequential, parallel, "workers=%d", workers)
	}
}

func TestBuildForwardIndex_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildForwardIndex(ctx, sampleCorpus(), 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
