package indexing

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/termindex/index"
	"github.com/gcbaptista/termindex/model"
)

// BuildForwardIndex computes the TF-IDF score of every term in every document:
//
//	TF(t, d)  = count(t, d) / len(d)
//	DF(t)     = number of documents containing t at least once
//	IDF(t)    = ln(N / DF(t))
//	TFIDF     = TF * IDF
//
// Term counts are gathered per document on up to workers goroutines; the
// result does not depend on the order documents are processed in. Documents
// without tokens get an empty entry but still count towards N.
func BuildForwardIndex(ctx context.Context, docs model.Corpus, workers int) (index.ForwardIndex, error) {
	if workers < 1 {
		workers = 1
	}

	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	counts := make([]map[string]int, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			counts[i] = countTerms(docs[id])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	df := make(map[string]int)
	for _, termCounts := range counts {
		for term := range termCounts {
			df[term]++
		}
	}

	totalDocs := float64(len(ids))
	forward := make(index.ForwardIndex, len(ids))
	for i, id := range ids {
		n := float64(len(docs[id]))
		scores := make(index.TermScores, len(counts[i]))
		for term, count := range counts[i] {
			tf := float64(count) / n
			idf := math.Log(totalDocs / float64(df[term]))
			scores[term] = tf * idf
		}
		forward[id] = scores
	}
	return forward, nil
}

func countTerms(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}
