package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-intel-go/internal/model"
	"doc-intel-go/internal/repository"
	"doc-intel-go/internal/retrieval"
)

type stubFulltext struct {
	matches []model.Match
	size    int
}

func (s *stubFulltext) Search(_ context.Context, _ string, size int) ([]model.Match, error) {
	s.size = size
	return s.matches, nil
}

func TestSearchCatDog(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	_, err := newIngest(store, nil, nil).Ingest(ctx, []UploadedFile{{Name: "pets.txt", Data: []byte("cat dog cat")}})
	require.NoError(t, err)

	assert.Equal(t, model.SparseVector{"cat": 2, "dog": 1}, store.chunks[0].Embedding)

	res, err := NewSearchService(retrieval.NewRetriever(store, retrieval.Options{}), nil).Search(ctx, "cat", 5)
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	assert.InDelta(t, 2/math.Sqrt(5), res.Matches[0].Score, 1e-9)
	assert.Equal(t, "cat dog cat", res.Answer.Text)
}

func TestSearchNothingIngested(t *testing.T) {
	res, err := NewSearchService(retrieval.NewRetriever(newMemStore(), retrieval.Options{}), nil).Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
	assert.Equal(t, "", res.Answer.Text)
}

func TestSearchEmptyQuery(t *testing.T) {
	_, err := NewSearchService(retrieval.NewRetriever(newMemStore(), retrieval.Options{}), nil).Search(context.Background(), "", 5)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchStoreUnavailable(t *testing.T) {
	store := newMemStore()
	store.down = true
	_, err := NewSearchService(retrieval.NewRetriever(store, retrieval.Options{}), nil).Search(context.Background(), "cat", 5)
	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
}

func TestFulltext(t *testing.T) {
	ctx := context.Background()
	r := retrieval.NewRetriever(newMemStore(), retrieval.Options{})

	_, err := NewSearchService(r, nil).Fulltext(ctx, "cat", 5)
	assert.ErrorIs(t, err, ErrFulltextDisabled)

	ft := &stubFulltext{matches: []model.Match{{DocID: "d1", Text: "cat", Score: 1.2}}}
	svc := NewSearchService(r, ft)
	got, err := svc.Fulltext(ctx, "cat", 3)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 3, ft.size)

	got, err = svc.Fulltext(ctx, "cat", 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.Fulltext(ctx, "", 3)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}
