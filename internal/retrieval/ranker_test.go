package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-intel-go/internal/model"
)

func chunk(docID, text string) model.Chunk {
	return model.Chunk{
		DocID:     docID,
		Text:      text,
		Embedding: Vectorize(text),
		Metadata:  map[string]interface{}{model.MetaKeyTitle: docID + ".txt"},
	}
}

func TestRank_SortsDescendingAndFiltersZero(t *testing.T) {
	chunks := []model.Chunk{
		chunk("d1", "dog bird"),
		chunk("d2", "cat cat"),
		chunk("d3", "fish"),
		chunk("d4", "cat dog"),
	}

	matches := Rank(Vectorize("cat"), chunks, 10, 500)

	require.Len(t, matches, 2)
	assert.Equal(t, "d2", matches[0].DocID)
	assert.Equal(t, "d4", matches[1].DocID)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
	for _, m := range matches {
		assert.Greater(t, m.Score, 0.0)
	}
}

func TestRank_TiesKeepRetrievalOrder(t *testing.T) {
	chunks := []model.Chunk{
		chunk("first", "cat"),
		chunk("second", "cat"),
		chunk("third", "cat"),
	}

	matches := Rank(Vectorize("cat"), chunks, 3, 500)

	require.Len(t, matches, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{matches[0].DocID, matches[1].DocID, matches[2].DocID})
}

func TestRank_TopK(t *testing.T) {
	chunks := []model.Chunk{chunk("a", "cat"), chunk("b", "cat"), chunk("c", "cat dog")}
	query := Vectorize("cat")

	assert.Len(t, Rank(query, chunks, 2, 500), 2)
	assert.Len(t, Rank(query, chunks, 10, 500), 3)
	assert.Empty(t, Rank(query, chunks, 0, 500))
	assert.Empty(t, Rank(query, chunks, -1, 500))
}

func TestRank_EmptyQueryMatchesNothing(t *testing.T) {
	chunks := []model.Chunk{chunk("a", "cat")}
	matches := Rank(Vectorize("!!! ???"), chunks, 5, 500)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestRank_MissingEmbeddingAndMetadata(t *testing.T) {
	chunks := []model.Chunk{
		{DocID: "broken", Text: "cat"},
		chunk("ok", "cat"),
	}

	matches := Rank(Vectorize("cat"), chunks, 5, 500)
	require.Len(t, matches, 1)
	assert.Equal(t, "ok", matches[0].DocID)

	chunks[1].Metadata = nil
	matches = Rank(Vectorize("cat"), chunks, 5, 500)
	require.Len(t, matches, 1)
	assert.NotNil(t, matches[0].Metadata)
}

func TestRank_SnippetTruncation(t *testing.T) {
	long := "cat " + strings.Repeat("z", 700)
	matches := Rank(Vectorize("cat"), []model.Chunk{{DocID: "a", Text: long, Embedding: model.SparseVector{"cat": 1}}}, 1, 500)

	require.Len(t, matches, 1)
	assert.Equal(t, 500, len([]rune(matches[0].Text)))
}

func TestSynthesizeAnswer(t *testing.T) {
	matches := []model.Match{{Text: "alpha"}, {Text: "beta"}, {Text: "gamma"}}
	assert.Equal(t, "alpha beta gamma", SynthesizeAnswer(matches, 800))
	assert.Equal(t, "alpha be", SynthesizeAnswer(matches, 8))
	assert.Equal(t, "", SynthesizeAnswer(nil, 800))
}

func TestSynthesizeAnswer_TruncatesTo800Characters(t *testing.T) {
	matches := []model.Match{
		{Text: strings.Repeat("a", 500)},
		{Text: strings.Repeat("ü", 500)},
	}
	answer := SynthesizeAnswer(matches, 800)

	assert.Equal(t, 800, len([]rune(answer)))
	assert.True(t, strings.HasPrefix(answer, strings.Repeat("a", 500)+" ü"))
}
