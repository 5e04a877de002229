package es

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-intel-go/internal/model"
)

func TestChunkKey(t *testing.T) {
	assert.Equal(t, "abc_0", ChunkKey("abc", 0))
	assert.Equal(t, "abc_12", ChunkKey("abc", 12))
}

func TestMatchQuery(t *testing.T) {
	b, err := json.Marshal(MatchQuery("cat dog", 3))
	require.NoError(t, err)
	assert.JSONEq(t, `{"size":3,"query":{"match":{"text":{"query":"cat dog"}}}}`, string(b))
}

func TestDocIDQuery(t *testing.T) {
	b, err := json.Marshal(DocIDQuery("d1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":{"term":{"doc_id":"d1"}}}`, string(b))
}

func TestSearchResponseMatches(t *testing.T) {
	raw := `{"hits":{"hits":[
		{"_score":2.5,"_source":{"chunk_key":"d1_0","doc_id":"d1","title":"a.txt","chunk":0,"text":"cats"}},
		{"_score":1.0,"_source":{"chunk_key":"d2_3","doc_id":"d2","title":"b.txt","chunk":3,"text":"dogs"}}
	]}}`
	var sr searchResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &sr))

	got := sr.matches()
	require.Len(t, got, 2)
	assert.Equal(t, "d1", got[0].DocID)
	assert.Equal(t, 2.5, got[0].Score)
	assert.Equal(t, "cats", got[0].Text)
	assert.Equal(t, "a.txt", got[0].Metadata[model.MetaKeyTitle])
	assert.Equal(t, 3, got[1].Metadata[model.MetaKeyChunk])
}

func TestSearchResponseMatchesEmpty(t *testing.T) {
	var sr searchResponse
	got := sr.matches()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
