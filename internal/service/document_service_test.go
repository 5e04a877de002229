package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-intel-go/internal/model"
	"doc-intel-go/internal/repository"
	"doc-intel-go/internal/retrieval"
	"doc-intel-go/pkg/events"
)

func TestListEmpty(t *testing.T) {
	docs, err := NewDocumentService(newMemStore(), newMemStore(), nil, nil).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestIngestThenDeleteRemovesEverything(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	_, err := newIngest(store, nil, nil).Ingest(ctx, []UploadedFile{
		{Name: "pets.txt", Data: []byte("zebra " + strings.Repeat("a", 600))},
	})
	require.NoError(t, err)
	id := store.docs[0].ID

	search := NewSearchService(retrieval.NewRetriever(store, retrieval.Options{}), nil)
	res, err := search.Search(ctx, "zebra", 5)
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)

	docs := NewDocumentService(store, store, nil, nil)
	require.NoError(t, docs.Delete(ctx, id))
	assert.Empty(t, store.docs)
	assert.Empty(t, store.chunks)

	res, err = search.Search(ctx, "zebra", 5)
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
	assert.Equal(t, "", res.Answer.Text)
}

func TestDeleteUnknownIsNotFound(t *testing.T) {
	store := newMemStore()
	err := NewDocumentService(store, store, nil, nil).Delete(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDeleteFallsBackToRawID(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.docs = append(store.docs, model.Document{ID: "legacy-id", Title: "old"})
	store.chunks = append(store.chunks, model.Chunk{ID: 1, DocID: "legacy-id", Text: "t"})

	require.NoError(t, NewDocumentService(store, store, nil, nil).Delete(ctx, "legacy-id"))
	assert.Empty(t, store.docs)
	assert.Empty(t, store.chunks)
}

func TestDeleteRemovesOrphanChunksEvenWhenNotFound(t *testing.T) {
	store := newMemStore()
	store.chunks = append(store.chunks, model.Chunk{ID: 1, DocID: "ghost", Text: "t"})

	err := NewDocumentService(store, store, nil, nil).Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.Empty(t, store.chunks)
}

func TestDeleteAcceptsNonCanonicalUUID(t *testing.T) {
	const id = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	store := newMemStore()
	store.docs = append(store.docs, model.Document{ID: id, Title: "a"})
	store.chunks = append(store.chunks, model.Chunk{ID: 1, DocID: id, Text: "t"})

	err := NewDocumentService(store, store, nil, nil).Delete(context.Background(), strings.ToUpper(id))
	require.NoError(t, err)
	assert.Empty(t, store.docs)
	assert.Empty(t, store.chunks)
}

func TestDeleteStoreUnavailable(t *testing.T) {
	store := newMemStore()
	store.down = true
	err := NewDocumentService(store, store, nil, nil).Delete(context.Background(), "x")
	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
}

func TestDeleteRemovesArchiveAndPublishes(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	archive := newFakeArchive()
	pub := &fakePublisher{}
	_, err := newIngest(store, archive, nil).Ingest(ctx, []UploadedFile{{Name: "a.txt", Data: []byte("x")}})
	require.NoError(t, err)
	id := store.docs[0].ID
	require.Len(t, archive.objects, 1)

	require.NoError(t, NewDocumentService(store, store, archive, pub).Delete(ctx, id))
	assert.Empty(t, archive.objects)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeDocumentDeleted, pub.events[0].Type)
	assert.Equal(t, id, pub.events[0].DocID)
}

func TestDownloadURL(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	archive := newFakeArchive()
	_, err := newIngest(store, archive, nil).Ingest(ctx, []UploadedFile{{Name: "a.txt", Data: []byte("x")}})
	require.NoError(t, err)
	id := store.docs[0].ID

	svc := NewDocumentService(store, store, archive, nil)
	info, err := svc.DownloadURL(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", info.FileName)
	assert.Equal(t, 3600, info.ExpiresIn)
	assert.Contains(t, info.DownloadURL, "documents/"+id+"/a.txt")

	_, err = svc.DownloadURL(ctx, "missing")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestDownloadURLDisabled(t *testing.T) {
	_, err := NewDocumentService(newMemStore(), newMemStore(), nil, nil).DownloadURL(context.Background(), "x")
	assert.ErrorIs(t, err, ErrArchiveDisabled)
}
