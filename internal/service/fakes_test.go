package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"doc-intel-go/internal/model"
	"doc-intel-go/internal/repository"
	"doc-intel-go/pkg/events"
)

// memStore 是 documents 与 chunks 的内存实现。
type memStore struct {
	mu        sync.Mutex
	docs      []model.Document
	chunks    []model.Chunk
	nextChunk uint
	seq       int
	down      bool
	failChunk int // 第 n 次 InsertChunk 失败，0 表示不失败
	inserts   int
}

func newMemStore() *memStore { return &memStore{} }

func key(id string) string {
	if native, ok := repository.NativeID(id); ok {
		return native
	}
	return id
}

func (m *memStore) Create(_ context.Context, doc *model.Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return "", repository.ErrStoreUnavailable
	}
	m.seq++
	doc.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", m.seq)
	m.docs = append(m.docs, *doc)
	return doc.ID, nil
}

func (m *memStore) FindAll(_ context.Context) ([]model.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, repository.ErrStoreUnavailable
	}
	return append([]model.Document(nil), m.docs...), nil
}

func (m *memStore) FindByID(_ context.Context, id string) (*model.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, repository.ErrStoreUnavailable
	}
	for _, d := range m.docs {
		if d.ID == key(id) {
			d := d
			return &d, nil
		}
	}
	return nil, repository.ErrDocumentNotFound
}

func (m *memStore) DeleteByID(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return 0, repository.ErrStoreUnavailable
	}
	for i, d := range m.docs {
		if d.ID == key(id) {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memStore) InsertChunk(_ context.Context, c *model.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return repository.ErrStoreUnavailable
	}
	m.inserts++
	if m.failChunk > 0 && m.inserts == m.failChunk {
		return errors.New("disk full")
	}
	m.nextChunk++
	c.ID = m.nextChunk
	m.chunks = append(m.chunks, *c)
	return nil
}

func (m *memStore) FindChunks(_ context.Context, limit int) ([]model.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, repository.ErrStoreUnavailable
	}
	out := append([]model.Chunk(nil), m.chunks...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) FindByDocID(_ context.Context, docID string) ([]model.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Chunk
	for _, c := range m.chunks {
		if c.DocID == key(docID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) DeleteByDocID(_ context.Context, docID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return 0, repository.ErrStoreUnavailable
	}
	kept := m.chunks[:0]
	var n int64
	for _, c := range m.chunks {
		if c.DocID == key(docID) {
			n++
			continue
		}
		kept = append(kept, c)
	}
	m.chunks = kept
	return n, nil
}

type fakeArchive struct {
	objects map[string][]byte
	putErr  error
}

func newFakeArchive() *fakeArchive { return &fakeArchive{objects: map[string][]byte{}} }

func (a *fakeArchive) Put(_ context.Context, name string, data []byte) error {
	if a.putErr != nil {
		return a.putErr
	}
	a.objects[name] = data
	return nil
}

func (a *fakeArchive) Remove(_ context.Context, name string) error {
	delete(a.objects, name)
	return nil
}

func (a *fakeArchive) PresignedURL(_ context.Context, name, _ string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("http://minio.local/%s?expires=%d", name, int(expiry.Seconds())), nil
}

type fakePublisher struct {
	events []events.DocumentEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e events.DocumentEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}
