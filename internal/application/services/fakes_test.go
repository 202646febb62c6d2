package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"attachments-api/internal/domain/file"
	"attachments-api/internal/domain/owner"
	"attachments-api/internal/infrastructure/mq"
)

// memFiles is an in-memory file.Repository with the same filtering and
// ordering rules as the postgres one.
type memFiles struct {
	mu        sync.Mutex
	rows      file.Files
	nextID    uint64
	createErr error
}

func (m *memFiles) add(f *file.File) *file.File {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	f.ID = m.nextID
	if f.UUID == uuid.Nil {
		f.UUID = uuid.New()
	}
	m.rows = append(m.rows, f)
	return f
}

func (m *memFiles) filter(t file.Target, keep func(*file.File) bool) file.Files {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out file.Files
	for _, f := range m.rows {
		if f.Model != t.Model || f.TargetID != t.ID || f.Status != file.StatusNormal {
			continue
		}
		if keep(f) {
			c := *f
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *memFiles) FetchFiles(_ context.Context, t file.Target) (file.Files, error) {
	return m.filter(t, func(*file.File) bool { return true }), nil
}

func (m *memFiles) FetchFilesByVisibility(_ context.Context, t file.Target, public bool) (file.Files, error) {
	return m.filter(t, func(f *file.File) bool { return f.Public == public }), nil
}

func (m *memFiles) FetchFilesByCreator(_ context.Context, t file.Target, userID uuid.UUID) (file.Files, error) {
	return m.filter(t, func(f *file.File) bool { return f.CreatedBy != nil && *f.CreatedBy == userID }), nil
}

func (m *memFiles) FetchFilesWithTag(_ context.Context, t file.Target, tag string) (file.Files, error) {
	return m.filter(t, func(f *file.File) bool { return strings.Contains(f.Tags, tag) }), nil
}

func (m *memFiles) FetchFile(_ context.Context, id uuid.UUID) (*file.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.rows {
		if f.UUID == id {
			c := *f
			return &c, nil
		}
	}
	return nil, file.ErrNotFound
}

func (m *memFiles) CreateFile(_ context.Context, f *file.File) (*file.File, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}

	m.mu.Lock()
	var pos int32
	for _, r := range m.rows {
		if r.Model == f.Model && r.TargetID == f.TargetID && r.Position >= pos {
			pos = r.Position + 1
		}
	}
	m.mu.Unlock()

	c := *f
	c.Position = pos
	stored := m.add(&c)
	out := *stored
	return &out, nil
}

func (m *memFiles) update(id uuid.UUID, fn func(*file.File)) (*file.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.rows {
		if f.UUID == id {
			fn(f)
			c := *f
			return &c, nil
		}
	}
	return nil, file.ErrNotFound
}

func (m *memFiles) UpdateStatus(_ context.Context, id uuid.UUID, s file.Status) (*file.File, error) {
	return m.update(id, func(f *file.File) { f.Status = s })
}

func (m *memFiles) UpdateVisibility(_ context.Context, id uuid.UUID, public bool) (*file.File, error) {
	return m.update(id, func(f *file.File) { f.Public = public })
}

func (m *memFiles) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type FakeOwners struct {
	PrimaryKeyFunc func(ctx context.Context, table string) (string, error)
	FetchOwnerFunc func(ctx context.Context, t owner.Type, key string) (*owner.Record, error)
}

func (f *FakeOwners) PrimaryKey(ctx context.Context, table string) (string, error) {
	if f.PrimaryKeyFunc == nil {
		return "", errors.New("not used")
	}
	return f.PrimaryKeyFunc(ctx, table)
}

func (f *FakeOwners) FetchOwner(ctx context.Context, t owner.Type, key string) (*owner.Record, error) {
	if f.FetchOwnerFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FetchOwnerFunc(ctx, t, key)
}

type FakeURLs struct {
	URLFunc func(ctx context.Context, key string, public bool) (string, error)
}

func (f *FakeURLs) URL(ctx context.Context, key string, public bool) (string, error) {
	if f.URLFunc == nil {
		return "", errors.New("not used")
	}
	return f.URLFunc(ctx, key, public)
}

func (f *FakeURLs) GetBucket() string { return "test-bucket" }

// FakeMQ only exposes its input channel; nothing else is called by the
// service.
type FakeMQ struct {
	in chan mq.Event
}

func newFakeMQ(size int) *FakeMQ { return &FakeMQ{in: make(chan mq.Event, size)} }

func (f *FakeMQ) GetInputChan() chan mq.Event { return f.in }

// pkOwner is a plain owner without an identifier override.
type pkOwner struct {
	model string
	table string
	attrs map[string]string
}

func (o *pkOwner) ModelName() string { return o.model }
func (o *pkOwner) TableName() string { return o.table }
func (o *pkOwner) Attribute(name string) (string, bool) {
	v, ok := o.attrs[name]
	return v, ok
}

// slugOwner overrides its identifier attribute.
type slugOwner struct {
	pkOwner
	attr string
}

func (o *slugOwner) IdentifierAttribute() string { return o.attr }

func strPtr(s string) *string { return &s }
