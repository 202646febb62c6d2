package owner

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownModel     = errors.New("unknown owner model")
	ErrNotFound         = errors.New("owner not found")
	ErrSchemaNotFound   = errors.New("owner table or primary key not found")
	ErrUnknownAttribute = errors.New("unknown owner attribute")
)

// Owner is any entity that may own files.
type Owner interface {
	// ModelName is stored in file.model.
	ModelName() string
	TableName() string
	Attribute(name string) (string, bool)
}

// IdentifierAttributer lets an owner name the attribute that joins to
// file.target_id. An empty name keeps the primary key.
type IdentifierAttributer interface {
	IdentifierAttribute() string
}

type Type struct {
	Model               string
	Table               string
	IdentifierAttribute string
}

// Ref addresses one owner row by its primary key value.
type Ref struct {
	Model string
	Key   string
}

// Record is an owner backed by a row of its table.
type Record struct {
	Type       Type
	Attributes map[string]string
}

func (r *Record) ModelName() string { return r.Type.Model }

func (r *Record) TableName() string { return r.Type.Table }

func (r *Record) IdentifierAttribute() string { return r.Type.IdentifierAttribute }

func (r *Record) Attribute(name string) (string, bool) {
	v, ok := r.Attributes[name]
	return v, ok
}

type Registry struct {
	types map[string]Type
}

func NewRegistry(types ...Type) (*Registry, error) {
	r := &Registry{types: make(map[string]Type, len(types))}
	for _, t := range types {
		if t.Model == "" || t.Table == "" {
			return nil, fmt.Errorf("owner type %+v: model and table are required", t)
		}
		if _, dup := r.types[t.Model]; dup {
			return nil, fmt.Errorf("owner type %q registered twice", t.Model)
		}
		r.types[t.Model] = t
	}
	return r, nil
}

func (r *Registry) Lookup(model string) (Type, error) {
	t, ok := r.types[model]
	if !ok {
		return Type{}, fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}
	return t, nil
}
