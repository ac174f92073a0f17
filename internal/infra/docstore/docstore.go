// Package docstore provides the tenant-scoped document store used by all
// record collections: documents keyed by collection name and id, with
// merge-capable writes and equality queries on document fields.
package docstore

import (
	"context"
	"encoding/json"
)

type Store interface {
	Collection(name string) Collection
}

type Collection interface {
	Doc(id string) Document
	// All returns every document in the collection.
	All(ctx context.Context) ([]json.RawMessage, error)
	// Where returns the raw documents whose field equals value.
	Where(ctx context.Context, field, value string) ([]json.RawMessage, error)
}

type Document interface {
	Get(ctx context.Context) (json.RawMessage, error)
	// Set writes the document, replacing any existing one. With Merge, the
	// given fields are merged into the existing document instead.
	Set(ctx context.Context, doc any, opts ...SetOption) error
	// Create writes the document only if neither the id nor a declared
	// unique field value is already taken.
	Create(ctx context.Context, doc any) error
	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context) error
}

type setOptions struct {
	merge bool
}

type SetOption func(*setOptions)

// Merge makes Set overlay the given fields onto the existing document
// rather than replacing it.
func Merge() SetOption {
	return func(o *setOptions) {
		o.merge = true
	}
}

func applyOptions(opts []SetOption) setOptions {
	var o setOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
