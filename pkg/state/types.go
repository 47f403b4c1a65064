package state

import (
	"context"
	"time"
)

// Document is the persisted form of a store: option name to encoded value.
type Document map[string]string

// Clone returns a copy of d. A nil Document clones to an empty one.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Meta is storage-owned metadata used for trace/audit.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Backend loads and saves one whole Document.
//
// Load reports ok=false with a nil error when nothing has been persisted yet.
// Save must replace the previous document entirely.
type Backend interface {
	Load(ctx context.Context) (doc Document, meta Meta, ok bool, err error)
	Save(ctx context.Context, doc Document, meta Meta) (Meta, error)
	Location() string
}

func cloneMeta(meta Meta) Meta {
	out := meta
	if meta.Extra == nil {
		return out
	}
	out.Extra = make(map[string]string, len(meta.Extra))
	for k, v := range meta.Extra {
		out.Extra[k] = v
	}
	return out
}
