package docstore

import (
	"context"
	"fmt"
	"time"
)

// Collection names used by the todo service.
const (
	CollectionUsers = "users"
	CollectionLists = "todoLists"
	CollectionTodos = "todos"
)

// ErrNoDocument is returned by [Store.Update] and [Store.Increment]-carrying
// writes when the target document does not exist. Reads signal absence with a
// nil result instead.
var ErrNoDocument = fmt.Errorf("document does not exist")

// Fields is one document's field set. Values must be JSON-encodable, a nil
// value removes the field on update, and the [ServerTimestamp] and [Increment]
// transforms are resolved by the store at write time.
type Fields map[string]any

type serverTimestamp struct{}

// ServerTimestamp is a sentinel field value the store replaces with its own
// clock (as unix milliseconds) when the write is applied.
var ServerTimestamp = serverTimestamp{}

type incrementValue int64

// Increment returns a field transform that atomically adds delta to a numeric
// field. A missing field is treated as zero.
func Increment(delta int64) any {
	return incrementValue(delta)
}

// Store is the document database collaborator. Absent documents are reported
// as (nil, nil) from Get, never as an error.
type Store interface {
	// Put creates or fully replaces the document.
	Put(ctx context.Context, collection, id string, fields Fields) error
	// Get returns the document's fields, or nil if it does not exist.
	Get(ctx context.Context, collection, id string) (Fields, error)
	// Query returns documents matching all equality filters, ordered by
	// orderDesc descending. Filters may be empty.
	Query(ctx context.Context, collection string, filters Fields, orderDesc string) ([]Fields, error)
	// Update merges fields into an existing document, resolving transforms.
	// Returns [ErrNoDocument] if the document does not exist.
	Update(ctx context.Context, collection, id string, fields Fields) error
	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
}

// Millis converts a time to the store's wire representation, unix milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// TimeAt converts a stored timestamp field back to a [time.Time]. JSON decoding
// yields float64 for numbers, so both integer and float forms are accepted.
func TimeAt(v any) (time.Time, bool) {
	switch n := v.(type) {
	case int64:
		return time.UnixMilli(n).UTC(), true
	case float64:
		return time.UnixMilli(int64(n)).UTC(), true
	}
	return time.Time{}, false
}
