// Package docstore provides the document store the todo managers persist to.
//
// The [Store] interface models a hosted document database: schemaless JSON
// documents grouped into named collections, addressed by id, with equality
// queries ordered by a field descending. Two field transforms exist:
//
//   - [ServerTimestamp] resolves to the store's own clock at write time,
//     avoiding client clock skew
//   - [Increment] applies a signed delta to a numeric field server-side, safe
//     under concurrent writers
//
// [SQLiteStore] implements Store on a single `documents` table using the
// SQLite JSON1 functions. Every write is one SQL statement, so increments and
// merges are atomic per document. There are no cross-document transactions,
// matching the remote stores this abstraction stands in for.
package docstore
