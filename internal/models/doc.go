// Package models defines domain entities for the multi-list todo service.
//
// Three persistent entities exist, each stored as one document in the store:
//
//   - [List] : a named, user-owned collection of todos carrying the denormalized
//     TodoCount/CompletedCount aggregates
//   - [Todo] : a single task belonging to exactly one list
//   - [User] : application-side profile mirror of the identity service's principal
//
// [Status] and [Priority] are closed enumerations; call sites branching on them
// switch over every value so that adding a state is a compile-time-visible change.
//
// Persistence happens through document field maps; timestamps travel as unix
// milliseconds on the wire, and dueDate and completedAt are absent when unset.
package models
