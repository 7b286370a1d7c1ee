// Package services implements the stateless managers of the todo service.
//
// [ListService] owns list lifecycle and is the sole writer of the todoCount and
// completedCount aggregates. [TodoService] owns todo lifecycle and calls
// [ListService.AdjustCounters] exactly once per count-affecting mutation.
// [UserService] maintains the profile mirror documents for identity principals.
//
// No manager caches anything between calls; every operation independently
// fetches what it needs from the document store. Mutating a missing todo is a
// silent no-op so a stale UI issuing a double delete stays harmless, while
// fetching a missing record returns a nil record rather than an error.
package services
