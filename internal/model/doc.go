// Package model holds the records served by the demonstration API and the
// views derived from them.
//
// The API serves three collections:
//
//	GET /users  -> []User
//	GET /todos  -> []Todo
//	GET /posts  -> []Post
//
// # Derived Views
//
// Two views are computed from a snapshot of the collections and never stored:
//
//   - FilterTodos: the todo list narrowed by search term, completion state,
//     and owning user. Input order is preserved.
//   - ComputeStats: per-user todo, completion, and post counts.
//
// # Completion Filter Values
//
//   - "all": every todo
//   - "completed": only todos with completed=true
//   - "pending": only todos with completed=false
package model
