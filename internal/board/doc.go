// Package board is the session state store for the todo dashboard.
//
// A Board owns the users, todos, and posts loaded from the API, the
// filter state, and the single edit buffer. Derived views (the filtered
// todo list and per-user statistics) are recomputed from the current
// snapshot on every read.
//
// Mutations are applied locally only after the API accepts the write.
// A failed write leaves state untouched, logs the detail, and stores a
// generic per-action message readable through Err.
//
// Each todo has an in-flight lock: while a toggle, edit, or delete request
// for a todo is pending, further writes to the same todo return
// ErrInFlight without contacting the API. Close cancels every pending
// request and causes late responses to be discarded.
package board
