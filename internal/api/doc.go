// Package api is a client for the JSONPlaceholder demonstration REST API.
//
// Endpoints used:
//
//	GET    /users       list users
//	GET    /todos       list todos
//	GET    /posts       list posts
//	POST   /todos       create a todo (echoed, not persisted)
//	PUT    /todos/{id}  replace a todo (echoed, not persisted)
//	DELETE /todos/{id}  delete a todo (status only)
//
// Any response outside the 2xx range is returned as a *StatusError,
// regardless of its body. Requests are never retried.
//
// # Validation
//
// When a Validator is configured, response bodies are checked against JSON
// Schemas embedded in the binary before they are decoded. Schema violations
// are reported as *ValidationError values joined into a single error.
package api
