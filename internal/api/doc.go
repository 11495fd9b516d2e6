// Package api binds the REST and WebSocket endpoints to the services and the
// realtime hub. Handlers decode and validate requests, call a service and
// translate service errors into HTTP status codes with sanitized messages.
package api
