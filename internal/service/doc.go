// Package service holds the business rules for users and tasks. Services
// normalize input, call the stores, translate store errors into the service
// error taxonomy and, after a successful write, hand a change notification to
// the realtime layer without letting its outcome affect the result.
package service
