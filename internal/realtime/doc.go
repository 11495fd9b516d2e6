// Package realtime fans out change notifications to connected WebSocket
// clients.
//
// A Hub keeps two kinds of membership: a public room that every /ws client
// joins, and per-user rooms keyed by user id. Publishing is fire-and-forget:
// the caller encodes the event and hands delivery to a Dispatcher, whose
// workers snapshot the recipients under the hub lock, send outside it, and
// evict any connection whose send failed.
package realtime
