package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Sender is one live connection as seen by the hub. Implementations must be
// comparable (pointer types) and safe for concurrent Send and Close.
type Sender interface {
	Send(ctx context.Context, msg []byte) error
	Close() error
}

// Submitter accepts delivery jobs without blocking. *Dispatcher satisfies it.
type Submitter interface {
	Submit(job Job) error
}

// Stats is a point-in-time view of hub membership.
type Stats struct {
	PublicConnections int
	UserRooms         int
	RoomSizes         map[int64]int
}

// Hub tracks connections in the public room and in per-user rooms and fans
// events out to them. Both membership structures are guarded by mu; sends
// happen outside it.
type Hub struct {
	mu     sync.Mutex
	public map[Sender]struct{}
	rooms  map[int64]map[Sender]struct{}

	submitter Submitter
	metrics   *Metrics
	logger    *slog.Logger
}

// NewHub creates a hub that delivers through submitter. metrics may be nil.
func NewHub(submitter Submitter, metrics *Metrics, logger *slog.Logger) *Hub {
	if submitter == nil {
		panic("submitter cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		public:    make(map[Sender]struct{}),
		rooms:     make(map[int64]map[Sender]struct{}),
		submitter: submitter,
		metrics:   metrics,
		logger:    logger.With(slog.String("component", "hub")),
	}
}

// ConnectPublic adds s to the public room.
func (h *Hub) ConnectPublic(s Sender) {
	h.mu.Lock()
	h.public[s] = struct{}{}
	h.updateMetricsLocked()
	n := len(h.public)
	h.mu.Unlock()

	h.logger.Debug("public connection joined", slog.Int("public_connections", n))
}

// DisconnectPublic removes s from the public room. Removing an absent
// connection is a no-op.
func (h *Hub) DisconnectPublic(s Sender) {
	h.mu.Lock()
	delete(h.public, s)
	h.updateMetricsLocked()
	h.mu.Unlock()

	h.logger.Debug("public connection left")
}

// ConnectUser adds s to the room of userID, creating the room if needed.
func (h *Hub) ConnectUser(userID int64, s Sender) {
	h.mu.Lock()
	room, ok := h.rooms[userID]
	if !ok {
		room = make(map[Sender]struct{})
		h.rooms[userID] = room
	}
	room[s] = struct{}{}
	h.updateMetricsLocked()
	h.mu.Unlock()

	h.logger.Debug("user connection joined", slog.Int64("user_id", userID))
}

// DisconnectUser removes s from the room of userID and drops the room once
// it is empty.
func (h *Hub) DisconnectUser(userID int64, s Sender) {
	h.mu.Lock()
	if room, ok := h.rooms[userID]; ok {
		delete(room, s)
		if len(room) == 0 {
			delete(h.rooms, userID)
		}
	}
	h.updateMetricsLocked()
	h.mu.Unlock()

	h.logger.Debug("user connection left", slog.Int64("user_id", userID))
}

// PublishTaskCreated notifies the public room and, when assigneeID is set,
// the assignee's room.
func (h *Hub) PublishTaskCreated(taskID int64, assigneeID *int64) error {
	return h.publish(NewTaskCreated(taskID, assigneeID), assigneeID)
}

// PublishTaskUpdated notifies the public room only.
func (h *Hub) PublishTaskUpdated(taskID int64) error {
	return h.publish(NewTaskUpdated(taskID), nil)
}

// PublishUserCreated notifies the public room.
func (h *Hub) PublishUserCreated(userID int64) error {
	return h.publish(NewUserCreated(userID), nil)
}

// PublishUserUpdated notifies the public room and the user's own room.
func (h *Hub) PublishUserUpdated(userID int64) error {
	return h.publish(NewUserUpdated(userID), &userID)
}

// publish encodes evt and schedules its delivery. It returns once the job is
// queued; delivery outcome is never reported to the caller.
func (h *Hub) publish(evt Event, room *int64) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", evt.EventType(), err)
	}

	var target *int64
	if room != nil {
		id := *room
		target = &id
	}

	if err := h.submitter.Submit(func(ctx context.Context) {
		h.deliver(ctx, evt.EventType(), payload, target)
	}); err != nil {
		return fmt.Errorf("failed to schedule %s event: %w", evt.EventType(), err)
	}

	h.metrics.eventPublished(evt.EventType())
	return nil
}

// deliver sends payload to a snapshot of the recipients and evicts every
// connection whose send failed.
func (h *Hub) deliver(ctx context.Context, eventType EventType, payload []byte, room *int64) {
	recipients := h.recipients(room)
	if len(recipients) == 0 {
		return
	}

	var (
		wg       sync.WaitGroup
		failedMu sync.Mutex
		failed   []Sender
	)
	for _, s := range recipients {
		wg.Add(1)
		go func(s Sender) {
			defer wg.Done()
			if err := s.Send(ctx, payload); err != nil {
				h.logger.Warn("failed to deliver event",
					slog.String("event_type", string(eventType)),
					slog.String("error", err.Error()))
				failedMu.Lock()
				failed = append(failed, s)
				failedMu.Unlock()
			}
		}(s)
	}
	wg.Wait()

	if len(failed) > 0 {
		h.evict(failed)
	}

	h.logger.Debug("event delivered",
		slog.String("event_type", string(eventType)),
		slog.Int("recipients", len(recipients)),
		slog.Int("failed", len(failed)))
}

// recipients returns the public room plus the given user room, deduplicated.
func (h *Hub) recipients(room *int64) []Sender {
	h.mu.Lock()
	defer h.mu.Unlock()

	seen := make(map[Sender]struct{}, len(h.public))
	out := make([]Sender, 0, len(h.public))
	for s := range h.public {
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if room != nil {
		for s := range h.rooms[*room] {
			if _, dup := seen[s]; !dup {
				out = append(out, s)
			}
		}
	}
	return out
}

// evict removes senders from every room and closes them.
func (h *Hub) evict(senders []Sender) {
	h.mu.Lock()
	for _, s := range senders {
		h.removeLocked(s)
	}
	h.updateMetricsLocked()
	h.mu.Unlock()

	h.metrics.deliveryFailed(len(senders))
	for _, s := range senders {
		_ = s.Close()
	}
	h.logger.Info("evicted dead connections", slog.Int("count", len(senders)))
}

func (h *Hub) removeLocked(s Sender) {
	delete(h.public, s)
	for id, room := range h.rooms {
		delete(room, s)
		if len(room) == 0 {
			delete(h.rooms, id)
		}
	}
}

// CloseAll closes every registered connection and clears membership. Used at
// shutdown, since the HTTP server does not track hijacked connections.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	all := make([]Sender, 0, len(h.public))
	for s := range h.public {
		all = append(all, s)
	}
	for _, room := range h.rooms {
		for s := range room {
			all = append(all, s)
		}
	}
	h.public = make(map[Sender]struct{})
	h.rooms = make(map[int64]map[Sender]struct{})
	h.updateMetricsLocked()
	h.mu.Unlock()

	for _, s := range all {
		_ = s.Close()
	}
	h.logger.Info("closed all connections", slog.Int("count", len(all)))
}

// Stats returns a snapshot of hub membership.
func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()

	sizes := make(map[int64]int, len(h.rooms))
	for id, room := range h.rooms {
		sizes[id] = len(room)
	}
	return Stats{
		PublicConnections: len(h.public),
		UserRooms:         len(h.rooms),
		RoomSizes:         sizes,
	}
}

func (h *Hub) updateMetricsLocked() {
	h.metrics.setMembership(len(h.public), len(h.rooms))
}
