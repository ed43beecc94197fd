package service

import "sync"

type BalanceNotifier interface {
	PublishBalance(userID int64, balance int, reason string)
}

type Message struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// NotificationHub fans balance updates out to connected clients. A user may
// hold several subscriptions (one per open connection).
type NotificationHub struct {
	mu   sync.Mutex
	subs map[int64]map[chan Message]struct{}
}

func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		subs: make(map[int64]map[chan Message]struct{}),
	}
}

func (h *NotificationHub) Subscribe(userID int64) chan Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Message, 8)
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan Message]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	return ch
}

func (h *NotificationHub) Unsubscribe(userID int64, ch chan Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.subs[userID]; ok {
		if _, ok := set[ch]; ok {
			delete(set, ch)
			close(ch)
		}
		if len(set) == 0 {
			delete(h.subs, userID)
		}
	}
}

// PublishBalance never blocks: a slow subscriber misses the event and
// catches up on its next profile fetch.
func (h *NotificationHub) PublishBalance(userID int64, balance int, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[userID] {
		select {
		case ch <- Message{
			Type: "balance_update",
			Payload: map[string]any{
				"balance": balance,
				"reason":  reason,
			},
		}:
		default:
		}
	}
}
