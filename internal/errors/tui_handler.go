package errors

import (
	"sync"
	"time"
)

// MessageType is the severity of an alert.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeError:
		return "Error"
	case MessageTypeWarning:
		return "Warning"
	case MessageTypeSuccess:
		return "Success"
	default:
		return "Info"
	}
}

// Message is a single alert.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// TUIHandler is a FIFO of modal alerts. The head of the queue is shown and
// blocks other input until dismissed.
type TUIHandler struct {
	mu      sync.RWMutex
	pending []Message
	shown   int
	onAlert func(msg Message)
	now     func() time.Time
}

// NewTUIHandler creates a handler; onAlert, when set, is invoked for every
// queued message.
func NewTUIHandler(onAlert func(msg Message)) *TUIHandler {
	return &TUIHandler{
		onAlert: onAlert,
		now:     time.Now,
	}
}

func (h *TUIHandler) Error(msg string)   { h.push(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.push(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.push(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.push(msg, MessageTypeSuccess) }

// Push queues an alert of the given type.
func (h *TUIHandler) Push(msg string, msgType MessageType) {
	h.push(msg, msgType)
}

func (h *TUIHandler) push(msg string, msgType MessageType) {
	h.mu.Lock()
	message := Message{Text: msg, Type: msgType, Timestamp: h.now()}
	h.pending = append(h.pending, message)
	h.shown++
	cb := h.onAlert
	h.mu.Unlock()

	if cb != nil {
		cb(message)
	}
}

// Current returns the alert awaiting dismissal.
func (h *TUIHandler) Current() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.pending) == 0 {
		return Message{}, false
	}
	return h.pending[0], true
}

// Blocking reports whether an alert is waiting to be dismissed.
func (h *TUIHandler) Blocking() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.pending) > 0
}

// Dismiss drops the current alert and reports whether another one is pending.
func (h *TUIHandler) Dismiss() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.pending) == 0 {
		return false
	}
	h.pending = h.pending[1:]
	return len(h.pending) > 0
}

// Pending returns a copy of the queued alerts, oldest first.
func (h *TUIHandler) Pending() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	copied := make([]Message, len(h.pending))
	copy(copied, h.pending)
	return copied
}

// Total is the number of alerts raised since creation, dismissed or not.
func (h *TUIHandler) Total() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.shown
}
