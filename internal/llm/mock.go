package llm

import (
	"context"
	"sync"
)

// Mock is an in-memory Provider that returns a canned reply. It records the
// number of calls and the last transcript it received, so tests can assert
// that a code path did (or did not) reach the completion client.
type Mock struct {
	// Reply is returned from Complete. Empty means a default canned reply.
	Reply string
	// Err, when set, is returned instead of a reply.
	Err error

	mu    sync.Mutex
	calls int
	last  []Message
}

func (m *Mock) Complete(_ context.Context, messages []Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	m.last = append([]Message(nil), messages...)

	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply == "" {
		return "This is a canned EduGenie reply.", nil
	}
	return m.Reply, nil
}

// Calls returns how many times Complete has been invoked.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastMessages returns a copy of the transcript from the most recent call,
// or nil if Complete was never invoked.
func (m *Mock) LastMessages() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.last...)
}
