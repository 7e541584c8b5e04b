package events

import (
	"context"
	"sync"
)

// MockPublisher records published events for tests.
type MockPublisher struct {
	mu        sync.Mutex
	published []PublishedEvent
}

type PublishedEvent struct {
	Topic   string
	Payload any
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (p *MockPublisher) Publish(_ context.Context, topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, PublishedEvent{Topic: topic, Payload: payload})
	return nil
}

func (p *MockPublisher) Close() error {
	return nil
}

// Published returns a copy of everything published so far.
func (p *MockPublisher) Published() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PublishedEvent, len(p.published))
	copy(out, p.published)
	return out
}
