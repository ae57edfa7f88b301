package service

import "smartinvoice/internal/websocket"

// EventPublisher pushes change notifications to connected editors.
type EventPublisher interface {
	Publish(e websocket.Event)
}

type discardPublisher struct{}

func (discardPublisher) Publish(websocket.Event) {}

func publisherOrDiscard(p EventPublisher) EventPublisher {
	if p == nil {
		return discardPublisher{}
	}
	return p
}
