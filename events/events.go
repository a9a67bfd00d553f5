package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"kellybook/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBankrollChanged       EventType = "bankroll_changed"
	EventTypeBetFinalized          EventType = "bet_finalized"
	EventTypeBetSettled            EventType = "bet_settled"
	EventTypeBetUnsettled          EventType = "bet_unsettled"
	EventTypeCriticalInconsistency EventType = "critical_inconsistency"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BankrollChangedEvent represents a bankroll mutation that was persisted
type BankrollChangedEvent struct {
	OldBankroll float64
	NewBankroll float64
	Delta       float64
	Reason      string
}

func (e BankrollChangedEvent) Type() EventType {
	return EventTypeBankrollChanged
}

// BetFinalizedEvent represents a bet that entered the pending state
type BetFinalizedEvent struct {
	Bet models.Bet
}

func (e BetFinalizedEvent) Type() EventType {
	return EventTypeBetFinalized
}

// BetSettledEvent represents a bet that reached a terminal status
type BetSettledEvent struct {
	Bet        models.Bet
	Outcome    models.Outcome
	ProfitLoss float64
	Credit     float64
}

func (e BetSettledEvent) Type() EventType {
	return EventTypeBetSettled
}

// BetUnsettledEvent represents a settled bet reverted to pending
type BetUnsettledEvent struct {
	Bet            models.Bet
	PriorStatus    models.BetStatus
	BankrollChange float64
}

func (e BetUnsettledEvent) Type() EventType {
	return EventTypeBetUnsettled
}

// CriticalInconsistencyEvent reports a failed compensating write. The
// bankroll and the bet store have diverged; an operator has to reconcile
// them by hand, so this event must always reach a visible surface.
type CriticalInconsistencyEvent struct {
	Op      string
	BetID   string
	Details string
}

func (e CriticalInconsistencyEvent) Type() EventType {
	return EventTypeCriticalInconsistency
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers. Handlers run
// asynchronously so a slow consumer cannot block a ledger operation.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}
