package service

import (
	"tradebinder/internal/domain/entity"
)

// NegotiationEventKind enumerates everything that can advance a
// conversation's negotiation status.
type NegotiationEventKind int

const (
	EventOfferSent NegotiationEventKind = iota
	EventOfferAccepted
	EventOfferDeclined
	EventMeetupProposed
	EventMeetupAccepted
	EventMeetupDeclined
	EventTradeCompleted
	EventCancelled
)

type NegotiationEvent struct {
	Kind NegotiationEventKind

	// ListingWithdrawn steers a declined offer to cancelled instead of back
	// to chatting when the listing itself is gone.
	ListingWithdrawn bool
}

// EventForMessage maps an appended message to its negotiation event. The
// second return is false for text, image and system messages, which never
// advance state.
func EventForMessage(msg *entity.Message) (NegotiationEvent, bool) {
	switch msg.Type {
	case entity.MessageCardOffer:
		return NegotiationEvent{Kind: EventOfferSent}, true

	case entity.MessageOfferResponse:
		if msg.OfferResponse == nil {
			return NegotiationEvent{}, false
		}
		if msg.OfferResponse.Action == entity.ResponseAccepted {
			return NegotiationEvent{Kind: EventOfferAccepted}, true
		}
		return NegotiationEvent{Kind: EventOfferDeclined}, true

	case entity.MessageMeetupProposal:
		return NegotiationEvent{Kind: EventMeetupProposed}, true

	case entity.MessageMeetupResponse:
		if msg.MeetupResponse == nil {
			return NegotiationEvent{}, false
		}
		if msg.MeetupResponse.Action == entity.ResponseAccepted {
			return NegotiationEvent{Kind: EventMeetupAccepted}, true
		}
		return NegotiationEvent{Kind: EventMeetupDeclined}, true

	case entity.MessageText, entity.MessageImage, entity.MessageSystem:
		return NegotiationEvent{}, false
	}

	return NegotiationEvent{}, false
}

// IsTerminal reports whether no further negotiation events apply.
func IsTerminal(status entity.NegotiationStatus) bool {
	return status == entity.NegotiationCompleted || status == entity.NegotiationCancelled
}

// NextNegotiationStatus applies one event to the current status. The second
// return is false when the event is not valid in the current state; the
// status is then returned unchanged and the caller must reject the write.
func NextNegotiationStatus(current entity.NegotiationStatus, ev NegotiationEvent) (entity.NegotiationStatus, bool) {
	if IsTerminal(current) {
		return current, false
	}

	if ev.Kind == EventCancelled {
		return entity.NegotiationCancelled, true
	}

	switch current {
	case entity.NegotiationChatting:
		if ev.Kind == EventOfferSent {
			return entity.NegotiationOfferPending, true
		}

	case entity.NegotiationOfferPending:
		switch ev.Kind {
		case EventOfferAccepted:
			return entity.NegotiationOfferAccepted, true
		case EventOfferDeclined:
			if ev.ListingWithdrawn {
				return entity.NegotiationCancelled, true
			}
			return entity.NegotiationChatting, true
		case EventOfferSent:
			// Counter-offer; the offer chain moves but the status stays put.
			return entity.NegotiationOfferPending, true
		}

	case entity.NegotiationOfferAccepted:
		if ev.Kind == EventMeetupProposed {
			return entity.NegotiationMeetupProposed, true
		}

	case entity.NegotiationMeetupProposed:
		switch ev.Kind {
		case EventMeetupAccepted:
			return entity.NegotiationMeetupConfirmed, true
		case EventMeetupDeclined:
			return entity.NegotiationOfferAccepted, true
		}

	case entity.NegotiationMeetupConfirmed:
		if ev.Kind == EventTradeCompleted {
			return entity.NegotiationCompleted, true
		}
	}

	return current, false
}
