package sax

// Listener receives the buffer stage's status-change notifications. The
// Controller registers itself into a buffer stage's listener slot by
// handle rather than by ownership — the buffer stage never constructs
// or owns its listener, matching the original's cyclic-registration
// note that the two components reference each other without either
// outliving the other.
type Listener interface {
	BlockingStatusChanged(blocking bool)
	CollectionStatusChanged(collecting bool)
}

// EventKeeper is the buffering stage (SAXEventKeeper in the original)
// spliced into the chain by the Controller while collecting element
// references or blocking event emission. While Blocking it retains
// events rather than forwarding them downstream; while Collecting it
// additionally records every StartElement's attributes as candidate
// signature references, returned by Collected once the collection pass
// completes.
type EventKeeper struct {
	next Stage

	blocking   bool
	collecting bool
	sticky     bool

	buffered  []Event
	collected []Event

	listener Listener
}

// NewEventKeeper returns an EventKeeper with no downstream connection
// and both flags clear.
func NewEventKeeper() *EventKeeper {
	return &EventKeeper{}
}

// SetNext implements Stage.
func (k *EventKeeper) SetNext(next Stage) { k.next = next }

// SetListener registers the Controller's callback slot. Passing nil
// unregisters without panicking on a subsequent HandleEvent.
func (k *EventKeeper) SetListener(l Listener) { k.listener = l }

// SetBlocking toggles whether events are retained rather than forwarded,
// notifying the listener of the change.
func (k *EventKeeper) SetBlocking(b bool) {
	if b == k.blocking {
		return
	}
	k.blocking = b
	if k.listener != nil {
		k.listener.BlockingStatusChanged(b)
	}
}

// SetCollecting toggles whether StartElement attributes are recorded as
// candidate references, notifying the listener of the change.
func (k *EventKeeper) SetCollecting(c bool) {
	if c == k.collecting {
		return
	}
	k.collecting = c
	if k.listener != nil {
		k.listener.CollectionStatusChanged(c)
	}
}

// SetSticky records the buffer stage's sticky flag, reported by Sticky.
// The Controller keeps its own sticky flag (Controller.SetSticky) and
// does not consult this one.
func (k *EventKeeper) SetSticky(s bool) { k.sticky = s }

func (k *EventKeeper) Blocking() bool   { return k.blocking }
func (k *EventKeeper) Collecting() bool { return k.collecting }
func (k *EventKeeper) Sticky() bool     { return k.sticky }

// HandleEvent implements Stage: while blocking, events are appended to
// the internal buffer instead of being forwarded; while collecting,
// StartElement events are additionally appended to the collected list
// regardless of the blocking flag. When neither flag is set this simply
// forwards to next, which is what makes the stage safe to leave in
// place briefly after a transition.
func (k *EventKeeper) HandleEvent(e Event) {
	if k.collecting && e.Kind == StartElement {
		k.collected = append(k.collected, e)
	}
	if k.blocking {
		k.buffered = append(k.buffered, e)
		return
	}
	if k.next != nil {
		k.next.HandleEvent(e)
	}
}

// Flush forwards every buffered event downstream in order and clears
// the buffer, used by clearSAXChainConnector (§4.11) before the chain
// is torn down.
func (k *EventKeeper) Flush() {
	pending := k.buffered
	k.buffered = nil
	for _, e := range pending {
		if k.next != nil {
			k.next.HandleEvent(e)
		}
	}
}

// ReplayMissed feeds prologue events captured by an ElementStackKeeper
// directly into this stage's forwarding path (bypassing buffering),
// optionally withholding the last event so a collector can be spliced
// in ahead of it, per §4.11's re-engagement action.
func (k *EventKeeper) ReplayMissed(events []Event, withholdLast bool) {
	n := len(events)
	if withholdLast && n > 0 {
		n--
	}
	for _, e := range events[:n] {
		if k.next != nil {
			k.next.HandleEvent(e)
		}
	}
}

// Collected returns the StartElement events recorded while collecting,
// in the order seen.
func (k *EventKeeper) Collected() []Event {
	return append([]Event(nil), k.collected...)
}

// ClearCollected discards the collected reference list.
func (k *EventKeeper) ClearCollected() {
	k.collected = nil
}
