package sax

import "errors"

var errComponentsFailed = errors.New("sax chain components failed to initialize")

// ComponentsState tracks lazy initialization of the buffer stage a
// Controller coordinates.
type ComponentsState int

const (
	Uninitialized ComponentsState = iota
	Initialized
	Failed
)

// ChainState is the Controller's two-value state machine: whether the
// buffer stage is currently spliced into the previous->next chain.
type ChainState int

const (
	Disengaged ChainState = iota
	Engaged
)

// Controller is the SAX chain controller §4.11 describes. It installs
// itself as prev's immediate downstream so every event passes through
// HandleEvent first: while Disengaged it records structural events into
// an ElementStackKeeper and forwards straight to next; while Engaged it
// hands events to the spliced-in EventKeeper instead, which buffers or
// collects them before (or instead of) forwarding. This lets the buffer
// stage be spliced in and out without prev ever needing to know which
// downstream it is currently talking to.
type Controller struct {
	prev   Stage
	next   Stage
	buffer *EventKeeper
	stack  *ElementStackKeeper

	state      ChainState
	components ComponentsState

	collecting bool
	blocking   bool
	sticky     bool

	initComponents func() (*EventKeeper, error)
}

// NewController returns a Controller in the Disengaged state with its
// stack keeper running, spliced in as prev's downstream. initFn lazily
// builds the buffer stage the first time the chain needs to engage.
func NewController(prev, next Stage, initFn func() (*EventKeeper, error)) *Controller {
	c := &Controller{
		prev:           prev,
		next:           next,
		stack:          NewElementStackKeeper(),
		initComponents: initFn,
	}
	c.stack.Start()
	prev.SetNext(c)
	return c
}

// HandleEvent implements Stage. See the type doc for the Disengaged vs
// Engaged dispatch.
func (c *Controller) HandleEvent(e Event) {
	if c.state == Engaged && c.buffer != nil {
		c.buffer.HandleEvent(e)
		return
	}
	c.stack.Record(e)
	if c.next != nil {
		c.next.HandleEvent(e)
	}
}

// SetNext implements Stage, letting the Controller itself be spliced
// into a larger chain ahead of a document handler that changes over
// the controller's lifetime.
func (c *Controller) SetNext(next Stage) {
	c.next = next
	if c.state == Engaged && c.buffer != nil {
		c.buffer.SetNext(next)
	}
}

// Collecting reports whether reference collection is currently active.
func (c *Controller) Collecting() bool { return c.collecting }

// Blocking reports whether event emission is currently blocked.
func (c *Controller) Blocking() bool { return c.blocking }

// State reports whether the buffer stage is currently spliced in.
func (c *Controller) State() ChainState { return c.state }

// SetSticky sets the Sticky flag: while it is set, a Disengaged chain
// does not engage even when collecting or blocking, per §4.11's Sticky
// condition on the Disengaged -> Engaged transition. It does not keep an
// Engaged chain from disengaging once both flags clear.
func (c *Controller) SetSticky(sticky bool) {
	c.sticky = sticky
	c.checkChainingStatus()
}

// BlockingStatusChanged implements Listener: the buffer stage calls this
// when its own Blocking flag changes; the Controller mirrors it and
// re-evaluates the chain state.
func (c *Controller) BlockingStatusChanged(blocking bool) {
	c.blocking = blocking
	c.checkChainingStatus()
}

// CollectionStatusChanged implements Listener: mirrors the buffer
// stage's Collecting flag and re-evaluates the chain state.
func (c *Controller) CollectionStatusChanged(collecting bool) {
	c.collecting = collecting
	c.checkChainingStatus()
}

// checkChainingStatus re-evaluates the two-state machine against the
// current flags, per §4.11: engage when (collecting or blocking) and
// not sticky-disengaged; disengage when both flags are clear.
func (c *Controller) checkChainingStatus() {
	switch c.state {
	case Disengaged:
		if (c.collecting || c.blocking) && !c.sticky {
			c.chainOn()
		}
	case Engaged:
		if !c.collecting && !c.blocking {
			c.chainOff()
		}
	}
}

// ensureComponents lazily materializes the buffer stage on first use,
// registering the Controller as its listener. Safe to call repeatedly;
// a prior Failed outcome is sticky rather than retried.
func (c *Controller) ensureComponents() error {
	if c.components == Uninitialized {
		buf, err := c.initComponents()
		if err != nil {
			c.components = Failed
			return err
		}
		c.buffer = buf
		c.buffer.SetListener(c)
		c.components = Initialized
	}
	if c.components == Failed {
		return errComponentsFailed
	}
	return nil
}

// EngageCollecting lazily initializes the buffer stage and toggles its
// Collecting flag, the driver-side equivalent of xsecctl calling
// setCollecting directly on the keeper: the resulting
// CollectionStatusChanged callback is what actually engages the chain.
func (c *Controller) EngageCollecting(on bool) error {
	if err := c.ensureComponents(); err != nil {
		return err
	}
	c.buffer.SetCollecting(on)
	return nil
}

// EngageBlocking is EngageCollecting's counterpart for the Blocking flag.
func (c *Controller) EngageBlocking(on bool) error {
	if err := c.ensureComponents(); err != nil {
		return err
	}
	c.buffer.SetBlocking(on)
	return nil
}

// Buffer returns the buffer stage if it has been materialized, or nil
// before the first EngageCollecting/EngageBlocking call.
func (c *Controller) Buffer() *EventKeeper { return c.buffer }

// chainOn implements the Disengaged -> Engaged transition: lazily
// initialize the buffer stage if needed, point it at next, replay the
// stack keeper's missed events into next (withholding the last one so a
// collector can still be inserted ahead of it), and stop the stack
// keeper — from here HandleEvent routes through the buffer instead.
func (c *Controller) chainOn() error {
	if err := c.ensureComponents(); err != nil {
		return err
	}

	c.buffer.SetNext(c.next)

	missed := c.stack.Events()
	c.buffer.ReplayMissed(missed, true)
	c.stack.Stop()
	c.stack.Clear()

	c.state = Engaged
	return nil
}

// chainOff implements the Engaged -> Disengaged transition: flush the
// buffer, disconnect it, and restart the stack keeper so it resumes
// recording structural events for the next engagement.
func (c *Controller) chainOff() {
	if c.buffer != nil {
		c.buffer.Flush()
		c.buffer.SetNext(nil)
	}
	c.stack.Start()
	c.state = Disengaged
}

// ClearSAXChainConnector flushes any events still buffered in the chain
// before tearing it down, per §4.11.
func (c *Controller) ClearSAXChainConnector() {
	if c.buffer != nil {
		c.buffer.Flush()
	}
}

// EndMission cooperatively cancels the controller: flushes and
// disconnects the buffer stage, unregisters its listener, and stops the
// stack keeper, matching §5's cancellation-by-endMission contract.
func (c *Controller) EndMission() {
	c.ClearSAXChainConnector()
	if c.buffer != nil {
		c.buffer.SetListener(nil)
		c.buffer.SetNext(nil)
	}
	c.stack.Stop()
	c.state = Disengaged
	c.collecting = false
	c.blocking = false
}
