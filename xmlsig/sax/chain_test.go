package sax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordingSink() (*Sink, *[]Event) {
	var got []Event
	return NewSink(func(e Event) { got = append(got, e) }), &got
}

func TestControllerDisengagedForwardsDirectlyToNext(t *testing.T) {
	next, got := newRecordingSink()
	prev := NewSink(nil)
	c := NewController(prev, next, func() (*EventKeeper, error) { return NewEventKeeper(), nil })

	prev.HandleEvent(Event{Kind: StartElement, Name: "root"})

	assert.Equal(t, Disengaged, c.State())
	require.Len(t, *got, 1)
	assert.Equal(t, "root", (*got)[0].Name)
}

func TestControllerEngagesOnBlockingAndBuffersUntilFlush(t *testing.T) {
	next, got := newRecordingSink()
	prev := NewSink(nil)
	c := NewController(prev, next, func() (*EventKeeper, error) { return NewEventKeeper(), nil })

	require.NoError(t, c.EngageBlocking(true))
	assert.Equal(t, Engaged, c.State())

	prev.HandleEvent(Event{Kind: StartElement, Name: "held"})
	assert.Empty(t, *got, "blocked event must not reach next until flush")

	c.ClearSAXChainConnector()
	require.Len(t, *got, 1)
	assert.Equal(t, "held", (*got)[0].Name)
}

func TestControllerDisengagesWhenBothFlagsClear(t *testing.T) {
	next, _ := newRecordingSink()
	prev := NewSink(nil)
	c := NewController(prev, next, func() (*EventKeeper, error) { return NewEventKeeper(), nil })

	require.NoError(t, c.EngageCollecting(true))
	assert.Equal(t, Engaged, c.State())

	require.NoError(t, c.EngageCollecting(false))
	assert.Equal(t, Disengaged, c.State())
}

func TestControllerStickyPreventsEngagement(t *testing.T) {
	next, _ := newRecordingSink()
	prev := NewSink(nil)
	c := NewController(prev, next, func() (*EventKeeper, error) { return NewEventKeeper(), nil })

	c.SetSticky(true)
	require.NoError(t, c.EngageCollecting(true))

	assert.Equal(t, Disengaged, c.State())
}

func TestControllerReplaysMissedPrologueOnEngagement(t *testing.T) {
	next, got := newRecordingSink()
	prev := NewSink(nil)
	c := NewController(prev, next, func() (*EventKeeper, error) { return NewEventKeeper(), nil })

	prev.HandleEvent(Event{Kind: StartElement, Name: "root"})
	prev.HandleEvent(Event{Kind: StartElement, Name: "child"})
	*got = nil

	require.NoError(t, c.EngageCollecting(true))

	require.Len(t, *got, 1, "the last structural event is withheld so a collector can precede it")
	assert.Equal(t, "root", (*got)[0].Name)
}

func TestElementStackKeeperDropsCharactersAndRespectsRunning(t *testing.T) {
	k := NewElementStackKeeper()
	k.Start()
	k.Record(Event{Kind: StartElement, Name: "a"})
	k.Record(Event{Kind: Characters, Text: "text"})
	k.Stop()
	k.Record(Event{Kind: EndElement, Name: "a"})

	got := k.Events()
	require.Len(t, got, 1)
	assert.Equal(t, StartElement, got[0].Kind)
}

func TestEventKeeperCollectsStartElementsRegardlessOfBlocking(t *testing.T) {
	k := NewEventKeeper()
	k.SetCollecting(true)
	k.SetBlocking(true)

	k.HandleEvent(Event{Kind: StartElement, Name: "a", Attrs: []Attribute{{Name: "Id", Value: "x"}}})
	k.HandleEvent(Event{Kind: EndElement, Name: "a"})

	collected := k.Collected()
	require.Len(t, collected, 1)
	assert.Equal(t, "a", collected[0].Name)
}

type flagSpy struct {
	blocking, collecting []bool
}

func (s *flagSpy) BlockingStatusChanged(b bool)   { s.blocking = append(s.blocking, b) }
func (s *flagSpy) CollectionStatusChanged(c bool) { s.collecting = append(s.collecting, c) }

func TestEventKeeperNotifiesListenerOnlyOnChange(t *testing.T) {
	spy := &flagSpy{}
	k := NewEventKeeper()
	k.SetListener(spy)

	k.SetBlocking(true)
	k.SetBlocking(true)
	k.SetCollecting(true)

	assert.Equal(t, []bool{true}, spy.blocking)
	assert.Equal(t, []bool{true}, spy.collecting)
}
