package server

import (
	"testing"
	"time"
)

func TestMonitorCounters(t *testing.T) {
	m := NewMonitor()
	m.ConnAccepted()
	m.ConnAccepted()
	m.RecordParseFailure()
	m.RecordRequest(Event{Method: "OPTIONS", Status: 200, Time: time.Now()})
	m.RecordRequest(Event{Method: "OPTIONS", Status: 200, Time: time.Now()})
	m.RecordRequest(Event{Method: "ANNOUNCE", Status: 501, Time: time.Now()})

	stats := m.Stats()
	if stats.Accepted != 2 {
		t.Errorf("accepted = %d", stats.Accepted)
	}
	if stats.Requests != 3 {
		t.Errorf("requests = %d", stats.Requests)
	}
	if stats.ParseFailures != 1 {
		t.Errorf("parse failures = %d", stats.ParseFailures)
	}
	if stats.ByMethod["OPTIONS"] != 2 || stats.ByMethod["ANNOUNCE"] != 1 {
		t.Errorf("by method = %v", stats.ByMethod)
	}
}

func TestMonitorEventRingBounded(t *testing.T) {
	m := NewMonitor()
	for i := 0; i < eventRingSize+10; i++ {
		m.RecordRequest(Event{Method: "PLAY", Status: 200})
	}
	if got := len(m.Events()); got != eventRingSize {
		t.Errorf("ring length = %d, want %d", got, eventRingSize)
	}
}

func TestMonitorSubscribe(t *testing.T) {
	m := NewMonitor()
	ch := m.Subscribe("sub-1")

	ev := Event{ConnID: "c1", Method: "SETUP", Status: 200}
	m.RecordRequest(ev)

	select {
	case got := <-ch:
		if got.Method != "SETUP" || got.ConnID != "c1" {
			t.Errorf("event = %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	m.Unsubscribe("sub-1")
	if _, ok := <-ch; ok {
		t.Error("channel not closed after unsubscribe")
	}

	// recording after unsubscribe must not panic
	m.RecordRequest(ev)
}
