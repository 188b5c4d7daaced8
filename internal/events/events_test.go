package events

import (
	"context"
	"testing"
)

func TestEventJSON(t *testing.T) {
	e := New(SeriesCreated, "despesa")
	e.UserID = 7
	e.IDs = []uint{1, 2, 3}
	e.GroupID = "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"
	e.Count = 3

	data, err := e.ToJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := FromJSON(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != SeriesCreated || got.GroupID != e.GroupID || got.Count != 3 || len(got.IDs) != 3 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.Timestamp.Equal(e.Timestamp) {
		t.Errorf("expected timestamp %s, got %s", e.Timestamp, got.Timestamp)
	}
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.Publish(context.Background(), New(TransactionCreated, "receita")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewAMQPPublisher_BadURL(t *testing.T) {
	if _, err := NewAMQPPublisher("not-a-url", "x", "y"); err == nil {
		t.Error("expected dial error")
	}
}
