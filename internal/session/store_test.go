package session

import (
	"testing"
	"time"

	"github.com/labdecoder/labdecoder/internal/extract"
)

var someResults = []extract.LabResult{
	{TestName: "Hemoglobin", Value: "10.5", Status: extract.StatusLow},
}

func TestPutAndGet(t *testing.T) {
	store := NewStore(0)

	id := store.Put(someResults)
	if id == "" {
		t.Fatal("expected non-empty session ID")
	}

	got, ok := store.Get(id)
	if !ok {
		t.Fatal("session not found")
	}
	if len(got) != 1 || got[0].TestName != "Hemoglobin" {
		t.Errorf("unexpected results: %+v", got)
	}
}

func TestGetUnknownID(t *testing.T) {
	store := NewStore(0)
	if _, ok := store.Get("nope"); ok {
		t.Error("expected miss for unknown ID")
	}
}

func TestDelete(t *testing.T) {
	store := NewStore(0)
	id := store.Put(someResults)

	store.Delete(id)
	if _, ok := store.Get(id); ok {
		t.Error("session should be gone after delete")
	}
	store.Delete("unknown") // no-op
}

func TestExpiry(t *testing.T) {
	store := NewStore(time.Minute)

	current := time.Now()
	store.now = func() time.Time { return current }

	id := store.Put(someResults)

	current = current.Add(2 * time.Minute)
	if _, ok := store.Get(id); ok {
		t.Error("expired session should not be returned")
	}
}

func TestSweepOnPut(t *testing.T) {
	store := NewStore(time.Minute)

	current := time.Now()
	store.now = func() time.Time { return current }

	store.Put(someResults)
	current = current.Add(2 * time.Minute)
	store.Put(someResults)

	if n := store.Len(); n != 1 {
		t.Errorf("expected 1 live session after sweep, got %d", n)
	}
}

func TestGetRefreshesTTL(t *testing.T) {
	store := NewStore(time.Minute)

	current := time.Now()
	store.now = func() time.Time { return current }

	id := store.Put(someResults)

	current = current.Add(45 * time.Second)
	if _, ok := store.Get(id); !ok {
		t.Fatal("session should still be live")
	}

	current = current.Add(45 * time.Second)
	if _, ok := store.Get(id); !ok {
		t.Error("access should have refreshed the TTL")
	}
}
