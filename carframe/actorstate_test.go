package carframe

import (
	"errors"
	"testing"
)

func TestSpawnIdempotentSameType(t *testing.T) {
	s := NewActorStore()
	if err := s.Spawn(1, 10, nil); err != nil {
		t.Fatalf("first spawn: %v", err)
	}
	if _, _, err := s.Update(1, 99, IntAttr(7)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.Spawn(1, 10, nil); err != nil {
		t.Fatalf("re-affirming spawn: %v", err)
	}
	// The re-affirmation must not reset accumulated state.
	state, ok := s.State(1)
	if !ok {
		t.Fatal("actor vanished")
	}
	if _, ok := state.Attributes[99]; !ok {
		t.Error("re-affirming spawn wiped attributes")
	}
	if got := s.ActorIDsOfType(10); len(got) != 1 {
		t.Errorf("type index holds %d ids, want 1", len(got))
	}
}

func TestSpawnConflict(t *testing.T) {
	s := NewActorStore()
	if err := s.Spawn(1, 10, nil); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if err := s.Spawn(1, 11, nil); !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}
}

func TestUpdateReturnsPrevious(t *testing.T) {
	s := NewActorStore()
	if err := s.Spawn(1, 10, nil); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	_, had, err := s.Update(1, 5, ByteAttr(100))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if had {
		t.Error("first update reported a previous value")
	}
	prev, had, err := s.Update(1, 5, ByteAttr(42))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !had || prev.Byte != 100 {
		t.Errorf("previous = (%+v, %v), want byte 100", prev, had)
	}
}

func TestAttributeLookup(t *testing.T) {
	s := NewActorStore()
	if err := s.Spawn(1, 10, nil); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if _, _, err := s.Update(1, 5, ByteAttr(33)); err != nil {
		t.Fatalf("update: %v", err)
	}
	state, _ := s.State(1)
	attr, err := state.Attribute(map[ObjectID]bool{4: true, 5: true})
	if err != nil {
		t.Fatalf("Attribute: %v", err)
	}
	if attr.Byte != 33 {
		t.Errorf("attr.Byte = %d, want 33", attr.Byte)
	}
	if _, err := state.Attribute(map[ObjectID]bool{6: true}); !errors.Is(err, ErrMissingAttribute) {
		t.Errorf("err = %v, want ErrMissingAttribute", err)
	}
}

func TestUpdateUnknownActor(t *testing.T) {
	s := NewActorStore()
	if _, _, err := s.Update(9, 5, ByteAttr(1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteAtomic(t *testing.T) {
	s := NewActorStore()
	for id := ActorID(1); id <= 3; id++ {
		if err := s.Spawn(id, 10, nil); err != nil {
			t.Fatalf("spawn %d: %v", id, err)
		}
	}
	state, err := s.Delete(2)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if state == nil || state.ObjectID != 10 {
		t.Errorf("deleted state = %+v", state)
	}
	if _, ok := s.State(2); ok {
		t.Error("state map still holds deleted actor")
	}
	ids := s.ActorIDsOfType(10)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Errorf("type index after delete = %v, want [1 3]", ids)
	}
	if _, err := s.Delete(2); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestActorIDsOfTypeEmpty(t *testing.T) {
	s := NewActorStore()
	if got := s.ActorIDsOfType(77); len(got) != 0 {
		t.Errorf("unknown type yields %v, want empty", got)
	}
}
