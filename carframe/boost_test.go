package carframe

import (
	"math"
	"testing"
)

var (
	boostSampleTestIDs = map[ObjectID]bool{1: true}
	boostActiveTestIDs = map[ObjectID]bool{2: true}
)

func newBoostState(sample byte, active bool) *ActorState {
	activeByte := byte(0)
	if active {
		activeByte = 1
	}
	return &ActorState{
		ObjectID: 3,
		Attributes: map[ObjectID]Attribute{
			1: ByteAttr(sample),
			2: ByteAttr(activeByte),
		},
		Derived: make(map[string]float64),
	}
}

func TestBoostFirstSampleSnaps(t *testing.T) {
	state := newBoostState(100, false)
	updateBoostAmount(state, boostSampleTestIDs, boostActiveTestIDs, 0.1)
	if got := state.Derived[derivedBoostAmount]; got != 100 {
		t.Errorf("amount = %v, want 100", got)
	}
}

func TestBoostDepletesWhileActive(t *testing.T) {
	state := newBoostState(100, true)
	updateBoostAmount(state, boostSampleTestIDs, boostActiveTestIDs, 0)

	prev := state.Derived[derivedBoostAmount]
	for i := 0; i < 10; i++ {
		updateBoostAmount(state, boostSampleTestIDs, boostActiveTestIDs, 0.05)
		got := state.Derived[derivedBoostAmount]
		if got >= prev {
			t.Fatalf("step %d: amount %v did not decrease from %v", i, got, prev)
		}
		prev = got
	}
	want := 100 - 10*0.05*BoostPerSecond
	if math.Abs(prev-want) > 1e-6 {
		t.Errorf("amount after 0.5s = %v, want %v", prev, want)
	}
}

func TestBoostUnchangedWhileInactive(t *testing.T) {
	state := newBoostState(60, false)
	for i := 0; i < 5; i++ {
		updateBoostAmount(state, boostSampleTestIDs, boostActiveTestIDs, 0.1)
	}
	if got := state.Derived[derivedBoostAmount]; got != 60 {
		t.Errorf("amount = %v, want 60 untouched", got)
	}
}

func TestBoostClampsAtZero(t *testing.T) {
	state := newBoostState(5, true)
	for i := 0; i < 20; i++ {
		updateBoostAmount(state, boostSampleTestIDs, boostActiveTestIDs, 0.1)
		if got := state.Derived[derivedBoostAmount]; got < 0 {
			t.Fatalf("amount went negative: %v", got)
		}
	}
	if got := state.Derived[derivedBoostAmount]; got != 0 {
		t.Errorf("amount = %v, want 0", got)
	}
}

func TestBoostSnapsToNewSample(t *testing.T) {
	state := newBoostState(100, true)
	updateBoostAmount(state, boostSampleTestIDs, boostActiveTestIDs, 0.2)
	if got := state.Derived[derivedBoostAmount]; got >= 100 {
		t.Fatalf("amount = %v, expected depletion below 100", got)
	}

	// A fresh pickup sample overrides the extrapolated value.
	state.Attributes[1] = ByteAttr(255)
	state.Attributes[2] = ByteAttr(0)
	updateBoostAmount(state, boostSampleTestIDs, boostActiveTestIDs, 0.2)
	if got := state.Derived[derivedBoostAmount]; got != 255 {
		t.Errorf("amount = %v, want snapped 255", got)
	}
}

func TestBoostNoSampleYet(t *testing.T) {
	state := &ActorState{
		ObjectID:   3,
		Attributes: map[ObjectID]Attribute{2: ByteAttr(1)},
		Derived:    make(map[string]float64),
	}
	updateBoostAmount(state, boostSampleTestIDs, boostActiveTestIDs, 0.1)
	if len(state.Derived) != 0 {
		t.Errorf("derived slots written without a sample: %v", state.Derived)
	}
}
