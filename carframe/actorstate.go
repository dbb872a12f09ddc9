package carframe

import "fmt"

// ActorState is the accumulated state of one live actor: the most recent
// value observed for each attribute (last write wins), plus a slot of
// derived values computed by this engine rather than carried by the stream.
type ActorState struct {
	ObjectID   ObjectID
	NameID     *int32
	Attributes map[ObjectID]Attribute
	Derived    map[string]float64
}

// Attribute returns the last observed value for any of the given attribute
// object ids, or ErrMissingAttribute when none has been observed. An
// attribute name can map to several object ids across replays, so callers
// pass the whole resolved set.
func (s *ActorState) Attribute(ids map[ObjectID]bool) (Attribute, error) {
	for id := range ids {
		if a, ok := s.Attributes[id]; ok {
			return a, nil
		}
	}
	return Attribute{}, ErrMissingAttribute
}

// ActorStore owns the live actor map for one processing run: ActorID to
// state, plus a secondary index from object type to the ordered set of live
// actor ids of that type. The two structures are updated together per event
// and are never inconsistent between frames.
type ActorStore struct {
	states map[ActorID]*ActorState
	byType map[ObjectID][]ActorID
}

func NewActorStore() *ActorStore {
	return &ActorStore{
		states: make(map[ActorID]*ActorState),
		byType: make(map[ObjectID][]ActorID),
	}
}

// Spawn registers a new live actor. Spawning an id that is already live
// under the same object type is a benign re-affirmation and a no-op; under
// a different type it is an ErrConflict, since the stream is expected to
// delete an id before reusing it.
func (s *ActorStore) Spawn(id ActorID, objectID ObjectID, nameID *int32) error {
	if existing, ok := s.states[id]; ok {
		if existing.ObjectID == objectID {
			return nil
		}
		return fmt.Errorf("actor %d respawned as object %d while live as object %d: %w",
			id, objectID, existing.ObjectID, ErrConflict)
	}
	s.states[id] = &ActorState{
		ObjectID:   objectID,
		NameID:     nameID,
		Attributes: make(map[ObjectID]Attribute),
		Derived:    make(map[string]float64),
	}
	s.byType[objectID] = append(s.byType[objectID], id)
	return nil
}

// Update overwrites the last-known value of one attribute on a live actor
// and returns the previous value, if any. An update for an actor with no
// live state is an ErrNotFound: the upstream tokenizer emitted events out
// of order.
func (s *ActorStore) Update(id ActorID, attributeID ObjectID, value Attribute) (Attribute, bool, error) {
	state, ok := s.states[id]
	if !ok {
		return Attribute{}, false, fmt.Errorf("update for actor %d: %w", id, ErrNotFound)
	}
	prev, had := state.Attributes[attributeID]
	state.Attributes[attributeID] = value
	return prev, had, nil
}

// Delete removes a live actor from both the state map and its type index,
// returning the removed state for last-moment inspection by the caller.
func (s *ActorStore) Delete(id ActorID) (*ActorState, error) {
	state, ok := s.states[id]
	if !ok {
		return nil, fmt.Errorf("delete for actor %d: %w", id, ErrNotFound)
	}
	delete(s.states, id)
	ids := s.byType[state.ObjectID]
	for i, v := range ids {
		if v == id {
			s.byType[state.ObjectID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(s.byType[state.ObjectID]) == 0 {
		delete(s.byType, state.ObjectID)
	}
	return state, nil
}

// State returns the live state for an actor id, if any.
func (s *ActorStore) State(id ActorID) (*ActorState, bool) {
	state, ok := s.states[id]
	return state, ok
}

// ActorIDsOfType returns the live actor ids of one object type in spawn
// order. A type with no live members yields an empty slice, not an error.
func (s *ActorStore) ActorIDsOfType(objectID ObjectID) []ActorID {
	return s.byType[objectID]
}

// Len returns the number of live actors.
func (s *ActorStore) Len() int {
	return len(s.states)
}
