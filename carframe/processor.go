package carframe

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Processor reconstructs a normalized per-frame timeline from a replay's
// tokenized network frames. One Processor serves one replay: it owns every
// piece of mutable state for the run (actor store, relationship edges, ball
// slot, output timeline) and nothing is shared between instances, so hosts
// analyzing several replays concurrently use one Processor each.
//
// Frames are applied strictly in order, and within a frame the event kinds
// are applied in a fixed order: deletes, then spawns, then attribute
// updates. A delete-then-respawn of one actor id inside a single frame is a
// legal id reuse, not a duplicate spawn, and an update may target an actor
// spawned earlier in the same frame.
type Processor struct {
	cfg        TypeConfig
	objects    *ObjectMap
	netVersion int32
	store      *ActorStore

	// resolved object type sets
	carTypeIDs        map[ObjectID]bool
	boostTypeIDs      map[ObjectID]bool
	jumpTypeIDs       map[ObjectID]bool
	doubleJumpTypeIDs map[ObjectID]bool
	dodgeTypeIDs      map[ObjectID]bool
	playerInfoTypeIDs map[ObjectID]bool
	teamTypeIDs       []map[ObjectID]bool

	// resolved attribute ids
	pawnInfoAttrIDs   map[ObjectID]bool
	uniqueIDAttrIDs   map[ObjectID]bool
	playerNameAttrIDs map[ObjectID]bool
	teamAttrIDs       map[ObjectID]bool
	vehicleAttrIDs    map[ObjectID]bool
	activeAttrIDs     map[ObjectID]bool
	boostSampleIDs    map[ObjectID]bool
	rigidBodyAttrIDs  map[ObjectID]bool
	secondsAttrIDs    map[ObjectID]bool

	links []linkSpec

	// relationship edges, all invalidated when their key-side actor deletes
	carToInfo       map[ActorID]ActorID
	carToBoost      map[ActorID]ActorID
	carToJump       map[ActorID]ActorID
	carToDoubleJump map[ActorID]ActorID
	carToDodge      map[ActorID]ActorID
	playerToCar     map[PlayerID]ActorID
	playerToInfo    map[PlayerID]ActorID
	playerOrder     []PlayerID

	ballActor ActorID
	ballSet   bool

	noGameEventLogged bool

	frameIndex int
	data       *ReplayData
}

// NewProcessor builds a processor over a replay's ordered object table.
// netVersion selects the vector bit-width scheme and is supplied once per
// replay by the container parser.
func NewProcessor(objectNames []string, netVersion int32, cfg TypeConfig) *Processor {
	objects := NewObjectMap(objectNames)
	p := &Processor{
		cfg:        cfg,
		objects:    objects,
		netVersion: netVersion,
		store:      NewActorStore(),

		carTypeIDs:        objects.IDSet(cfg.CarTypes...),
		boostTypeIDs:      objects.IDSet(cfg.BoostTypes...),
		jumpTypeIDs:       objects.IDSet(cfg.JumpTypes...),
		doubleJumpTypeIDs: objects.IDSet(cfg.DoubleJumpTypes...),
		dodgeTypeIDs:      objects.IDSet(cfg.DodgeTypes...),
		playerInfoTypeIDs: objects.IDSet(cfg.PlayerInfoTypes...),

		pawnInfoAttrIDs:   objects.IDSet(attrPlayerReplicationInfo),
		uniqueIDAttrIDs:   objects.IDSet(attrUniqueID),
		playerNameAttrIDs: objects.IDSet(attrPlayerName),
		teamAttrIDs:       objects.IDSet(attrTeam),
		vehicleAttrIDs:    objects.IDSet(attrVehicle),
		activeAttrIDs:     objects.IDSet(attrReplicatedActive),
		boostSampleIDs:    objects.IDSet(attrBoostAmount),
		rigidBodyAttrIDs:  objects.IDSet(attrRigidBodyState),
		secondsAttrIDs:    objects.IDSet(attrSecondsRemaining),

		carToInfo:       make(map[ActorID]ActorID),
		carToBoost:      make(map[ActorID]ActorID),
		carToJump:       make(map[ActorID]ActorID),
		carToDoubleJump: make(map[ActorID]ActorID),
		carToDodge:      make(map[ActorID]ActorID),
		playerToCar:     make(map[PlayerID]ActorID),
		playerToInfo:    make(map[PlayerID]ActorID),

		data: newReplayData(),
	}
	for _, name := range cfg.TeamTypes {
		p.teamTypeIDs = append(p.teamTypeIDs, objects.IDSet(name))
	}
	p.buildLinks()
	return p
}

// NetVersion returns the replay's network version.
func (p *Processor) NetVersion() int32 {
	return p.netVersion
}

// Objects returns the replay's object table lookup.
func (p *Processor) Objects() *ObjectMap {
	return p.objects
}

// Process applies every frame in order and returns the reconstructed
// timeline. Store-level contradictions (spawn conflicts, updates or deletes
// of dead actors) abort the run; entity-level resolution failures only blank
// that entity for that frame.
func (p *Processor) Process(frames []Frame) (*ReplayData, error) {
	for i, f := range frames {
		if err := p.processFrame(f); err != nil {
			return nil, fmt.Errorf("frame %d (t=%.3f): %w", i, f.Time, err)
		}
	}
	return p.data, nil
}

func (p *Processor) processFrame(f Frame) error {
	for _, id := range f.DeletedActors {
		if _, err := p.store.Delete(id); err != nil {
			return err
		}
		p.sweepDeleted(id)
	}
	for _, a := range f.NewActors {
		if err := p.store.Spawn(a.ActorID, a.ObjectID, a.NameID); err != nil {
			return err
		}
	}
	for _, u := range f.UpdatedActors {
		if _, _, err := p.store.Update(u.ActorID, u.ObjectID, u.Attribute); err != nil {
			return err
		}
		p.trackUpdate(u)
	}

	p.acquireBall()
	p.updateDerived(f.Delta)
	p.emitFrame(f)
	return nil
}

// updateDerived recomputes derived attributes for every live actor that has
// them, whether or not the frame carried an update for it. Currently that
// is the boost amount on boost component actors.
func (p *Processor) updateDerived(delta float32) {
	for _, name := range p.cfg.BoostTypes {
		for _, oid := range p.objects.IDs(name) {
			for _, aid := range p.store.ActorIDsOfType(oid) {
				if state, ok := p.store.State(aid); ok {
					updateBoostAmount(state, p.boostSampleIDs, p.activeAttrIDs, delta)
				}
			}
		}
	}
}

// ProcessDump is a convenience wrapper joining the frame dump format with
// the processor: one call from a loaded dump to a timeline.
func ProcessDump(d *Dump, cfg TypeConfig) (*ReplayData, error) {
	p := NewProcessor(d.Objects, d.NetVersion, cfg)
	data, err := p.Process(d.Frames)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", d.ReplayID, err)
	}
	log.Debug().
		Str("replay", d.ReplayID.String()).
		Int("frames", data.FrameCount).
		Int("players", len(data.Players)).
		Msg("replay processed")
	return data, nil
}
