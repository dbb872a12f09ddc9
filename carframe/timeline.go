package carframe

import "github.com/rs/zerolog/log"

// BallFrame is the ball's reconstructed state at one frame.
type BallFrame struct {
	RigidBody RigidBody `json:"rigidBody"`
}

// PlayerFrame is one player's reconstructed state at one frame. Team is the
// index into the configured team types, or -1 while unknown.
type PlayerFrame struct {
	Name      string    `json:"name,omitempty"`
	Team      int       `json:"team"`
	RigidBody RigidBody `json:"rigidBody"`
	Boost     float64   `json:"boost"`
}

// MetaFrame carries the clock state at one frame.
type MetaFrame struct {
	Time             float32 `json:"time"`
	Delta            float32 `json:"delta"`
	SecondsRemaining int32   `json:"secondsRemaining"`
}

// ReplayData is the reconstructed timeline. All sequences advance in
// lockstep with the frame index: a nil entry means the entity could not be
// resolved at that frame, so index i refers to the same instant in every
// sequence.
type ReplayData struct {
	Ball       []*BallFrame                `json:"ball"`
	Players    map[PlayerID][]*PlayerFrame `json:"players"`
	Meta       []*MetaFrame                `json:"meta"`
	FrameCount int                         `json:"frameCount"`
}

func newReplayData() *ReplayData {
	return &ReplayData{
		Players: make(map[PlayerID][]*PlayerFrame),
	}
}

// padAppend appends v as entry number index, first backfilling nil entries
// for any frames the sequence has not seen. Entities discovered mid-replay
// stay aligned with the global frame counter this way.
func padAppend[T any](seq []*T, index int, v *T) []*T {
	for len(seq) < index {
		seq = append(seq, nil)
	}
	return append(seq, v)
}

// emitFrame converts the current actor/link/derived state into one record
// per tracked entity. Entity-level failures become nil records here; they
// never abort the rest of the frame or the replay.
func (p *Processor) emitFrame(f Frame) {
	p.data.Ball = padAppend(p.data.Ball, p.frameIndex, p.ballFrame())
	p.data.Meta = padAppend(p.data.Meta, p.frameIndex, p.metaFrame(f))
	for _, pid := range p.playerOrder {
		p.data.Players[pid] = padAppend(p.data.Players[pid], p.frameIndex, p.playerFrame(pid))
	}
	p.frameIndex++
	p.data.FrameCount = p.frameIndex
}

func (p *Processor) metaFrame(f Frame) *MetaFrame {
	state := p.singleGameEventActor()
	if state == nil {
		// Expected before the game event actor spawns in the early frames.
		if !p.noGameEventLogged {
			log.Debug().Float32("time", f.Time).Msg("no game event actor yet")
			p.noGameEventLogged = true
		}
		return nil
	}
	attr, err := state.Attribute(p.secondsAttrIDs)
	if err != nil {
		return nil
	}
	seconds, err := attr.AsInt()
	if err != nil {
		log.Debug().Err(err).Msg("seconds remaining attribute malformed")
		return nil
	}
	return &MetaFrame{Time: f.Time, Delta: f.Delta, SecondsRemaining: seconds}
}

func (p *Processor) singleGameEventActor() *ActorState {
	for _, name := range p.cfg.GameEventTypes {
		for _, oid := range p.objects.IDs(name) {
			for _, aid := range p.store.ActorIDsOfType(oid) {
				if state, ok := p.store.State(aid); ok {
					return state
				}
			}
		}
	}
	return nil
}

func (p *Processor) ballFrame() *BallFrame {
	if !p.ballSet {
		return nil
	}
	state, ok := p.store.State(p.ballActor)
	if !ok {
		return nil
	}
	attr, err := state.Attribute(p.rigidBodyAttrIDs)
	if err != nil {
		return nil
	}
	rb, err := attr.AsRigidBody()
	if err != nil {
		log.Debug().Err(err).Msg("ball rigid body attribute malformed")
		return nil
	}
	return &BallFrame{RigidBody: rb}
}

// playerFrame resolves one player through the pid -> car -> boost component
// chain. Any broken hop reads as "player currently unknown" and yields nil;
// link entries pointing at dead actors are tolerated, not errors.
func (p *Processor) playerFrame(pid PlayerID) *PlayerFrame {
	car, ok := p.playerToCar[pid]
	if !ok {
		return nil
	}
	carState, ok := p.store.State(car)
	if !ok {
		log.Debug().Stringer("player", pid).Int32("car", int32(car)).Msg("car actor no longer live")
		return nil
	}
	rbAttr, err := carState.Attribute(p.rigidBodyAttrIDs)
	if err != nil {
		return nil
	}
	rb, err := rbAttr.AsRigidBody()
	if err != nil {
		log.Debug().Stringer("player", pid).Err(err).Msg("car rigid body attribute malformed")
		return nil
	}

	boost, ok := p.carToBoost[car]
	if !ok {
		return nil
	}
	boostState, ok := p.store.State(boost)
	if !ok {
		log.Debug().Stringer("player", pid).Int32("boost", int32(boost)).Msg("boost component no longer live")
		return nil
	}
	amount, ok := boostState.Derived[derivedBoostAmount]
	if !ok {
		return nil
	}

	frame := &PlayerFrame{Team: -1, RigidBody: rb, Boost: amount}
	if infoState, ok := p.infoStateFor(pid); ok {
		if attr, err := infoState.Attribute(p.playerNameAttrIDs); err == nil {
			if name, err := attr.AsString(); err == nil {
				frame.Name = name
			}
		}
		frame.Team = p.teamFor(infoState)
	}
	return frame
}

func (p *Processor) infoStateFor(pid PlayerID) (*ActorState, bool) {
	info, ok := p.playerToInfo[pid]
	if !ok {
		return nil, false
	}
	return p.store.State(info)
}

func (p *Processor) teamFor(infoState *ActorState) int {
	attr, err := infoState.Attribute(p.teamAttrIDs)
	if err != nil {
		return -1
	}
	aa, err := attr.AsActiveActor()
	if err != nil {
		return -1
	}
	teamState, ok := p.store.State(aa.Actor)
	if !ok {
		return -1
	}
	for team, ids := range p.teamTypeIDs {
		if ids[teamState.ObjectID] {
			return team
		}
	}
	return -1
}
