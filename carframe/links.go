package carframe

import "github.com/rs/zerolog/log"

// linkSpec is one tracked relationship: watch the frame's attribute updates
// for a designated link attribute on actors of a designated source type,
// and record what the update points at. All five car/component links and
// player registration instantiate this one shape with different parameters.
type linkSpec struct {
	name    string
	attrIDs map[ObjectID]bool
	srcIDs  map[ObjectID]bool
	record  func(source ActorID, value Attribute)
}

func (p *Processor) buildLinks() {
	componentLink := func(name string, srcIDs map[ObjectID]bool, edges map[ActorID]ActorID) linkSpec {
		return linkSpec{
			name:    name,
			attrIDs: p.vehicleAttrIDs,
			srcIDs:  srcIDs,
			record: func(source ActorID, value Attribute) {
				aa, err := value.AsActiveActor()
				if err != nil {
					log.Debug().Str("link", name).Err(err).Msg("link attribute not an actor reference")
					return
				}
				edges[aa.Actor] = source
			},
		}
	}

	p.links = []linkSpec{
		{
			name:    "pawn_player_info",
			attrIDs: p.pawnInfoAttrIDs,
			srcIDs:  p.carTypeIDs,
			record: func(source ActorID, value Attribute) {
				aa, err := value.AsActiveActor()
				if err != nil {
					log.Debug().Str("link", "pawn_player_info").Err(err).Msg("link attribute not an actor reference")
					return
				}
				p.carToInfo[source] = aa.Actor
				p.resolvePlayerCar(source, aa.Actor)
			},
		},
		{
			name:    "player_registration",
			attrIDs: p.uniqueIDAttrIDs,
			srcIDs:  p.playerInfoTypeIDs,
			record: func(source ActorID, value Attribute) {
				pid, err := value.AsPlayerID()
				if err != nil {
					log.Debug().Str("link", "player_registration").Err(err).Msg("unique id attribute malformed")
					return
				}
				p.registerPlayer(pid, source)
				// A car may have linked to this info actor before its
				// unique id arrived; resolve those edges now.
				for car, info := range p.carToInfo {
					if info == source {
						p.playerToCar[pid] = car
					}
				}
			},
		},
		componentLink("car_boost", p.boostTypeIDs, p.carToBoost),
		componentLink("car_jump", p.jumpTypeIDs, p.carToJump),
		componentLink("car_double_jump", p.doubleJumpTypeIDs, p.carToDoubleJump),
		componentLink("car_dodge", p.dodgeTypeIDs, p.carToDodge),
	}
}

// trackUpdate feeds one attribute update through every link spec. The
// update only qualifies when its attribute matches the spec's link
// attribute and the updating actor is currently live under one of the
// spec's source types.
func (p *Processor) trackUpdate(u UpdatedActor) {
	for _, spec := range p.links {
		if !spec.attrIDs[u.ObjectID] {
			continue
		}
		state, ok := p.store.State(u.ActorID)
		if !ok || !spec.srcIDs[state.ObjectID] {
			continue
		}
		spec.record(u.ActorID, u.Attribute)
	}
}

func (p *Processor) registerPlayer(pid PlayerID, info ActorID) {
	if _, known := p.playerToInfo[pid]; !known {
		p.playerOrder = append(p.playerOrder, pid)
		log.Debug().Stringer("player", pid).Msg("player registered")
	}
	p.playerToInfo[pid] = info
}

// resolvePlayerCar records pid -> car for the player identified by an info
// actor, if that actor already carries a unique id. When it does not, the
// edge is recorded later by the player_registration watch.
func (p *Processor) resolvePlayerCar(car, info ActorID) {
	state, ok := p.store.State(info)
	if !ok {
		return
	}
	attr, err := state.Attribute(p.uniqueIDAttrIDs)
	if err != nil {
		return
	}
	pid, err := attr.AsPlayerID()
	if err != nil {
		return
	}
	p.registerPlayer(pid, info)
	p.playerToCar[pid] = car
}

// sweepDeleted drops every relationship entry keyed by a deleted actor and
// releases the ball slot when the tracked ball actor is the one deleted.
// Entries whose value references the deleted actor are left in place: all
// value-side lookups go through the live actor store, so a dead target
// reads as "entity currently unknown" until a fresh link overwrites it.
func (p *Processor) sweepDeleted(id ActorID) {
	delete(p.carToInfo, id)
	delete(p.carToBoost, id)
	delete(p.carToJump, id)
	delete(p.carToDoubleJump, id)
	delete(p.carToDodge, id)
	if p.ballSet && p.ballActor == id {
		p.ballSet = false
		log.Debug().Int32("actor", int32(id)).Msg("ball actor deleted")
	}
}

// acquireBall fills the ball slot from the live actors of the candidate
// ball types. At most one ball is live at a time, so the first match wins.
// The slot is retried every frame while empty and cleared only when the
// tracked actor id itself is deleted.
func (p *Processor) acquireBall() {
	if p.ballSet {
		return
	}
	for _, name := range p.cfg.BallTypes {
		for _, oid := range p.objects.IDs(name) {
			ids := p.store.ActorIDsOfType(oid)
			if len(ids) > 0 {
				p.ballActor = ids[0]
				p.ballSet = true
				log.Debug().Int32("actor", int32(ids[0])).Str("type", name).Msg("ball actor acquired")
				return
			}
		}
	}
}
