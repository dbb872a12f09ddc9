package carframe

import "strings"

// ObjectID indexes the replay's object table and identifies an actor's type.
// It is stable for the whole replay.
type ObjectID int32

// ActorID identifies a live actor instance. Ids are NOT unique across a
// replay: once an actor is destroyed its id may be reassigned to an
// unrelated later actor, so nothing keyed by ActorID may outlive a delete.
type ActorID int32

// StreamID is the compressed per-frame form of an attribute's object id.
// It is resolved to an ObjectID before use and never stored long term.
type StreamID int32

// Vector is a decoded 3D displacement. The axis values are raw wire
// integers; subtracting Bias from each recovers the signed offset. Bias
// depends on a size selector read from the stream, so the encoded width of
// a vector varies value by value.
type Vector struct {
	Bias int32 `json:"bias"`
	DX   int32 `json:"dx"`
	DY   int32 `json:"dy"`
	DZ   int32 `json:"dz"`
}

// DecodeVector reads a vector. Net versions 7 and later raise the size
// selector cap from 20 to 22; both caps read a 4-bit selector plus a
// conditional fifth bit.
func DecodeVector(r *BitReader, netVersion int32) (Vector, error) {
	sizeBits, err := r.BitsMax(vectorSizeCap(netVersion))
	if err != nil {
		return Vector{}, err
	}
	limit := int(sizeBits) + 2
	dx, err := r.Bits(limit)
	if err != nil {
		return Vector{}, err
	}
	dy, err := r.Bits(limit)
	if err != nil {
		return Vector{}, err
	}
	dz, err := r.Bits(limit)
	if err != nil {
		return Vector{}, err
	}
	return Vector{
		Bias: 1 << uint(sizeBits+1),
		DX:   int32(dx),
		DY:   int32(dy),
		DZ:   int32(dz),
	}, nil
}

func DecodeVectorUnchecked(r *BitReader, netVersion int32) Vector {
	sizeBits := r.BitsMaxUnchecked(vectorSizeCap(netVersion))
	limit := int(sizeBits) + 2
	return Vector{
		Bias: 1 << uint(sizeBits+1),
		DX:   int32(r.BitsUnchecked(limit)),
		DY:   int32(r.BitsUnchecked(limit)),
		DZ:   int32(r.BitsUnchecked(limit)),
	}
}

func vectorSizeCap(netVersion int32) uint32 {
	if netVersion >= 7 {
		return 22
	}
	return 20
}

// Rotation holds three independently optional signed byte components. A nil
// component means the stream did not carry it, which is distinct from zero.
type Rotation struct {
	Yaw   *int8 `json:"yaw,omitempty"`
	Pitch *int8 `json:"pitch,omitempty"`
	Roll  *int8 `json:"roll,omitempty"`
}

// DecodeRotation reads three flag-prefixed optional components.
func DecodeRotation(r *BitReader) (Rotation, error) {
	var rot Rotation
	for _, dst := range []**int8{&rot.Yaw, &rot.Pitch, &rot.Roll} {
		present, err := r.Bit()
		if err != nil {
			return Rotation{}, err
		}
		if !present {
			continue
		}
		b, err := r.Byte()
		if err != nil {
			return Rotation{}, err
		}
		v := int8(b)
		*dst = &v
	}
	return rot, nil
}

func DecodeRotationUnchecked(r *BitReader) Rotation {
	var rot Rotation
	for _, dst := range []**int8{&rot.Yaw, &rot.Pitch, &rot.Roll} {
		if r.BitUnchecked() {
			v := int8(r.ByteUnchecked())
			*dst = &v
		}
	}
	return rot
}

// SpawnTrajectory is the shape of positional data an object type carries at
// spawn. It is determined per object type by the class tables, never
// inferred from the bits themselves.
type SpawnTrajectory int

const (
	SpawnNone SpawnTrajectory = iota
	SpawnLocation
	SpawnLocationAndRotation
)

func (s SpawnTrajectory) String() string {
	switch s {
	case SpawnNone:
		return "none"
	case SpawnLocation:
		return "location"
	case SpawnLocationAndRotation:
		return "location_and_rotation"
	}
	return "unknown"
}

// Trajectory is an actor's initial placement at spawn time.
type Trajectory struct {
	Location *Vector   `json:"location,omitempty"`
	Rotation *Rotation `json:"rotation,omitempty"`
}

// DecodeTrajectory dispatches on the spawn shape. SpawnNone consumes zero
// bits. The decode is atomic: if any sub-decode fails the whole trajectory
// fails, so a partial read is never handed back to the caller.
func DecodeTrajectory(r *BitReader, sp SpawnTrajectory, netVersion int32) (Trajectory, error) {
	switch sp {
	case SpawnLocation:
		v, err := DecodeVector(r, netVersion)
		if err != nil {
			return Trajectory{}, err
		}
		return Trajectory{Location: &v}, nil
	case SpawnLocationAndRotation:
		v, err := DecodeVector(r, netVersion)
		if err != nil {
			return Trajectory{}, err
		}
		rot, err := DecodeRotation(r)
		if err != nil {
			return Trajectory{}, err
		}
		return Trajectory{Location: &v, Rotation: &rot}, nil
	default:
		return Trajectory{}, nil
	}
}

func DecodeTrajectoryUnchecked(r *BitReader, sp SpawnTrajectory, netVersion int32) Trajectory {
	switch sp {
	case SpawnLocation:
		v := DecodeVectorUnchecked(r, netVersion)
		return Trajectory{Location: &v}
	case SpawnLocationAndRotation:
		v := DecodeVectorUnchecked(r, netVersion)
		rot := DecodeRotationUnchecked(r)
		return Trajectory{Location: &v, Rotation: &rot}
	default:
		return Trajectory{}
	}
}

// NewActor announces an actor spawned during a frame.
type NewActor struct {
	ActorID           ActorID    `json:"actorId"`
	NameID            *int32     `json:"nameId,omitempty"`
	ObjectID          ObjectID   `json:"objectId"`
	InitialTrajectory Trajectory `json:"initialTrajectory"`
}

// UpdatedActor carries one decoded attribute update for a live actor.
type UpdatedActor struct {
	ActorID   ActorID   `json:"actorId"`
	StreamID  StreamID  `json:"streamId"`
	ObjectID  ObjectID  `json:"objectId"`
	Attribute Attribute `json:"attribute"`
}

// Frame is one tick of the replication stream.
type Frame struct {
	Time          float32        `json:"time"`
	Delta         float32        `json:"delta"`
	NewActors     []NewActor     `json:"newActors,omitempty"`
	DeletedActors []ActorID      `json:"deletedActors,omitempty"`
	UpdatedActors []UpdatedActor `json:"updatedActors,omitempty"`
}

// NormalizeObjectName folds per-stadium object names into their base form,
// e.g. "stadium_foggy_p.TheWorld:PersistentLevel.VehiclePickup_Boost_TA_30"
// becomes "TheWorld:PersistentLevel.VehiclePickup_Boost_TA", so new maps and
// pickups do not each need their own class table entry.
func NormalizeObjectName(name string) string {
	for _, base := range []string{
		"TheWorld:PersistentLevel.CrowdActor_TA",
		"TheWorld:PersistentLevel.CrowdManager_TA",
		"TheWorld:PersistentLevel.VehiclePickup_Boost_TA",
		"TheWorld:PersistentLevel.InMapScoreboard_TA",
		"TheWorld:PersistentLevel.BreakOutActor_Platform_TA",
	} {
		if strings.Contains(name, base) {
			return base
		}
	}
	return name
}
