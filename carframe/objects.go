package carframe

// Attribute object names watched by the processor. These are the wire names
// of the replicated properties this engine reconstructs entities from.
const (
	attrPlayerReplicationInfo = "Engine.Pawn:PlayerReplicationInfo"
	attrUniqueID              = "Engine.PlayerReplicationInfo:UniqueId"
	attrPlayerName            = "Engine.PlayerReplicationInfo:PlayerName"
	attrTeam                  = "Engine.PlayerReplicationInfo:Team"
	attrVehicle               = "TAGame.CarComponent_TA:Vehicle"
	attrReplicatedActive      = "TAGame.CarComponent_TA:ReplicatedActive"
	attrBoostAmount           = "TAGame.CarComponent_Boost_TA:ReplicatedBoostAmount"
	attrRigidBodyState        = "TAGame.RBActor_TA:ReplicatedRBState"
	attrSecondsRemaining      = "TAGame.GameEvent_Soccar_TA:SecondsRemaining"
)

// ObjectMap is the bidirectional lookup over a replay's ordered object
// table. The slice index of a name is its ObjectID. Several raw names can
// normalize to the same base name, so a name maps to a set of ids.
type ObjectMap struct {
	names []string
	ids   map[string][]ObjectID
}

func NewObjectMap(names []string) *ObjectMap {
	m := &ObjectMap{
		names: names,
		ids:   make(map[string][]ObjectID, len(names)),
	}
	for i, name := range names {
		norm := NormalizeObjectName(name)
		m.ids[norm] = append(m.ids[norm], ObjectID(i))
	}
	return m
}

// Name returns the raw name for an object id.
func (m *ObjectMap) Name(id ObjectID) (string, bool) {
	if id < 0 || int(id) >= len(m.names) {
		return "", false
	}
	return m.names[id], true
}

// IDs returns every object id whose normalized name matches.
func (m *ObjectMap) IDs(name string) []ObjectID {
	return m.ids[name]
}

// IDSet collects the ids of all given names into one membership set.
func (m *ObjectMap) IDSet(names ...string) map[ObjectID]bool {
	set := make(map[ObjectID]bool)
	for _, name := range names {
		for _, id := range m.ids[name] {
			set[id] = true
		}
	}
	return set
}

// Len returns the object table size.
func (m *ObjectMap) Len() int {
	return len(m.names)
}
