package carframe

import "fmt"

// AttributeKind tags the variant held by an Attribute. The set is closed:
// upstream tokenizers only produce these kinds, and anything a consumer does
// not recognize is ignored rather than treated as an error.
type AttributeKind int

const (
	AttrByte AttributeKind = iota
	AttrInt
	AttrFloat
	AttrBool
	AttrString
	AttrRigidBody
	AttrActiveActor
	AttrPlayerID
)

var attributeKindNames = map[AttributeKind]string{
	AttrByte:        "byte",
	AttrInt:         "int",
	AttrFloat:       "float",
	AttrBool:        "bool",
	AttrString:      "string",
	AttrRigidBody:   "rigidBody",
	AttrActiveActor: "activeActor",
	AttrPlayerID:    "playerId",
}

func (k AttributeKind) String() string {
	if s, ok := attributeKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("AttributeKind(%d)", int(k))
}

func (k AttributeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *AttributeKind) UnmarshalText(b []byte) error {
	for kind, name := range attributeKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown attribute kind %q", b)
}

// RigidBody is an actor's replicated physics state.
type RigidBody struct {
	Sleeping        bool     `json:"sleeping"`
	Location        Vector   `json:"location"`
	Rotation        Rotation `json:"rotation"`
	LinearVelocity  *Vector  `json:"linearVelocity,omitempty"`
	AngularVelocity *Vector  `json:"angularVelocity,omitempty"`
}

// ActiveActor is an attribute value referencing another actor.
type ActiveActor struct {
	Active bool    `json:"active"`
	Actor  ActorID `json:"actor"`
}

// Attribute is a decoded attribute value, one variant populated according
// to Kind. Use the As* accessors to extract by expected kind.
type Attribute struct {
	Kind        AttributeKind `json:"kind"`
	Byte        byte          `json:"byte,omitempty"`
	Int         int32         `json:"int,omitempty"`
	Float       float32       `json:"float,omitempty"`
	Bool        bool          `json:"bool,omitempty"`
	Str         string        `json:"str,omitempty"`
	RigidBody   *RigidBody    `json:"rigidBody,omitempty"`
	ActiveActor *ActiveActor  `json:"activeActor,omitempty"`
	PlayerID    *PlayerID     `json:"playerId,omitempty"`
}

func ByteAttr(v byte) Attribute      { return Attribute{Kind: AttrByte, Byte: v} }
func IntAttr(v int32) Attribute      { return Attribute{Kind: AttrInt, Int: v} }
func FloatAttr(v float32) Attribute  { return Attribute{Kind: AttrFloat, Float: v} }
func BoolAttr(v bool) Attribute      { return Attribute{Kind: AttrBool, Bool: v} }
func StringAttr(v string) Attribute  { return Attribute{Kind: AttrString, Str: v} }
func RigidBodyAttr(v RigidBody) Attribute {
	return Attribute{Kind: AttrRigidBody, RigidBody: &v}
}
func ActiveActorAttr(v ActiveActor) Attribute {
	return Attribute{Kind: AttrActiveActor, ActiveActor: &v}
}
func PlayerIDAttr(v PlayerID) Attribute {
	return Attribute{Kind: AttrPlayerID, PlayerID: &v}
}

func (a Attribute) kindErr(want AttributeKind) error {
	return fmt.Errorf("expected %s, have %s: %w", want, a.Kind, ErrWrongAttributeType)
}

func (a Attribute) AsByte() (byte, error) {
	if a.Kind != AttrByte {
		return 0, a.kindErr(AttrByte)
	}
	return a.Byte, nil
}

func (a Attribute) AsInt() (int32, error) {
	if a.Kind != AttrInt {
		return 0, a.kindErr(AttrInt)
	}
	return a.Int, nil
}

func (a Attribute) AsFloat() (float32, error) {
	if a.Kind != AttrFloat {
		return 0, a.kindErr(AttrFloat)
	}
	return a.Float, nil
}

func (a Attribute) AsBool() (bool, error) {
	if a.Kind != AttrBool {
		return false, a.kindErr(AttrBool)
	}
	return a.Bool, nil
}

func (a Attribute) AsString() (string, error) {
	if a.Kind != AttrString {
		return "", a.kindErr(AttrString)
	}
	return a.Str, nil
}

func (a Attribute) AsRigidBody() (RigidBody, error) {
	if a.Kind != AttrRigidBody || a.RigidBody == nil {
		return RigidBody{}, a.kindErr(AttrRigidBody)
	}
	return *a.RigidBody, nil
}

func (a Attribute) AsActiveActor() (ActiveActor, error) {
	if a.Kind != AttrActiveActor || a.ActiveActor == nil {
		return ActiveActor{}, a.kindErr(AttrActiveActor)
	}
	return *a.ActiveActor, nil
}

func (a Attribute) AsPlayerID() (PlayerID, error) {
	if a.Kind != AttrPlayerID || a.PlayerID == nil {
		return PlayerID{}, a.kindErr(AttrPlayerID)
	}
	return *a.PlayerID, nil
}

// Platform is the platform half of a player's unique id.
type Platform uint8

const (
	PlatformUnknown Platform = iota
	PlatformSteam
	PlatformPS4
	PlatformXbox
	PlatformSwitch
	PlatformPsyNet
	PlatformEpic
)

func (p Platform) String() string {
	switch p {
	case PlatformSteam:
		return "steam"
	case PlatformPS4:
		return "ps4"
	case PlatformXbox:
		return "xbox"
	case PlatformSwitch:
		return "switch"
	case PlatformPsyNet:
		return "psynet"
	case PlatformEpic:
		return "epic"
	}
	return "unknown"
}

// PlayerID is a player's stable cross-frame identity (platform unique id).
// It is distinct from the transient ActorID of the player's replication
// info actor, which can churn mid-replay.
type PlayerID struct {
	Platform Platform `json:"platform"`
	OnlineID uint64   `json:"onlineId"`
	LocalID  uint8    `json:"localId"`
}

func (p PlayerID) String() string {
	return fmt.Sprintf("%s-%d-%d", p.Platform, p.OnlineID, p.LocalID)
}

// MarshalText lets PlayerID serve as a JSON map key.
func (p PlayerID) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PlayerID) UnmarshalText(b []byte) error {
	s := string(b)
	var online uint64
	var local uint8
	for plat := PlatformUnknown; plat <= PlatformEpic; plat++ {
		prefix := plat.String() + "-"
		if len(s) > len(prefix) && s[:len(prefix)] == prefix {
			if _, err := fmt.Sscanf(s[len(prefix):], "%d-%d", &online, &local); err != nil {
				return err
			}
			*p = PlayerID{Platform: plat, OnlineID: online, LocalID: local}
			return nil
		}
	}
	return fmt.Errorf("malformed player id %q", b)
}
