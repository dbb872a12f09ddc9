package carframe

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestDumpRoundTrip(t *testing.T) {
	in := &Dump{
		NetVersion: 7,
		Objects:    testObjects,
		Frames: []Frame{
			{
				Time: 0.5,
				NewActors: []NewActor{
					{ActorID: 1, ObjectID: 0, InitialTrajectory: Trajectory{
						Location: &Vector{Bias: 128, DX: 1, DY: 2, DZ: 3},
					}},
				},
				UpdatedActors: []UpdatedActor{
					{ActorID: 1, ObjectID: 9, Attribute: RigidBodyAttr(RigidBody{Sleeping: true})},
				},
			},
			{Time: 0.6, Delta: 0.1, DeletedActors: []ActorID{1}},
		},
	}

	var buf bytes.Buffer
	if err := WriteDump(&buf, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := ReadDump(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if out.ReplayID != in.ReplayID {
		t.Errorf("replay id %v != %v", out.ReplayID, in.ReplayID)
	}
	if out.NetVersion != 7 || len(out.Objects) != len(testObjects) || len(out.Frames) != 2 {
		t.Fatalf("header mismatch: %+v", out)
	}
	na := out.Frames[0].NewActors
	if len(na) != 1 || na[0].InitialTrajectory.Location == nil || na[0].InitialTrajectory.Location.DZ != 3 {
		t.Errorf("trajectory lost in transit: %+v", na)
	}
	ua := out.Frames[0].UpdatedActors
	if len(ua) != 1 || ua[0].Attribute.Kind != AttrRigidBody || !ua[0].Attribute.RigidBody.Sleeping {
		t.Errorf("attribute lost in transit: %+v", ua)
	}
	if len(out.Frames[1].DeletedActors) != 1 {
		t.Errorf("deleted actors lost in transit: %+v", out.Frames[1])
	}
}

func TestReadDumpRejectsMalformed(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	if _, err := enc.Write([]byte(`{"netVersion": "seven"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := ReadDump(&buf); err == nil {
		t.Error("malformed dump accepted")
	}
}

func TestReadDumpRejectsGarbage(t *testing.T) {
	if _, err := ReadDump(bytes.NewReader([]byte("not zstd at all"))); err == nil {
		t.Error("uncompressed garbage accepted")
	}
}
