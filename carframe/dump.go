package carframe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Dump is the frame dump interchange format: the container parser's output
// (object table, network version, tokenized frames) as zstd-compressed
// JSON, tagged with a replay id. Tools and tests feed the processor from
// dumps without carrying the container format around.
type Dump struct {
	ReplayID   uuid.UUID `json:"replayId"`
	NetVersion int32     `json:"netVersion"`
	Objects    []string  `json:"objects"`
	Frames     []Frame   `json:"frames"`
}

// dumpSchema is validated against the decompressed JSON before it is
// unmarshalled, so a malformed dump fails at the boundary with a pointed
// message instead of surfacing as a zero-valued field deep in processing.
const dumpSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["replayId", "netVersion", "objects", "frames"],
  "properties": {
    "replayId": {"type": "string", "minLength": 36, "maxLength": 36},
    "netVersion": {"type": "integer"},
    "objects": {"type": "array", "items": {"type": "string"}},
    "frames": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["time", "delta"],
        "properties": {
          "time": {"type": "number"},
          "delta": {"type": "number"},
          "newActors": {"type": "array"},
          "deletedActors": {"type": "array", "items": {"type": "integer"}},
          "updatedActors": {"type": "array"}
        }
      }
    }
  }
}`

var compiledDumpSchema = jsonschema.MustCompileString("dump.schema.json", dumpSchema)

// ReadDump decompresses, validates, and decodes a frame dump.
func ReadDump(r io.Reader) (*Dump, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decompress dump: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("dump json: %w", err)
	}
	if err := compiledDumpSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("dump schema: %w", err)
	}

	var d Dump
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("dump decode: %w", err)
	}
	return &d, nil
}

// WriteDump encodes and compresses a frame dump. A zero ReplayID is
// replaced with a fresh one so every written dump is addressable.
func WriteDump(w io.Writer, d *Dump) error {
	if d.ReplayID == uuid.Nil {
		d.ReplayID = uuid.New()
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("dump encode: %w", err)
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if _, err := io.Copy(enc, bytes.NewReader(raw)); err != nil {
		enc.Close()
		return fmt.Errorf("compress dump: %w", err)
	}
	return enc.Close()
}
