package scenario

import (
	"bufio"
	"fmt"
	"io"

	json "github.com/json-iterator/go"
)

// AgentRecord is one agent's state in a trace line
type AgentRecord struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Rotation float64 `json:"rotation"`
	Contact  bool    `json:"contact"`
}

// Record is one trace line
type Record struct {
	World  string        `json:"world,omitempty"`
	Tick   uint64        `json:"tick"`
	Time   float64       `json:"time"`
	Agents []AgentRecord `json:"agents"`
}

// Snapshot captures the current state of every entity
func (w *World) Snapshot() Record {
	rec := Record{
		World:  w.Name,
		Tick:   w.tick,
		Time:   w.time,
		Agents: make([]AgentRecord, len(w.Entities)),
	}
	for i, e := range w.Entities {
		a := e.Agent
		rec.Agents[i] = AgentRecord{
			ID:       e.ID.String(),
			Name:     e.Name,
			X:        a.Position.X,
			Y:        a.Position.Y,
			VX:       a.Velocity.X,
			VY:       a.Velocity.Y,
			Rotation: a.Rotation,
			Contact:  a.HasBoundsForce,
		}
	}
	return rec
}

// Recorder writes world snapshots as JSON lines, one line every Every ticks
type Recorder struct {
	Every int

	bw  *bufio.Writer
	enc *json.Encoder
}

func NewRecorder(w io.Writer, every int) *Recorder {
	if every < 1 {
		every = 1
	}
	bw := bufio.NewWriter(w)
	return &Recorder{
		Every: every,
		bw:    bw,
		enc:   json.NewEncoder(bw),
	}
}

// Record writes a snapshot of w if its tick falls on the recording interval
func (r *Recorder) Record(w *World) error {
	if w.Tick()%uint64(r.Every) != 0 {
		return nil
	}
	if err := r.enc.Encode(w.Snapshot()); err != nil {
		return fmt.Errorf("encode trace record: %w", err)
	}
	return nil
}

// Flush writes buffered lines to the underlying writer
func (r *Recorder) Flush() error {
	return r.bw.Flush()
}

// ReadTrace decodes every JSON line from r
func ReadTrace(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	var out []Record
	for dec.More() {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return out, fmt.Errorf("decode trace record %d: %w", len(out), err)
		}
		out = append(out, rec)
	}
	return out, nil
}
