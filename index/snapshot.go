package index

import (
	"time"
)

// Snapshot is one immutable build of the term index. A rebuild produces a new
// Snapshot; an existing one is never modified.
type Snapshot struct {
	BuildID   string        `json:"build_id"`
	BuiltAt   time.Time     `json:"built_at"`
	Documents int           `json:"documents"`
	Terms     int           `json:"terms"`
	Forward   ForwardIndex  `json:"-"`
	Inverted  InvertedIndex `json:"-"`
	Homepage  Homepage      `json:"-"`
}
