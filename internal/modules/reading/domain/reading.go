package domain

import "time"

type State string

const (
	StateIdle      State = "idle"
	StateTracking  State = "tracking"
	StateCompleted State = "completed"
)

const MaxScrollDepth = 100.0

// ClampDepth bounds a scroll-depth percentage to 0..100.
func ClampDepth(depth float64) float64 {
	switch {
	case depth != depth || depth < 0:
		return 0
	case depth > MaxScrollDepth:
		return MaxScrollDepth
	default:
		return depth
	}
}

// Progress is one periodic update pushed while a session is open.
type Progress struct {
	TimeOnPage  int
	ScrollDepth float64
	ScrollEvent time.Time
}

type Unlocks struct {
	CanComment bool
	CanRate    bool
	Message    string
}

type Metrics struct {
	SessionID   string
	TimeOnPage  int
	ScrollDepth float64
	State       State
}

func (m Metrics) Tracking() bool { return m.State == StateTracking }

// HistoryEntry is a finished session kept on this machine.
type HistoryEntry struct {
	SessionID   string
	WorkID      string
	SectionID   string
	StartedAt   time.Time
	CompletedAt time.Time
	TimeOnPage  int
	ScrollDepth float64
}
