package present

import "modelwatch/internal/domain"

// Rolling window bounds enforced by the UI before calling the engine.
const (
	MinRollingWindow = 2
	MaxRollingWindow = 10
)

// Selection is the caller-owned view state that drives BuildTimeSeries:
// which metrics and slices to plot, how much history, and whether to
// overlay rolling statistics. LastN == 0 means all available evaluations.
type Selection struct {
	Metrics          []string
	Slices           []string
	LastN            int
	ShowRollingStats bool
	RollingWindow    int
}

// DefaultSelection selects every metric on the overall slice with the full
// history and rolling statistics off.
func DefaultSelection(snap *domain.OverviewSnapshot) Selection {
	sel := Selection{
		Slices:        []string{domain.SliceOverall},
		RollingWindow: 3,
	}
	if snap != nil {
		sel.Metrics = append(sel.Metrics, snap.MetricCards.Metrics...)
	}
	return sel
}

// Clamp bounds the selection to the ranges the windowing engine accepts:
// the rolling window to [MinRollingWindow, MaxRollingWindow] and LastN to
// [0, snap.LastNEvals] (0 meaning all). The receiver is not modified.
func (s Selection) Clamp(snap *domain.OverviewSnapshot) Selection {
	if s.RollingWindow < MinRollingWindow {
		s.RollingWindow = MinRollingWindow
	}
	if s.RollingWindow > MaxRollingWindow {
		s.RollingWindow = MaxRollingWindow
	}

	if s.LastN < 0 {
		s.LastN = 0
	}
	if snap != nil && snap.LastNEvals > 0 && s.LastN > snap.LastNEvals {
		s.LastN = snap.LastNEvals
	}
	return s
}
