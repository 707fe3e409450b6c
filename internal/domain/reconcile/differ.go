package reconcile

import (
	"github.com/sellerdesk/recon-api/internal/domain/entity"
	"github.com/sellerdesk/recon-api/internal/domain/enum"
)

// RunDiff holds the per-run change counters against the previous
// snapshot. A key present now but absent before is a first observation,
// counted separately and never as a change.
type RunDiff struct {
	StatusChanges int
	NewlySettled  int
	NewlyPending  int
	FirstSeen     int
}

// Diff compares the freshly classified master set to the previous run's
// snapshot. It reads both sides and mutates neither.
func Diff(records []entity.MasterRecord, prev entity.RunSnapshot) RunDiff {
	var d RunDiff
	for i := range records {
		m := &records[i]
		before, seen := prev[m.Key()]
		if !seen {
			d.FirstSeen++
			continue
		}
		if before.Status != m.Status {
			d.StatusChanges++
		}
		if !before.IsSettled && m.IsSettled {
			d.NewlySettled++
		}
		if m.Status == enum.LifecyclePending && before.Status != enum.LifecyclePending {
			d.NewlyPending++
		}
	}
	return d
}
