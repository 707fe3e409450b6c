package entity

import "github.com/sellerdesk/recon-api/internal/domain/enum"

// SnapshotEntry is one (key -> status, settled) pair of the previous
// run's classification, used only by the run differencer. The set is
// immutable once captured and replaced wholesale after each run.
type SnapshotEntry struct {
	OrderReleaseID string               `gorm:"primaryKey;size:64" json:"order_release_id"`
	LineItemID     string               `gorm:"primaryKey;size:64" json:"line_item_id"`
	Status         enum.LifecycleStatus `json:"status"`
	IsSettled      bool                 `json:"is_settled"`
}

// TableName returns the table name for the SnapshotEntry model.
func (SnapshotEntry) TableName() string {
	return "run_snapshot_entries"
}

// Key returns the composite identity of the entry.
func (s *SnapshotEntry) Key() RecordKey {
	return RecordKey{OrderReleaseID: s.OrderReleaseID, LineItemID: s.LineItemID}
}

// RunSnapshot is the in-memory form of the previous run's snapshot.
type RunSnapshot map[RecordKey]SnapshotEntry

// SnapshotOf captures the (status, settled) pairs of a master record set.
func SnapshotOf(records []MasterRecord) RunSnapshot {
	snap := make(RunSnapshot, len(records))
	for i := range records {
		r := &records[i]
		snap[r.Key()] = SnapshotEntry{
			OrderReleaseID: r.OrderReleaseID,
			LineItemID:     r.LineItemID,
			Status:         r.Status,
			IsSettled:      r.IsSettled,
		}
	}
	return snap
}

// Entries flattens the snapshot for persistence.
func (s RunSnapshot) Entries() []SnapshotEntry {
	entries := make([]SnapshotEntry, 0, len(s))
	for _, e := range s {
		entries = append(entries, e)
	}
	return entries
}
