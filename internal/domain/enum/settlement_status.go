package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// SettlementStatus is the marketplace's view of how far a payout has
// progressed. Ordering matters: a higher value never silently downgrades
// to a lower one during a merge.
type SettlementStatus int

const (
	SettlementPending   SettlementStatus = 0
	SettlementPartial   SettlementStatus = 1
	SettlementCompleted SettlementStatus = 2
)

func (s SettlementStatus) String() string {
	switch s {
	case SettlementPartial:
		return "partial"
	case SettlementCompleted:
		return "completed"
	default:
		return "pending"
	}
}

// ParseSettlementStatus maps the wire label to the enum. Unknown labels
// are treated as pending, the lowest priority.
func ParseSettlementStatus(s string) SettlementStatus {
	switch s {
	case "completed":
		return SettlementCompleted
	case "partial":
		return SettlementPartial
	default:
		return SettlementPending
	}
}

func (s SettlementStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SettlementStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SettlementStatus(i)
		return nil
	}
	*s = ParseSettlementStatus(str)
	return nil
}

func (s SettlementStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SettlementStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SettlementPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SettlementStatus(v)
	case int:
		*s = SettlementStatus(v)
	}
	return nil
}
