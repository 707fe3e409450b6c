package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// LifecycleStatus is the reconciled lifecycle of one order line.
type LifecycleStatus int

const (
	// LifecycleUnclassified is the zero value for freshly merged records
	// that have not been through the classifier yet.
	LifecycleUnclassified LifecycleStatus = 0
	LifecycleCancelled    LifecycleStatus = 1
	LifecycleReturned     LifecycleStatus = 2
	LifecycleSettled      LifecycleStatus = 3
	LifecyclePending      LifecycleStatus = 4
)

var lifecycleNames = [...]string{
	"Unclassified",
	"Cancelled",
	"Returned",
	"Completed - Settled",
	"Completed - Pending Settlement",
}

func (s LifecycleStatus) String() string {
	if int(s) < 0 || int(s) >= len(lifecycleNames) {
		return "Unclassified"
	}
	return lifecycleNames[s]
}

// ParseLifecycleStatus maps a status label back to its enum value.
// Unknown labels map to LifecycleUnclassified.
func ParseLifecycleStatus(s string) LifecycleStatus {
	for i, name := range lifecycleNames {
		if name == s {
			return LifecycleStatus(i)
		}
	}
	return LifecycleUnclassified
}

func (s LifecycleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *LifecycleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = LifecycleStatus(i)
		return nil
	}
	*s = ParseLifecycleStatus(str)
	return nil
}

func (s LifecycleStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *LifecycleStatus) Scan(value interface{}) error {
	if value == nil {
		*s = LifecycleUnclassified
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = LifecycleStatus(v)
	case int:
		*s = LifecycleStatus(v)
	}
	return nil
}
