package entity

// Batch is one month's worth of raw records from the ingestion
// collaborator. Sequence is the ingestion ordinal of the batch within a
// run; merge rules fall back to it when incoming records carry no usable
// timestamp. Records are processed in slice order.
type Batch struct {
	MonthKey    string             `json:"month_key"`
	Sequence    int                `json:"sequence"`
	Orders      []OrderLine        `json:"orders"`
	Returns     []ReturnRecord     `json:"returns"`
	Settlements []SettlementRecord `json:"settlements"`
}
