package reconcile

import (
	"fmt"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
)

// ErrorCode identifies why a record or a run was refused.
type ErrorCode string

const (
	CodeAmbiguousJoin    ErrorCode = "AMBIGUOUS_JOIN"
	CodeMalformedRecord  ErrorCode = "MALFORMED_RECORD"
	CodeOutOfOrderReplay ErrorCode = "OUT_OF_ORDER_REPLAY"
	CodeSnapshotCommit   ErrorCode = "SNAPSHOT_COMMIT_FAILED"
)

// RecordError is a per-record failure. All record errors are recoverable:
// the offending record is skipped, a rejection entry is written, and the
// run continues.
type RecordError struct {
	Code    ErrorCode
	Kind    string // "order", "return" or "settlement"
	Key     entity.RecordKey
	Message string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s %s %s: %s", e.Code, e.Kind, e.Key, e.Message)
}

// Rejection converts the error into its durable rejection entry.
func (e *RecordError) Rejection() entity.Rejection {
	return entity.Rejection{
		OrderReleaseID: e.Key.OrderReleaseID,
		LineItemID:     e.Key.LineItemID,
		RecordKind:     e.Kind,
		Reason:         string(e.Code),
		Detail:         e.Message,
	}
}

func ambiguousJoin(kind string, key entity.RecordKey, msg string) *RecordError {
	return &RecordError{Code: CodeAmbiguousJoin, Kind: kind, Key: key, Message: msg}
}

func malformed(kind string, key entity.RecordKey, msg string) *RecordError {
	return &RecordError{Code: CodeMalformedRecord, Kind: kind, Key: key, Message: msg}
}

func outOfOrderReplay(kind string, key entity.RecordKey, msg string) *RecordError {
	return &RecordError{Code: CodeOutOfOrderReplay, Kind: kind, Key: key, Message: msg}
}

// SnapshotCommitError is fatal to the run: no partial commit happened and
// the prior master/snapshot state remains authoritative.
type SnapshotCommitError struct {
	Err error
}

func (e *SnapshotCommitError) Error() string {
	return fmt.Sprintf("%s: %v", CodeSnapshotCommit, e.Err)
}

func (e *SnapshotCommitError) Unwrap() error {
	return e.Err
}
