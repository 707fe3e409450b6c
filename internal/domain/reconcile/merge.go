package reconcile

import (
	"sort"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
)

// MergeEngine folds incoming batches into the master dataset. It is the
// sole writer of master records within a run. Merge policy lives here and
// nowhere else: last write wins by the record's own timestamp, falling
// back to batch ingestion order, and an incoming record never nulls out
// fields it does not carry.
type MergeEngine struct {
	resolver   *Resolver
	records    map[entity.RecordKey]*entity.MasterRecord
	rejections []entity.Rejection
	orphans    []pendingSettlement
	accepted   int
}

// pendingSettlement holds a settlement that found no order line yet,
// with the batch ordinal it arrived under so a retried join keeps the
// same last-write-wins position.
type pendingSettlement struct {
	rec entity.SettlementRecord
	seq int
}

// NewMergeEngine starts a merge over a copy of the existing master set.
// The caller's slice is not mutated; Finalize returns the merged result.
func NewMergeEngine(existing []entity.MasterRecord) *MergeEngine {
	e := &MergeEngine{
		resolver: NewResolver(existing),
		records:  make(map[entity.RecordKey]*entity.MasterRecord, len(existing)),
	}
	for i := range existing {
		rec := existing[i]
		e.records[rec.Key()] = &rec
	}
	return e
}

// ApplyBatch merges one ingestion batch. Orders are applied before
// returns and settlements so that same-batch joins resolve.
func (e *MergeEngine) ApplyBatch(b *entity.Batch) {
	for i := range b.Orders {
		e.applyOrder(&b.Orders[i], b.Sequence)
	}
	for i := range b.Returns {
		e.applyReturn(&b.Returns[i], b.Sequence)
	}
	for i := range b.Settlements {
		e.applySettlement(&b.Settlements[i], b.Sequence)
	}
}

func (e *MergeEngine) reject(err *RecordError) {
	e.rejections = append(e.rejections, err.Rejection())
}

func (e *MergeEngine) applyOrder(o *entity.OrderLine, seq int) {
	key, rerr := e.resolver.ResolveOrder(o)
	if rerr != nil {
		e.reject(rerr)
		return
	}
	if o.CreatedOn.IsZero() {
		e.reject(malformed("order", key, "created_on is required"))
		return
	}
	if o.FinalAmount.IsNegative() {
		e.reject(malformed("order", key, "final_amount must be non-negative"))
		return
	}
	e.resolver.Register(key)

	existing := e.records[key]
	if existing == nil {
		rec := &entity.MasterRecord{
			OrderReleaseID: key.OrderReleaseID,
			LineItemID:     key.LineItemID,
		}
		applyOrderSection(rec, o, seq)
		e.records[key] = rec
		e.accepted++
		return
	}

	// Last write wins on the order's own creation timestamp, batch
	// ordinal as tie-break. An older duplicate is superseded, not
	// rejected.
	if o.CreatedOn.Before(existing.CreatedOn) {
		e.accepted++
		return
	}
	if o.CreatedOn.Equal(existing.CreatedOn) && seq < existing.OrderBatchSeq {
		e.accepted++
		return
	}
	applyOrderSection(existing, o, seq)
	e.accepted++
}

func applyOrderSection(m *entity.MasterRecord, o *entity.OrderLine, seq int) {
	m.CreatedOn = o.CreatedOn
	m.MonthKey = entity.MonthKeyOf(o.CreatedOn)
	m.FinalAmount = o.FinalAmount
	m.TotalMRP = o.TotalMRP
	m.Discount = o.Discount
	m.ShippingAmount = o.ShippingAmount
	m.OrderBatchSeq = seq
	if o.OrderStatus != "" {
		m.OrderStatus = o.OrderStatus
	}
	if o.DeliveredOn != nil {
		m.DeliveredOn = o.DeliveredOn
	}
	if o.PaymentType != "" {
		m.PaymentType = o.PaymentType
	}
	if o.City != "" {
		m.City = o.City
	}
	if o.State != "" {
		m.State = o.State
	}
	if o.Zipcode != "" {
		m.Zipcode = o.Zipcode
	}
}

func (e *MergeEngine) applyReturn(ret *entity.ReturnRecord, seq int) {
	key, known, rerr := e.resolver.Resolve("return", ret.OrderReleaseID, ret.LineItemID)
	if rerr != nil {
		e.reject(rerr)
		return
	}
	if ret.ReturnDate.IsZero() {
		e.reject(malformed("return", key, "return_date is required"))
		return
	}
	m := e.records[key]
	if !known || m == nil {
		e.reject(ambiguousJoin("return", key, "no matching order line"))
		return
	}

	// A later-dated return supersedes the active one; an older duplicate
	// loses under last-write-wins.
	if m.HasReturn && m.ReturnDate != nil {
		if ret.ReturnDate.Before(*m.ReturnDate) {
			e.accepted++
			return
		}
		if ret.ReturnDate.Equal(*m.ReturnDate) && seq < m.ReturnBatchSeq {
			e.accepted++
			return
		}
	}

	m.HasReturn = true
	m.ReturnType = ret.ReturnType
	d := ret.ReturnDate
	m.ReturnDate = &d
	m.CustomerPaidAmount = ret.CustomerPaidAmount
	m.ReturnSettlement = ret.SettlementAmount
	m.ReturnPrepaidPortion = ret.PrepaidPortion
	m.ReturnPostpaidSplit = ret.PostpaidPortion
	m.ReturnBatchSeq = seq
	if ret.PackingDate != nil {
		m.ReturnPackingDate = ret.PackingDate
	}
	if ret.DeliveryDate != nil {
		m.ReturnDeliveryDate = ret.DeliveryDate
	}
	e.accepted++
}

func (e *MergeEngine) applySettlement(s *entity.SettlementRecord, seq int) {
	key, known, rerr := e.resolver.Resolve("settlement", s.OrderReleaseID, s.LineItemID)
	if rerr != nil {
		e.reject(rerr)
		return
	}
	m := e.records[key]
	if !known || m == nil {
		// Held aside; Finalize retries the join once all batches are
		// in, so a settlement may precede its order within a run.
		// Whatever still matches nothing is reported as an anomaly,
		// never discarded silently and never rejected.
		e.orphans = append(e.orphans, pendingSettlement{rec: *s, seq: seq})
		return
	}

	if m.HasSettlement {
		if s.Status < m.SettlementStatus {
			// Downgrading a settlement status is only legal when the
			// incoming record is provably newer.
			if s.SettlementDate == nil || m.SettlementDate == nil || !s.SettlementDate.After(*m.SettlementDate) {
				e.reject(outOfOrderReplay("settlement", key,
					"incoming status "+s.Status.String()+" would downgrade "+m.SettlementStatus.String()+" without a strictly later date"))
				return
			}
		} else if settlementSuperseded(s, m, seq) {
			e.accepted++
			return
		}
	}

	m.HasSettlement = true
	m.SettlementExpected = s.ExpectedAmount
	m.SettlementActual = s.ActualAmount
	m.SettlementPending = s.PendingAmount
	m.CommissionDeduction = s.CommissionDeduction
	m.LogisticsDeduction = s.LogisticsDeduction
	m.SettlementPrepaid = s.PrepaidPayment
	m.SettlementPostpaid = s.PostpaidPayment
	m.SettlementStatus = s.Status
	m.SettlementBatchSeq = seq
	if s.SettlementDate != nil {
		m.SettlementDate = s.SettlementDate
	}
	e.accepted++
}

// settlementSuperseded reports whether an incoming non-downgrading
// settlement loses to the stored one under last-write-wins.
func settlementSuperseded(s *entity.SettlementRecord, m *entity.MasterRecord, seq int) bool {
	if s.SettlementDate != nil && m.SettlementDate != nil {
		if s.SettlementDate.Before(*m.SettlementDate) {
			return true
		}
		if s.SettlementDate.Equal(*m.SettlementDate) {
			return seq < m.SettlementBatchSeq
		}
		return false
	}
	return seq < m.SettlementBatchSeq
}

// Finalize retries held-aside settlements against the fully merged set,
// then returns the master records in deterministic key order alongside
// the run's rejections, remaining orphaned settlements and accepted
// record count. The retry makes within-run batch ordering immaterial
// for settlements: a settlement arriving before its order still joins.
func (e *MergeEngine) Finalize() ([]entity.MasterRecord, []entity.Rejection, []entity.SettlementRecord, int) {
	pending := e.orphans
	e.orphans = nil
	for i := range pending {
		e.applySettlement(&pending[i].rec, pending[i].seq)
	}

	keys := make([]entity.RecordKey, 0, len(e.records))
	for k := range e.records {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].OrderReleaseID != keys[j].OrderReleaseID {
			return keys[i].OrderReleaseID < keys[j].OrderReleaseID
		}
		return keys[i].LineItemID < keys[j].LineItemID
	})

	records := make([]entity.MasterRecord, 0, len(keys))
	for _, k := range keys {
		records = append(records, *e.records[k])
	}
	orphans := make([]entity.SettlementRecord, 0, len(e.orphans))
	for i := range e.orphans {
		orphans = append(orphans, e.orphans[i].rec)
	}
	return records, e.rejections, orphans, e.accepted
}
