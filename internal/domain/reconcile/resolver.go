package reconcile

import (
	"fmt"

	"github.com/sellerdesk/recon-api/internal/domain/entity"
)

// Resolver normalizes raw records to the canonical composite key. Order
// records carry both halves of the key; returns and settlements may carry
// only the order release id and are joined against the known line items
// for that release.
type Resolver struct {
	lineItems map[string][]string // order_release_id -> known line item ids
}

// NewResolver seeds the resolver with the line items already present in
// the master dataset.
func NewResolver(existing []entity.MasterRecord) *Resolver {
	r := &Resolver{lineItems: make(map[string][]string)}
	for i := range existing {
		r.register(existing[i].OrderReleaseID, existing[i].LineItemID)
	}
	return r
}

func (r *Resolver) register(releaseID, lineItemID string) {
	for _, known := range r.lineItems[releaseID] {
		if known == lineItemID {
			return
		}
	}
	r.lineItems[releaseID] = append(r.lineItems[releaseID], lineItemID)
}

// ResolveOrder validates an order line's composite key. The caller
// registers the key once the record passes the remaining validation, so
// that rejected orders never become join targets.
func (r *Resolver) ResolveOrder(o *entity.OrderLine) (entity.RecordKey, *RecordError) {
	if o.OrderReleaseID == "" || o.LineItemID == "" {
		return entity.RecordKey{}, malformed("order", o.Key(), "order_release_id and line_item_id are required")
	}
	return o.Key(), nil
}

// Register makes a key available as a join target for returns and
// settlements.
func (r *Resolver) Register(key entity.RecordKey) {
	r.register(key.OrderReleaseID, key.LineItemID)
}

// Resolve joins a return or settlement record to a unique order line.
// A line item id on the record takes precedence; otherwise the release id
// must match exactly one known line item. The boolean reports whether the
// resolved key refers to a known order line.
func (r *Resolver) Resolve(kind, releaseID, lineItemID string) (entity.RecordKey, bool, *RecordError) {
	if releaseID == "" {
		return entity.RecordKey{}, false, malformed(kind, entity.RecordKey{}, "order_release_id is required")
	}
	known := r.lineItems[releaseID]

	if lineItemID != "" {
		key := entity.RecordKey{OrderReleaseID: releaseID, LineItemID: lineItemID}
		for _, id := range known {
			if id == lineItemID {
				return key, true, nil
			}
		}
		return key, false, nil
	}

	switch len(known) {
	case 0:
		return entity.RecordKey{OrderReleaseID: releaseID}, false, nil
	case 1:
		return entity.RecordKey{OrderReleaseID: releaseID, LineItemID: known[0]}, true, nil
	default:
		return entity.RecordKey{}, false, ambiguousJoin(kind,
			entity.RecordKey{OrderReleaseID: releaseID},
			fmt.Sprintf("%d line items share order_release_id and the record carries none", len(known)))
	}
}
