package enum

// PaymentType is how the customer paid for the order line.
type PaymentType string

const (
	PaymentPrepaid  PaymentType = "prepaid"
	PaymentPostpaid PaymentType = "postpaid"
)

// Valid reports whether the value is one of the two known payment types.
func (p PaymentType) Valid() bool {
	return p == PaymentPrepaid || p == PaymentPostpaid
}
