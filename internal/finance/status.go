package finance

// OrderStatus enumerates the lifecycle states of a purchase order.
type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "Active"
	OrderStatusOnHold    OrderStatus = "OnHold"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists the recognised order states in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusActive,
	OrderStatusOnHold,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// Valid reports whether s is a recognised order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusActive, OrderStatusOnHold, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus enumerates the states of a payment or advance.
type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "Pending"
	PaymentStatusPaid          PaymentStatus = "Paid"
	PaymentStatusPartiallyPaid PaymentStatus = "PartiallyPaid"
)

// PaymentStatuses lists the recognised payment states in display order.
var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusPartiallyPaid,
	PaymentStatusPaid,
}

// Valid reports whether s is a recognised payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartiallyPaid:
		return true
	}
	return false
}

// InvoicePaymentStatus classifies an invoice from the full set of its payment
// rows. Payments only change through invoice writes, so the result is
// recomputed and stored on every write rather than derived per read:
//
//   - no payments at all -> Pending
//   - every payment Paid -> Paid
//   - any payment PartiallyPaid (and none Pending) -> PartiallyPaid
//   - otherwise -> Pending
func InvoicePaymentStatus(statuses []PaymentStatus) PaymentStatus {
	if len(statuses) == 0 {
		return PaymentStatusPending
	}
	allPaid := true
	partial := false
	for _, s := range statuses {
		switch s {
		case PaymentStatusPaid:
		case PaymentStatusPartiallyPaid:
			allPaid = false
			partial = true
		default:
			return PaymentStatusPending
		}
	}
	if allPaid {
		return PaymentStatusPaid
	}
	if partial {
		return PaymentStatusPartiallyPaid
	}
	return PaymentStatusPending
}
