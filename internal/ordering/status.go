package ordering

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusValidated      Status = "VALIDATED"
	StatusProcessing     Status = "PROCESSING"
	StatusConfirmed      Status = "CONFIRMED"
	StatusReadyToShip    Status = "READY_TO_SHIP"
	StatusReadyForPickup Status = "READY_FOR_PICKUP"
	StatusShipped        Status = "SHIPPED"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
	StatusRefunded       Status = "REFUNDED"
)

var allStatuses = map[Status]bool{
	StatusPending:        true,
	StatusPendingPayment: true,
	StatusValidated:      true,
	StatusProcessing:     true,
	StatusConfirmed:      true,
	StatusReadyToShip:    true,
	StatusReadyForPickup: true,
	StatusShipped:        true,
	StatusDelivered:      true,
	StatusCancelled:      true,
	StatusRefunded:       true,
}

func (s Status) Valid() bool {
	return allStatuses[s]
}

// CheckTransition enforces the one hard rule of the order state machine:
// an order may only be cancelled while it is still PENDING. Setting the
// current status again is always allowed (callers treat it as a no-op).
// Every other transition is left to the broader business workflow.
func CheckTransition(from, to Status) error {
	if from == to {
		return nil
	}
	if to == StatusCancelled && from != StatusPending {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// CheckCancellable guards the cancel operation itself. Unlike a status
// set, cancelling is never idempotent: an order that already left
// PENDING, including one already cancelled, cannot be cancelled again.
func CheckCancellable(from Status) error {
	if from != StatusPending {
		return &InvalidTransitionError{From: from, To: StatusCancelled}
	}
	return nil
}
