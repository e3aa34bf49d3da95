package entities

// The status transition table. Any (from, to, role) combination not listed
// here is illegal: the attempt is rejected, the order is left untouched and no
// history row is written.
//
// Cancellation and delivery are handled as wildcards below rather than rows:
// an admin may cancel or deliver from any non-terminal status, a customer may
// cancel only before payment is confirmed.

type transitionKey struct {
	from OrderStatus
	to   OrderStatus
}

var transitionTable = map[transitionKey][]Role{
	{StatusAdminReview, StatusRequestCreated}:         {RoleAdmin},
	{StatusAdminReview, StatusCanceled}:               {RoleAdmin},
	{StatusRequestCreated, StatusPriceQuoted}:         {RoleSupplier},
	{StatusPriceQuoted, StatusRequestCreated}:         {RoleCustomer},
	{StatusPriceQuoted, StatusPaymentConfirmed}:       {RoleAdmin},
	{StatusPaymentConfirmed, StatusProductionStarted}: {RoleSupplier},
	{StatusProductionStarted, StatusInTransit}:        {RoleSupplier},
	{StatusInTransit, StatusProductionStarted}:        {RoleSupplier},
}

// CanTransition reports whether actor's role may move an order from one
// status to another. The system actor is granted admin authority: machine
// triggered transitions (payment reconciliation cancel) follow admin rules.
func CanTransition(from, to OrderStatus, actor Actor) bool {
	if from.IsTerminal() {
		return false
	}

	role := actor.Role
	if actor.IsSystem() {
		role = RoleAdmin
	}

	switch to {
	case StatusCanceled:
		switch role {
		case RoleAdmin:
			return true
		case RoleCustomer:
			return from == StatusRequestCreated || from == StatusPriceQuoted
		}
		// admin_review rejection is covered by the admin wildcard above.
		return false
	case StatusDelivered:
		return role == RoleAdmin
	}

	allowed, ok := transitionTable[transitionKey{from: from, to: to}]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
