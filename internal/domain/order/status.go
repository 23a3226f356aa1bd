package order

import "fmt"

// ProductionStatus represents where an order sits in the production pipeline
type ProductionStatus string

const (
	StatusDraft            ProductionStatus = "draft"
	StatusPendingApproval  ProductionStatus = "pending_approval"
	StatusApproved         ProductionStatus = "approved"
	StatusSentToProduction ProductionStatus = "sent_to_production"
	StatusInProduction     ProductionStatus = "in_production"
	StatusOnHold           ProductionStatus = "on_hold"
	StatusQualityCheck     ProductionStatus = "quality_check"
	StatusReadyForInvoice  ProductionStatus = "ready_for_invoice"
	StatusInvoiced         ProductionStatus = "invoiced"
	StatusCancelled        ProductionStatus = "cancelled"
)

// statusTransitions is the complete set of legal edges.
// Terminal states have an empty slice so IsValid and ValidTransitions
// stay in sync from a single table.
var statusTransitions = map[ProductionStatus][]ProductionStatus{
	StatusDraft:            {StatusPendingApproval, StatusCancelled},
	StatusPendingApproval:  {StatusApproved, StatusCancelled},
	StatusApproved:         {StatusSentToProduction, StatusCancelled},
	StatusSentToProduction: {StatusInProduction, StatusOnHold, StatusCancelled},
	StatusInProduction:     {StatusQualityCheck, StatusOnHold, StatusCancelled},
	StatusOnHold:           {StatusInProduction, StatusCancelled},
	StatusQualityCheck:     {StatusReadyForInvoice, StatusInProduction},
	StatusReadyForInvoice:  {StatusInvoiced},
	StatusInvoiced:         {},
	StatusCancelled:        {},
}

// IsValid reports whether s is a recognized production status
func (s ProductionStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal reports whether s has no outgoing transitions
func (s ProductionStatus) IsTerminal() bool {
	edges, ok := statusTransitions[s]
	return ok && len(edges) == 0
}

// String returns the status as a string
func (s ProductionStatus) String() string {
	return string(s)
}

// ValidTransitions returns the legal target states from s.
// The returned slice is a copy; callers may not mutate the table.
func (s ProductionStatus) ValidTransitions() []ProductionStatus {
	edges, ok := statusTransitions[s]
	if !ok {
		return nil
	}
	out := make([]ProductionStatus, len(edges))
	copy(out, edges)
	return out
}

// CanTransitionTo reports whether the edge s -> target is legal
func (s ProductionStatus) CanTransitionTo(target ProductionStatus) bool {
	for _, edge := range statusTransitions[s] {
		if edge == target {
			return true
		}
	}
	return false
}

// UnknownStateError indicates a status value outside the recognized set
type UnknownStateError struct {
	State ProductionStatus
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown production status %q", e.State)
}

// TransitionError indicates a request for an edge the state machine does
// not permit. Valid carries the full legal set for the current state so
// callers can render the available choices.
type TransitionError struct {
	From  ProductionStatus
	To    ProductionStatus
	Valid []ProductionStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// ValidateTransition checks the edge current -> next against the table.
// It is stateless; persistence is the caller's responsibility.
func ValidateTransition(current, next ProductionStatus) error {
	if !current.IsValid() {
		return &UnknownStateError{State: current}
	}
	if !next.IsValid() {
		return &UnknownStateError{State: next}
	}
	if !current.CanTransitionTo(next) {
		return &TransitionError{From: current, To: next, Valid: current.ValidTransitions()}
	}
	return nil
}
