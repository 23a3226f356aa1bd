package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionStatusIsValid(t *testing.T) {
	valid := []ProductionStatus{
		StatusDraft, StatusPendingApproval, StatusApproved, StatusSentToProduction,
		StatusInProduction, StatusOnHold, StatusQualityCheck, StatusReadyForInvoice,
		StatusInvoiced, StatusCancelled,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %s to be valid", s)
	}

	assert.False(t, ProductionStatus("shipped").IsValid())
	assert.False(t, ProductionStatus("").IsValid())
	assert.False(t, ProductionStatus("Draft").IsValid())
}

func TestProductionStatusTerminal(t *testing.T) {
	assert.True(t, StatusInvoiced.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.Empty(t, StatusInvoiced.ValidTransitions())
	assert.Empty(t, StatusCancelled.ValidTransitions())

	for _, s := range []ProductionStatus{
		StatusDraft, StatusPendingApproval, StatusApproved, StatusSentToProduction,
		StatusInProduction, StatusOnHold, StatusQualityCheck, StatusReadyForInvoice,
	} {
		assert.False(t, s.IsTerminal(), "expected %s to be non-terminal", s)
	}
}

func TestProductionStatusLegalEdges(t *testing.T) {
	expected := map[ProductionStatus][]ProductionStatus{
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

	all := make([]ProductionStatus, 0, len(expected))
	for s := range expected {
		all = append(all, s)
	}

	// Every pair is checked, so an accidental extra edge fails too.
	for from, edges := range expected {
		legal := make(map[ProductionStatus]bool, len(edges))
		for _, to := range edges {
			legal[to] = true
		}
		for _, to := range all {
			assert.Equal(t, legal[to], from.CanTransitionTo(to),
				"edge %s -> %s", from, to)
		}
		assert.ElementsMatch(t, edges, from.ValidTransitions())
	}
}

func TestValidateTransition(t *testing.T) {
	t.Run("legal edge", func(t *testing.T) {
		assert.NoError(t, ValidateTransition(StatusDraft, StatusPendingApproval))
		assert.NoError(t, ValidateTransition(StatusQualityCheck, StatusInProduction))
	})

	t.Run("illegal edge reports the legal set", func(t *testing.T) {
		err := ValidateTransition(StatusDraft, StatusApproved)
		require.Error(t, err)

		var transitionErr *TransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, StatusDraft, transitionErr.From)
		assert.Equal(t, StatusApproved, transitionErr.To)
		assert.ElementsMatch(t,
			[]ProductionStatus{StatusPendingApproval, StatusCancelled},
			transitionErr.Valid)
	})

	t.Run("terminal states have no outgoing edges", func(t *testing.T) {
		var transitionErr *TransitionError
		err := ValidateTransition(StatusInvoiced, StatusDraft)
		require.ErrorAs(t, err, &transitionErr)
		assert.Empty(t, transitionErr.Valid)

		err = ValidateTransition(StatusCancelled, StatusDraft)
		require.ErrorAs(t, err, &transitionErr)
		assert.Empty(t, transitionErr.Valid)
	})

	t.Run("unknown current state", func(t *testing.T) {
		err := ValidateTransition(ProductionStatus("archived"), StatusDraft)
		var unknownErr *UnknownStateError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, ProductionStatus("archived"), unknownErr.State)
	})

	t.Run("unknown target state", func(t *testing.T) {
		err := ValidateTransition(StatusDraft, ProductionStatus("archived"))
		var unknownErr *UnknownStateError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, ProductionStatus("archived"), unknownErr.State)
	})

	t.Run("self transition is illegal", func(t *testing.T) {
		var transitionErr *TransitionError
		err := ValidateTransition(StatusInProduction, StatusInProduction)
		require.ErrorAs(t, err, &transitionErr)
	})
}

func TestValidTransitionsReturnsCopy(t *testing.T) {
	edges := StatusDraft.ValidTransitions()
	require.NotEmpty(t, edges)
	edges[0] = StatusInvoiced

	assert.ElementsMatch(t,
		[]ProductionStatus{StatusPendingApproval, StatusCancelled},
		StatusDraft.ValidTransitions())
}
