package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReimbursementStatusTransitions(t *testing.T) {
	all := []ReimbursementStatus{
		ReimbursementPending,
		ReimbursementApproved,
		ReimbursementRejected,
		ReimbursementPaid,
	}

	allowed := map[ReimbursementStatus]map[ReimbursementStatus]bool{
		ReimbursementPending: {
			ReimbursementApproved: true,
			ReimbursementRejected: true,
		},
		ReimbursementApproved: {
			ReimbursementPaid: true,
		},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestNextStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]ReimbursementStatus{ReimbursementApproved, ReimbursementRejected},
		ReimbursementPending.NextStatuses())
	assert.Equal(t,
		[]ReimbursementStatus{ReimbursementPaid},
		ReimbursementApproved.NextStatuses())
	assert.Empty(t, ReimbursementRejected.NextStatuses())
	assert.Empty(t, ReimbursementPaid.NextStatuses())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, ReimbursementPending.Valid())
	assert.True(t, ReimbursementPaid.Valid())
	assert.False(t, ReimbursementStatus("Cancelled").Valid())
	assert.False(t, ReimbursementStatus("").Valid())
}
