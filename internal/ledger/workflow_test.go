package ledger

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bursar-app/bursar/internal/common"
	"github.com/bursar-app/bursar/internal/model"
)

func nan() float64 { return math.NaN() }
func inf() float64 { return math.Inf(1) }

func TestSubmitValidation(t *testing.T) {
	engine := testEngine(t)

	base := SubmitReimbursement{
		Name:        "Dana Lee",
		Email:       "dana@example.org",
		Amount:      80,
		Category:    "Ops",
		Description: "Printer ink",
	}

	tests := []struct {
		mutate  func(*SubmitReimbursement)
		wantErr error
		name    string
	}{
		{func(r *SubmitReimbursement) { r.Name = "" }, common.ErrInvalidEntry, "empty name"},
		{func(r *SubmitReimbursement) { r.Email = " " }, common.ErrInvalidEntry, "blank email"},
		{func(r *SubmitReimbursement) { r.Description = "" }, common.ErrInvalidEntry, "empty description"},
		{func(r *SubmitReimbursement) { r.Amount = 0 }, common.ErrInvalidEntry, "zero amount"},
		{func(r *SubmitReimbursement) { r.Amount = -10 }, common.ErrInvalidEntry, "negative amount"},
		{func(r *SubmitReimbursement) { r.Amount = nan() }, common.ErrInvalidEntry, "nan amount"},
		{func(r *SubmitReimbursement) { r.Category = "Travel" }, common.ErrInvalidCategory, "unknown category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := engine.SubmitReimbursement(req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, engine.Reimbursements())
		})
	}
}

func TestIllegalTransitionsRejected(t *testing.T) {
	engine := testEngine(t)

	submit := func() model.Reimbursement {
		req, err := engine.SubmitReimbursement(SubmitReimbursement{
			Name:        "Dana Lee",
			Email:       "dana@example.org",
			Amount:      10,
			Category:    "Ops",
			Description: "Stamps",
		})
		require.NoError(t, err)
		return req
	}

	t.Run("pending cannot skip to paid", func(t *testing.T) {
		req := submit()
		_, _, err := engine.SetReimbursementStatus(req.ID, model.ReimbursementPaid)
		assert.ErrorIs(t, err, common.ErrInvalidTransition)
	})

	t.Run("self loop rejected", func(t *testing.T) {
		req := submit()
		_, _, err := engine.SetReimbursementStatus(req.ID, model.ReimbursementPending)
		assert.ErrorIs(t, err, common.ErrInvalidTransition)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		req := submit()
		_, tx, err := engine.SetReimbursementStatus(req.ID, model.ReimbursementRejected)
		require.NoError(t, err)
		assert.Nil(t, tx)

		_, _, err = engine.SetReimbursementStatus(req.ID, model.ReimbursementApproved)
		assert.ErrorIs(t, err, common.ErrInvalidTransition)
		_, _, err = engine.SetReimbursementStatus(req.ID, model.ReimbursementPaid)
		assert.ErrorIs(t, err, common.ErrInvalidTransition)
	})

	t.Run("re-approving rejected edge", func(t *testing.T) {
		req := submit()
		_, _, err := engine.SetReimbursementStatus(req.ID, model.ReimbursementApproved)
		require.NoError(t, err)
		_, _, err = engine.SetReimbursementStatus(req.ID, model.ReimbursementApproved)
		assert.ErrorIs(t, err, common.ErrInvalidTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		req := submit()
		_, _, err := engine.SetReimbursementStatus(req.ID, model.ReimbursementStatus("Cancelled"))
		assert.ErrorIs(t, err, common.ErrInvalidTransition)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, _, err := engine.SetReimbursementStatus("nope", model.ReimbursementApproved)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestRejectionHasNoBudgetEffect(t *testing.T) {
	engine := testEngine(t)

	req, err := engine.SubmitReimbursement(SubmitReimbursement{
		Name:        "Dana Lee",
		Email:       "dana@example.org",
		Amount:      80,
		Category:    "Ops",
		Description: "Printer ink",
	})
	require.NoError(t, err)

	before := engine.Budgets()
	_, tx, err := engine.SetReimbursementStatus(req.ID, model.ReimbursementRejected)
	require.NoError(t, err)
	assert.Nil(t, tx)
	assert.Equal(t, before, engine.Budgets())
	assert.Empty(t, engine.Transactions(""))
}

func TestRequestsNewestFirst(t *testing.T) {
	engine := testEngine(t)

	for _, desc := range []string{"first", "second", "third"} {
		_, err := engine.SubmitReimbursement(SubmitReimbursement{
			Name:        "Dana Lee",
			Email:       "dana@example.org",
			Amount:      1,
			Category:    "Ops",
			Description: desc,
		})
		require.NoError(t, err)
	}

	reqs := engine.Reimbursements()
	require.Len(t, reqs, 3)
	assert.Equal(t, "third", reqs[0].Description)
	assert.Equal(t, "first", reqs[2].Description)
}
