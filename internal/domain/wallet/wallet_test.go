package wallet

import (
	"testing"

	"github.com/fleetdesk/fleet-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSumApproved_IgnoresPendingAndRejected(t *testing.T) {
	txs := []Transaction{
		{Direction: DirectionAdd, Amount: amount(500), Status: StatusApproved},
		{Direction: DirectionSubtract, Amount: amount(200), Status: StatusApproved},
		{Direction: DirectionAdd, Amount: amount(1000), Status: StatusPending},
		{Direction: DirectionSubtract, Amount: amount(700), Status: StatusRejected},
	}

	totals := SumApproved(txs)
	assert.True(t, totals.TotalAdd.Equal(amount(500)))
	assert.True(t, totals.TotalSubtract.Equal(amount(200)))
	assert.True(t, totals.Net().Equal(amount(300)))
}

func TestTransaction_Delta(t *testing.T) {
	assert.True(t, Transaction{Direction: DirectionAdd, Amount: amount(50)}.Delta().Equal(amount(50)))
	assert.True(t, Transaction{Direction: DirectionSubtract, Amount: amount(50)}.Delta().Equal(amount(-50)))
}

func TestOutcome_Status(t *testing.T) {
	s, ok := OutcomeApprove.Status()
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, s)

	s, ok = OutcomeReject.Status()
	assert.True(t, ok)
	assert.Equal(t, StatusRejected, s)

	_, ok = Outcome("cancel").Status()
	assert.False(t, ok)
}

func TestProposeRequest_Validate(t *testing.T) {
	zero := decimal.Zero
	neg := amount(-10)
	ok := amount(100)
	subCent := decimal.RequireFromString("0.001")
	halfCent := decimal.RequireFromString("10.005")
	huge := decimal.RequireFromString("1e14")

	tests := []struct {
		name  string
		req   ProposeRequest
		field string
	}{
		{"zero amount", ProposeRequest{DriverID: "d", Amount: &zero}, "amount"},
		{"negative amount", ProposeRequest{DriverID: "d", Amount: &neg}, "amount"},
		{"missing amount", ProposeRequest{DriverID: "d"}, "amount"},
		{"sub-cent amount", ProposeRequest{DriverID: "d", Amount: &subCent}, "amount"},
		{"three decimal places", ProposeRequest{DriverID: "d", Amount: &halfCent}, "amount"},
		{"amount beyond column range", ProposeRequest{DriverID: "d", Amount: &huge}, "amount"},
		{"unknown kind", ProposeRequest{DriverID: "d", Amount: &ok, Kind: "bribe"}, "kind"},
		{"unknown direction", ProposeRequest{DriverID: "d", Amount: &ok, Direction: "multiply"}, "direction"},
		{"missing driver", ProposeRequest{Amount: &ok}, "driver_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verrs validator.ValidationErrors
			require.ErrorAs(t, tt.req.Validate(), &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestProposeRequest_Defaults(t *testing.T) {
	a := amount(100)
	req := ProposeRequest{DriverID: "d", Amount: &a}
	req.ApplyDefaults()
	require.NoError(t, req.Validate())
	assert.Equal(t, KindReward, req.Kind)
	assert.Equal(t, DirectionAdd, req.Direction)
}

func TestGroupByKind(t *testing.T) {
	txs := []Transaction{
		{ID: "1", Kind: KindReward, Direction: DirectionAdd, Amount: amount(100), Status: StatusApproved},
		{ID: "2", Kind: KindReward, Direction: DirectionAdd, Amount: amount(50), Status: StatusApproved},
		{ID: "3", Kind: KindPenalty, Direction: DirectionSubtract, Amount: amount(30), Status: StatusApproved},
	}

	groups := GroupByKind(txs)
	require.Len(t, groups, 2)
	assert.Len(t, groups[KindReward].Transactions, 2)
	assert.True(t, groups[KindReward].Total.Equal(amount(150)))
	assert.True(t, groups[KindPenalty].Total.Equal(amount(-30)))
}
