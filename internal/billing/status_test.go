package billing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPaidStatus(t *testing.T) {
	tests := []struct {
		input        any
		want         bool
		wantZeroFlip bool
	}{
		{"Y", true, true},
		{"1", true, true},
		{1, true, true},
		{1.0, true, true},
		{json.Number("1"), true, true},
		{true, true, true},
		{"true", true, true},
		{"Đã thanh toán", true, true},
		{" paid ", true, true},
		{"PAID", true, true},
		{"0", false, true},
		{0, false, true},
		{json.Number("0"), false, true},
		{"N", false, false},
		{"Chưa thanh toán", false, false},
		{false, false, false},
		{2, false, false},
		{nil, false, false},
		{map[string]any{"paid": true}, false, false},
	}

	strict := StatusResolver{}
	zero := StatusResolver{ZeroMeansPaid: true}
	for _, tt := range tests {
		assert.Equal(t, tt.want, strict.IsPaidStatus(tt.input), "strict %#v", tt.input)
		assert.Equal(t, tt.wantZeroFlip, zero.IsPaidStatus(tt.input), "zero-means-paid %#v", tt.input)
	}
}

func TestResolve(t *testing.T) {
	r := StatusResolver{}

	tests := []struct {
		name     string
		evidence Evidence
		want     Resolution
	}{
		{
			name:     "status alone without amounts",
			evidence: Evidence{RawStatus: "Y", Paid: Some(0), Total: Some(0)},
			want:     Resolution{State: StatePaid, Paid: true},
		},
		{
			name:     "amounts override a not-paid status",
			evidence: Evidence{RawStatus: "N", Paid: Some(500000), Total: Some(500000)},
			want:     Resolution{State: StatePaid, Paid: true, PaidAmount: 500000, TotalAmount: 500000},
		},
		{
			name:     "partial payment",
			evidence: Evidence{RawStatus: "N", Paid: Some(300000), Total: Some(500000)},
			want:     Resolution{State: StatePartial, Partial: true, PaidAmount: 300000, TotalAmount: 500000, DebtAmount: 200000},
		},
		{
			name:     "amounts override a stale paid status",
			evidence: Evidence{RawStatus: "Đã thanh toán", Paid: Some(0), Total: Some(500000)},
			want:     Resolution{State: StateUnpaid, TotalAmount: 500000, DebtAmount: 500000},
		},
		{
			name:     "paid flag with unknown paid amount settles the total",
			evidence: Evidence{RawStatus: "Y", Total: Some(500000)},
			want:     Resolution{State: StatePaid, Paid: true, PaidAmount: 500000, TotalAmount: 500000},
		},
		{
			name:     "overpayment leaves no debt",
			evidence: Evidence{RawStatus: nil, Paid: Some(600000), Total: Some(500000)},
			want:     Resolution{State: StatePaid, Paid: true, PaidAmount: 600000, TotalAmount: 500000},
		},
		{
			name:     "nothing known",
			evidence: Evidence{},
			want:     Resolution{State: StateUnpaid},
		},
		{
			name:     "unknown status with absent total",
			evidence: Evidence{RawStatus: "pending", Paid: Some(100000)},
			want:     Resolution{State: StateUnpaid, PaidAmount: 100000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.evidence))
		})
	}
}

func TestResolveZeroMeansPaid(t *testing.T) {
	e := Evidence{RawStatus: "0"}

	assert.False(t, StatusResolver{}.Resolve(e).Paid)
	assert.True(t, StatusResolver{ZeroMeansPaid: true}.Resolve(e).Paid)
}

func TestResolveInvariants(t *testing.T) {
	r := StatusResolver{}
	for _, paid := range []int64{0, 1, 250000, 499999, 500000, 700000} {
		for _, total := range []int64{0, 1, 500000} {
			for _, status := range []any{"Y", "N", nil, 1, 0} {
				res := r.Resolve(Evidence{RawStatus: status, Paid: Some(paid), Total: Some(total)})

				assert.False(t, res.Paid && res.Partial, "paid and partial at once")
				assert.GreaterOrEqual(t, res.DebtAmount, int64(0))
				assert.Equal(t, max(0, res.TotalAmount-res.PaidAmount), res.DebtAmount)
				if total > 0 {
					assert.Equal(t, paid >= total, res.Paid, "amounts decide when total is positive")
				}
			}
		}
	}
}
