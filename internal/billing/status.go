package billing

import (
	"encoding/json"
	"strings"
)

// PaymentState is the tri-state settlement of a billing period
type PaymentState string

const (
	StatePaid    PaymentState = "paid"
	StatePartial PaymentState = "partial"
	StateUnpaid  PaymentState = "unpaid"
)

// StatusResolver decides whether a billing period is settled from a status
// flag of unknown shape and the paid/total amounts.
type StatusResolver struct {
	// ZeroMeansPaid treats "0"/0 as a paid flag. One upstream endpoint appears
	// to use that convention; it stays off unless confirmed.
	ZeroMeansPaid bool
}

// Evidence is what the resolver looks at for one billing period
type Evidence struct {
	RawStatus any
	Paid      Amount
	Total     Amount
}

// Resolution is the resolver's verdict for one billing period
type Resolution struct {
	State       PaymentState `json:"state" example:"partial"`
	Paid        bool         `json:"paid" example:"false"`
	Partial     bool         `json:"partial" example:"true"`
	PaidAmount  int64        `json:"paid_amount" example:"300000"`
	TotalAmount int64        `json:"total_amount" example:"500000"`
	DebtAmount  int64        `json:"debt_amount" example:"200000"`
}

var paidStatusStrings = map[string]bool{
	"Y":             true,
	"1":             true,
	"true":          true,
	"Đã thanh toán": true,
	"paid":          true,
	"PAID":          true,
}

// IsPaidStatus reports whether a raw status flag says "paid". Unknown values
// say "not paid".
func (r StatusResolver) IsPaidStatus(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		s := strings.TrimSpace(x)
		if s == "0" {
			return r.ZeroMeansPaid
		}
		return paidStatusStrings[s]
	case *string:
		return x != nil && r.IsPaidStatus(*x)
	case json.Number:
		f, err := x.Float64()
		return err == nil && r.isPaidFlag(f)
	case float64:
		return r.isPaidFlag(x)
	case float32:
		return r.isPaidFlag(float64(x))
	case int:
		return r.isPaidFlag(float64(x))
	case int32:
		return r.isPaidFlag(float64(x))
	case int64:
		return r.isPaidFlag(float64(x))
	default:
		return false
	}
}

func (r StatusResolver) isPaidFlag(f float64) bool {
	switch f {
	case 1:
		return true
	case 0:
		return r.ZeroMeansPaid
	default:
		return false
	}
}

// Resolve combines the status flag with the amounts.
//
// When both amounts are present and the total is positive the amounts decide,
// whatever the flag says. Otherwise the flag decides, with a known fully paid
// total still counting as paid.
func (r StatusResolver) Resolve(e Evidence) Resolution {
	paid := e.Paid.Or(0)
	total := e.Total.Or(0)

	amountSaysPaid := total > 0 && paid >= total

	var isPaid bool
	if e.Paid.Valid && e.Total.Valid && total > 0 {
		isPaid = amountSaysPaid
	} else {
		isPaid = r.IsPaidStatus(e.RawStatus) || amountSaysPaid
	}

	// A period settled on the flag alone has no paid figure to show; report
	// it as paid in full so debt and paid agree with the verdict.
	if isPaid && !e.Paid.Valid && total > paid {
		paid = total
	}

	debt := total - paid
	if debt < 0 {
		debt = 0
	}

	res := Resolution{
		Paid:        isPaid,
		Partial:     !isPaid && paid > 0 && total > paid,
		PaidAmount:  paid,
		TotalAmount: total,
		DebtAmount:  debt,
	}
	switch {
	case res.Paid:
		res.State = StatePaid
	case res.Partial:
		res.State = StatePartial
	default:
		res.State = StateUnpaid
	}
	return res
}
