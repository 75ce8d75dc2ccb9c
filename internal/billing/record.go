package billing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ServiceLine is one extra service billed in a period (internet, trash, ...)
type ServiceLine struct {
	Name   string `json:"name" example:"Internet"`
	Amount Amount `json:"amount" swaggertype:"integer" example:"100000"`
}

// PaymentRecord is one billing period of one room as either the invoice list or
// the payment history reports it.
type PaymentRecord struct {
	ID        string
	PeriodKey string
	Building  string
	Room      string

	RoomFee        Amount
	ElectricityFee Amount
	WaterFee       Amount
	RepairFee      Amount
	ServiceFee     Amount
	Deduction      Amount
	Services       []ServiceLine

	Total Amount
	// Paid and PaidAlt carry the two spellings of the paid field (TienTra and
	// Tientra), which the upstream does not keep in sync.
	Paid      Amount
	PaidAlt   Amount
	Debt      Amount
	RawStatus any
}

// TotalAmount is the billed total: the explicit one when present, otherwise
// the sum of the fee components less the deduction, never below zero.
func (r PaymentRecord) TotalAmount() Amount {
	if r.Total.Valid {
		return r.Total
	}

	services := r.ServiceFee
	if !services.Valid {
		for _, s := range r.Services {
			if s.Amount.Valid {
				services = Some(services.Value + s.Amount.Value)
			}
		}
	}

	var sum int64
	seen := false
	for _, a := range []Amount{r.RoomFee, r.ElectricityFee, r.WaterFee, r.RepairFee, services} {
		if a.Valid {
			sum += a.Value
			seen = true
		}
	}
	// A deduction alone is not a bill.
	if !seen {
		return Amount{}
	}
	if r.Deduction.Valid {
		sum -= r.Deduction.Value
	}
	if sum < 0 {
		sum = 0
	}
	return Some(sum)
}

// PaidAmount is the larger of the two paid fields.
func (r PaymentRecord) PaidAmount() Amount {
	return maxAmount(r.Paid, r.PaidAlt)
}

// DebtAmount is the debt the upstream reported, or total minus paid.
func (r PaymentRecord) DebtAmount() Amount {
	if r.Debt.Valid {
		return r.Debt
	}
	total := r.TotalAmount()
	if !total.Valid {
		return Amount{}
	}
	debt := total.Value - r.PaidAmount().Or(0)
	if debt < 0 {
		debt = 0
	}
	return Some(debt)
}

// Evidence is what a StatusResolver needs to settle this record.
func (r PaymentRecord) Evidence() Evidence {
	return Evidence{RawStatus: r.RawStatus, Paid: r.PaidAmount(), Total: r.TotalAmount()}
}

// RoomLabel joins building and room, e.g. "A-101".
func (r PaymentRecord) RoomLabel() string {
	switch {
	case r.Building != "" && r.Room != "":
		return r.Building + "-" + r.Room
	case r.Room != "":
		return r.Room
	default:
		return r.Building
	}
}

// ResolveRecord settles one record.
func (s StatusResolver) ResolveRecord(r PaymentRecord) Resolution {
	return s.Resolve(r.Evidence())
}

// Merge settles a period reported by two sources, typically an invoice detail
// (primary) and its payment-history row (secondary). The primary's amounts
// win where present, the paid figure is the larger of the two, and a paid
// flag on either side counts.
func (s StatusResolver) Merge(primary PaymentRecord, secondary *PaymentRecord) Resolution {
	if secondary == nil {
		return s.ResolveRecord(primary)
	}

	total := primary.TotalAmount()
	if !total.Valid {
		total = secondary.TotalAmount()
	}
	paid := maxAmount(primary.PaidAmount(), secondary.PaidAmount())

	status := primary.RawStatus
	if !s.IsPaidStatus(status) && s.IsPaidStatus(secondary.RawStatus) {
		status = secondary.RawStatus
	}
	return s.Resolve(Evidence{RawStatus: status, Paid: paid, Total: total})
}

func maxAmount(a, b Amount) Amount {
	switch {
	case a.Valid && b.Valid:
		if b.Value > a.Value {
			return b
		}
		return a
	case a.Valid:
		return a
	default:
		return b
	}
}

var (
	monthYearPattern = regexp.MustCompile(`^(\d{1,2})\s*[/\-.]\s*(\d{4})$`)
	yearMonthPattern = regexp.MustCompile(`^(\d{4})\s*[/\-.]\s*(\d{1,2})`)
)

// NormalizePeriod rewrites "M/YYYY", "MM-YYYY" and "YYYY-MM[-DD...]" as
// "MM/YYYY". Anything else comes back trimmed.
func NormalizePeriod(s string) string {
	s = strings.TrimSpace(s)
	var month, year string
	if m := monthYearPattern.FindStringSubmatch(s); m != nil {
		month, year = m[1], m[2]
	} else if m := yearMonthPattern.FindStringSubmatch(s); m != nil {
		month, year = m[2], m[1]
	} else {
		return s
	}
	mm, err := strconv.Atoi(month)
	if err != nil || mm < 1 || mm > 12 {
		return s
	}
	return fmt.Sprintf("%02d/%s", mm, year)
}

// FindRecord returns the record of the given period. Periods are not unique
// across rooms, so a record of the hinted room is preferred when roomHint is
// set; otherwise the first record of the period is returned.
func FindRecord(records []PaymentRecord, period, roomHint string) *PaymentRecord {
	want := NormalizePeriod(period)
	if want == "" {
		return nil
	}
	hint := strings.ToLower(strings.TrimSpace(roomHint))

	var first *PaymentRecord
	for i := range records {
		if NormalizePeriod(records[i].PeriodKey) != want {
			continue
		}
		if hint == "" {
			return &records[i]
		}
		if strings.ToLower(records[i].Room) == hint || strings.ToLower(records[i].RoomLabel()) == hint {
			return &records[i]
		}
		if first == nil {
			first = &records[i]
		}
	}
	return first
}
