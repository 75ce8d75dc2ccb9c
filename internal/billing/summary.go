package billing

// Source tells where a summary figure came from
type Source string

const (
	SourceAggregateEndpoint Source = "aggregate_endpoint"
	SourceResponse          Source = "response"
	SourceLocal             Source = "local"
)

// ServerAggregates are the totals the upstream may volunteer. Endpoint figures
// come from the dedicated aggregate endpoints, Response figures from the
// history response itself. Absent amounts fall through to the next source.
type ServerAggregates struct {
	EndpointDebt Amount
	EndpointPaid Amount

	ResponseDebt      Amount
	ResponsePaid      Amount
	ResponsePaidCount Amount
}

// Summary is the aggregate of a list of billing periods
type Summary struct {
	PaidCount   int64 `json:"paid_count" example:"5"`
	TotalPaid   int64 `json:"total_paid" example:"9500000"`
	TotalDebt   int64 `json:"total_debt" example:"1900000"`
	TotalBilled int64 `json:"total_billed" example:"11400000"`

	PaidCountSource Source `json:"paid_count_source" example:"local"`
	TotalPaidSource Source `json:"total_paid_source" example:"aggregate_endpoint"`
	TotalDebtSource Source `json:"total_debt_source" example:"aggregate_endpoint"`
}

// Summarize counts paid periods and sums paid, debt and billed amounts.
//
// Server figures take precedence over local sums because they may cover
// periods missing from the fetched list.
func Summarize(records []PaymentRecord, resolver StatusResolver, agg ServerAggregates) Summary {
	var (
		paidCount, paidSum, debtSum, billedSum int64
	)
	for _, r := range records {
		res := resolver.ResolveRecord(r)
		if res.Paid {
			paidCount++
		}
		paidSum += res.PaidAmount
		billedSum += res.TotalAmount

		debt := res.DebtAmount
		if !res.Paid && r.Debt.Valid {
			debt = r.Debt.Value
		}
		debtSum += debt
	}

	s := Summary{TotalBilled: billedSum}
	s.PaidCount, s.PaidCountSource = pick(paidCount, Amount{}, agg.ResponsePaidCount)
	s.TotalPaid, s.TotalPaidSource = pick(paidSum, agg.EndpointPaid, agg.ResponsePaid)
	s.TotalDebt, s.TotalDebtSource = pick(debtSum, agg.EndpointDebt, agg.ResponseDebt)
	return s
}

func pick(local int64, endpoint, response Amount) (int64, Source) {
	switch {
	case endpoint.Valid:
		return endpoint.Value, SourceAggregateEndpoint
	case response.Valid:
		return response.Value, SourceResponse
	default:
		return local, SourceLocal
	}
}
