package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func summaryRecords() []PaymentRecord {
	return []PaymentRecord{
		{PeriodKey: "01/2024", Total: Some(500000), Paid: Some(500000), RawStatus: "Y"},
		{PeriodKey: "02/2024", Total: Some(500000), Paid: Some(300000), RawStatus: "N"},
		{PeriodKey: "03/2024", Total: Some(400000), Debt: Some(400000), RawStatus: "N"},
	}
}

func TestSummarizeLocal(t *testing.T) {
	s := Summarize(summaryRecords(), StatusResolver{}, ServerAggregates{})

	assert.Equal(t, Summary{
		PaidCount:       1,
		TotalPaid:       800000,
		TotalDebt:       600000,
		TotalBilled:     1400000,
		PaidCountSource: SourceLocal,
		TotalPaidSource: SourceLocal,
		TotalDebtSource: SourceLocal,
	}, s)
}

func TestSummarizePrefersServerFigures(t *testing.T) {
	s := Summarize(summaryRecords(), StatusResolver{}, ServerAggregates{
		EndpointDebt:      Some(1000000),
		ResponseDebt:      Some(1),
		ResponsePaid:      Some(900000),
		ResponsePaidCount: Some(4),
	})

	assert.Equal(t, int64(1000000), s.TotalDebt)
	assert.Equal(t, SourceAggregateEndpoint, s.TotalDebtSource)
	assert.Equal(t, int64(900000), s.TotalPaid)
	assert.Equal(t, SourceResponse, s.TotalPaidSource)
	assert.Equal(t, int64(4), s.PaidCount)
	assert.Equal(t, SourceResponse, s.PaidCountSource)
	assert.Equal(t, int64(1400000), s.TotalBilled)
}

func TestSummarizeZeroFromServerIsKept(t *testing.T) {
	s := Summarize(summaryRecords(), StatusResolver{}, ServerAggregates{EndpointDebt: Some(0)})

	assert.Equal(t, int64(0), s.TotalDebt)
	assert.Equal(t, SourceAggregateEndpoint, s.TotalDebtSource)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, StatusResolver{}, ServerAggregates{})
	assert.Equal(t, int64(0), s.PaidCount)
	assert.Equal(t, SourceLocal, s.TotalDebtSource)
}
