package models

import "tenant-portal-svc/internal/billing"

// HistoryRecord is one billing period from the payment history
type HistoryRecord struct {
	ID               string             `json:"id" example:"128"`
	Period           string             `json:"period" example:"03/2024"`
	Building         string             `json:"building" example:"A"`
	Room             string             `json:"room" example:"101"`
	ElectricityUsage int64              `json:"electricity_usage" example:"120"`
	WaterUsage       int64              `json:"water_usage" example:"8"`
	RoomFee          int64              `json:"room_fee" example:"1500000"`
	ServiceFee       int64              `json:"service_fee" example:"100000"`
	ElectricityFee   int64              `json:"electricity_fee" example:"420000"`
	WaterFee         int64              `json:"water_fee" example:"120000"`
	RepairFee        int64              `json:"repair_fee" example:"0"`
	RepairName       string             `json:"repair_name,omitempty"`
	Deduction        int64              `json:"deduction" example:"0"`
	DeductionName    string             `json:"deduction_name,omitempty"`
	Status           billing.Resolution `json:"status"`
}

// PaymentHistory is the resolved history plus its summary
type PaymentHistory struct {
	Records []HistoryRecord `json:"records"`
	Summary billing.Summary `json:"summary"`
	// Display forms of the summary amounts
	TotalPaid   billing.Money `json:"total_paid"`
	TotalDebt   billing.Money `json:"total_debt"`
	TotalBilled billing.Money `json:"total_billed"`

	// Periods are the unresolved records, for settling invoices against
	Periods []billing.PaymentRecord `json:"-"`
}
