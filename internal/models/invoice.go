package models

import "tenant-portal-svc/internal/billing"

// Invoice is one monthly invoice of a rented room with its fees computed
type Invoice struct {
	ID               string             `json:"id" example:"128"`
	Period           string             `json:"period" example:"03/2024"`
	Building         string             `json:"building" example:"A"`
	Room             string             `json:"room" example:"101"`
	ElectricityUsage int64              `json:"electricity_usage" example:"120"`
	WaterUsage       int64              `json:"water_usage" example:"8"`
	ElectricityPrice int64              `json:"electricity_price" example:"3500"`
	WaterPrice       int64              `json:"water_price" example:"15000"`
	RoomFee          int64              `json:"room_fee" example:"1500000"`
	ElectricityFee   int64              `json:"electricity_fee" example:"420000"`
	WaterFee         int64              `json:"water_fee" example:"120000"`
	RepairFee        int64              `json:"repair_fee" example:"0"`
	RepairName       string             `json:"repair_name,omitempty" example:"Thay bóng đèn"`
	Deduction        int64              `json:"deduction" example:"0"`
	DeductionName    string             `json:"deduction_name,omitempty"`
	Total            billing.Money      `json:"total"`
	Status           billing.Resolution `json:"status"`
}

// InvoiceDetail is a single invoice merged with its payment-history row
type InvoiceDetail struct {
	ID             string                `json:"id" example:"128"`
	Period         string                `json:"period" example:"03/2024"`
	Room           string                `json:"room" example:"A-101"`
	CheckInDate    string                `json:"check_in_date,omitempty" example:"2023-09-01"`
	CustomerName   string                `json:"customer_name,omitempty" example:"Nguyễn Văn An"`
	Phone          string                `json:"phone,omitempty" example:"0901234567"`
	RoomFee        int64                 `json:"room_fee" example:"1500000"`
	ElectricityFee int64                 `json:"electricity_fee" example:"420000"`
	WaterFee       int64                 `json:"water_fee" example:"120000"`
	RepairFee      int64                 `json:"repair_fee" example:"0"`
	Deduction      int64                 `json:"deduction" example:"0"`
	Services       []billing.ServiceLine `json:"services"`
	Total          billing.Money         `json:"total"`
	Status         billing.Resolution    `json:"status"`
}
