package models

import "tenant-portal-svc/internal/billing"

// ContractStatusActive marks the contract currently in force
const ContractStatusActive = "HoatDong"

// Contract is a rental contract with the upstream aliases folded together.
// Landlord login fields are never carried.
type Contract struct {
	ID           string         `json:"id" example:"7"`
	CustomerID   string         `json:"customer_id" example:"15"`
	RoomID       string         `json:"room_id" example:"3"`
	Building     string         `json:"building,omitempty" example:"A"`
	StartDate    string         `json:"start_date" example:"2024-01-01"`
	EndDate      string         `json:"end_date" example:"2024-12-31"`
	SignedAt     string         `json:"signed_at,omitempty" example:"2023-12-20"`
	Cycle        string         `json:"cycle,omitempty" example:"1 tháng"`
	Term         string         `json:"term,omitempty" example:"12 tháng"`
	Deposit      billing.Amount `json:"deposit" swaggertype:"integer" example:"3000000"`
	Note         string         `json:"note,omitempty"`
	MemberCount  int64          `json:"member_count,omitempty" example:"2"`
	Status       string         `json:"status,omitempty" example:"HoatDong"`
	ManagerID    string         `json:"manager_id,omitempty" example:"1"`
	ManagerName  string         `json:"manager_name,omitempty" example:"Trần Thị Bình"`
	ManagerPhone string         `json:"manager_phone,omitempty" example:"0912345678"`
	ManagerIDNo  string         `json:"manager_id_number,omitempty"`
	ManagerAddr  string         `json:"manager_address,omitempty"`
}

// PrintableContract is the text-only contract view. Missing data is shown as
// dotted placeholders so the printed form can be completed by hand.
type PrintableContract struct {
	LandlordName    string   `json:"landlord_name"`
	LandlordIDNo    string   `json:"landlord_id_number"`
	LandlordPhone   string   `json:"landlord_phone"`
	LandlordAddress string   `json:"landlord_address"`
	TenantName      string   `json:"tenant_name"`
	TenantIDNo      string   `json:"tenant_id_number"`
	TenantPhone     string   `json:"tenant_phone"`
	TenantGender    string   `json:"tenant_gender"`
	TenantBirthday  string   `json:"tenant_birthday"`
	TenantAddress   string   `json:"tenant_address"`
	Building        string   `json:"building"`
	Room            string   `json:"room"`
	RoomPrice       string   `json:"room_price" example:"1.500.000"`
	RoomPriceWords  string   `json:"room_price_words,omitempty"`
	Area            string   `json:"area" example:"20"`
	Deposit         string   `json:"deposit" example:"3.000.000"`
	DepositWords    string   `json:"deposit_words,omitempty"`
	Cycle           string   `json:"cycle" example:"Theo thỏa thuận"`
	StartDate       string   `json:"start_date" example:"1/1/2024"`
	EndDate         string   `json:"end_date" example:"31/12/2024"`
	Amenities       []string `json:"amenities"`
	IDCardFront     string   `json:"id_card_front,omitempty"`
	IDCardBack      string   `json:"id_card_back,omitempty"`
}
