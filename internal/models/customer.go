package models

import "tenant-portal-svc/internal/billing"

// Customer is the tenant profile
type Customer struct {
	ID           string   `json:"id" example:"15"`
	FullName     string   `json:"full_name" example:"Nguyễn Văn An"`
	Phone        string   `json:"phone" example:"0901234567"`
	Birthday     string   `json:"birthday,omitempty" example:"2000-05-20"`
	Gender       string   `json:"gender,omitempty" example:"Nam"`
	Occupation   string   `json:"occupation,omitempty" example:"Sinh viên"`
	Province     string   `json:"province,omitempty"`
	District     string   `json:"district,omitempty"`
	Ward         string   `json:"ward,omitempty"`
	Street       string   `json:"street,omitempty"`
	Address      string   `json:"address,omitempty"`
	IDNumber     string   `json:"id_number,omitempty"`
	IDIssuedDate string   `json:"id_issued_date,omitempty"`
	IDIssuedBy   string   `json:"id_issued_by,omitempty"`
	IDCardFront  string   `json:"id_card_front,omitempty"`
	IDCardBack   string   `json:"id_card_back,omitempty"`
	Rentals      []Rental `json:"rentals"`
}

// Rental is a contract the tenant currently rents under, with its room
type Rental struct {
	ContractID string `json:"contract_id" example:"7"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Status     string `json:"status" example:"HoatDong"`
	Room       Room   `json:"room"`
}

// Room is a rentable room
type Room struct {
	ID          string         `json:"id" example:"3"`
	Number      string         `json:"number" example:"101"`
	Building    string         `json:"building" example:"A"`
	Price       billing.Amount `json:"price" swaggertype:"integer" example:"1500000"`
	Status      string         `json:"status,omitempty"`
	Description string         `json:"description,omitempty"`
	Area        string         `json:"area,omitempty" example:"20"`
	Amenities   []string       `json:"amenities"`
}
