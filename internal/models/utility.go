package models

// UtilityUsage is the electricity and water consumed in one month
type UtilityUsage struct {
	Period           string `json:"period" example:"03/2024"`
	Building         string `json:"building,omitempty" example:"A"`
	Room             string `json:"room,omitempty" example:"101"`
	ElectricityUsage int64  `json:"electricity_usage" example:"120"`
	WaterUsage       int64  `json:"water_usage" example:"8"`
}
