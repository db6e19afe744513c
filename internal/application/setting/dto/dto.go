package dto

type SettingsDTO struct {
	RatePerHour float64 `json:"rate_per_hour"`
}
