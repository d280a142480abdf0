package domain

import "github.com/google/uuid"

// City is a destination city row (cities table).
type City struct {
	ID           uuid.UUID `json:"id" db:"id"`
	NameKo       string    `json:"name_ko" db:"name_ko"`
	NameEn       string    `json:"name_en" db:"name_en"`
	NameLocal    string    `json:"name_local" db:"name_local"`
	CountryCode  string    `json:"country_code" db:"country_code"`
	Timezone     string    `json:"timezone" db:"timezone"`
	IataCodes    []string  `json:"iata_codes" db:"-"`
	CurrencyCode string    `json:"currency_code" db:"currency_code"`
	IsActive     bool      `json:"is_active" db:"is_active"`
}
