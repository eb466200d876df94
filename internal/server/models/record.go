package models

// CompanyRecord is the single protected resource type.
type CompanyRecord struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Exchange string  `json:"exchange"`
	Ticker   string  `json:"ticker"`
	ISIN     string  `json:"isin"`
	Website  *string `json:"website"`
}
