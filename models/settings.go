package models

import "time"

// Settings is the single global configuration record. There is exactly one,
// stored under a fixed key, and every save overwrites it wholesale.
type Settings struct {
	EnablePaystack bool      `json:"enablePaystack"`
	SupportLink    string    `json:"supportLink"`
	BankName       string    `json:"bankName"`
	AccountNumber  string    `json:"accountNumber"`
	AccountName    string    `json:"accountName"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

type SaveSettingsRequest struct {
	EnablePaystack bool   `json:"enablePaystack"`
	SupportLink    string `json:"supportLink"`
	BankName       string `json:"bankName"`
	AccountNumber  string `json:"accountNumber"`
	AccountName    string `json:"accountName"`
}
