package handler

import "time"

type CredentialRequest struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type SettingsRequest struct {
	FetchAll       bool    `json:"fetch_all"`
	FetchCount     int     `json:"fetch_count"`
	LookbackMonths float64 `json:"commit_lookback_months"`
}

type SelectDateRequest struct {
	Date string `json:"date"`
}

type NavigateMonthRequest struct {
	Delta int `json:"delta"`
}

type SetMonthYearRequest struct {
	Month int `json:"month,omitempty"`
	Year  int `json:"year,omitempty"`
}

type StatusResponse struct {
	Loading      bool      `json:"loading"`
	LastError    string    `json:"last_error,omitempty"`
	SelectedDate time.Time `json:"selected_date"`
	SelectedRepo string    `json:"selected_repo,omitempty"`
}

type APIResponse struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
