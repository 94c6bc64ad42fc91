package models

import "time"

type Repository struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Description   string    `json:"description"`
	StarsCount    int       `json:"stars_count"`
	ForksCount    int       `json:"forks_count"`
	WatchersCount int       `json:"watchers_count"`
	UpdatedAt     time.Time `json:"updated_at"`
	HTMLURL       string    `json:"html_url"`
}
