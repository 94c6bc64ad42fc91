package models

import "time"

// * GitHub commit, flattened from the nested API shape at the parse boundary
type Commit struct {
	SHA             string    `json:"sha"`
	Message         string    `json:"message"`
	AuthorName      string    `json:"author_name"`
	AuthorDate      time.Time `json:"author_date"`
	AuthorAvatarURL string    `json:"author_avatar_url,omitempty"`
}

type Contributor struct {
	ID            int64  `json:"id"`
	Login         string `json:"login"`
	AvatarURL     string `json:"avatar_url"`
	Contributions int    `json:"contributions"`
}

type Credential struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// FetchSettings controls how much history the fetch operations pull.
// LookbackMonths may be fractional (e.g. 0.5 for half a month).
type FetchSettings struct {
	FetchAll       bool    `json:"fetch_all"`
	FetchCount     int     `json:"fetch_count"`
	LookbackMonths float64 `json:"commit_lookback_months"`
}
