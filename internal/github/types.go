package github

import (
	"time"

	"github.com/gitpulse-io/gitpulse/internal/models"
)

type Repository struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	HTMLURL         string    `json:"html_url"`
	ForksCount      int       `json:"forks_count"`
	StargazersCount int       `json:"stargazers_count"`
	WatchersCount   int       `json:"watchers_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Commit mirrors the nested wire shape. The author date stays a raw string
// here so one malformed timestamp cannot fail the whole page decode.
type Commit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
	Author struct {
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	} `json:"author"`
}

type Contributor struct {
	ID            int64  `json:"id"`
	Login         string `json:"login"`
	AvatarURL     string `json:"avatar_url"`
	Contributions int    `json:"contributions"`
}

type RepoListOptions struct {
	// FetchAll walks every page; otherwise a single page of Count records is
	// requested.
	FetchAll bool
	Count    int
}

type CommitListOptions struct {
	Since time.Time
}

func (r *Repository) ToModel() models.Repository {
	return models.Repository{
		ID:            r.ID,
		Name:          r.Name,
		FullName:      r.FullName,
		Description:   r.Description,
		StarsCount:    r.StargazersCount,
		ForksCount:    r.ForksCount,
		WatchersCount: r.WatchersCount,
		UpdatedAt:     r.UpdatedAt,
		HTMLURL:       r.HTMLURL,
	}
}

// ToModel flattens the wire commit. An unparseable author date becomes the
// zero time, which the aggregator excludes from day buckets.
func (c *Commit) ToModel() models.Commit {
	date, err := time.Parse(time.RFC3339, c.Commit.Author.Date)
	if err != nil {
		date = time.Time{}
	}
	return models.Commit{
		SHA:             c.SHA,
		Message:         c.Commit.Message,
		AuthorName:      c.Commit.Author.Name,
		AuthorDate:      date,
		AuthorAvatarURL: c.Author.AvatarURL,
	}
}

func (c *Contributor) ToModel() models.Contributor {
	return models.Contributor{
		ID:            c.ID,
		Login:         c.Login,
		AvatarURL:     c.AvatarURL,
		Contributions: c.Contributions,
	}
}
