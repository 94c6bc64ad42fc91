package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gitpulse-io/gitpulse/pkg/errors"
	"github.com/gitpulse-io/gitpulse/pkg/logger"
)

var (
	baseURL = "https://api.github.com"
)

const maxPerPage = 100

type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// makeRequest issues a GET against the GitHub API. The token travels per
// request because the credential is user-supplied and may change at any time.
func (c *Client) makeRequest(ctx context.Context, token, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "token "+token)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	return resp, nil
}

func decodeList[T any](resp *http.Response) ([]*T, error) {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.FetchFailed(resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read GitHub API response: %w", err)
	}

	var records []*T
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to parse GitHub API response: %w", err)
	}
	return records, nil
}

// ListRepositories fetches the repository listing for a user. With FetchAll it
// walks pages of 100 until a short page arrives: the listing endpoint carries
// no pagination header, so an exact-size page is the only "more data" signal.
func (c *Client) ListRepositories(ctx context.Context, token, username string, opts RepoListOptions) ([]*Repository, error) {
	basePath := fmt.Sprintf("/users/%s/repos", url.PathEscape(username))

	if !opts.FetchAll {
		count := opts.Count
		if count < 1 || count > maxPerPage {
			count = 30
		}
		resp, err := c.makeRequest(ctx, token, basePath+"?per_page="+strconv.Itoa(count))
		if err != nil {
			return nil, err
		}
		return decodeList[Repository](resp)
	}

	var allRepos []*Repository
	page := 1

	for {
		params := make(url.Values)
		params.Set("page", strconv.Itoa(page))
		params.Set("per_page", strconv.Itoa(maxPerPage))

		resp, err := c.makeRequest(ctx, token, basePath+"?"+params.Encode())
		if err != nil {
			return nil, fmt.Errorf("could not fetch page %d of repositories: %w", page, err)
		}

		repos, err := decodeList[Repository](resp)
		if err != nil {
			return nil, err
		}

		allRepos = append(allRepos, repos...)

		if len(repos) < maxPerPage {
			break
		}
		page++
	}

	logger.Info("Successfully fetched %d repositories for %s", len(allRepos), username)
	return allRepos, nil
}

// ListCommits fetches every commit page for a repository, optionally bounded
// by opts.Since. The commits endpoint signals continuation through the Link
// header's rel="next" relation, independent of page size.
func (c *Client) ListCommits(ctx context.Context, token, owner, repo string, opts CommitListOptions) ([]*Commit, error) {
	basePath := fmt.Sprintf("/repos/%s/%s/commits", url.PathEscape(owner), url.PathEscape(repo))

	var allCommits []*Commit
	page := 1

	for {
		params := make(url.Values)
		params.Set("page", strconv.Itoa(page))
		params.Set("per_page", strconv.Itoa(maxPerPage))
		if !opts.Since.IsZero() {
			params.Set("since", opts.Since.UTC().Format(time.RFC3339))
		}

		resp, err := c.makeRequest(ctx, token, basePath+"?"+params.Encode())
		if err != nil {
			return nil, fmt.Errorf("could not fetch page %d of commits: %w", page, err)
		}

		linkHeader := resp.Header.Get("Link")

		commits, err := decodeList[Commit](resp)
		if err != nil {
			return nil, err
		}

		allCommits = append(allCommits, commits...)

		if !strings.Contains(linkHeader, `rel="next"`) {
			break
		}
		page++
	}

	logger.Info("Successfully fetched %d commits from %s/%s", len(allCommits), owner, repo)
	return allCommits, nil
}

// ListContributors is the deliberately degraded fetch: any failure collapses
// to an empty contributor list instead of aborting the caller's operation.
func (c *Client) ListContributors(ctx context.Context, token, owner, repo string) []*Contributor {
	path := fmt.Sprintf("/repos/%s/%s/contributors", url.PathEscape(owner), url.PathEscape(repo))

	resp, err := c.makeRequest(ctx, token, path)
	if err != nil {
		logger.Warn("contributors fetch failed for %s/%s: %v", owner, repo, err)
		return nil
	}

	contributors, err := decodeList[Contributor](resp)
	if err != nil {
		logger.Warn("contributors fetch degraded to empty list for %s/%s: %v", owner, repo, err)
		return nil
	}

	return contributors
}
