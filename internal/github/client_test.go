package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gitpulse-io/gitpulse/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	originalBaseURL := baseURL
	baseURL = server.URL
	t.Cleanup(func() { baseURL = originalBaseURL })

	return NewClient()
}

func makeRepos(n int) []*Repository {
	repos := make([]*Repository, n)
	for i := range repos {
		repos[i] = &Repository{ID: int64(i + 1), Name: fmt.Sprintf("repo-%d", i+1)}
	}
	return repos
}

func TestListRepositories_SinglePage(t *testing.T) {
	requests := 0
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "token test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		assert.Equal(t, "30", r.URL.Query().Get("per_page"))
		assert.Empty(t, r.URL.Query().Get("page"))

		json.NewEncoder(w).Encode(makeRepos(12))
	})

	repos, err := client.ListRepositories(context.Background(), "test-token", "octocat", RepoListOptions{Count: 30})

	require.NoError(t, err)
	assert.Len(t, repos, 12)
	assert.Equal(t, 1, requests)
}

func TestListRepositories_InvalidCountFallsBack(t *testing.T) {
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "30", r.URL.Query().Get("per_page"))
		json.NewEncoder(w).Encode(makeRepos(1))
	})

	_, err := client.ListRepositories(context.Background(), "t", "octocat", RepoListOptions{Count: 500})
	require.NoError(t, err)
}

func TestListRepositories_FetchAllFollowsFullPages(t *testing.T) {
	// 100 + 100 + 37 records: the short third page ends the walk.
	pageSizes := map[int]int{1: 100, 2: 100, 3: 37}
	requests := 0

	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		json.NewEncoder(w).Encode(makeRepos(pageSizes[page]))
	})

	repos, err := client.ListRepositories(context.Background(), "t", "octocat", RepoListOptions{FetchAll: true})

	require.NoError(t, err)
	assert.Len(t, repos, 237)
	assert.Equal(t, 3, requests)
}

func TestListRepositories_FetchAllStopsOnShortFirstPage(t *testing.T) {
	requests := 0
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(makeRepos(40))
	})

	repos, err := client.ListRepositories(context.Background(), "t", "octocat", RepoListOptions{FetchAll: true})

	require.NoError(t, err)
	assert.Len(t, repos, 40)
	assert.Equal(t, 1, requests)
}

func TestListRepositories_FetchFailed(t *testing.T) {
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ListRepositories(context.Background(), "bad", "octocat", RepoListOptions{Count: 10})

	require.Error(t, err)
	require.True(t, errors.IsRef(err, errors.RefFetchFailed))

	var appErr *errors.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus)
}

func commitPage(shas ...string) []*Commit {
	commits := make([]*Commit, 0, len(shas))
	for _, sha := range shas {
		c := &Commit{SHA: sha}
		c.Commit.Message = "msg " + sha
		c.Commit.Author.Name = "dev"
		c.Commit.Author.Date = "2024-03-05T10:00:00Z"
		commits = append(commits, c)
	}
	return commits
}

func TestListCommits_FollowsLinkHeader(t *testing.T) {
	requests := 0
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/repos/octocat/widget/commits", r.URL.Path)

		switch requests {
		case 1:
			w.Header().Set("Link", `<https://api.github.com/repos/octocat/widget/commits?page=2>; rel="next"`)
			json.NewEncoder(w).Encode(commitPage("aaa", "bbb"))
		case 2:
			json.NewEncoder(w).Encode(commitPage("ccc"))
		default:
			t.Errorf("unexpected request %d", requests)
		}
	})

	commits, err := client.ListCommits(context.Background(), "t", "octocat", "widget", CommitListOptions{})

	require.NoError(t, err)
	require.Len(t, commits, 3)
	assert.Equal(t, "aaa", commits[0].SHA)
	assert.Equal(t, "ccc", commits[2].SHA)
	assert.Equal(t, 2, requests)
}

func TestListCommits_NoLinkMeansOneRequest(t *testing.T) {
	requests := 0
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		// A full page without a next relation must not trigger page 2.
		json.NewEncoder(w).Encode(makeCommitPageOfSize(100))
	})

	commits, err := client.ListCommits(context.Background(), "t", "octocat", "widget", CommitListOptions{})

	require.NoError(t, err)
	assert.Len(t, commits, 100)
	assert.Equal(t, 1, requests)
}

func makeCommitPageOfSize(n int) []*Commit {
	shas := make([]string, n)
	for i := range shas {
		shas[i] = fmt.Sprintf("sha-%d", i)
	}
	return commitPage(shas...)
}

func TestListCommits_ForwardsSince(t *testing.T) {
	since := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-02-01T00:00:00Z", r.URL.Query().Get("since"))
		json.NewEncoder(w).Encode(commitPage("aaa"))
	})

	_, err := client.ListCommits(context.Background(), "t", "octocat", "widget", CommitListOptions{Since: since})
	require.NoError(t, err)
}

func TestListCommits_FetchFailed(t *testing.T) {
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.ListCommits(context.Background(), "t", "octocat", "widget", CommitListOptions{})

	require.Error(t, err)
	assert.True(t, errors.IsRef(err, errors.RefFetchFailed))
}

func TestListContributors_Success(t *testing.T) {
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/widget/contributors", r.URL.Path)
		json.NewEncoder(w).Encode([]*Contributor{
			{ID: 1, Login: "octocat", Contributions: 42},
		})
	})

	contributors := client.ListContributors(context.Background(), "t", "octocat", "widget")

	require.Len(t, contributors, 1)
	assert.Equal(t, "octocat", contributors[0].Login)
}

func TestListContributors_DegradesToEmptyOnFailure(t *testing.T) {
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	assert.Empty(t, client.ListContributors(context.Background(), "t", "octocat", "widget"))
}

func TestClient_ContextCancellation(t *testing.T) {
	client := withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(makeRepos(1))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.ListRepositories(ctx, "t", "octocat", RepoListOptions{Count: 10})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "context deadline exceeded")
}

func TestCommit_ToModel(t *testing.T) {
	c := commitPage("abc")[0]
	c.Author.AvatarURL = "https://avatars.example/abc.png"

	m := c.ToModel()

	assert.Equal(t, "abc", m.SHA)
	assert.Equal(t, "msg abc", m.Message)
	assert.Equal(t, "dev", m.AuthorName)
	assert.Equal(t, time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), m.AuthorDate)
	assert.Equal(t, "https://avatars.example/abc.png", m.AuthorAvatarURL)
}

func TestCommit_ToModel_UnparseableDate(t *testing.T) {
	c := &Commit{SHA: "zzz"}
	c.Commit.Author.Date = "not-a-date"

	m := c.ToModel()

	assert.True(t, m.AuthorDate.IsZero())
}
