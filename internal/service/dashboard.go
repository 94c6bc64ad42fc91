package service

import (
	"context"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/gitpulse-io/gitpulse/internal/calendar"
	"github.com/gitpulse-io/gitpulse/internal/github"
	"github.com/gitpulse-io/gitpulse/internal/models"
	"github.com/gitpulse-io/gitpulse/internal/session"
	"github.com/gitpulse-io/gitpulse/internal/stats"
	"github.com/gitpulse-io/gitpulse/pkg/errors"
	"github.com/gitpulse-io/gitpulse/pkg/logger"
)

// GitHubClient is the fetch capability the dashboard needs from the API.
type GitHubClient interface {
	ListRepositories(ctx context.Context, token, username string, opts github.RepoListOptions) ([]*github.Repository, error)
	ListCommits(ctx context.Context, token, owner, repo string, opts github.CommitListOptions) ([]*github.Commit, error)
	ListContributors(ctx context.Context, token, owner, repo string) []*github.Contributor
}

type DashboardService struct {
	githubClient GitHubClient
	state        *session.State
	now          func() time.Time
}

func NewDashboardService(githubClient GitHubClient, state *session.State) *DashboardService {
	return &DashboardService{
		githubClient: githubClient,
		state:        state,
		now:          time.Now,
	}
}

func (s *DashboardService) UpdateCredential(ctx context.Context, cred models.Credential) {
	s.state.SetCredential(ctx, cred)
}

func (s *DashboardService) UpdateSettings(ctx context.Context, settings models.FetchSettings) {
	s.state.SetSettings(ctx, settings)
}

// failOp converts any unclassified failure to the UNKNOWN reference and
// records the error banner before propagating.
func (s *DashboardService) failOp(err error) error {
	var appErr *errors.ApplicationError
	if !goerrors.As(err, &appErr) {
		err = errors.Unknown(err)
	}
	s.state.SetError(err.Error())
	return err
}

func (s *DashboardService) beginOperation() error {
	if !s.state.TryBeginOperation() {
		return errors.New(
			errors.RefOpInFlight,
			"Another fetch is in progress",
			"Wait for the current operation to finish",
			nil,
			errors.LevelWarning,
		)
	}
	s.state.SetError("")
	return nil
}

// FetchRepositories pulls the repository listing for the stored username,
// replacing any previously fetched payload wholesale.
func (s *DashboardService) FetchRepositories(ctx context.Context) ([]models.Repository, error) {
	if err := s.beginOperation(); err != nil {
		return nil, err
	}
	defer s.state.EndOperation()

	cred := s.state.Credential()
	if cred.Username == "" {
		return nil, s.failOp(errors.New(
			errors.RefFetchFailed,
			"Missing username",
			"A GitHub username is required before fetching repositories",
			nil,
			errors.LevelError,
		))
	}

	settings := s.state.Settings()
	opts := github.RepoListOptions{FetchAll: settings.FetchAll, Count: settings.FetchCount}

	fetched, err := s.githubClient.ListRepositories(ctx, cred.Token, cred.Username, opts)
	if err != nil {
		return nil, s.failOp(err)
	}

	repos := make([]models.Repository, 0, len(fetched))
	for _, r := range fetched {
		repos = append(repos, r.ToModel())
	}

	s.state.SetData(ctx, session.Data{Repos: repos})
	logger.Info("fetched %d repositories for %s", len(repos), cred.Username)
	return repos, nil
}

// SelectRepository resolves the repository from the already-fetched list,
// then fetches its commits (bounded by the lookback window) and contributors.
// A contributors failure degrades to an empty list rather than aborting.
func (s *DashboardService) SelectRepository(ctx context.Context, name string) (*session.Data, error) {
	if err := s.beginOperation(); err != nil {
		return nil, err
	}
	defer s.state.EndOperation()

	data := s.state.Data()
	var selected *models.Repository
	for i := range data.Repos {
		if data.Repos[i].Name == name {
			selected = &data.Repos[i]
			break
		}
	}
	if selected == nil {
		return nil, s.failOp(errors.NotFound(
			errors.RefRepoNotFound,
			fmt.Sprintf("Repository '%s' is not in the fetched list", name),
		))
	}

	s.state.SetSelectedRepo(ctx, name)
	cred := s.state.Credential()
	settings := s.state.Settings()

	since := calendar.LookbackSince(s.now(), settings.LookbackMonths)
	fetched, err := s.githubClient.ListCommits(ctx, cred.Token, cred.Username, name, github.CommitListOptions{Since: since})
	if err != nil {
		return nil, s.failOp(err)
	}

	commits := make([]models.Commit, 0, len(fetched))
	for _, c := range fetched {
		commits = append(commits, c.ToModel())
	}

	var contributors []models.Contributor
	for _, c := range s.githubClient.ListContributors(ctx, cred.Token, cred.Username, name) {
		contributors = append(contributors, c.ToModel())
	}

	next := session.Data{
		Repos:        data.Repos,
		RepoDetails:  selected,
		Commits:      commits,
		Contributors: contributors,
	}
	s.state.SetData(ctx, next)

	logger.Info("selected repository %s: %d commits, %d contributors", name, len(commits), len(contributors))
	return &next, nil
}

// RefreshSelectedRepository re-runs the details fetch for the stored
// selection; used by the background worker and the queue consumer.
func (s *DashboardService) RefreshSelectedRepository(ctx context.Context) error {
	name := s.state.SelectedRepo()
	if name == "" {
		return nil
	}
	_, err := s.SelectRepository(ctx, name)
	return err
}

func (s *DashboardService) SelectDate(ctx context.Context, date time.Time) {
	s.state.SetSelectedDate(ctx, date)
}

// NavigateMonth moves the cursor by delta months, clamping the day-of-month
// to the target month's length.
func (s *DashboardService) NavigateMonth(ctx context.Context, delta int) time.Time {
	next := calendar.AddMonths(s.state.SelectedDate(), delta)
	s.state.SetSelectedDate(ctx, next)
	return next
}

func (s *DashboardService) SetMonth(ctx context.Context, month time.Month) time.Time {
	next := calendar.WithMonth(s.state.SelectedDate(), month)
	s.state.SetSelectedDate(ctx, next)
	return next
}

func (s *DashboardService) SetYear(ctx context.Context, year int) time.Time {
	next := calendar.WithYear(s.state.SelectedDate(), year)
	s.state.SetSelectedDate(ctx, next)
	return next
}

func (s *DashboardService) Heatmap() [][]calendar.HeatmapCell {
	buckets := stats.BucketByDay(s.state.Data().Commits)
	return calendar.Heatmap(buckets, s.now())
}

func (s *DashboardService) MonthGrid() calendar.MonthGrid {
	buckets := stats.BucketByDay(s.state.Data().Commits)
	return calendar.BuildMonthGrid(buckets, s.state.SelectedDate())
}

func (s *DashboardService) PickerOptions() calendar.PickerOptions {
	return calendar.MonthYearOptions(s.now())
}

func (s *DashboardService) Summary() stats.Summary {
	return stats.Summarize(stats.BucketByDay(s.state.Data().Commits))
}

func (s *DashboardService) Repositories() []models.Repository {
	return s.state.Data().Repos
}

func (s *DashboardService) RepositoryDetails() *models.Repository {
	return s.state.Data().RepoDetails
}

func (s *DashboardService) Contributors() []models.Contributor {
	return s.state.Data().Contributors
}

func (s *DashboardService) SelectedDate() time.Time {
	return s.state.SelectedDate()
}

func (s *DashboardService) SelectedRepo() string {
	return s.state.SelectedRepo()
}

func (s *DashboardService) SelectedDateCommits() []models.Commit {
	return s.state.SelectedDateCommits()
}

func (s *DashboardService) RecentCommits(limit int) []models.Commit {
	commits := s.state.Data().Commits
	if limit > 0 && len(commits) > limit {
		commits = commits[:limit]
	}
	return commits
}

func (s *DashboardService) Credential() models.Credential {
	return s.state.Credential()
}

func (s *DashboardService) Settings() models.FetchSettings {
	return s.state.Settings()
}

func (s *DashboardService) LastError() string {
	return s.state.LastError()
}

func (s *DashboardService) Loading() bool {
	return s.state.Loading()
}
