// Package session holds the process-wide dashboard state: credential, fetch
// settings, the last fetched payload and the selection cursor. Every mutation
// writes through to the attached store; state is restored from the store at
// construction.
package session

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/gitpulse-io/gitpulse/internal/models"
	"github.com/gitpulse-io/gitpulse/internal/stats"
	"github.com/gitpulse-io/gitpulse/pkg/logger"
)

// Storage key names, one value per key.
const (
	KeyToken               = "token"
	KeyUsername            = "username"
	KeySelectedRepo        = "selectedRepo"
	KeyFetchCount          = "fetchCount"
	KeyFetchAll            = "fetchAll"
	KeyCurrentDate         = "currentDate"
	KeyLookbackMonths      = "dateSubtractCommit"
	KeySelectedDateCommits = "selectedDateCommits"
	KeyData                = "data"
)

// PersistCommitLimit caps the payload persisted under KeyData: a fetch
// carrying more commits than this is kept in memory only.
const PersistCommitLimit = 200

const (
	defaultFetchCount     = 30
	defaultLookbackMonths = 7
)

// Data is the last successful fetch result; replaced wholesale on re-fetch.
type Data struct {
	Repos        []models.Repository  `json:"repos,omitempty"`
	RepoDetails  *models.Repository   `json:"repo_details,omitempty"`
	Commits      []models.Commit      `json:"commits,omitempty"`
	Contributors []models.Contributor `json:"contributors,omitempty"`
}

type State struct {
	mu    sync.RWMutex
	store models.Store

	credential          models.Credential
	settings            models.FetchSettings
	selectedRepo        string
	data                Data
	selectedDate        time.Time
	selectedDateCommits []models.Commit
	lastError           string
	loading             bool
}

// New restores state from the store. Missing or unparseable values fall back
// to defaults; the selected date defaults to now.
func New(ctx context.Context, store models.Store, now time.Time) *State {
	s := &State{
		store: store,
		settings: models.FetchSettings{
			FetchCount:     defaultFetchCount,
			LookbackMonths: defaultLookbackMonths,
		},
		selectedDate: now.UTC(),
	}

	s.credential.Token, _ = s.load(ctx, KeyToken)
	s.credential.Username, _ = s.load(ctx, KeyUsername)
	s.selectedRepo, _ = s.load(ctx, KeySelectedRepo)

	if raw, ok := s.load(ctx, KeyFetchCount); ok {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= 100 {
			s.settings.FetchCount = n
		}
	}
	if raw, ok := s.load(ctx, KeyFetchAll); ok {
		s.settings.FetchAll = raw == "true"
	}
	if raw, ok := s.load(ctx, KeyLookbackMonths); ok {
		if f, err := strconv.ParseFloat(raw, 64); err == nil && f > 0 {
			s.settings.LookbackMonths = f
		}
	}
	if raw, ok := s.load(ctx, KeyCurrentDate); ok {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			s.selectedDate = t.UTC()
		}
	}
	if raw, ok := s.load(ctx, KeyData); ok {
		var data Data
		if err := json.Unmarshal([]byte(raw), &data); err == nil {
			s.data = data
		}
	}
	if raw, ok := s.load(ctx, KeySelectedDateCommits); ok {
		var commits []models.Commit
		if err := json.Unmarshal([]byte(raw), &commits); err == nil {
			s.selectedDateCommits = commits
		}
	}

	// The persisted commit list may have changed out from under the cached
	// selection; recompute instead of trusting the stored copy.
	s.selectedDateCommits = stats.CommitsOnDay(s.data.Commits, s.selectedDate)

	return s
}

func (s *State) load(ctx context.Context, key string) (string, bool) {
	if s.store == nil {
		return "", false
	}
	value, err := s.store.Get(ctx, key)
	if err != nil {
		return "", false
	}
	return value, true
}

// persist is best-effort: a failed write leaves in-memory state authoritative
// and is logged rather than propagated, matching write-through semantics.
func (s *State) persist(ctx context.Context, key, value string) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(ctx, key, value); err != nil {
		logger.Warn("failed to persist %s: %v", key, err)
	}
}

func (s *State) SetCredential(ctx context.Context, cred models.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credential = cred
	s.persist(ctx, KeyToken, cred.Token)
	s.persist(ctx, KeyUsername, cred.Username)
}

func (s *State) Credential() models.Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

func (s *State) SetSettings(ctx context.Context, settings models.FetchSettings) {
	if settings.FetchCount < 1 || settings.FetchCount > 100 {
		settings.FetchCount = defaultFetchCount
	}
	if settings.LookbackMonths <= 0 {
		settings.LookbackMonths = defaultLookbackMonths
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	s.persist(ctx, KeyFetchCount, strconv.Itoa(settings.FetchCount))
	s.persist(ctx, KeyFetchAll, strconv.FormatBool(settings.FetchAll))
	s.persist(ctx, KeyLookbackMonths, strconv.FormatFloat(settings.LookbackMonths, 'f', -1, 64))
}

func (s *State) Settings() models.FetchSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *State) SetSelectedRepo(ctx context.Context, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedRepo = name
	s.persist(ctx, KeySelectedRepo, name)
}

func (s *State) SelectedRepo() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedRepo
}

// SetData replaces the fetched payload wholesale and refreshes the selection
// cursor's derived commit list. Payloads above PersistCommitLimit commits are
// not written to the store.
func (s *State) SetData(ctx context.Context, data Data) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data
	s.refreshSelectionLocked(ctx)

	if len(data.Commits) > PersistCommitLimit {
		logger.Debug("skipping data persistence: %d commits exceeds limit of %d", len(data.Commits), PersistCommitLimit)
		return
	}
	if encoded, err := json.Marshal(data); err == nil {
		s.persist(ctx, KeyData, string(encoded))
	}
}

func (s *State) Data() Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// SetSelectedDate is the single mutation path for the selection cursor. The
// derived commit list is always recomputed here; nothing else may set it.
func (s *State) SetSelectedDate(ctx context.Context, date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedDate = date.UTC()
	s.refreshSelectionLocked(ctx)
	s.persist(ctx, KeyCurrentDate, s.selectedDate.Format(time.RFC3339))
}

func (s *State) refreshSelectionLocked(ctx context.Context) {
	s.selectedDateCommits = stats.CommitsOnDay(s.data.Commits, s.selectedDate)
	if encoded, err := json.Marshal(s.selectedDateCommits); err == nil {
		s.persist(ctx, KeySelectedDateCommits, string(encoded))
	}
}

func (s *State) SelectedDate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedDate
}

func (s *State) SelectedDateCommits() []models.Commit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedDateCommits
}

// TryBeginOperation flips the loading flag, refusing when an operation is
// already in flight. Mirrors disabling the triggering control in a UI.
func (s *State) TryBeginOperation() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return false
	}
	s.loading = true
	return true
}

func (s *State) EndOperation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

func (s *State) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetError records the banner message shown until the next operation
// replaces or clears it.
func (s *State) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

func (s *State) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}
