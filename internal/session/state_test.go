package session

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/gitpulse-io/gitpulse/internal/models"
	"github.com/gitpulse-io/gitpulse/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", errors.New(errors.RefStoreNotFound, "Key not found", key, nil, errors.LevelInfo)
	}
	return value, nil
}

func (m *memStore) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func (m *memStore) Close() error { return nil }

var _ models.Store = (*memStore)(nil)

func commitOn(sha, date string) models.Commit {
	parsed, _ := time.Parse(time.RFC3339, date)
	return models.Commit{SHA: sha, AuthorDate: parsed}
}

func TestNew_Defaults(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	state := New(context.Background(), newMemStore(), now)

	assert.Equal(t, now, state.SelectedDate())
	assert.Equal(t, 30, state.Settings().FetchCount)
	assert.Equal(t, 7.0, state.Settings().LookbackMonths)
	assert.False(t, state.Settings().FetchAll)
	assert.Empty(t, state.Credential().Token)
	assert.False(t, state.Loading())
}

func TestNew_RestoresFromStore(t *testing.T) {
	store := newMemStore()
	store.values[KeyToken] = "ghp_secret"
	store.values[KeyUsername] = "octocat"
	store.values[KeySelectedRepo] = "widget"
	store.values[KeyFetchCount] = "50"
	store.values[KeyFetchAll] = "true"
	store.values[KeyLookbackMonths] = "0.5"
	store.values[KeyCurrentDate] = "2024-03-05T00:00:00Z"

	data := Data{Commits: []models.Commit{
		commitOn("a", "2024-03-05T10:00:00Z"),
		commitOn("b", "2024-03-06T10:00:00Z"),
	}}
	encoded, err := json.Marshal(data)
	require.NoError(t, err)
	store.values[KeyData] = string(encoded)

	state := New(context.Background(), store, time.Now())

	assert.Equal(t, "ghp_secret", state.Credential().Token)
	assert.Equal(t, "octocat", state.Credential().Username)
	assert.Equal(t, "widget", state.SelectedRepo())
	assert.Equal(t, 50, state.Settings().FetchCount)
	assert.True(t, state.Settings().FetchAll)
	assert.Equal(t, 0.5, state.Settings().LookbackMonths)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), state.SelectedDate())

	// The derived commit list is recomputed from the restored payload, not
	// trusted from its own stored copy.
	commits := state.SelectedDateCommits()
	require.Len(t, commits, 1)
	assert.Equal(t, "a", commits[0].SHA)
}

func TestNew_IgnoresMalformedValues(t *testing.T) {
	store := newMemStore()
	store.values[KeyFetchCount] = "not-a-number"
	store.values[KeyLookbackMonths] = "-3"
	store.values[KeyCurrentDate] = "garbage"
	store.values[KeyData] = "{broken json"

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	state := New(context.Background(), store, now)

	assert.Equal(t, 30, state.Settings().FetchCount)
	assert.Equal(t, 7.0, state.Settings().LookbackMonths)
	assert.Equal(t, now, state.SelectedDate())
	assert.Empty(t, state.Data().Commits)
}

func TestSetCredential_WritesThrough(t *testing.T) {
	store := newMemStore()
	state := New(context.Background(), store, time.Now())

	state.SetCredential(context.Background(), models.Credential{Token: "ghp_x", Username: "octocat"})

	assert.Equal(t, "ghp_x", store.values[KeyToken])
	assert.Equal(t, "octocat", store.values[KeyUsername])
}

func TestSetSettings_ValidatesAndPersists(t *testing.T) {
	store := newMemStore()
	state := New(context.Background(), store, time.Now())

	state.SetSettings(context.Background(), models.FetchSettings{FetchCount: 120, LookbackMonths: 0})

	assert.Equal(t, 30, state.Settings().FetchCount)
	assert.Equal(t, 7.0, state.Settings().LookbackMonths)
	assert.Equal(t, "30", store.values[KeyFetchCount])
	assert.Equal(t, "false", store.values[KeyFetchAll])
	assert.Equal(t, "7", store.values[KeyLookbackMonths])
}

func TestSetSelectedDate_RecomputesDerivedCommits(t *testing.T) {
	store := newMemStore()
	state := New(context.Background(), store, time.Now())

	state.SetData(context.Background(), Data{Commits: []models.Commit{
		commitOn("newest", "2024-03-05T22:00:00Z"),
		commitOn("older", "2024-03-05T10:00:00Z"),
		commitOn("other", "2024-03-06T01:00:00Z"),
	}})

	state.SetSelectedDate(context.Background(), time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC))

	commits := state.SelectedDateCommits()
	require.Len(t, commits, 2)
	assert.Equal(t, "newest", commits[0].SHA)
	assert.Equal(t, "older", commits[1].SHA)
	assert.Equal(t, "2024-03-05T13:00:00Z", store.values[KeyCurrentDate])

	state.SetSelectedDate(context.Background(), time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, state.SelectedDateCommits())
}

func TestSetData_RefreshesSelection(t *testing.T) {
	state := New(context.Background(), newMemStore(), time.Now())
	state.SetSelectedDate(context.Background(), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	state.SetData(context.Background(), Data{Commits: []models.Commit{
		commitOn("a", "2024-03-05T10:00:00Z"),
	}})
	require.Len(t, state.SelectedDateCommits(), 1)

	// Replacing the payload wholesale drops the stale derived list too.
	state.SetData(context.Background(), Data{Commits: []models.Commit{
		commitOn("b", "2024-04-01T10:00:00Z"),
	}})
	assert.Empty(t, state.SelectedDateCommits())
}

func TestSetData_PersistsBelowCommitLimit(t *testing.T) {
	store := newMemStore()
	state := New(context.Background(), store, time.Now())

	state.SetData(context.Background(), Data{Commits: []models.Commit{
		commitOn("a", "2024-03-05T10:00:00Z"),
	}})

	require.Contains(t, store.values, KeyData)

	var persisted Data
	require.NoError(t, json.Unmarshal([]byte(store.values[KeyData]), &persisted))
	require.Len(t, persisted.Commits, 1)
}

func TestSetData_SkipsPersistenceAboveCommitLimit(t *testing.T) {
	store := newMemStore()
	state := New(context.Background(), store, time.Now())

	large := make([]models.Commit, PersistCommitLimit+1)
	for i := range large {
		large[i] = commitOn(fmt.Sprintf("sha-%d", i), "2024-03-05T10:00:00Z")
	}

	state.SetData(context.Background(), Data{Commits: large})

	assert.NotContains(t, store.values, KeyData)
	// In-memory state still holds the full payload.
	assert.Len(t, state.Data().Commits, PersistCommitLimit+1)
}

func TestTryBeginOperation(t *testing.T) {
	state := New(context.Background(), newMemStore(), time.Now())

	require.True(t, state.TryBeginOperation())
	assert.True(t, state.Loading())
	assert.False(t, state.TryBeginOperation())

	state.EndOperation()
	assert.False(t, state.Loading())
	assert.True(t, state.TryBeginOperation())
}

func TestErrorBanner(t *testing.T) {
	state := New(context.Background(), newMemStore(), time.Now())

	state.SetError("boom")
	assert.Equal(t, "boom", state.LastError())

	state.SetError("")
	assert.Empty(t, state.LastError())
}
