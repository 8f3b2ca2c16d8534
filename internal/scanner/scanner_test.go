package scanner

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlabs/web3scout/internal/config"
	"github.com/scoutlabs/web3scout/internal/lexicon"
	"github.com/scoutlabs/web3scout/internal/models"
	"github.com/scoutlabs/web3scout/internal/needs"
	"github.com/scoutlabs/web3scout/internal/scoring"
)

type fakeSource struct {
	name        string
	communities []models.Community
	err         error
}

func (f *fakeSource) FetchCommunities(ctx context.Context, limit int) ([]models.Community, error) {
	return f.communities, f.err
}

func (f *fakeSource) Name() string { return f.name }

type fakeStore struct {
	mu       sync.Mutex
	inserted []models.AlertRecord
	existing map[string]bool
}

func (f *fakeStore) InsertAlert(ctx context.Context, rec models.AlertRecord) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.existing[rec.UniqueID] {
		return true, nil
	}
	if f.existing == nil {
		f.existing = make(map[string]bool)
	}
	f.existing[rec.UniqueID] = true
	f.inserted = append(f.inserted, rec)
	return false, nil
}

func (f *fakeStore) AlertCount(ctx context.Context) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserted), 0, nil
}

func (f *fakeStore) insertedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserted)
}

type fakeBroadcaster struct {
	calls int
}

func (f *fakeBroadcaster) Broadcast(ctx context.Context) error {
	f.calls++
	return nil
}

func newTestScanner(t *testing.T, store AlertStore, b Broadcaster) *Scanner {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		BatchSize:     10,
		DirectoryPoll: time.Hour,
		FundingPoll:   time.Hour,
	}
	lex := lexicon.Default()
	return New(cfg, store, b, scoring.NewEngine(lex), needs.NewDeriver(lex), logger)
}

func TestScanOnceStoresCryptoCommunities(t *testing.T) {
	store := &fakeStore{}
	broadcaster := &fakeBroadcaster{}
	s := newTestScanner(t, store, broadcaster)

	src := &fakeSource{
		name: "fake",
		communities: []models.Community{
			{
				Title:       "Acme DeFi",
				Username:    "acmedefi",
				Description: "A DeFi protocol with a whitepaper and github",
				Metrics:     models.Metrics{MemberCount: 45},
			},
			{
				Title:       "Book Club",
				Username:    "bookclub",
				Description: "We read novels together",
			},
		},
	}

	require.NoError(t, s.ScanOnce(context.Background(), src))

	require.Len(t, store.inserted, 1)
	rec := store.inserted[0]
	assert.Equal(t, "Acme DeFi", rec.Community.Title)
	assert.Equal(t, models.SizeSmall, rec.SizeCategory)
	assert.NotEmpty(t, rec.UniqueID)
	assert.NotZero(t, rec.Analysis.LegitimacyScore)
	assert.NotEmpty(t, rec.Needs.Maturity)
	assert.False(t, rec.DiscoveredAt.IsZero())

	assert.Equal(t, 1, broadcaster.calls)
}

func TestScanOnceSkipsDuplicates(t *testing.T) {
	store := &fakeStore{}
	broadcaster := &fakeBroadcaster{}
	s := newTestScanner(t, store, broadcaster)

	src := &fakeSource{
		name: "fake",
		communities: []models.Community{
			{Title: "Acme DeFi", Username: "acmedefi", Description: "A DeFi protocol"},
		},
	}

	require.NoError(t, s.ScanOnce(context.Background(), src))
	require.NoError(t, s.ScanOnce(context.Background(), src))

	assert.Len(t, store.inserted, 1)
	// second pass found nothing new, so no second broadcast
	assert.Equal(t, 1, broadcaster.calls)
}

func TestScanOnceSourceError(t *testing.T) {
	store := &fakeStore{}
	s := newTestScanner(t, store, &fakeBroadcaster{})

	src := &fakeSource{name: "fake", err: errors.New("connection refused")}

	err := s.ScanOnce(context.Background(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fake")
	assert.Empty(t, store.inserted)
}

func TestRunShutdown(t *testing.T) {
	store := &fakeStore{}
	s := newTestScanner(t, store, &fakeBroadcaster{})
	s.config.ServerPort = "0"

	src := &fakeSource{
		name: "fake",
		communities: []models.Community{
			{Title: "Acme DeFi", Username: "acmedefi", Description: "A DeFi protocol"},
		},
	}
	sched := NewManualScheduler()
	s.SetSources([]models.CommunitySource{src}, map[string]Scheduler{"fake": sched})

	ctx, cancel := context.WithCancel(context.Background())

	runErr := make(chan error, 1)
	go func() {
		runErr <- s.Run(ctx)
	}()

	sched.Fire()
	assert.Eventually(t, func() bool {
		return store.insertedCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-runErr:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestPollLoopManualScheduler(t *testing.T) {
	store := &fakeStore{}
	s := newTestScanner(t, store, &fakeBroadcaster{})

	src := &fakeSource{
		name: "fake",
		communities: []models.Community{
			{Title: "Acme DeFi", Username: "acmedefi", Description: "A DeFi protocol"},
		},
	}

	sched := NewManualScheduler()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.pollLoop(ctx, src, sched)
		close(done)
	}()

	sched.Fire()
	assert.Eventually(t, func() bool {
		return store.insertedCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
