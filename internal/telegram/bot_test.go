package telegram

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/scoutlabs/web3scout/internal/models"
)

type fakeSubscriberStore struct {
	alerts      []models.AlertRecord
	subscribers []models.Subscriber
	markedSent  []string
}

func (f *fakeSubscriberStore) UpsertSubscriber(ctx context.Context, sub models.Subscriber) error {
	f.subscribers = append(f.subscribers, sub)
	return nil
}

func (f *fakeSubscriberStore) Subscriber(ctx context.Context, chatID int64) (models.Subscriber, error) {
	for _, sub := range f.subscribers {
		if sub.ChatID == chatID {
			return sub, nil
		}
	}
	return models.Subscriber{}, fmt.Errorf("loading subscriber %d: %w", chatID, sql.ErrNoRows)
}

func (f *fakeSubscriberStore) Subscribers(ctx context.Context) ([]models.Subscriber, error) {
	return f.subscribers, nil
}

func (f *fakeSubscriberStore) RemoveSubscriber(ctx context.Context, chatID int64) error {
	return nil
}

func (f *fakeSubscriberStore) AlertByUsername(ctx context.Context, username string) (models.AlertRecord, error) {
	for _, a := range f.alerts {
		if a.Community.Username == username {
			return a, nil
		}
	}
	return models.AlertRecord{}, fmt.Errorf("loading alert for %s: %w", username, sql.ErrNoRows)
}

func (f *fakeSubscriberStore) UnsentAlerts(ctx context.Context) ([]models.AlertRecord, error) {
	var unsent []models.AlertRecord
	for _, a := range f.alerts {
		if !a.Sent {
			unsent = append(unsent, a)
		}
	}
	return unsent, nil
}

func (f *fakeSubscriberStore) MarkSent(ctx context.Context, uniqueID string) error {
	f.markedSent = append(f.markedSent, uniqueID)
	return nil
}

func (f *fakeSubscriberStore) AlertCount(ctx context.Context) (int, int, error) {
	return len(f.alerts), 0, nil
}

func newTestBot(store SubscriberStore, suppressCritical bool) *Bot {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &Bot{
		store:            store,
		limiter:          rate.NewLimiter(rate.Inf, 1),
		suppressCritical: suppressCritical,
		logger:           logger,
	}
}

func alertWith(size models.SizeCategory, tier models.RiskTier) models.AlertRecord {
	return models.AlertRecord{
		SizeCategory: size,
		Analysis:     models.Analysis{RiskTier: tier},
	}
}

func TestMatches(t *testing.T) {
	b := &Bot{}

	sub := models.Subscriber{
		Enabled:     true,
		MaxRiskTier: models.RiskMedium,
		SizeFilters: []models.SizeCategory{models.SizeMicro, models.SizeSmall},
	}

	assert.True(t, b.matches(alertWith(models.SizeMicro, models.RiskLow), sub))
	assert.True(t, b.matches(alertWith(models.SizeSmall, models.RiskMedium), sub))
	assert.False(t, b.matches(alertWith(models.SizeSmall, models.RiskHigh), sub), "too risky")
	assert.False(t, b.matches(alertWith(models.SizeGrowing, models.RiskLow), sub), "wrong size")

	sub.Enabled = false
	assert.False(t, b.matches(alertWith(models.SizeMicro, models.RiskLow), sub), "disabled")
}

func TestMatchesNoSizeFilter(t *testing.T) {
	b := &Bot{}

	sub := models.Subscriber{Enabled: true, MaxRiskTier: models.RiskCritical}

	assert.True(t, b.matches(alertWith(models.SizeGrowing, models.RiskCritical), sub))
	assert.True(t, b.matches(alertWith(models.SizeMicro, models.RiskLow), sub))
}

func TestBroadcastSuppressesCritical(t *testing.T) {
	store := &fakeSubscriberStore{
		alerts: []models.AlertRecord{
			{
				UniqueID:     "crit-1",
				Community:    models.Community{Title: "Sketchy Coin"},
				Analysis:     models.Analysis{RiskTier: models.RiskCritical},
				SizeCategory: models.SizeMicro,
			},
		},
		// a matching subscriber; delivery would hit the nil API
		subscribers: []models.Subscriber{
			{ChatID: 1001, MaxRiskTier: models.RiskCritical, Enabled: true},
		},
	}
	b := newTestBot(store, true)

	require.NoError(t, b.Broadcast(context.Background()))

	assert.Equal(t, []string{"crit-1"}, store.markedSent)
}

func TestBroadcastCriticalNotSuppressed(t *testing.T) {
	store := &fakeSubscriberStore{
		alerts: []models.AlertRecord{
			{
				UniqueID:     "crit-1",
				Community:    models.Community{Title: "Sketchy Coin"},
				Analysis:     models.Analysis{RiskTier: models.RiskCritical},
				SizeCategory: models.SizeMicro,
			},
		},
	}
	b := newTestBot(store, false)

	// with the knob off the alert goes through the dispatch loop; with no
	// subscribers it still ends up marked sent
	require.NoError(t, b.Broadcast(context.Background()))

	assert.Equal(t, []string{"crit-1"}, store.markedSent)
}

func TestBroadcastNoUnsentAlerts(t *testing.T) {
	store := &fakeSubscriberStore{
		alerts: []models.AlertRecord{
			{UniqueID: "old-1", Sent: true},
		},
	}
	b := newTestBot(store, true)

	require.NoError(t, b.Broadcast(context.Background()))
	assert.Empty(t, store.markedSent)
}

func TestResearchSections(t *testing.T) {
	rec := models.AlertRecord{
		Community: models.Community{Title: "Acme Protocol", Username: "acmeprotocol"},
		Analysis:  models.Analysis{LegitimacyScore: 60, RiskTier: models.RiskLow},
		Needs: models.Needs{
			Maturity: models.MaturityDeveloping,
			Opportunities: []models.Opportunity{
				{Category: models.CategorySocialMedia, Urgency: models.UrgencyHigh},
			},
		},
	}

	sections := researchSections(rec)
	require.Len(t, sections, 4)
	assert.Contains(t, sections[0], "COMPREHENSIVE PROJECT RESEARCH")
	assert.Contains(t, sections[1], "DETAILED ANALYSIS BREAKDOWN")
	assert.Contains(t, sections[2], "JOB OPPORTUNITIES")
	assert.Contains(t, sections[3], "ACTION PLAN")
}

func TestSizeFilterLabel(t *testing.T) {
	assert.Equal(t, "all sizes", sizeFilterLabel(nil))
	assert.Equal(t, "micro, small", sizeFilterLabel([]models.SizeCategory{models.SizeMicro, models.SizeSmall}))
}
