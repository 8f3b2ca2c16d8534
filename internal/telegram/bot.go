package telegram

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/scoutlabs/web3scout/internal/models"
	"github.com/scoutlabs/web3scout/internal/report"
)

// SubscriberStore is the persistence surface the bot needs.
type SubscriberStore interface {
	UpsertSubscriber(ctx context.Context, sub models.Subscriber) error
	Subscriber(ctx context.Context, chatID int64) (models.Subscriber, error)
	Subscribers(ctx context.Context) ([]models.Subscriber, error)
	RemoveSubscriber(ctx context.Context, chatID int64) error
	AlertByUsername(ctx context.Context, username string) (models.AlertRecord, error)
	UnsentAlerts(ctx context.Context) ([]models.AlertRecord, error)
	MarkSent(ctx context.Context, uniqueID string) error
	AlertCount(ctx context.Context) (total, sent int, err error)
}

// Bot handles subscriber commands over long polling and dispatches alert
// broadcasts with a shared send-rate limit.
type Bot struct {
	api              *tgbotapi.BotAPI
	store            SubscriberStore
	limiter          *rate.Limiter
	suppressCritical bool
	logger           *logrus.Logger
}

func NewBot(token string, store SubscriberStore, dispatchRate float64, suppressCritical bool, logger *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	return &Bot{
		api:              api,
		store:            store,
		limiter:          rate.NewLimiter(rate.Limit(dispatchRate), 1),
		suppressCritical: suppressCritical,
		logger:           logger,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-ctx.Done():
				b.api.StopReceivingUpdates()
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				b.handleUpdate(ctx, update)
			}
		}
	}()

	b.logger.WithField("username", b.api.Self.UserName).Info("Telegram bot started")
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	text := update.Message.Text

	switch {
	case strings.HasPrefix(text, "/start"):
		b.handleStart(ctx, chatID)
	case strings.HasPrefix(text, "/subscribe"):
		b.handleSubscribe(ctx, chatID, text)
	case strings.HasPrefix(text, "/unsubscribe"):
		b.handleUnsubscribe(ctx, chatID)
	case strings.HasPrefix(text, "/preferences"):
		b.handlePreferences(ctx, chatID)
	case strings.HasPrefix(text, "/research"):
		b.handleResearch(ctx, chatID, text)
	case strings.HasPrefix(text, "/status"):
		b.handleStatus(ctx, chatID)
	case strings.HasPrefix(text, "/help"):
		b.handleHelp(chatID)
	default:
		b.sendMessage(chatID, "Unknown command. Use /help for available commands.")
	}
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	msg := `Welcome to Web3 Scout! 🔭

I monitor newly discovered crypto communities, score their legitimacy, and alert you to freelance opportunities in the ones that check out.

Commands:
/subscribe [sizes=micro,small] [maxrisk=medium] - Start receiving alerts
/unsubscribe - Stop receiving alerts
/preferences - Show your current filters
/research <username> - Full research report on a scanned community
/status - Scanner statistics
/help - Show this help message

Example:
• /subscribe
• /subscribe sizes=micro,small maxrisk=low
• /research acmeprotocol`

	b.sendMessage(chatID, msg)
}

func (b *Bot) handleSubscribe(ctx context.Context, chatID int64, text string) {
	sub := models.Subscriber{
		ChatID:       chatID,
		SubscribedAt: time.Now().UTC(),
		MaxRiskTier:  models.RiskMedium,
		Enabled:      true,
	}

	for _, part := range strings.Fields(text)[1:] {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "sizes":
			for _, s := range strings.Split(kv[1], ",") {
				sub.SizeFilters = append(sub.SizeFilters, models.SizeCategory(s))
			}
		case "maxrisk":
			sub.MaxRiskTier = models.ParseRiskTier(kv[1])
		}
	}

	if err := b.store.UpsertSubscriber(ctx, sub); err != nil {
		b.logger.WithError(err).Error("Failed to save subscriber")
		b.sendMessage(chatID, "Something went wrong saving your subscription. Try again later.")
		return
	}

	response := fmt.Sprintf("Subscribed! 🎯\n\nSize filters: %s\nMax risk tier: %s",
		sizeFilterLabel(sub.SizeFilters), sub.MaxRiskTier)
	b.sendMessage(chatID, response)
}

func (b *Bot) handleUnsubscribe(ctx context.Context, chatID int64) {
	if err := b.store.RemoveSubscriber(ctx, chatID); err != nil {
		b.logger.WithError(err).Error("Failed to remove subscriber")
		b.sendMessage(chatID, "Something went wrong. Try again later.")
		return
	}
	b.sendMessage(chatID, "Unsubscribed. Use /subscribe to start receiving alerts again.")
}

func (b *Bot) handlePreferences(ctx context.Context, chatID int64) {
	sub, err := b.store.Subscriber(ctx, chatID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			b.sendMessage(chatID, "You are not subscribed. Use /subscribe to get started.")
			return
		}
		b.logger.WithError(err).Error("Failed to load subscriber")
		b.sendMessage(chatID, "Something went wrong. Try again later.")
		return
	}

	status := "Disabled"
	if sub.Enabled {
		status = "Enabled"
	}
	response := fmt.Sprintf("Your preferences: 📋\n\nSize filters: %s\nMax risk tier: %s\nStatus: %s\nSubscribed: %s",
		sizeFilterLabel(sub.SizeFilters), sub.MaxRiskTier, status,
		sub.SubscribedAt.Format("2006-01-02"))
	b.sendMessage(chatID, response)
}

// handleResearch sends the full four-section research report for a
// previously scanned community.
func (b *Bot) handleResearch(ctx context.Context, chatID int64, text string) {
	parts := strings.Fields(text)
	if len(parts) < 2 {
		b.sendMessage(chatID, "Usage: /research <username>")
		return
	}
	username := strings.TrimPrefix(parts[1], "@")

	rec, err := b.store.AlertByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			b.sendMessage(chatID, fmt.Sprintf("No scanned community found for @%s. It may not have been discovered yet.", username))
			return
		}
		b.logger.WithError(err).Error("Failed to load community for research")
		b.sendMessage(chatID, "Something went wrong. Try again later.")
		return
	}

	for _, section := range researchSections(rec) {
		if err := b.limiter.Wait(ctx); err != nil {
			return
		}
		b.sendMessage(chatID, section)
	}
}

// researchSections renders the research report in the order it is sent.
func researchSections(rec models.AlertRecord) []string {
	return []string{
		report.Overview(rec),
		report.Breakdown(rec),
		report.Opportunities(rec),
		report.ActionPlan(rec),
	}
}

func (b *Bot) handleStatus(ctx context.Context, chatID int64) {
	total, sent, err := b.store.AlertCount(ctx)
	if err != nil {
		b.logger.WithError(err).Error("Failed to load alert counts")
		b.sendMessage(chatID, "Something went wrong. Try again later.")
		return
	}

	response := fmt.Sprintf("Scanner status 📊\n\nCommunities discovered: %d\nAlerts delivered: %d\nPending: %d",
		total, sent, total-sent)
	b.sendMessage(chatID, response)
}

func (b *Bot) handleHelp(chatID int64) {
	helpText := `Web3 Scout Help 📖

Commands:
/start - Welcome message and setup
/subscribe [options] - Start receiving alerts
/unsubscribe - Stop receiving alerts
/preferences - Show your current filters
/research <username> - Full research report on a scanned community
/status - Scanner statistics
/help - Show this help

Subscription options:
• sizes=micro,small - Only alert for these community sizes
• maxrisk=medium - Skip communities riskier than this tier

Sizes: micro, small, medium_small, medium, growing
Risk tiers: low, medium, high, critical`

	b.sendMessage(chatID, helpText)
}

// Broadcast delivers every unsent alert to the subscribers whose filters
// match it, then marks the alert as sent. Sends share a rate limit so the
// bot stays under Telegram's per-second cap.
func (b *Bot) Broadcast(ctx context.Context) error {
	alerts, err := b.store.UnsentAlerts(ctx)
	if err != nil {
		return fmt.Errorf("loading unsent alerts: %w", err)
	}
	if len(alerts) == 0 {
		return nil
	}

	subs, err := b.store.Subscribers(ctx)
	if err != nil {
		return fmt.Errorf("loading subscribers: %w", err)
	}

	for _, alert := range alerts {
		if b.suppressCritical && alert.Analysis.RiskTier == models.RiskCritical {
			b.logger.WithFields(logrus.Fields{
				"community": alert.Community.Title,
				"score":     alert.Analysis.LegitimacyScore,
			}).Info("Suppressing critical-risk alert")
			if err := b.store.MarkSent(ctx, alert.UniqueID); err != nil {
				return err
			}
			continue
		}

		message := report.AlertMessage(alert)
		delivered := 0
		for _, sub := range subs {
			if !b.matches(alert, sub) {
				continue
			}
			if err := b.limiter.Wait(ctx); err != nil {
				return err
			}
			if b.sendMessage(sub.ChatID, message) {
				delivered++
			}
		}

		if err := b.store.MarkSent(ctx, alert.UniqueID); err != nil {
			return err
		}

		b.logger.WithFields(logrus.Fields{
			"community": alert.Community.Title,
			"risk":      alert.Analysis.RiskTier,
			"delivered": delivered,
		}).Info("Alert dispatched")
	}

	return nil
}

func (b *Bot) matches(alert models.AlertRecord, sub models.Subscriber) bool {
	if !sub.Enabled {
		return false
	}
	if !sub.WantsSize(alert.SizeCategory) {
		return false
	}
	return alert.Analysis.RiskTier.Severity() <= sub.MaxRiskTier.Severity()
}

func (b *Bot) sendMessage(chatID int64, text string) bool {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.DisableWebPagePreview = true

	if _, err := b.api.Send(msg); err != nil {
		b.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to send telegram message")
		return false
	}
	return true
}

func sizeFilterLabel(filters []models.SizeCategory) string {
	if len(filters) == 0 {
		return "all sizes"
	}
	parts := make([]string, len(filters))
	for i, f := range filters {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}
