// Package bot is the Discord front: the gateway session, the command
// parser and the dispatch pipeline (filters → rate limit → route).
package bot

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/bot/filters"
	"github.com/pilot2254/contrast-bot-sub000/internal/bot/middleware"
	"github.com/pilot2254/contrast-bot-sub000/internal/config"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/accounts"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/admin"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/economy"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/feedback"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/gambling"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/levels"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/quotes"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/reminders"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/reputation"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/rewards"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/safe"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/shop"
)

// Handlers bundles every feature handler the dispatcher routes to.
type Handlers struct {
	Economy    *economy.Handler
	Rewards    *rewards.Handler
	Gambling   *gambling.Handler
	Safe       *safe.Handler
	Shop       *shop.Handler
	Levels     *levels.Handler
	Reputation *reputation.Handler
	Quotes     *quotes.Handler
	Feedback   *feedback.Handler
	Reminders  *reminders.Handler
	Admin      *admin.Handler
}

// Bot owns the gateway session and the dispatch pipeline.
type Bot struct {
	session *discordgo.Session
	cfg     *config.Config

	accessFilter *filters.AccessFilter
	rateLimiter  *middleware.RateLimiter

	accountService *accounts.Service
	levelsService  *levels.Service

	handlers Handlers
	parser   *CommandParser

	// bounds concurrent message handling
	inflight chan struct{}
}

// New creates the bot with all dependencies.
func New(
	session *discordgo.Session,
	cfg *config.Config,
	accountService *accounts.Service,
	levelsService *levels.Service,
	handlers Handlers,
	accessFilter *filters.AccessFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		session:        session,
		cfg:            cfg,
		accessFilter:   accessFilter,
		rateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		accountService: accountService,
		levelsService:  levelsService,
		handlers:       handlers,
		parser:         NewCommandParser(cfg.CommandPrefix),
		inflight:       make(chan struct{}, maxInFlight),
	}
}

// Start opens the gateway connection and blocks until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages | discordgo.IntentMessageContent

	b.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		b.inflight <- struct{}{}
		go func() {
			defer func() { <-b.inflight }()
			b.handleMessage(ctx, s, m)
		}()
	})

	if err := b.session.Open(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"prefix":       b.cfg.CommandPrefix,
	}).Info("bot connected, waiting for messages")

	<-ctx.Done()
	log.Info("bot stopping (ctx done)")
	b.rateLimiter.Close()
	return b.session.Close()
}

// handleMessage runs one message through the dispatch pipeline.
func (b *Bot) handleMessage(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	defer middleware.RecoverFromPanic()

	if m.Author == nil || m.Content == "" {
		return
	}

	middleware.LogMessage(m)

	if !b.accessFilter.CheckAccess(ctx, s, m) {
		return
	}

	userID := m.Author.ID

	// Accounts materialize lazily; errors here surface later anyway, but
	// logging them beats silent weirdness.
	if _, err := b.accountService.GetOrCreate(ctx, userID, m.Author.Username); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("account ensure failed")
	}

	cmd, args, isCommand := b.parser.ParseCommand(m.Content)
	if !isCommand {
		// Plain chatter earns message XP.
		if _, _, err := b.levelsService.AwardMessageXP(ctx, userID); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("message xp failed")
		}
		return
	}

	// Rate limit per user+command so one spammed command cannot starve
	// the rest.
	if !b.rateLimiter.Allow(userID + ":" + cmd) {
		log.WithFields(log.Fields{"user_id": userID, "cmd": cmd}).Debug("rate limited")
		return
	}

	log.WithFields(log.Fields{"cmd": cmd, "args": args}).Debug("routing command")
	b.routeCommand(ctx, m, cmd, args)
}

// routeCommand routes one parsed command to its feature handler.
func (b *Bot) routeCommand(ctx context.Context, m *discordgo.MessageCreate, cmd string, args []string) {
	// Admin commands first; they are valid in DMs and channels alike.
	if b.handlers.Admin.HandleCommand(ctx, m, cmd, args) {
		return
	}

	switch cmd {
	case "help":
		b.sendHelp(m.ChannelID)

	case "balance", "bal":
		b.handlers.Economy.HandleBalance(ctx, m)
	case "pay", "transfer":
		b.handlers.Economy.HandleTransfer(ctx, m, args)
	case "history":
		b.handlers.Economy.HandleHistory(ctx, m, args)
	case "top", "leaderboard":
		b.handlers.Economy.HandleLeaderboard(ctx, m, args)

	case "daily", "weekly", "monthly", "yearly":
		b.handlers.Rewards.HandleClaim(ctx, m, cmd)
	case "claims":
		b.handlers.Rewards.HandleStatus(ctx, m)
	case "work":
		b.handlers.Rewards.HandleWork(ctx, m)

	case "coinflip", "cf":
		b.gamble(ctx, m, func() { b.handlers.Gambling.HandleCoinflip(ctx, m, args) })
	case "dice":
		b.gamble(ctx, m, func() { b.handlers.Gambling.HandleDice(ctx, m, args) })
	case "slots":
		b.gamble(ctx, m, func() { b.handlers.Gambling.HandleSlots(ctx, m, args) })
	case "roulette":
		b.gamble(ctx, m, func() { b.handlers.Gambling.HandleRoulette(ctx, m, args) })
	case "rps":
		b.gamble(ctx, m, func() { b.handlers.Gambling.HandleRPS(ctx, m, args) })
	case "guess":
		b.gamble(ctx, m, func() { b.handlers.Gambling.HandleGuess(ctx, m, args) })
	case "rr":
		b.gamble(ctx, m, func() { b.handlers.Gambling.HandleRussianRoulette(ctx, m, args) })
	case "gstats":
		b.handlers.Gambling.HandleStats(ctx, m)

	case "safe":
		b.handlers.Safe.HandleStatus(ctx, m)
	case "deposit", "dep":
		b.handlers.Safe.HandleDeposit(ctx, m, args)
	case "withdraw", "wd":
		b.handlers.Safe.HandleWithdraw(ctx, m, args)

	case "shop":
		if b.cfg.FeatureShopEnabled {
			b.handlers.Shop.HandleCatalog(ctx, m)
		}
	case "buy":
		if b.cfg.FeatureShopEnabled {
			b.handlers.Shop.HandleBuy(ctx, m, args)
		}

	case "rank", "level":
		b.handlers.Levels.HandleRank(ctx, m)
	case "levels":
		b.handlers.Levels.HandleTop(ctx, m)

	case "rep":
		if b.cfg.FeatureReputationEnabled {
			b.handlers.Reputation.HandleRep(ctx, m, args)
		}
	case "reptop":
		if b.cfg.FeatureReputationEnabled {
			b.handlers.Reputation.HandleTop(ctx, m)
		}

	case "quote":
		b.handlers.Quotes.HandleQuote(ctx, m, args)
	case "addquote":
		b.handlers.Quotes.HandleAdd(ctx, m, args)

	case "feedback":
		b.handlers.Feedback.HandleSubmit(ctx, m, args)

	case "remind":
		b.handlers.Reminders.HandleRemind(ctx, m, args)
	case "reminders":
		b.handlers.Reminders.HandlePending(ctx, m)
	}
}

// gamble runs a gambling handler behind the feature flag.
func (b *Bot) gamble(_ context.Context, m *discordgo.MessageCreate, run func()) {
	if !b.cfg.FeatureGamblingEnabled {
		b.sendMessage(m.ChannelID, "🎰 Gambling is currently disabled")
		return
	}
	run()
}

func (b *Bot) sendHelp(channelID string) {
	help := strings.Join([]string{
		"**Economy**: !balance !pay !history !top",
		"**Rewards**: !daily !weekly !monthly !yearly !claims !work",
		"**Games**: !coinflip !dice !slots !roulette !rps !guess !rr !gstats",
		"**Safe**: !safe !deposit !withdraw",
		"**Shop**: !shop !buy",
		"**Levels**: !rank !levels",
		"**Social**: !rep !reptop !quote !addquote !feedback !remind !reminders",
	}, "\n")
	b.sendMessage(channelID, help)
}

func (b *Bot) sendMessage(channelID, text string) {
	if _, err := b.session.ChannelMessageSend(channelID, text); err != nil {
		log.WithError(err).WithField("channel_id", channelID).Error("failed to send message")
	}
}

// SendDM opens (or reuses) a DM channel and delivers text to a user.
// The reminder dispatcher uses this.
func (b *Bot) SendDM(userID, text string) {
	ch, err := b.session.UserChannelCreate(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("could not open DM channel")
		return
	}
	if _, err := b.session.ChannelMessageSend(ch.ID, text); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("could not deliver DM")
	} else {
		log.WithField("user_id", userID).Debug("DM sent")
	}
}

// CommandParser splits prefixed messages into command and arguments.
type CommandParser struct {
	prefix string
}

// NewCommandParser creates a parser for the configured prefix.
func NewCommandParser(prefix string) *CommandParser {
	if prefix == "" {
		prefix = "!"
	}
	return &CommandParser{prefix: prefix}
}

// ParseCommand splits text into a lowercased command and its arguments.
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, p.prefix) {
		return "", nil, false
	}

	parts := strings.Fields(strings.TrimPrefix(text, p.prefix))
	if len(parts) == 0 {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}
	return command, args, true
}
