// Package app assembles the application: database pool, repositories,
// services, handlers, filters, the bot and the scheduler — in that
// order, because each layer depends on the previous one.
package app

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/bot"
	"github.com/pilot2254/contrast-bot-sub000/internal/bot/filters"
	"github.com/pilot2254/contrast-bot-sub000/internal/config"
	"github.com/pilot2254/contrast-bot-sub000/internal/db/postgres"
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
	"github.com/pilot2254/contrast-bot-sub000/internal/jobs"
)

// App holds the running components.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	Session   *discordgo.Session
}

// New creates and wires the application.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. Database ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	// === 2. Discord session ===
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}

	// === 3. Repositories ===
	accountRepo := accounts.NewRepository(pool)
	economyRepo := economy.NewRepository(pool)
	rewardsRepo := rewards.NewRepository(pool, economyRepo)
	gamblingRepo := gambling.NewRepository(pool, economyRepo)
	safeRepo := safe.NewRepository(pool, economyRepo)
	levelsRepo := levels.NewRepository(pool)
	shopRepo := shop.NewRepository(pool, economyRepo, safeRepo, levelsRepo)
	reputationRepo := reputation.NewRepository(pool)
	quotesRepo := quotes.NewRepository(pool)
	feedbackRepo := feedback.NewRepository(pool)
	reminderRepo := reminders.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 4. Services ===
	accountService := accounts.NewService(accountRepo, cfg)
	economyService := economy.NewService(economyRepo)
	rewardsService := rewards.NewService(rewardsRepo)
	gamblingService := gambling.NewService(gamblingRepo)
	safeService := safe.NewService(safeRepo)
	levelsService := levels.NewService(levelsRepo)
	shopService := shop.NewService(shopRepo)
	reputationService := reputation.NewService(reputationRepo)
	adminService := admin.NewService(adminRepo, economyService, cfg.AdminIDs, cfg.AdminPasswordHash)

	// === 5. Handlers ===
	handlers := bot.Handlers{
		Economy:    economy.NewHandler(economyService, accountService, session),
		Rewards:    rewards.NewHandler(rewardsService, session),
		Gambling:   gambling.NewHandler(gamblingService, session),
		Safe:       safe.NewHandler(safeService, session),
		Shop:       shop.NewHandler(shopService, session),
		Levels:     levels.NewHandler(levelsService, session),
		Reputation: reputation.NewHandler(reputationService, session),
		Quotes:     quotes.NewHandler(quotesRepo, session),
		Feedback:   feedback.NewHandler(feedbackRepo, session),
		Reminders:  reminders.NewHandler(reminderRepo, session),
		Admin:      admin.NewHandler(adminService, shopService, feedbackRepo, quotesRepo, session),
	}

	// === 6. Filters and the bot ===
	accessFilter := filters.NewAccessFilter(adminService)
	b := bot.New(session, cfg, accountService, levelsService, handlers, accessFilter)

	// === 7. Scheduler ===
	scheduler := jobs.NewScheduler(reminderRepo, accountRepo, b.SendDM)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		Session:   session,
	}, nil
}

// runMigrations applies the embedded SQL migrations in order.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Accounts},
		{2, migration002Transactions},
		{3, migration003Safes},
		{4, migration004Gambling},
		{5, migration005Shop},
		{6, migration006Levels},
		{7, migration007Reputation},
		{8, migration008Social},
		{9, migration009Admin},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		log.Infof("migration %d applied", m.version)
	}
	return nil
}

// Migrations are embedded to keep deploys to a single binary.
// Reward timestamps are epoch millis (0 = never claimed).

var migration001Accounts = `
CREATE TABLE IF NOT EXISTS accounts (
    user_id VARCHAR(32) PRIMARY KEY,
    display_name VARCHAR(255) NOT NULL DEFAULT '',
    balance BIGINT NOT NULL DEFAULT 0,
    total_earned BIGINT NOT NULL DEFAULT 0,
    total_spent BIGINT NOT NULL DEFAULT 0,
    last_daily BIGINT NOT NULL DEFAULT 0,
    last_weekly BIGINT NOT NULL DEFAULT 0,
    last_monthly BIGINT NOT NULL DEFAULT 0,
    last_yearly BIGINT NOT NULL DEFAULT 0,
    last_work BIGINT NOT NULL DEFAULT 0,
    daily_streak INTEGER NOT NULL DEFAULT 0,
    weekly_streak INTEGER NOT NULL DEFAULT 0,
    monthly_streak INTEGER NOT NULL DEFAULT 0,
    yearly_streak INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_accounts_balance ON accounts(balance DESC);
`

var migration002Transactions = `
CREATE TABLE IF NOT EXISTS transactions (
    id BIGSERIAL PRIMARY KEY,
    user_id VARCHAR(32) NOT NULL REFERENCES accounts(user_id),
    type VARCHAR(50) NOT NULL,
    amount BIGINT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    related_user_id VARCHAR(32),
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id, id DESC);
CREATE INDEX IF NOT EXISTS idx_transactions_type ON transactions(user_id, type);
`

var migration003Safes = `
CREATE TABLE IF NOT EXISTS safes (
    user_id VARCHAR(32) PRIMARY KEY REFERENCES accounts(user_id),
    balance BIGINT NOT NULL DEFAULT 0,
    capacity BIGINT NOT NULL DEFAULT 5000,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`

var migration004Gambling = `
CREATE TABLE IF NOT EXISTS gambling_stats (
    user_id VARCHAR(32) PRIMARY KEY REFERENCES accounts(user_id),
    total_bet BIGINT NOT NULL DEFAULT 0,
    total_won BIGINT NOT NULL DEFAULT 0,
    total_lost BIGINT NOT NULL DEFAULT 0,
    games_played BIGINT NOT NULL DEFAULT 0,
    biggest_win BIGINT NOT NULL DEFAULT 0,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`

var migration005Shop = `
CREATE TABLE IF NOT EXISTS shop_items (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category VARCHAR(32) NOT NULL,
    base_price BIGINT NOT NULL,
    max_level INTEGER NOT NULL DEFAULT 1,
    price_multiplier DOUBLE PRECISION NOT NULL DEFAULT 1.5,
    effect_value BIGINT NOT NULL DEFAULT 0,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS user_purchases (
    user_id VARCHAR(32) NOT NULL REFERENCES accounts(user_id),
    item_id BIGINT NOT NULL REFERENCES shop_items(id),
    level INTEGER NOT NULL DEFAULT 1,
    price_paid BIGINT NOT NULL DEFAULT 0,
    purchased_at TIMESTAMP NOT NULL DEFAULT NOW(),
    PRIMARY KEY (user_id, item_id)
);
INSERT INTO shop_items (name, description, category, base_price, max_level, price_multiplier, effect_value)
SELECT * FROM (VALUES
    ('Safe Expansion', 'Adds 2,500 capacity to your safe', 'safe', 500::BIGINT, 10, 1.6, 2500::BIGINT),
    ('XP Boost', 'Grants 500 XP instantly', 'xp', 750::BIGINT, 5, 2.0, 500::BIGINT),
    ('Transfer Pass', 'A collectible badge for big spenders', 'transfer', 10000::BIGINT, 1, 1.0, 0::BIGINT)
) AS seed(name, description, category, base_price, max_level, price_multiplier, effect_value)
WHERE NOT EXISTS (SELECT 1 FROM shop_items);
`

var migration006Levels = `
CREATE TABLE IF NOT EXISTS user_levels (
    user_id VARCHAR(32) PRIMARY KEY,
    xp BIGINT NOT NULL DEFAULT 0,
    level INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_user_levels_xp ON user_levels(xp DESC);
`

var migration007Reputation = `
CREATE TABLE IF NOT EXISTS reputation (
    user_id VARCHAR(32) PRIMARY KEY,
    points BIGINT NOT NULL DEFAULT 0,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS reputation_log (
    id BIGSERIAL PRIMARY KEY,
    from_user_id VARCHAR(32) NOT NULL,
    to_user_id VARCHAR(32) NOT NULL,
    delta INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_reputation_log_from ON reputation_log(from_user_id, created_at DESC);
`

var migration008Social = `
CREATE TABLE IF NOT EXISTS quotes (
    id BIGSERIAL PRIMARY KEY,
    text TEXT NOT NULL,
    author_id VARCHAR(32) NOT NULL,
    added_by_id VARCHAR(32) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS feedback (
    id BIGSERIAL PRIMARY KEY,
    user_id VARCHAR(32) NOT NULL,
    text TEXT NOT NULL,
    resolved BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS reminders (
    id BIGSERIAL PRIMARY KEY,
    user_id VARCHAR(32) NOT NULL,
    text TEXT NOT NULL,
    remind_at TIMESTAMP NOT NULL,
    delivered BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders(remind_at) WHERE NOT delivered;
`

var migration009Admin = `
CREATE TABLE IF NOT EXISTS blacklist (
    user_id VARCHAR(32) PRIMARY KEY,
    reason TEXT NOT NULL DEFAULT '',
    added_by_id VARCHAR(32) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS app_settings (
    key VARCHAR(64) PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);
`
