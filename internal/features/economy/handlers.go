// handlers.go — commands: !balance, !pay, !history, !top.
package economy

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/accounts"
)

// Handler handles economy commands.
type Handler struct {
	service        *Service
	accountService *accounts.Service
	session        *discordgo.Session
}

// NewHandler creates the economy command handler.
func NewHandler(service *Service, accountService *accounts.Service, session *discordgo.Session) *Handler {
	return &Handler{service: service, accountService: accountService, session: session}
}

// HandleBalance handles !balance.
func (h *Handler) HandleBalance(ctx context.Context, m *discordgo.MessageCreate) {
	acc, err := h.accountService.GetOrCreate(ctx, m.Author.ID, m.Author.Username)
	if err != nil {
		log.WithError(err).Error("balance lookup failed")
		h.sendMessage(m.ChannelID, "❌ Could not fetch your balance")
		return
	}

	h.sendMessage(m.ChannelID, fmt.Sprintf("💰 Balance: %s\nLifetime earned: %s · spent: %s",
		common.FormatAmount(acc.Balance),
		common.GroupDigits(acc.TotalEarned), common.GroupDigits(acc.TotalSpent)))
}

// HandleTransfer handles !pay @user <amount>.
func (h *Handler) HandleTransfer(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		h.sendMessage(m.ChannelID, "❌ Usage: !pay @user <amount>")
		return
	}

	toID, toName, ok := resolveTarget(m, args[0])
	if !ok {
		h.sendMessage(m.ChannelID, "❌ Mention the recipient: !pay @user <amount>")
		return
	}

	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || amount <= 0 {
		h.sendMessage(m.ChannelID, "❌ Amount must be a positive number")
		return
	}

	// Materialize the recipient account so the credit side cannot miss.
	if _, err := h.accountService.GetOrCreate(ctx, toID, toName); err != nil {
		log.WithError(err).Error("recipient account lookup failed")
		h.sendMessage(m.ChannelID, "❌ Transfer failed")
		return
	}

	if err := h.service.Transfer(ctx, m.Author.ID, toID, amount); err != nil {
		switch {
		case errors.Is(err, common.ErrSelfTransfer):
			h.sendMessage(m.ChannelID, "❌ You cannot pay yourself")
		case errors.Is(err, common.ErrInsufficientFunds):
			h.sendMessage(m.ChannelID, "❌ Not enough coins")
		case errors.Is(err, common.ErrAmountTooLarge):
			h.sendMessage(m.ChannelID, "❌ Amount exceeds the transfer limit")
		case errors.Is(err, common.ErrInvalidAmount):
			h.sendMessage(m.ChannelID, "❌ Amount must be positive")
		default:
			log.WithError(err).Error("transfer failed")
			h.sendMessage(m.ChannelID, "❌ Transfer failed")
		}
		return
	}

	h.sendMessage(m.ChannelID, fmt.Sprintf("✅ Sent %s to <@%s>", common.FormatAmount(amount), toID))
}

// HandleHistory handles !history [type].
func (h *Handler) HandleHistory(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	typeFilter := ""
	if len(args) > 0 {
		typeFilter = strings.ToLower(args[0])
	}

	txs, err := h.service.History(ctx, m.Author.ID, 10, typeFilter)
	if err != nil {
		log.WithError(err).Error("history lookup failed")
		h.sendMessage(m.ChannelID, "❌ Could not fetch history")
		return
	}
	if len(txs) == 0 {
		h.sendMessage(m.ChannelID, "📒 No transactions yet")
		return
	}

	var sb strings.Builder
	sb.WriteString("📒 Recent transactions:\n")
	for _, tx := range txs {
		sign := "+"
		if tx.Amount < 0 {
			sign = ""
		}
		fmt.Fprintf(&sb, "`%s` %s%s — %s\n",
			common.FormatDateTime(tx.CreatedAt), sign, common.GroupDigits(tx.Amount), tx.Description)
	}
	h.sendMessage(m.ChannelID, sb.String())
}

// HandleLeaderboard handles !top [balance|earned|spent].
func (h *Handler) HandleLeaderboard(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	metric := MetricBalance
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case MetricBalance, MetricEarned, MetricSpent:
			metric = strings.ToLower(args[0])
		default:
			h.sendMessage(m.ChannelID, "❌ Usage: !top [balance|earned|spent]")
			return
		}
	}

	entries, err := h.service.Leaderboard(ctx, metric, 10)
	if err != nil {
		log.WithError(err).Error("leaderboard lookup failed")
		h.sendMessage(m.ChannelID, "❌ Could not fetch the leaderboard")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏆 Top by %s:\n", metric)
	for i, e := range entries {
		fmt.Fprintf(&sb, "%d. %s — %s\n", i+1, e.DisplayName, common.FormatAmount(e.Value))
	}
	h.sendMessage(m.ChannelID, sb.String())
}

// resolveTarget extracts the target user from a mention argument,
// preferring the resolved mention entities on the message.
func resolveTarget(m *discordgo.MessageCreate, arg string) (id, name string, ok bool) {
	userID, ok := common.ParseUserMention(arg)
	if !ok {
		return "", "", false
	}
	for _, u := range m.Mentions {
		if u.ID == userID {
			return u.ID, u.Username, true
		}
	}
	return userID, "", true
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, err := h.session.ChannelMessageSend(channelID, text); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
