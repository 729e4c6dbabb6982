// handlers.go — commands: !safe, !deposit, !withdraw.
package safe

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
)

// Handler handles safe commands.
type Handler struct {
	service *Service
	session *discordgo.Session
}

// NewHandler creates the safe command handler.
func NewHandler(service *Service, session *discordgo.Session) *Handler {
	return &Handler{service: service, session: session}
}

// HandleStatus handles !safe.
func (h *Handler) HandleStatus(ctx context.Context, m *discordgo.MessageCreate) {
	s, err := h.service.Get(ctx, m.Author.ID)
	if err != nil {
		log.WithError(err).Error("safe lookup failed")
		h.sendMessage(m.ChannelID, "❌ Could not fetch your safe")
		return
	}

	h.sendMessage(m.ChannelID, fmt.Sprintf("🔐 Safe: %s / %s capacity",
		common.GroupDigits(s.Balance), common.GroupDigits(s.Capacity)))
}

// HandleDeposit handles !deposit <amount>.
func (h *Handler) HandleDeposit(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	amount, ok := h.parseAmount(m.ChannelID, args, "!deposit <amount>")
	if !ok {
		return
	}

	if err := h.service.Deposit(ctx, m.Author.ID, amount); err != nil {
		switch {
		case errors.Is(err, common.ErrSafeCapacityExceeded):
			h.sendMessage(m.ChannelID, "❌ That would overflow your safe")
		case errors.Is(err, common.ErrInsufficientFunds):
			h.sendMessage(m.ChannelID, "❌ Not enough coins on your balance")
		case errors.Is(err, common.ErrInvalidAmount):
			h.sendMessage(m.ChannelID, "❌ Amount must be positive")
		default:
			log.WithError(err).Error("safe deposit failed")
			h.sendMessage(m.ChannelID, "❌ Deposit failed")
		}
		return
	}
	h.sendMessage(m.ChannelID, fmt.Sprintf("🔐 Deposited %s into your safe", common.FormatAmount(amount)))
}

// HandleWithdraw handles !withdraw <amount>.
func (h *Handler) HandleWithdraw(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	amount, ok := h.parseAmount(m.ChannelID, args, "!withdraw <amount>")
	if !ok {
		return
	}

	if err := h.service.Withdraw(ctx, m.Author.ID, amount); err != nil {
		switch {
		case errors.Is(err, common.ErrSafeInsufficient):
			h.sendMessage(m.ChannelID, "❌ Not enough coins in your safe")
		case errors.Is(err, common.ErrInvalidAmount):
			h.sendMessage(m.ChannelID, "❌ Amount must be positive")
		default:
			log.WithError(err).Error("safe withdraw failed")
			h.sendMessage(m.ChannelID, "❌ Withdrawal failed")
		}
		return
	}
	h.sendMessage(m.ChannelID, fmt.Sprintf("🔓 Withdrew %s from your safe", common.FormatAmount(amount)))
}

func (h *Handler) parseAmount(channelID string, args []string, usage string) (int64, bool) {
	if len(args) < 1 {
		h.sendMessage(channelID, "❌ Usage: "+usage)
		return 0, false
	}
	amount, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || amount <= 0 {
		h.sendMessage(channelID, "❌ Amount must be a positive number")
		return 0, false
	}
	return amount, true
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, err := h.session.ChannelMessageSend(channelID, text); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
