// handlers.go — operator commands. Password entry (!unlock) is accepted
// in DMs only so it never appears in a public channel.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/feedback"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/quotes"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/shop"
)

// Handler handles admin commands.
type Handler struct {
	service      *Service
	shopService  *shop.Service
	feedbackRepo *feedback.Repository
	quotesRepo   *quotes.Repository
	session      *discordgo.Session
}

// NewHandler creates the admin command handler.
func NewHandler(service *Service, shopService *shop.Service, feedbackRepo *feedback.Repository, quotesRepo *quotes.Repository, session *discordgo.Session) *Handler {
	return &Handler{service: service, shopService: shopService, feedbackRepo: feedbackRepo, quotesRepo: quotesRepo, session: session}
}

// HandleCommand routes one admin command. Returns false when the command
// is not an admin command so the caller can keep dispatching.
func (h *Handler) HandleCommand(ctx context.Context, m *discordgo.MessageCreate, cmd string, args []string) bool {
	switch cmd {
	case "unlock":
		h.handleUnlock(m, args)
	case "lock":
		h.service.Lock(m.Author.ID)
		h.sendMessage(m.ChannelID, "🔒 Admin session closed")
	case "addcoins":
		h.handleCurrency(ctx, m, args, true)
	case "removecoins":
		h.handleCurrency(ctx, m, args, false)
	case "blacklist":
		h.handleBlacklist(ctx, m, args)
	case "unblacklist":
		h.handleUnblacklist(ctx, m, args)
	case "blacklisted":
		h.handleBlacklisted(ctx, m)
	case "maintenance":
		h.handleMaintenance(ctx, m, args)
	case "additem":
		h.handleAddItem(ctx, m, args)
	case "toggleitem":
		h.handleToggleItem(ctx, m, args)
	case "feedbacklist":
		h.handleFeedbackList(ctx, m)
	case "resolvefeedback":
		h.handleResolveFeedback(ctx, m, args)
	case "delquote":
		h.handleDeleteQuote(ctx, m, args)
	default:
		return false
	}
	return true
}

func (h *Handler) handleUnlock(m *discordgo.MessageCreate, args []string) {
	if m.GuildID != "" {
		h.sendMessage(m.ChannelID, "❌ Use !unlock in a DM")
		return
	}
	if len(args) < 1 {
		h.sendMessage(m.ChannelID, "❌ Usage: !unlock <password>")
		return
	}

	if err := h.service.Unlock(m.Author.ID, args[0]); err != nil {
		switch {
		case errors.Is(err, common.ErrNotAdmin):
			h.sendMessage(m.ChannelID, "❌ You are not an admin")
		case errors.Is(err, common.ErrWrongPassword):
			h.sendMessage(m.ChannelID, "❌ Wrong password")
		default:
			log.WithError(err).Error("unlock failed")
			h.sendMessage(m.ChannelID, "❌ Unlock failed")
		}
		return
	}
	h.sendMessage(m.ChannelID, fmt.Sprintf("🔓 Admin session open for %s", SessionTTL))
}

func (h *Handler) handleCurrency(ctx context.Context, m *discordgo.MessageCreate, args []string, add bool) {
	if len(args) < 2 {
		h.sendMessage(m.ChannelID, "❌ Usage: !addcoins|!removecoins @user <amount> [reason]")
		return
	}
	targetID, ok := common.ParseUserMention(args[0])
	if !ok {
		h.sendMessage(m.ChannelID, "❌ Mention the target user")
		return
	}
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || amount <= 0 {
		h.sendMessage(m.ChannelID, "❌ Amount must be a positive number")
		return
	}
	reason := strings.Join(args[2:], " ")

	if add {
		err = h.service.AddCurrency(ctx, m.Author.ID, targetID, amount, reason)
	} else {
		err = h.service.RemoveCurrency(ctx, m.Author.ID, targetID, amount, reason)
	}
	if err != nil {
		h.replyAdminError(m.ChannelID, err)
		return
	}

	verb := "added to"
	if !add {
		verb = "removed from"
	}
	h.sendMessage(m.ChannelID, fmt.Sprintf("✅ %s %s <@%s>", common.FormatAmount(amount), verb, targetID))
}

func (h *Handler) handleBlacklist(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		h.sendMessage(m.ChannelID, "❌ Usage: !blacklist @user [reason]")
		return
	}
	targetID, ok := common.ParseUserMention(args[0])
	if !ok {
		h.sendMessage(m.ChannelID, "❌ Mention the target user")
		return
	}

	if err := h.service.Blacklist(ctx, m.Author.ID, targetID, strings.Join(args[1:], " ")); err != nil {
		h.replyAdminError(m.ChannelID, err)
		return
	}
	h.sendMessage(m.ChannelID, fmt.Sprintf("🚫 <@%s> blacklisted", targetID))
}

func (h *Handler) handleUnblacklist(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		h.sendMessage(m.ChannelID, "❌ Usage: !unblacklist @user")
		return
	}
	targetID, ok := common.ParseUserMention(args[0])
	if !ok {
		h.sendMessage(m.ChannelID, "❌ Mention the target user")
		return
	}

	if err := h.service.Unblacklist(ctx, m.Author.ID, targetID); err != nil {
		h.replyAdminError(m.ChannelID, err)
		return
	}
	h.sendMessage(m.ChannelID, fmt.Sprintf("✅ <@%s> removed from the blacklist", targetID))
}

func (h *Handler) handleBlacklisted(ctx context.Context, m *discordgo.MessageCreate) {
	entries, err := h.service.ListBlacklist(ctx, m.Author.ID)
	if err != nil {
		h.replyAdminError(m.ChannelID, err)
		return
	}
	if len(entries) == 0 {
		h.sendMessage(m.ChannelID, "🚫 The blacklist is empty")
		return
	}

	var sb strings.Builder
	sb.WriteString("🚫 Blacklist:\n")
	for _, e := range entries {
		reason := e.Reason
		if reason == "" {
			reason = "no reason"
		}
		fmt.Fprintf(&sb, "<@%s> — %s\n", e.UserID, reason)
	}
	h.sendMessage(m.ChannelID, sb.String())
}

func (h *Handler) handleMaintenance(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 || (args[0] != "on" && args[0] != "off") {
		h.sendMessage(m.ChannelID, "❌ Usage: !maintenance on|off")
		return
	}
	on := args[0] == "on"

	if err := h.service.SetMaintenance(ctx, m.Author.ID, on); err != nil {
		h.replyAdminError(m.ChannelID, err)
		return
	}
	if on {
		h.sendMessage(m.ChannelID, "🛠 Maintenance mode ON — only admins can use the bot")
	} else {
		h.sendMessage(m.ChannelID, "✅ Maintenance mode OFF")
	}
}

// !additem <category> <basePrice> <maxLevel> <multiplier> <effect> <name...>
func (h *Handler) handleAddItem(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if err := h.requireSessionReply(m); err != nil {
		return
	}
	if len(args) < 6 {
		h.sendMessage(m.ChannelID, "❌ Usage: !additem <safe|xp|transfer> <basePrice> <maxLevel> <multiplier> <effect> <name>")
		return
	}

	basePrice, err1 := strconv.ParseInt(args[1], 10, 64)
	maxLevel, err2 := strconv.Atoi(args[2])
	multiplier, err3 := strconv.ParseFloat(args[3], 64)
	effect, err4 := strconv.ParseInt(args[4], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		h.sendMessage(m.ChannelID, "❌ basePrice, maxLevel, multiplier and effect must be numbers")
		return
	}

	id, err := h.shopService.CreateItem(ctx, &shop.ShopItem{
		Name:            strings.Join(args[5:], " "),
		Description:     "Added by admin",
		Category:        strings.ToLower(args[0]),
		BasePrice:       basePrice,
		MaxLevel:        maxLevel,
		PriceMultiplier: multiplier,
		EffectValue:     effect,
	})
	if err != nil {
		log.WithError(err).Error("additem failed")
		h.sendMessage(m.ChannelID, "❌ Could not create the item (check category and numbers)")
		return
	}
	h.sendMessage(m.ChannelID, fmt.Sprintf("✅ Item #%d created", id))
}

func (h *Handler) handleToggleItem(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if err := h.requireSessionReply(m); err != nil {
		return
	}
	if len(args) < 2 || (args[1] != "on" && args[1] != "off") {
		h.sendMessage(m.ChannelID, "❌ Usage: !toggleitem <id> on|off")
		return
	}
	itemID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendMessage(m.ChannelID, "❌ Item id must be a number")
		return
	}

	if err := h.shopService.SetActive(ctx, itemID, args[1] == "on"); err != nil {
		if errors.Is(err, common.ErrItemNotFound) {
			h.sendMessage(m.ChannelID, "❌ No such item")
			return
		}
		log.WithError(err).Error("toggleitem failed")
		h.sendMessage(m.ChannelID, "❌ Could not toggle the item")
		return
	}
	h.sendMessage(m.ChannelID, "✅ Item updated")
}

func (h *Handler) handleFeedbackList(ctx context.Context, m *discordgo.MessageCreate) {
	if err := h.requireSessionReply(m); err != nil {
		return
	}

	entries, err := h.feedbackRepo.Unresolved(ctx, 20)
	if err != nil {
		log.WithError(err).Error("feedback list failed")
		h.sendMessage(m.ChannelID, "❌ Could not fetch feedback")
		return
	}
	if len(entries) == 0 {
		h.sendMessage(m.ChannelID, "📨 No open feedback")
		return
	}

	var sb strings.Builder
	sb.WriteString("📨 Open feedback:\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "#%d <@%s>: %s\n", e.ID, e.UserID, e.Text)
	}
	h.sendMessage(m.ChannelID, sb.String())
}

func (h *Handler) handleResolveFeedback(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if err := h.requireSessionReply(m); err != nil {
		return
	}
	if len(args) < 1 {
		h.sendMessage(m.ChannelID, "❌ Usage: !resolvefeedback <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendMessage(m.ChannelID, "❌ Feedback id must be a number")
		return
	}

	if err := h.feedbackRepo.Resolve(ctx, id); err != nil {
		h.sendMessage(m.ChannelID, "❌ Could not resolve that entry")
		return
	}
	h.sendMessage(m.ChannelID, fmt.Sprintf("✅ Feedback #%d resolved", id))
}

func (h *Handler) handleDeleteQuote(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if err := h.requireSessionReply(m); err != nil {
		return
	}
	if len(args) < 1 {
		h.sendMessage(m.ChannelID, "❌ Usage: !delquote <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendMessage(m.ChannelID, "❌ Quote id must be a number")
		return
	}

	if err := h.quotesRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, quotes.ErrQuoteNotFound) {
			h.sendMessage(m.ChannelID, "❌ No such quote")
			return
		}
		log.WithError(err).Error("delquote failed")
		h.sendMessage(m.ChannelID, "❌ Could not delete the quote")
		return
	}
	h.sendMessage(m.ChannelID, fmt.Sprintf("🗑 Quote #%d deleted", id))
}

// requireSessionReply checks the session and reports the failure to the
// channel, sparing each command the same switch.
func (h *Handler) requireSessionReply(m *discordgo.MessageCreate) error {
	err := h.service.requireSession(m.Author.ID)
	if err != nil {
		h.replyAdminError(m.ChannelID, err)
	}
	return err
}

func (h *Handler) replyAdminError(channelID string, err error) {
	switch {
	case errors.Is(err, common.ErrNotAdmin):
		h.sendMessage(channelID, "❌ You are not an admin")
	case errors.Is(err, common.ErrSessionExpired):
		h.sendMessage(channelID, "❌ Admin session expired — !unlock <password> in a DM")
	case errors.Is(err, common.ErrInsufficientFunds):
		h.sendMessage(channelID, "❌ The target does not have that many coins")
	case errors.Is(err, common.ErrInvalidAmount):
		h.sendMessage(channelID, "❌ Amount must be positive")
	default:
		log.WithError(err).Error("admin command failed")
		h.sendMessage(channelID, "❌ Command failed")
	}
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, err := h.session.ChannelMessageSend(channelID, text); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
