// handlers.go — commands: !rep, !reptop.
package reputation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
)

// Handler handles reputation commands.
type Handler struct {
	service *Service
	session *discordgo.Session
}

// NewHandler creates the reputation command handler.
func NewHandler(service *Service, session *discordgo.Session) *Handler {
	return &Handler{service: service, session: session}
}

// HandleRep handles !rep [@user [+|-]].
func (h *Handler) HandleRep(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	// No arguments: show own reputation.
	if len(args) == 0 {
		rep, err := h.service.Get(ctx, m.Author.ID)
		if err != nil {
			log.WithError(err).Error("reputation lookup failed")
			h.sendMessage(m.ChannelID, "❌ Could not fetch reputation")
			return
		}
		h.sendMessage(m.ChannelID, fmt.Sprintf("🌟 Your reputation: %d", rep.Points))
		return
	}

	targetID, ok := common.ParseUserMention(args[0])
	if !ok {
		h.sendMessage(m.ChannelID, "❌ Usage: !rep @user [+|-]")
		return
	}

	delta := 1
	if len(args) > 1 && args[1] == "-" {
		delta = -1
	}

	rep, err := h.service.Give(ctx, m.Author.ID, targetID, delta)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrSelfReputation):
			h.sendMessage(m.ChannelID, "❌ You cannot rate yourself")
		case errors.Is(err, common.ErrReputationDailyLimit):
			h.sendMessage(m.ChannelID, fmt.Sprintf("❌ You already gave %d reputation points today", DailyLimit))
		case errors.Is(err, common.ErrReputationPairCooldown):
			h.sendMessage(m.ChannelID, "❌ You already rated that user in the last 24 hours")
		default:
			log.WithError(err).Error("reputation grant failed")
			h.sendMessage(m.ChannelID, "❌ Could not give reputation")
		}
		return
	}

	sign := "+1"
	if delta < 0 {
		sign = "-1"
	}
	h.sendMessage(m.ChannelID, fmt.Sprintf("🌟 %s reputation for <@%s> (now %d)", sign, targetID, rep.Points))
}

// HandleTop handles !reptop.
func (h *Handler) HandleTop(ctx context.Context, m *discordgo.MessageCreate) {
	top, err := h.service.Top(ctx, 10)
	if err != nil {
		log.WithError(err).Error("reputation top lookup failed")
		h.sendMessage(m.ChannelID, "❌ Could not fetch the reputation leaderboard")
		return
	}

	var sb strings.Builder
	sb.WriteString("🌟 Reputation leaderboard:\n")
	for i, rep := range top {
		fmt.Fprintf(&sb, "%d. <@%s> — %d\n", i+1, rep.UserID, rep.Points)
	}
	h.sendMessage(m.ChannelID, sb.String())
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, err := h.session.ChannelMessageSend(channelID, text); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
