// handlers.go — commands: !rank, !levels.
package levels

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
)

// Handler handles level commands.
type Handler struct {
	service *Service
	session *discordgo.Session
}

// NewHandler creates the levels command handler.
func NewHandler(service *Service, session *discordgo.Session) *Handler {
	return &Handler{service: service, session: session}
}

// HandleRank handles !rank.
func (h *Handler) HandleRank(ctx context.Context, m *discordgo.MessageCreate) {
	u, err := h.service.Get(ctx, m.Author.ID)
	if err != nil {
		log.WithError(err).Error("rank lookup failed")
		h.sendMessage(m.ChannelID, "❌ Could not fetch your rank")
		return
	}

	h.sendMessage(m.ChannelID, fmt.Sprintf("⭐ Level %d — %s XP (next level at +%s)",
		u.Level, common.GroupDigits(u.XP), common.GroupDigits(XPForNextLevel(u.Level))))
}

// HandleTop handles !levels.
func (h *Handler) HandleTop(ctx context.Context, m *discordgo.MessageCreate) {
	top, err := h.service.Top(ctx, 10)
	if err != nil {
		log.WithError(err).Error("level top lookup failed")
		h.sendMessage(m.ChannelID, "❌ Could not fetch the level leaderboard")
		return
	}

	var sb strings.Builder
	sb.WriteString("⭐ XP leaderboard:\n")
	for i, u := range top {
		fmt.Fprintf(&sb, "%d. <@%s> — level %d (%s XP)\n", i+1, u.UserID, u.Level, common.GroupDigits(u.XP))
	}
	h.sendMessage(m.ChannelID, sb.String())
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, err := h.session.ChannelMessageSend(channelID, text); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
