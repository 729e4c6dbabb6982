// handlers.go — commands: !remind, !reminders.
package reminders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
)

// Handler handles reminder commands.
type Handler struct {
	repo    *Repository
	session *discordgo.Session
}

// NewHandler creates the reminders command handler.
func NewHandler(repo *Repository, session *discordgo.Session) *Handler {
	return &Handler{repo: repo, session: session}
}

// HandleRemind handles !remind <duration> <text>, e.g. !remind 2h30m tea.
func (h *Handler) HandleRemind(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		h.sendMessage(m.ChannelID, "❌ Usage: !remind <duration> <text> (e.g. !remind 1h30m stand up)")
		return
	}

	d, err := time.ParseDuration(args[0])
	if err != nil || d <= 0 {
		h.sendMessage(m.ChannelID, "❌ Bad duration — use forms like 30m, 2h, 1h30m")
		return
	}
	if d > 30*24*time.Hour {
		h.sendMessage(m.ChannelID, "❌ Reminders are capped at 30 days")
		return
	}

	at := time.Now().Add(d)
	id, err := h.repo.Schedule(ctx, m.Author.ID, strings.Join(args[1:], " "), at)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyReminder):
			h.sendMessage(m.ChannelID, "❌ Reminder text is empty")
		case errors.Is(err, ErrRemindInPast):
			h.sendMessage(m.ChannelID, "❌ That time is already in the past")
		default:
			log.WithError(err).Error("reminder schedule failed")
			h.sendMessage(m.ChannelID, "❌ Could not schedule the reminder")
		}
		return
	}

	h.sendMessage(m.ChannelID, fmt.Sprintf("⏰ Reminder #%d set for %s from now", id, common.FormatDuration(d)))
}

// HandlePending handles !reminders.
func (h *Handler) HandlePending(ctx context.Context, m *discordgo.MessageCreate) {
	pending, err := h.repo.Pending(ctx, m.Author.ID)
	if err != nil {
		log.WithError(err).Error("pending reminders lookup failed")
		h.sendMessage(m.ChannelID, "❌ Could not fetch reminders")
		return
	}
	if len(pending) == 0 {
		h.sendMessage(m.ChannelID, "⏰ No pending reminders")
		return
	}

	var sb strings.Builder
	sb.WriteString("⏰ Pending reminders:\n")
	for _, rem := range pending {
		fmt.Fprintf(&sb, "#%d in %s — %s\n",
			rem.ID, common.FormatDuration(time.Until(rem.RemindAt)), rem.Text)
	}
	h.sendMessage(m.ChannelID, sb.String())
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, err := h.session.ChannelMessageSend(channelID, text); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
