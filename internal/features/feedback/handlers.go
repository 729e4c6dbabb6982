// handlers.go — command: !feedback.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Handler handles the feedback command.
type Handler struct {
	repo    *Repository
	session *discordgo.Session
}

// NewHandler creates the feedback command handler.
func NewHandler(repo *Repository, session *discordgo.Session) *Handler {
	return &Handler{repo: repo, session: session}
}

// HandleSubmit handles !feedback <text>.
func (h *Handler) HandleSubmit(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		h.sendMessage(m.ChannelID, "❌ Usage: !feedback <text>")
		return
	}

	id, err := h.repo.Submit(ctx, m.Author.ID, strings.Join(args, " "))
	if err != nil {
		if errors.Is(err, ErrEmptyFeedback) {
			h.sendMessage(m.ChannelID, "❌ Feedback text is empty")
			return
		}
		log.WithError(err).Error("feedback submit failed")
		h.sendMessage(m.ChannelID, "❌ Could not save feedback")
		return
	}
	h.sendMessage(m.ChannelID, fmt.Sprintf("📨 Thanks! Feedback #%d recorded", id))
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, err := h.session.ChannelMessageSend(channelID, text); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
