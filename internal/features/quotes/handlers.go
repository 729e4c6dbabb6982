// handlers.go — commands: !quote, !addquote.
package quotes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
)

// Handler handles quote commands.
type Handler struct {
	repo    *Repository
	session *discordgo.Session
}

// NewHandler creates the quotes command handler.
func NewHandler(repo *Repository, session *discordgo.Session) *Handler {
	return &Handler{repo: repo, session: session}
}

// HandleQuote handles !quote [id|count] — random when no argument is given.
func (h *Handler) HandleQuote(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) > 0 && strings.EqualFold(args[0], "count") {
		n, err := h.repo.Count(ctx)
		if err != nil {
			log.WithError(err).Error("quote count failed")
			h.sendMessage(m.ChannelID, "❌ Could not count quotes")
			return
		}
		h.sendMessage(m.ChannelID, fmt.Sprintf("💬 %d quotes stored", n))
		return
	}

	var (
		q   *Quote
		err error
	)
	if len(args) > 0 {
		id, parseErr := strconv.ParseInt(args[0], 10, 64)
		if parseErr != nil {
			h.sendMessage(m.ChannelID, "❌ Quote id must be a number")
			return
		}
		q, err = h.repo.Get(ctx, id)
	} else {
		q, err = h.repo.Random(ctx)
	}

	if err != nil {
		if errors.Is(err, ErrQuoteNotFound) {
			h.sendMessage(m.ChannelID, "❌ No quotes yet")
			return
		}
		log.WithError(err).Error("quote lookup failed")
		h.sendMessage(m.ChannelID, "❌ Could not fetch a quote")
		return
	}

	h.sendMessage(m.ChannelID, fmt.Sprintf("💬 #%d: %s\n— <@%s>", q.ID, q.Text, q.AuthorID))
}

// HandleAdd handles !addquote @author <text>.
func (h *Handler) HandleAdd(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		h.sendMessage(m.ChannelID, "❌ Usage: !addquote @author <text>")
		return
	}
	authorID, ok := common.ParseUserMention(args[0])
	if !ok {
		h.sendMessage(m.ChannelID, "❌ Usage: !addquote @author <text>")
		return
	}

	id, err := h.repo.Add(ctx, strings.Join(args[1:], " "), authorID, m.Author.ID)
	if err != nil {
		if errors.Is(err, ErrEmptyQuote) {
			h.sendMessage(m.ChannelID, "❌ Quote text is empty")
			return
		}
		log.WithError(err).Error("quote add failed")
		h.sendMessage(m.ChannelID, "❌ Could not save the quote")
		return
	}
	h.sendMessage(m.ChannelID, fmt.Sprintf("💬 Saved as quote #%d", id))
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, err := h.session.ChannelMessageSend(channelID, text); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
