// handlers.go — commands: !shop, !buy.
package shop

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

// Handler handles shop commands.
type Handler struct {
	service *Service
	session *discordgo.Session
}

// NewHandler creates the shop command handler.
func NewHandler(service *Service, session *discordgo.Session) *Handler {
	return &Handler{service: service, session: session}
}

// HandleCatalog handles !shop.
func (h *Handler) HandleCatalog(ctx context.Context, m *discordgo.MessageCreate) {
	entries, err := h.service.Catalog(ctx, m.Author.ID)
	if err != nil {
		log.WithError(err).Error("catalog lookup failed")
		h.sendMessage(m.ChannelID, "❌ Could not fetch the shop")
		return
	}
	if len(entries) == 0 {
		h.sendMessage(m.ChannelID, "🛒 The shop is empty")
		return
	}

	var sb strings.Builder
	sb.WriteString("🛒 Shop — !buy <id>:\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "`#%d` **%s** — %s\n", e.Item.ID, e.Item.Name, e.Item.Description)
		if e.Level >= e.Item.MaxLevel {
			fmt.Fprintf(&sb, "   level %d/%d — maxed out\n", e.Level, e.Item.MaxLevel)
		} else {
			fmt.Fprintf(&sb, "   level %d/%d — next: %s\n",
				e.Level, e.Item.MaxLevel, common.FormatAmount(e.NextPrice))
		}
	}
	h.sendMessage(m.ChannelID, sb.String())
}

// HandleBuy handles !buy <id>.
func (h *Handler) HandleBuy(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		h.sendMessage(m.ChannelID, "❌ Usage: !buy <item id>")
		return
	}
	itemID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.sendMessage(m.ChannelID, "❌ Item id must be a number")
		return
	}

	res, err := h.service.Buy(ctx, m.Author.ID, itemID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrItemNotFound):
			h.sendMessage(m.ChannelID, "❌ No such item")
		case errors.Is(err, common.ErrItemInactive):
			h.sendMessage(m.ChannelID, "❌ That item is not for sale right now")
		case errors.Is(err, common.ErrItemMaxLevel):
			h.sendMessage(m.ChannelID, "❌ You already own the maximum level")
		case errors.Is(err, common.ErrInsufficientFunds):
			h.sendMessage(m.ChannelID, "❌ Not enough coins")
		default:
			log.WithError(err).Error("purchase failed")
			h.sendMessage(m.ChannelID, "❌ Purchase failed")
		}
		return
	}

	h.sendMessage(m.ChannelID, fmt.Sprintf("✅ Bought **%s** level %d for %s",
		res.Item.Name, res.NewLevel, common.FormatAmount(res.Price)))
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, err := h.session.ChannelMessageSend(channelID, text); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
