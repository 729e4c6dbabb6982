// handlers.go — commands: !daily, !weekly, !monthly, !yearly, !claims,
// !work.
package rewards

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

// Handler handles reward commands.
type Handler struct {
	service *Service
	session *discordgo.Session
}

// NewHandler creates the rewards command handler.
func NewHandler(service *Service, session *discordgo.Session) *Handler {
	return &Handler{service: service, session: session}
}

// HandleClaim handles !daily, !weekly, !monthly and !yearly.
func (h *Handler) HandleClaim(ctx context.Context, m *discordgo.MessageCreate, cadenceName string) {
	res, err := h.service.Claim(ctx, m.Author.ID, cadenceName)
	if err != nil {
		var cd *CooldownError
		if errors.As(err, &cd) {
			h.sendMessage(m.ChannelID, fmt.Sprintf("⏳ Already claimed. Next %s reward in %s",
				cd.Cadence, common.FormatDuration(cd.Remaining)))
			return
		}
		log.WithError(err).WithField("cadence", cadenceName).Error("claim failed")
		h.sendMessage(m.ChannelID, "❌ Claim failed")
		return
	}

	h.sendMessage(m.ChannelID, fmt.Sprintf("🎁 %s reward: %s (streak %d)",
		capitalize(cadenceName), common.FormatAmount(res.Reward), res.Streak))
}

// HandleStatus handles !claims — every cadence in one overview.
func (h *Handler) HandleStatus(ctx context.Context, m *discordgo.MessageCreate) {
	var sb strings.Builder
	sb.WriteString("📅 Reward status:\n")
	for _, name := range []string{"daily", "weekly", "monthly", "yearly"} {
		st, err := h.service.Status(ctx, m.Author.ID, name)
		if err != nil {
			log.WithError(err).WithField("cadence", name).Error("status failed")
			h.sendMessage(m.ChannelID, "❌ Could not fetch reward status")
			return
		}
		if st.CanClaim {
			fmt.Fprintf(&sb, "• %s: ✅ ready — next reward %s\n",
				name, common.FormatAmount(st.ProjectedNextReward))
		} else {
			fmt.Fprintf(&sb, "• %s: ⏳ %s (streak %d)\n",
				name, common.FormatDuration(time.Until(st.NextClaimTime)), st.CurrentStreak)
		}
	}
	h.sendMessage(m.ChannelID, sb.String())
}

// HandleWork handles !work.
func (h *Handler) HandleWork(ctx context.Context, m *discordgo.MessageCreate) {
	amount, err := h.service.Work(ctx, m.Author.ID)
	if err != nil {
		var cd *CooldownError
		if errors.As(err, &cd) {
			h.sendMessage(m.ChannelID, fmt.Sprintf("⏳ You are tired. Back to work in %s",
				common.FormatDuration(cd.Remaining)))
			return
		}
		log.WithError(err).Error("work failed")
		h.sendMessage(m.ChannelID, "❌ Work failed")
		return
	}
	h.sendMessage(m.ChannelID, fmt.Sprintf("💼 You earned %s", common.FormatAmount(amount)))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (h *Handler) sendMessage(channelID, text string) {
	if _, err := h.session.ChannelMessageSend(channelID, text); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
