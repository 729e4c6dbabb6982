// Package filters gates message dispatch: bots are ignored,
// blacklisted users are dropped silently and maintenance mode lets only
// admins through.
package filters

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/features/admin"
)

type AccessFilter struct {
	adminService *admin.Service
}

func NewAccessFilter(adminService *admin.Service) *AccessFilter {
	return &AccessFilter{adminService: adminService}
}

// CheckAccess decides whether a message may be dispatched.
func (f *AccessFilter) CheckAccess(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if m == nil || m.Author == nil {
		log.WithField("component", "AccessFilter").Warn("nil message/author")
		return false
	}
	if m.Author.Bot {
		return false
	}
	if s != nil && s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return false
	}

	userID := m.Author.ID
	logger := log.WithFields(log.Fields{
		"component":  "AccessFilter",
		"user_id":    userID,
		"channel_id": m.ChannelID,
	})

	blocked, err := f.adminService.IsBlacklisted(ctx, userID)
	if err != nil {
		logger.WithError(err).Error("blacklist check failed")
		return false
	}
	if blocked {
		logger.Debug("deny: blacklisted")
		return false
	}

	inMaintenance, err := f.adminService.InMaintenance(ctx)
	if err != nil {
		logger.WithError(err).Error("maintenance check failed")
		return false
	}
	if inMaintenance && !f.adminService.IsAdmin(userID) {
		logger.Debug("deny: maintenance mode")
		return false
	}

	return true
}
