// service.go — operator command logic. Admin identity comes from the
// configured ID list; destructive commands additionally require an
// unlocked password session, which lives in process memory and dies
// with the process.
package admin

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
	"github.com/pilot2254/contrast-bot-sub000/internal/features/economy"
)

// Store is the persistence contract.
type Store interface {
	BlacklistAdd(ctx context.Context, userID, reason, addedByID string) error
	BlacklistRemove(ctx context.Context, userID string) error
	IsBlacklisted(ctx context.Context, userID string) (bool, error)
	BlacklistAll(ctx context.Context) ([]*BlacklistEntry, error)
	SetSetting(ctx context.Context, key, value string) error
	GetSetting(ctx context.Context, key string) (string, bool, error)
}

// Service manages admin operations.
type Service struct {
	store        Store
	economy      *economy.Service
	adminIDs     map[string]struct{}
	passwordHash string

	mu       sync.Mutex
	sessions map[string]time.Time
	now      func() time.Time
}

// NewService creates the admin service.
func NewService(store Store, economySvc *economy.Service, adminIDs []string, passwordHash string) *Service {
	ids := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		ids[id] = struct{}{}
	}
	return &Service{
		store:        store,
		economy:      economySvc,
		adminIDs:     ids,
		passwordHash: passwordHash,
		sessions:     make(map[string]time.Time),
		now:          time.Now,
	}
}

// IsAdmin reports whether a user is on the configured admin list.
func (s *Service) IsAdmin(userID string) bool {
	_, ok := s.adminIDs[userID]
	return ok
}

// Unlock opens an elevated session after a password check.
func (s *Service) Unlock(userID, password string) error {
	if !s.IsAdmin(userID) {
		return common.ErrNotAdmin
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		logrus.WithField("user_id", userID).Warn("failed admin unlock attempt")
		return common.ErrWrongPassword
	}
	s.mu.Lock()
	s.sessions[userID] = s.now().Add(SessionTTL)
	s.mu.Unlock()
	logrus.WithField("user_id", userID).Info("admin session unlocked")
	return nil
}

// Lock closes the user's elevated session.
func (s *Service) Lock(userID string) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// requireSession checks admin identity plus a live unlocked session.
func (s *Service) requireSession(userID string) error {
	if !s.IsAdmin(userID) {
		return common.ErrNotAdmin
	}
	s.mu.Lock()
	expiry, ok := s.sessions[userID]
	if ok && s.now().After(expiry) {
		delete(s.sessions, userID)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return common.ErrSessionExpired
	}
	return nil
}

// AddCurrency credits coins to a user, bypassing the normal ceiling.
func (s *Service) AddCurrency(ctx context.Context, adminID, targetID string, amount int64, reason string) error {
	if err := s.requireSession(adminID); err != nil {
		return err
	}
	if reason == "" {
		reason = "Admin correction by " + adminID
	}
	return s.economy.AdminCredit(ctx, targetID, amount, reason)
}

// RemoveCurrency debits coins from a user.
func (s *Service) RemoveCurrency(ctx context.Context, adminID, targetID string, amount int64, reason string) error {
	if err := s.requireSession(adminID); err != nil {
		return err
	}
	if reason == "" {
		reason = "Admin correction by " + adminID
	}
	return s.economy.AdminDebit(ctx, targetID, amount, reason)
}

// Blacklist blocks a user from the bot.
func (s *Service) Blacklist(ctx context.Context, adminID, targetID, reason string) error {
	if err := s.requireSession(adminID); err != nil {
		return err
	}
	if s.IsAdmin(targetID) {
		return common.ErrNotAdmin
	}
	if err := s.store.BlacklistAdd(ctx, targetID, reason, adminID); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"admin": adminID, "target": targetID}).Warn("user blacklisted")
	return nil
}

// Unblacklist unblocks a user.
func (s *Service) Unblacklist(ctx context.Context, adminID, targetID string) error {
	if err := s.requireSession(adminID); err != nil {
		return err
	}
	return s.store.BlacklistRemove(ctx, targetID)
}

// IsBlacklisted reports whether a user is blocked.
func (s *Service) IsBlacklisted(ctx context.Context, userID string) (bool, error) {
	return s.store.IsBlacklisted(ctx, userID)
}

// ListBlacklist returns all blocked users.
func (s *Service) ListBlacklist(ctx context.Context, adminID string) ([]*BlacklistEntry, error) {
	if !s.IsAdmin(adminID) {
		return nil, common.ErrNotAdmin
	}
	return s.store.BlacklistAll(ctx)
}

// SetMaintenance toggles maintenance mode. While on, non-admins are
// rejected at the dispatch filter.
func (s *Service) SetMaintenance(ctx context.Context, adminID string, on bool) error {
	if err := s.requireSession(adminID); err != nil {
		return err
	}
	if err := s.store.SetSetting(ctx, settingMaintenance, strconv.FormatBool(on)); err != nil {
		return err
	}
	logrus.WithField("enabled", on).Warn("maintenance mode changed")
	return nil
}

// InMaintenance reports whether maintenance mode is on. Unset means off.
func (s *Service) InMaintenance(ctx context.Context) (bool, error) {
	value, ok, err := s.store.GetSetting(ctx, settingMaintenance)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	on, err := strconv.ParseBool(value)
	if err != nil {
		return false, nil
	}
	return on, nil
}
