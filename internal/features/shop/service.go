// service.go — shop business rules over the repository.
package shop

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pilot2254/contrast-bot-sub000/internal/common"
)

// Store is the persistence contract.
type Store interface {
	ListItems(ctx context.Context) ([]*ShopItem, error)
	GetItem(ctx context.Context, itemID int64) (*ShopItem, error)
	GetPurchase(ctx context.Context, userID string, itemID int64) (*UserPurchase, error)
	Purchase(ctx context.Context, userID string, itemID int64) (*PurchaseResult, error)
	CreateItem(ctx context.Context, item *ShopItem) (int64, error)
	SetActive(ctx context.Context, itemID int64, active bool) error
}

// CatalogEntry is an item together with the viewing user's level in it
// and the price of the next level (0 next price means maxed out).
type CatalogEntry struct {
	Item      *ShopItem
	Level     int
	NextPrice int64
}

// Service manages the shop.
type Service struct {
	store Store
}

// NewService creates the shop service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Catalog returns active items annotated for one user.
func (s *Service) Catalog(ctx context.Context, userID string) ([]*CatalogEntry, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*CatalogEntry, 0, len(items))
	for _, item := range items {
		level := 0
		p, err := s.store.GetPurchase(ctx, userID, item.ID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			level = p.Level
		}
		e := &CatalogEntry{Item: item, Level: level}
		if level < item.MaxLevel {
			e.NextPrice = item.Price(level + 1)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Buy purchases the next level of an item for the user.
func (s *Service) Buy(ctx context.Context, userID string, itemID int64) (*PurchaseResult, error) {
	res, err := s.store.Purchase(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"item":    res.Item.Name,
		"level":   res.NewLevel,
		"price":   res.Price,
	}).Info("shop purchase")
	return res, nil
}

// CreateItem validates and inserts a catalog row (admin path).
func (s *Service) CreateItem(ctx context.Context, item *ShopItem) (int64, error) {
	item.Name = strings.TrimSpace(item.Name)
	switch {
	case item.Name == "":
		return 0, common.ErrInvalidAmount
	case item.BasePrice <= 0:
		return 0, common.ErrInvalidAmount
	case item.MaxLevel < 1:
		return 0, common.ErrInvalidAmount
	case item.PriceMultiplier < 1.0:
		return 0, common.ErrInvalidAmount
	}
	switch item.Category {
	case CategorySafe, CategoryXP, CategoryTransfer:
	default:
		return 0, common.ErrItemNotFound
	}
	return s.store.CreateItem(ctx, item)
}

// SetActive toggles an item (admin path).
func (s *Service) SetActive(ctx context.Context, itemID int64, active bool) error {
	return s.store.SetActive(ctx, itemID, active)
}
