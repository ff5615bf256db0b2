package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"pizza-store-cli/middleware"
	"pizza-store-cli/models"
)

// ItemChanges is typed input for an existing item; blank keeps the current value.
type ItemChanges struct {
	Ingredients string
	TypeOfItem  string
	Price       string
	Description string
}

// NewItem is a menu entry to insert. Every field is required.
type NewItem struct {
	ItemName    string `json:"itemName" validate:"notblank"`
	Ingredients string `json:"ingredients" validate:"notblank"`
	TypeOfItem  string `json:"typeOfItem" validate:"notblank"`
	Price       string `json:"price" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
}

type MenuService struct {
	users UserRepository
	items ItemRepository
	log   logrus.FieldLogger
}

func NewMenuService(users UserRepository, items ItemRepository, log logrus.FieldLogger) *MenuService {
	return &MenuService{users: users, items: items, log: log}
}

func (s *MenuService) List(ctx context.Context) ([]models.Item, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, models.ErrNoRecords
	}
	return items, nil
}

// ForEdit authorizes a menu edit and returns the current menu, which may be empty.
func (s *MenuService) ForEdit(ctx context.Context, identity string) ([]models.Item, error) {
	if _, err := middleware.Authorize(ctx, s.users, identity, middleware.CapMenuUpdate); err != nil {
		return nil, err
	}
	return s.items.List(ctx)
}

func (s *MenuService) ItemForEdit(ctx context.Context, identity, name string) (*models.Item, error) {
	if _, err := middleware.Authorize(ctx, s.users, identity, middleware.CapMenuUpdate); err != nil {
		return nil, err
	}
	return s.items.FindByName(ctx, strings.TrimSpace(name))
}

func (s *MenuService) UpdateItem(ctx context.Context, identity, name string, ch ItemChanges) error {
	if _, err := middleware.Authorize(ctx, s.users, identity, middleware.CapMenuUpdate); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	current, err := s.items.FindByName(ctx, name)
	if err != nil {
		return err
	}

	changes := changeSet{}
	if !blank(ch.Price) {
		price, err := parsePrice(ch.Price)
		if err != nil {
			return err
		}
		if price != current.Price {
			changes["price"] = price
		}
	}
	changes.text("ingredients", ch.Ingredients, current.Ingredients)
	changes.text("typeofitem", ch.TypeOfItem, current.TypeOfItem)
	changes.text("description", ch.Description, current.Description)
	if len(changes) == 0 {
		return models.ErrNoOp
	}

	if _, err := s.items.Update(ctx, name, changes); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"manager": identity, "item": name, "fields": len(changes)}).Info("menu item updated")
	return nil
}

func (s *MenuService) AddItem(ctx context.Context, identity string, in NewItem) (*models.Item, error) {
	if _, err := middleware.Authorize(ctx, s.users, identity, middleware.CapMenuUpdate); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}

	item := &models.Item{
		ItemName:    strings.TrimSpace(in.ItemName),
		Ingredients: strings.TrimSpace(in.Ingredients),
		TypeOfItem:  strings.TrimSpace(in.TypeOfItem),
		Price:       price,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"manager": identity, "item": item.ItemName}).Info("menu item added")
	return item, nil
}
