package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"pizza-store-cli/database"
	"pizza-store-cli/middleware"
	"pizza-store-cli/models"
	"pizza-store-cli/statemachine"
)

const recentOrders = 5

// OrderInfo is an order together with its item lines.
type OrderInfo struct {
	Order models.FoodOrder
	Lines []models.ItemInOrder
}

type OrderService struct {
	users  UserRepository
	orders OrderRepository
	log    logrus.FieldLogger
}

func NewOrderService(users UserRepository, orders OrderRepository, log logrus.FieldLogger) *OrderService {
	return &OrderService{users: users, orders: orders, log: log}
}

// History lists every order placed by identity, newest first.
func (s *OrderService) History(ctx context.Context, identity string) (*database.Rows, error) {
	return s.history(ctx, identity, 0)
}

func (s *OrderService) Recent(ctx context.Context, identity string) (*database.Rows, error) {
	return s.history(ctx, identity, recentOrders)
}

func (s *OrderService) history(ctx context.Context, identity string, limit int) (*database.Rows, error) {
	rows, err := s.orders.History(ctx, identity, limit)
	if err != nil {
		return nil, err
	}
	if rows.Len() == 0 {
		return nil, models.ErrNoRecords
	}
	return rows, nil
}

// Info returns one order. Customers only see their own; an order owned by
// someone else reads as not found.
func (s *OrderService) Info(ctx context.Context, identity, orderID string) (*OrderInfo, error) {
	id, err := parseOrderID(orderID)
	if err != nil {
		return nil, err
	}
	role, err := s.users.RoleOf(ctx, identity)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Login != identity && !middleware.HasCapability(role, middleware.CapOrderLookupAll) {
		return nil, models.ErrNotFound
	}
	lines, err := s.orders.Lines(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OrderInfo{Order: *order, Lines: lines}, nil
}

func (s *OrderService) PlaceOrder(context.Context, string) error {
	return models.ErrNotSupported
}

// ForStatusUpdate authorizes the caller and returns the order with the
// statuses the caller may move it to.
func (s *OrderService) ForStatusUpdate(ctx context.Context, identity, orderID string) (*models.FoodOrder, []models.OrderStatus, error) {
	role, err := middleware.Authorize(ctx, s.users, identity, middleware.CapOrderStatusUpdate)
	if err != nil {
		return nil, nil, err
	}
	id, err := parseOrderID(orderID)
	if err != nil {
		return nil, nil, err
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return order, statemachine.ValidTransitionsFrom(order.OrderStatus, role), nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, identity, orderID, status string) error {
	role, err := middleware.Authorize(ctx, s.users, identity, middleware.CapOrderStatusUpdate)
	if err != nil {
		return err
	}
	id, err := parseOrderID(orderID)
	if err != nil {
		return err
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}

	next := models.NormalizeStatus(status)
	if next == "" || next == order.OrderStatus {
		return models.ErrNoOp
	}
	if err := statemachine.CanTransition(order.OrderStatus, next, role); err != nil {
		return models.NewValidationError("orderStatus", err.Error())
	}

	n, err := s.orders.UpdateStatus(ctx, id, next)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("order %d: %w", id, models.ErrNotFound)
	}
	s.log.WithFields(logrus.Fields{
		"login": identity,
		"role":  role,
		"order": id,
		"from":  order.OrderStatus,
		"to":    next,
	}).Info("order status updated")
	return nil
}
