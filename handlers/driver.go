package handlers

import (
	"context"
	"strings"

	"pizza-store-cli/models"
)

// UpdateOrderStatus lets a driver or manager move an order along. The
// statuses the caller may choose from are listed before the prompt.
func (h *Handler) UpdateOrderStatus(ctx context.Context, identity string) error {
	id, err := h.con.Prompt("Enter the Order ID to update: ")
	if err != nil {
		return err
	}
	order, nexts, err := h.svc.Orders.ForStatusUpdate(ctx, identity, id)
	if err != nil {
		return h.report(err)
	}

	h.con.Printf("Current status: %s\n", order.OrderStatus)
	if len(nexts) == 0 {
		h.con.Println("You cannot change the status of this order.")
		return nil
	}
	h.con.Println("Only these statuses are accepted: " + joinStatuses(nexts))
	status, err := h.con.Prompt("Enter the new status for this order (Leave blank to keep the same): ")
	if err != nil {
		return err
	}

	if err := h.svc.Orders.UpdateStatus(ctx, identity, id, status); err != nil {
		return h.report(err)
	}
	h.con.Println("Order status updated successfully.")
	return nil
}

func joinStatuses(statuses []models.OrderStatus) string {
	s := make([]string, len(statuses))
	for i, st := range statuses {
		s[i] = string(st)
	}
	return strings.Join(s, ", ")
}
