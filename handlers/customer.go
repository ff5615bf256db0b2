package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"pizza-store-cli/database"
	"pizza-store-cli/models"
	"pizza-store-cli/services"
)

const passwordMask = "********"

// ── Profile ─────────────────────────────────────────────────────────────────

func (h *Handler) ViewProfile(ctx context.Context, identity string) error {
	u, err := h.svc.Profile.View(ctx, identity)
	if errors.Is(err, models.ErrNotFound) {
		h.con.Println("No user profile found for the current login.")
		return nil
	}
	if err != nil {
		return h.report(err)
	}
	h.con.Println("User Profile:")
	h.con.Println("Login: " + u.Login)
	h.con.Println("Password: " + passwordMask)
	h.con.Println("Role: " + string(u.Role))
	h.con.Println("Favorite Items: " + u.FavoriteItems)
	h.con.Println("Phone Number: " + u.PhoneNum)
	return nil
}

// UpdateProfile shows the current values and applies whatever was typed.
func (h *Handler) UpdateProfile(ctx context.Context, identity string) error {
	u, err := h.svc.Profile.ForEdit(ctx, identity)
	if err != nil {
		return h.report(err)
	}
	h.con.Println("Current Profile Details:")
	h.con.Println("Password: " + passwordMask)
	h.con.Println("Phone Number: " + u.PhoneNum)
	h.con.Println("Favorite Items: " + u.FavoriteItems)

	var ch services.ProfileChanges
	if ch.Password, err = h.con.Prompt("Enter new password (Leave blank to keep the same): "); err != nil {
		return err
	}
	if ch.PhoneNum, err = h.con.Prompt("Enter new phone number (Leave blank to keep the same): "); err != nil {
		return err
	}
	if ch.FavoriteItems, err = h.con.Prompt("Enter new favorite items (Leave blank to keep the same): "); err != nil {
		return err
	}

	if err := h.svc.Profile.Update(ctx, identity, ch); err != nil {
		return h.report(err)
	}
	h.con.Println("Profile updated successfully!")
	return nil
}

// ── Orders ──────────────────────────────────────────────────────────────────

func (h *Handler) PlaceOrder(ctx context.Context, identity string) error {
	return h.report(h.svc.Orders.PlaceOrder(ctx, identity))
}

func (h *Handler) ViewOrderHistory(ctx context.Context, identity string) error {
	rows, err := h.svc.Orders.History(ctx, identity)
	return h.printOrders(rows, err)
}

func (h *Handler) ViewRecentOrders(ctx context.Context, identity string) error {
	rows, err := h.svc.Orders.Recent(ctx, identity)
	return h.printOrders(rows, err)
}

func (h *Handler) printOrders(rows *database.Rows, err error) error {
	if errors.Is(err, models.ErrNoRecords) {
		h.con.Println("No orders found.")
		return nil
	}
	if err != nil {
		return h.report(err)
	}

	tw := tabwriter.NewWriter(h.con.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(rows.Columns, "\t")))
	for _, record := range rows.Records {
		fmt.Fprintln(tw, strings.Join(record, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	h.con.Printf("%s total\n", humanize.Comma(int64(rows.Len())))
	return nil
}

// ViewOrderInfo prints one order and its items.
func (h *Handler) ViewOrderInfo(ctx context.Context, identity string) error {
	id, err := h.con.Prompt("Enter the Order ID: ")
	if err != nil {
		return err
	}
	info, err := h.svc.Orders.Info(ctx, identity, id)
	if err != nil {
		return h.report(err)
	}

	o := info.Order
	h.con.Printf("Order ID: %d\n", o.OrderID)
	h.con.Println("Customer: " + o.Login)
	h.con.Printf("Store ID: %d\n", o.StoreID)
	h.con.Println("Total Price: " + price(o.TotalPrice))
	h.con.Printf("Placed: %s (%s)\n", o.OrderTimestamp.Format("2006-01-02 15:04"), humanize.Time(o.OrderTimestamp))
	h.con.Println("Status: " + string(o.OrderStatus))
	h.con.Println("Items:")
	if len(info.Lines) == 0 {
		h.con.Println("  (none recorded)")
	}
	for _, line := range info.Lines {
		h.con.Printf("  %d x %s\n", line.Quantity, line.ItemName)
	}
	return nil
}
