package handlers

import (
	"context"
	"errors"

	"pizza-store-cli/models"
	"pizza-store-cli/services"
)

// ── Menu management ─────────────────────────────────────────────────────────

// UpdateMenu shows the current menu, then either edits an item or adds one.
func (h *Handler) UpdateMenu(ctx context.Context, identity string) error {
	items, err := h.svc.Menu.ForEdit(ctx, identity)
	if err != nil {
		return h.report(err)
	}
	h.con.Println("---- Current Menu ----")
	if len(items) == 0 {
		h.con.Println("The menu is empty.")
	}
	h.printItems(items)

	h.con.Println("Do you want to update an existing item or add a new item?")
	h.con.Println("1. Update an existing item")
	h.con.Println("2. Add a new item")
	choice, err := h.con.ReadChoice()
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		return h.updateItem(ctx, identity)
	case 2:
		return h.addItem(ctx, identity)
	default:
		h.con.Println("Invalid choice. Returning to menu.")
		return nil
	}
}

func (h *Handler) updateItem(ctx context.Context, identity string) error {
	name, err := h.con.Prompt("Enter the name of the item you want to update: ")
	if err != nil {
		return err
	}
	item, err := h.svc.Menu.ItemForEdit(ctx, identity, name)
	if errors.Is(err, models.ErrNotFound) {
		h.con.Println("No item found with the provided name.")
		return nil
	}
	if err != nil {
		return h.report(err)
	}

	var ch services.ItemChanges
	if ch.Ingredients, err = h.con.Prompt("Enter the new ingredients (Leave blank to keep the same): "); err != nil {
		return err
	}
	if ch.TypeOfItem, err = h.con.Prompt("Enter the new type of item (Leave blank to keep the same): "); err != nil {
		return err
	}
	if ch.Price, err = h.con.Prompt("Enter the new price (Leave blank to keep the same): "); err != nil {
		return err
	}
	if ch.Description, err = h.con.Prompt("Enter the new description (Leave blank to keep the same): "); err != nil {
		return err
	}

	if err := h.svc.Menu.UpdateItem(ctx, identity, item.ItemName, ch); err != nil {
		return h.report(err)
	}
	h.con.Println("Item updated successfully!")
	return nil
}

func (h *Handler) addItem(ctx context.Context, identity string) error {
	var in services.NewItem
	var err error
	if in.ItemName, err = h.con.Prompt("Enter the name of the new item: "); err != nil {
		return err
	}
	if in.Ingredients, err = h.con.Prompt("Enter the ingredients of the new item: "); err != nil {
		return err
	}
	if in.TypeOfItem, err = h.con.Prompt("Enter the type of the new item: "); err != nil {
		return err
	}
	if in.Price, err = h.con.Prompt("Enter the price of the new item: "); err != nil {
		return err
	}
	if in.Description, err = h.con.Prompt("Enter the description of the new item: "); err != nil {
		return err
	}

	if _, err := h.svc.Menu.AddItem(ctx, identity, in); err != nil {
		return h.report(err)
	}
	h.con.Println("New item added successfully!")
	return nil
}

// ── User management ─────────────────────────────────────────────────────────

func (h *Handler) UpdateUser(ctx context.Context, identity string) error {
	target, err := h.con.Prompt("Enter the username of the user you want to update: ")
	if err != nil {
		return err
	}
	u, err := h.svc.Users.ForEdit(ctx, identity, target)
	if errors.Is(err, models.ErrNotFound) {
		h.con.Println("No user found with the provided username.")
		return nil
	}
	if err != nil {
		return h.report(err)
	}
	h.con.Println("Role: " + string(u.Role))
	h.con.Println("Favorite Items: " + u.FavoriteItems)
	h.con.Println("Phone Number: " + u.PhoneNum)

	var ch services.UserChanges
	if ch.Password, err = h.con.Prompt("Enter the new password (Leave blank to keep the same): "); err != nil {
		return err
	}
	if ch.Role, err = h.con.Prompt("Enter the new role (Leave blank to keep the same): "); err != nil {
		return err
	}
	if ch.FavoriteItems, err = h.con.Prompt("Enter the new favorite items (Leave blank to keep the same): "); err != nil {
		return err
	}
	if ch.PhoneNum, err = h.con.Prompt("Enter the new phone number (Leave blank to keep the same): "); err != nil {
		return err
	}

	if err := h.svc.Users.Update(ctx, identity, u.Login, ch); err != nil {
		return h.report(err)
	}
	h.con.Println("User updated successfully!")
	return nil
}
