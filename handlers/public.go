package handlers

import (
	"context"
	"errors"

	"pizza-store-cli/models"
)

// ViewMenu prints every item on the menu
func (h *Handler) ViewMenu(ctx context.Context) error {
	items, err := h.svc.Menu.List(ctx)
	if errors.Is(err, models.ErrNoRecords) {
		h.con.Println("The menu is empty. No items available.")
		return nil
	}
	if err != nil {
		return h.report(err)
	}
	h.con.Println("---- Menu ----")
	h.printItems(items)
	return nil
}

func (h *Handler) printItems(items []models.Item) {
	for _, item := range items {
		h.con.Println("Item Name: " + item.ItemName)
		h.con.Println("Ingredients: " + item.Ingredients)
		h.con.Println("Type: " + item.TypeOfItem)
		h.con.Println("Price: " + price(item.Price))
		h.con.Println("Description: " + item.Description)
		h.con.Println("-----------------------")
	}
}

// ViewStores prints every store; a missing review score reads N/A
func (h *Handler) ViewStores(ctx context.Context) error {
	stores, err := h.svc.Stores.List(ctx)
	if errors.Is(err, models.ErrNoRecords) {
		h.con.Println("No stores found in the database.")
		return nil
	}
	if err != nil {
		return h.report(err)
	}
	h.con.Println("---- Store List ----")
	for _, s := range stores {
		score := "N/A"
		if s.ReviewScore != nil {
			score = humanizeScore(*s.ReviewScore)
		}
		h.con.Printf("Store ID: %d\n", s.StoreID)
		h.con.Println("Address: " + s.Address)
		h.con.Println("City: " + s.City)
		h.con.Println("State: " + s.State)
		h.con.Println("Is Open: " + s.IsOpen)
		h.con.Println("Review Score: " + score)
		h.con.Println("-----------------------")
	}
	return nil
}
