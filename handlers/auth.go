package handlers

import (
	"context"

	"pizza-store-cli/services"
)

// CreateUser walks through self-registration. Each field is re-prompted
// until it passes its rule.
func (h *Handler) CreateUser(ctx context.Context) error {
	h.con.Println("Thank you for creating a User at Papa's Pizzeria! What do you want your Username to be?")
	var req services.RegisterRequest
	var err error

	if req.Login, err = h.con.PromptValid("Username: ", h.check("login")); err != nil {
		return h.report(err)
	}
	h.con.Println("Cool name! What do you want your password to be?")
	if req.Password, err = h.con.PromptValid("Password: ", h.check("password")); err != nil {
		return h.report(err)
	}
	h.con.Println("That's a very safe password! What's your favorite item on our menu?")
	if req.FavoriteItems, err = h.con.Prompt("Favorite Item: "); err != nil {
		return h.report(err)
	}
	h.con.Println("Lastly, all we need is your phone number to send you discounts and deals!")
	if req.PhoneNum, err = h.con.PromptValid("Phone Number: ", h.check("phoneNum")); err != nil {
		return h.report(err)
	}

	if err := h.svc.Auth.Register(ctx, req); err != nil {
		return h.report(err)
	}
	h.con.Println("User created successfully!")
	return nil
}

func (h *Handler) check(field string) func(string) error {
	return func(value string) error {
		return h.svc.Auth.ValidateField(field, value)
	}
}

// LogIn returns the identity on success and "" when the credentials were refused.
func (h *Handler) LogIn(ctx context.Context) (string, error) {
	login, err := h.con.Prompt("Enter Username: ")
	if err != nil {
		return "", err
	}
	password, err := h.con.Prompt("Enter Password: ")
	if err != nil {
		return "", err
	}

	identity, err := h.svc.Auth.Login(ctx, login, password)
	if err != nil {
		return "", h.report(err)
	}
	h.con.Println("Login successful!")
	return identity, nil
}
