// Package routes maps menu choices to handlers and keeps the logged-in state.
package routes

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pizza-store-cli/console"
	"pizza-store-cli/handlers"
	"pizza-store-cli/middleware"
)

// Main menu choices.
const (
	choiceCreateUser = 1
	choiceLogIn      = 2
	choiceExit       = 9
	choiceLogOut     = 20
)

type action func(h *handlers.Handler, ctx context.Context, identity string) error

type route struct {
	choice int
	label  string
	run    action
}

// userRoutes is the logged-in menu. Role checks happen inside each mutator,
// so every entry is listed for every role.
var userRoutes = []route{
	// ── Viewers ────────────────────────────────────────────────────
	{1, "View Profile", (*handlers.Handler).ViewProfile},
	{2, "Update Profile", (*handlers.Handler).UpdateProfile},
	{3, "View Menu", func(h *handlers.Handler, ctx context.Context, _ string) error { return h.ViewMenu(ctx) }},
	{4, "Place Order", (*handlers.Handler).PlaceOrder},
	{5, "View Full Order ID History", (*handlers.Handler).ViewOrderHistory},
	{6, "View Past 5 Order IDs", (*handlers.Handler).ViewRecentOrders},
	{7, "View Order Information", (*handlers.Handler).ViewOrderInfo},
	{8, "View Stores", func(h *handlers.Handler, ctx context.Context, _ string) error { return h.ViewStores(ctx) }},

	// ── Driver & manager ───────────────────────────────────────────
	{9, "Update Order Status", (*handlers.Handler).UpdateOrderStatus},

	// ── Manager ────────────────────────────────────────────────────
	{10, "Update Menu", (*handlers.Handler).UpdateMenu},
	{11, "Update User", (*handlers.Handler).UpdateUser},
}

type Dispatcher struct {
	con      *console.Console
	h        *handlers.Handler
	sessions *middleware.Sessions
	log      logrus.FieldLogger
}

func NewDispatcher(con *console.Console, h *handlers.Handler, sessions *middleware.Sessions, log logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{con: con, h: h, sessions: sessions, log: log}
}

// Run drives the main menu until the user exits or the input ends. Only a
// fatal error, such as losing the database connection, is returned.
func (d *Dispatcher) Run(ctx context.Context) error {
	return quiet(d.mainMenu(ctx))
}

func (d *Dispatcher) mainMenu(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.con.Println("MAIN MENU")
		d.con.Println("---------")
		d.con.Println("1. Create user")
		d.con.Println("2. Log in")
		d.con.Println("9. < EXIT")

		choice, err := d.con.ReadChoice()
		if err != nil {
			return err
		}
		switch choice {
		case choiceCreateUser:
			err = d.h.CreateUser(ctx)
		case choiceLogIn:
			var identity string
			identity, err = d.h.LogIn(ctx)
			if err == nil && identity != "" {
				err = d.userMenu(ctx, identity)
			}
		case choiceExit:
			return nil
		default:
			d.con.Println("Unrecognized choice!")
		}
		if err != nil {
			return err
		}
	}
}

// userMenu runs one logged-in session. The identity lives in a signed token;
// once it expires the user is sent back to the main menu.
func (d *Dispatcher) userMenu(ctx context.Context, identity string) error {
	token, err := d.sessions.GenerateToken(identity)
	if err != nil {
		return err
	}
	log := d.log.WithFields(logrus.Fields{"session": uuid.NewString(), "login": identity})
	h := d.h.WithLogger(log)
	log.Info("session started")
	defer log.Info("session ended")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.printUserMenu()
		choice, err := d.con.ReadChoice()
		if err != nil {
			return err
		}
		if choice == choiceLogOut {
			return nil
		}

		identity, err := d.sessions.Identity(token)
		if errors.Is(err, middleware.ErrSessionExpired) {
			log.Info("session expired")
			d.con.Println("Your session has expired. Please log in again.")
			return nil
		}
		if err != nil {
			return err
		}

		r, ok := lookup(choice)
		if !ok {
			d.con.Println("Unrecognized choice!")
			continue
		}
		log.WithField("action", r.label).Debug("dispatch")
		if err := r.run(h, ctx, identity); err != nil {
			return err
		}
	}
}

func (d *Dispatcher) printUserMenu() {
	d.con.Println("MAIN MENU")
	d.con.Println("---------")
	for _, r := range userRoutes {
		d.con.Printf("%d. %s\n", r.choice, r.label)
	}
	d.con.Println(".........................")
	d.con.Printf("%d. Log out\n", choiceLogOut)
}

func lookup(choice int) (route, bool) {
	for _, r := range userRoutes {
		if r.choice == choice {
			return r, true
		}
	}
	return route{}, false
}

// quiet treats the end of input as a normal exit.
func quiet(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
