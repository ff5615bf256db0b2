// Package handlers renders each menu action on the console and maps service
// outcomes to one-line messages.
package handlers

import (
	"errors"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"pizza-store-cli/console"
	"pizza-store-cli/database"
	"pizza-store-cli/models"
	"pizza-store-cli/services"
)

// Services groups what the handlers call into.
type Services struct {
	Auth    *services.AuthService
	Profile *services.ProfileService
	Menu    *services.MenuService
	Stores  *services.StoreService
	Orders  *services.OrderService
	Users   *services.UserAdminService
}

type Handler struct {
	con *console.Console
	svc Services
	log logrus.FieldLogger
}

func New(con *console.Console, svc Services, log logrus.FieldLogger) *Handler {
	return &Handler{con: con, svc: svc, log: log}
}

// WithLogger returns a copy of h that logs through log.
func (h *Handler) WithLogger(log logrus.FieldLogger) *Handler {
	c := *h
	c.log = log
	return &c
}

// IsFatal reports whether err must end the session instead of returning to
// the menu: the input is gone or the database link is down.
func IsFatal(err error) bool {
	var connErr *database.ConnectionError
	return errors.Is(err, io.EOF) || errors.As(err, &connErr)
}

// report prints a one-line explanation of err. Fatal errors are returned to
// the caller; everything else is handled here.
func (h *Handler) report(err error) error {
	if err == nil {
		return nil
	}
	if IsFatal(err) {
		return err
	}

	var verr *models.ValidationError
	var stmtErr *database.StatementError
	switch {
	case errors.As(err, &verr):
		h.con.Println(sentence(verr.Error()))
	case errors.Is(err, models.ErrAccessDenied):
		h.con.Println(sentence(err.Error()))
	case errors.Is(err, models.ErrNoOp):
		h.con.Println("No updates were made. All fields were left blank or unchanged.")
	case errors.Is(err, models.ErrNotFound):
		h.con.Println("No matching record found.")
	case errors.Is(err, models.ErrNoRecords):
		h.con.Println("No records found.")
	case errors.Is(err, models.ErrInvalidCredentials):
		h.con.Println("Invalid login credentials.")
	case errors.Is(err, models.ErrDuplicateLogin):
		h.con.Println("Woah there! That username is taken. Please pick a different one.")
	case errors.Is(err, models.ErrDuplicateItem):
		h.con.Println("An item with that name is already on the menu.")
	case errors.Is(err, models.ErrNotSupported):
		h.con.Println("Sorry, that is not yet supported.")
	case errors.As(err, &stmtErr):
		h.log.WithError(err).WithField("sqlstate", stmtErr.Code).Error("statement failed")
		h.con.Println("The request could not be completed. Please try again later.")
	default:
		h.log.WithError(err).Error("unexpected error")
		h.con.Println("Something went wrong. Please try again later.")
	}
	return nil
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

func price(p float64) string {
	return "$" + humanize.FormatFloat("#,###.##", p)
}

func humanizeScore(s float64) string {
	return humanize.FormatFloat("#.#", s)
}
