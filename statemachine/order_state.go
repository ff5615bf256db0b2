package statemachine

import (
	"errors"
	"strings"

	"pizza-store-cli/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

// validTransitions is the authoritative state machine definition.
// Managers are not listed: they may override any order to any known status.
var validTransitions = []Transition{
	// Driver hands the order over
	{From: models.StatusIncomplete, To: models.StatusDelivered, Actor: models.RoleDriver},
	{From: models.StatusComplete, To: models.StatusDelivered, Actor: models.RoleDriver},
}

var knownStatuses = []models.OrderStatus{
	models.StatusIncomplete,
	models.StatusComplete,
	models.StatusDelivered,
	models.StatusCancelled,
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// IsKnown reports whether status is one of the order statuses this system writes.
func IsKnown(status models.OrderStatus) bool {
	for _, s := range knownStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ValidTransitionsFrom returns the statuses actor may move an order to from status.
func ValidTransitionsFrom(status models.OrderStatus, actor models.UserRole) []models.OrderStatus {
	var nexts []models.OrderStatus
	if actor == models.RoleManager {
		for _, s := range knownStatuses {
			if s != status {
				nexts = append(nexts, s)
			}
		}
		return nexts
	}
	for _, t := range validTransitions {
		if t.From == status && t.Actor == actor {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor models.UserRole) error {
	if !IsKnown(to) {
		return errors.New("unknown status '" + string(to) + "'. Known statuses are: " + join(knownStatuses))
	}
	if actor == models.RoleManager || transitionMap[transitionKey{from, to, actor}] {
		return nil
	}
	return errors.New(
		"transition " + string(from) + " → " + string(to) +
			" is not allowed for a " + string(actor) + ". " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from, actor),
	)
}

func describeValidFrom(status models.OrderStatus, actor models.UserRole) string {
	nexts := ValidTransitionsFrom(status, actor)
	if len(nexts) == 0 {
		return "none"
	}
	return join(nexts)
}

func join(statuses []models.OrderStatus) string {
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
