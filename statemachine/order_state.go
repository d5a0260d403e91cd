package statemachine

import (
	"fmt"

	"coffeeshop-api/models"
)

// Transition defines a valid state change and which role may perform it
type Transition struct {
	From models.OrderStatus
	To   models.OrderStatus
	Role models.Role
}

// validTransitions is the authoritative state machine definition.
// Baristas and admins drive the order through its lifecycle; a customer may
// only cancel their own order while it is still pending (ownership is checked
// separately, before this table is consulted).
var validTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusInProgress, Role: models.RoleBarista},
	{From: models.StatusPending, To: models.StatusInProgress, Role: models.RoleAdmin},
	{From: models.StatusInProgress, To: models.StatusCompleted, Role: models.RoleBarista},
	{From: models.StatusInProgress, To: models.StatusCompleted, Role: models.RoleAdmin},
	{From: models.StatusPending, To: models.StatusCancelled, Role: models.RoleCustomer},
	{From: models.StatusPending, To: models.StatusCancelled, Role: models.RoleBarista},
	{From: models.StatusPending, To: models.StatusCancelled, Role: models.RoleAdmin},
	{From: models.StatusInProgress, To: models.StatusCancelled, Role: models.RoleBarista},
	{From: models.StatusInProgress, To: models.StatusCancelled, Role: models.RoleAdmin},
}

type transitionKey struct {
	From models.OrderStatus
	To   models.OrderStatus
	Role models.Role
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Role}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks whether the given role may move an order from one
// state to another. Returns nil when the transition is allowed.
func CanTransition(from, to models.OrderStatus, role models.Role) error {
	if transitionMap[transitionKey{From: from, To: to, Role: role}] {
		return nil
	}
	return fmt.Errorf("invalid transition: %s -> %s is not allowed for role %q (valid next states from %s: %s)",
		from, to, role, from, describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// AllTransitions returns the full state machine for documentation
func AllTransitions() []Transition {
	return validTransitions
}
