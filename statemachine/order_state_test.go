package statemachine

import (
	"testing"

	"coffeeshop-api/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		role    models.Role
		allowed bool
	}{
		{"barista starts order", models.StatusPending, models.StatusInProgress, models.RoleBarista, true},
		{"admin starts order", models.StatusPending, models.StatusInProgress, models.RoleAdmin, true},
		{"customer cannot start order", models.StatusPending, models.StatusInProgress, models.RoleCustomer, false},
		{"barista completes order", models.StatusInProgress, models.StatusCompleted, models.RoleBarista, true},
		{"customer cancels pending", models.StatusPending, models.StatusCancelled, models.RoleCustomer, true},
		{"customer cannot cancel in-progress", models.StatusInProgress, models.StatusCancelled, models.RoleCustomer, false},
		{"barista cancels in-progress", models.StatusInProgress, models.StatusCancelled, models.RoleBarista, true},
		{"no skipping to completed", models.StatusPending, models.StatusCompleted, models.RoleAdmin, false},
		{"completed is terminal", models.StatusCompleted, models.StatusCancelled, models.RoleAdmin, false},
		{"cancelled is terminal", models.StatusCancelled, models.StatusInProgress, models.RoleAdmin, false},
		{"no going backwards", models.StatusInProgress, models.StatusPending, models.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.role)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusInProgress, models.StatusCancelled},
		ValidTransitionsFrom(models.StatusPending))

	assert.ElementsMatch(t,
		[]models.OrderStatus{models.StatusCompleted, models.StatusCancelled},
		ValidTransitionsFrom(models.StatusInProgress))

	assert.Empty(t, ValidTransitionsFrom(models.StatusCompleted))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, models.StatusCompleted.Terminal())
	assert.True(t, models.StatusCancelled.Terminal())
	assert.False(t, models.StatusPending.Terminal())
	assert.False(t, models.StatusInProgress.Terminal())
}
