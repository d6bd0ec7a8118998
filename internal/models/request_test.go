package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetStatusRejectsUnknownValues(t *testing.T) {
	invalid := []string{"", "Cancelled", "Rejected", "pending", "PENDING", "Done"}

	for _, status := range invalid {
		t.Run("rejects "+status, func(t *testing.T) {
			request := BloodRequest{Status: StatusPending}

			err := request.SetStatus(status)

			assert.ErrorIs(t, err, ErrInvalidStatus)
			assert.Equal(t, StatusPending, request.Status)
		})
	}
}

func TestSetStatusAllowsAnyTransition(t *testing.T) {
	// The workflow is deliberately unconstrained: backward moves included.
	transitions := []struct {
		from, to string
	}{
		{StatusPending, StatusAccepted},
		{StatusAccepted, StatusCompleted},
		{StatusCompleted, StatusPending},
		{StatusPending, StatusCompleted},
		{StatusCompleted, StatusCompleted},
	}

	for _, tr := range transitions {
		t.Run(tr.from+" to "+tr.to, func(t *testing.T) {
			before := time.Now().Add(-time.Hour)
			request := BloodRequest{Status: tr.from, UpdatedAt: before}

			err := request.SetStatus(tr.to)

			assert.NoError(t, err)
			assert.Equal(t, tr.to, request.Status)
			assert.True(t, request.UpdatedAt.After(before), "UpdatedAt must be refreshed")
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range RequestStatuses {
		assert.True(t, IsValidStatus(status))
	}
	assert.False(t, IsValidStatus("Cancelled"))
	assert.False(t, IsValidStatus(""))
}
