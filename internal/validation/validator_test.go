package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpenseDateTag(t *testing.T) {
	v := NewValidator().GetValidate()

	type payload struct {
		Date string `validate:"expense_date"`
	}

	tests := []struct {
		name  string
		date  string
		valid bool
	}{
		{"valid date", "2025-01-15", true},
		{"leap day", "2024-02-29", true},
		{"empty", "", false},
		{"wrong separator", "2025/01/15", false},
		{"day first", "15-01-2025", false},
		{"impossible date", "2023-02-30", false},
		{"month out of range", "2025-13-01", false},
		{"missing zero padding", "2025-1-5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(payload{Date: tt.date})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestUsernameTag(t *testing.T) {
	v := NewValidator().GetValidate()

	type payload struct {
		Username string `validate:"username"`
	}

	assert.NoError(t, v.Struct(payload{Username: "spender_01"}))
	assert.Error(t, v.Struct(payload{Username: "bad name"}))
	assert.Error(t, v.Struct(payload{Username: "name!"}))
	assert.Error(t, v.Struct(payload{Username: ""}))
}

func TestPositiveAmountTag(t *testing.T) {
	v := NewValidator().GetValidate()

	type payload struct {
		Amount int64 `validate:"positive_amount"`
	}

	assert.NoError(t, v.Struct(payload{Amount: 1}))
	assert.Error(t, v.Struct(payload{Amount: 0}))
	assert.Error(t, v.Struct(payload{Amount: -100}))
}

func TestGetValidator_ReturnsSharedInstance(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
