package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantOK   bool
	}{
		{name: "sentinel", err: ErrOrderNotFound, wantCode: ErrCodeOrderNotFound, wantOK: true},
		{name: "wrapped sentinel", err: fmt.Errorf("lookup: %w", ErrInvalidCredentials), wantCode: ErrCodeInvalidCredentials, wantOK: true},
		{name: "plain error", err: errors.New("boom"), wantOK: false},
		{name: "nil", err: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de, ok := AsDomainError(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantCode, de.Code)
			}
		})
	}
}

func TestOrderResponse_JSON(t *testing.T) {
	resp := OrderResponse{
		ID:     1,
		UserID: 7,
		Total:  decimal.RequireFromString("35.00"),
		Items:  []OrderItem{},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":1,"userId":7,"total":35,"items":[]}`, string(data))
}

func TestUser_JSONHidesPasswordHash(t *testing.T) {
	data, err := json.Marshal(User{ID: 1, Name: "A", Email: "a@example.com", PasswordHash: "secret-hash"})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret-hash")
	assert.NotContains(t, string(data), "password")
}

func TestCreateProductRequest_AcceptsNumberOrString(t *testing.T) {
	var a, b CreateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","price":10.5}`), &a))
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","price":"10.5"}`), &b))

	assert.True(t, a.Price.Equal(b.Price))
}
