package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{name: "whole units", input: "150", want: 15000},
		{name: "one decimal", input: "99.5", want: 9950},
		{name: "two decimals", input: "12.75", want: 1275},
		{name: "zero", input: "0", want: 0},
		{name: "negative", input: "-10.25", want: -1025},
		{name: "leading dot", input: ".5", want: 50},
		{name: "whitespace", input: " 42 ", want: 4200},
		{name: "too many decimals", input: "1.005", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmountString(t *testing.T) {
	tests := []struct {
		amount Amount
		want   string
	}{
		{amount: 15000, want: "150"},
		{amount: 1275, want: "12.75"},
		{amount: 9950, want: "99.5"},
		{amount: 0, want: "0"},
		{amount: -1025, want: "-10.25"},
		{amount: -50, want: "-0.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.amount.String())
	}
}

func TestAmountJSONRoundTrip(t *testing.T) {
	type payload struct {
		Amount Amount `json:"amount"`
	}

	data, err := json.Marshal(payload{Amount: 1275})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": 12.75}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 150}`), &decoded))
	assert.Equal(t, Amount(15000), decoded.Amount)

	// Numeric strings are also accepted on input.
	require.NoError(t, json.Unmarshal([]byte(`{"amount": "99.5"}`), &decoded))
	assert.Equal(t, Amount(9950), decoded.Amount)
}

func TestFromMajor(t *testing.T) {
	assert.Equal(t, Amount(250000), FromMajor(2500))
}
