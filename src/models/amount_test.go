package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"number", `500000000`, 500000000},
		{"float floors", `1234.9`, 1234},
		{"string with separators", `"1,200,000,000"`, 1200000000},
		{"plain string", `"42000"`, 42000},
		{"empty string", `""`, 0},
		{"garbage string", `"abc"`, 0},
		{"null", `null`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tt.in), &a)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Int64())
		})
	}
}

func TestTransactionUnmarshalMixedAmountForms(t *testing.T) {
	raw := `{
		"amounts": {
			"transferPrice": "500,000,000",
			"acquisitionPriceMethod": "actual",
			"acquisitionPrice": 300000000,
			"expenseMethod": "actual"
		}
	}`
	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))
	assert.Equal(t, int64(500000000), tx.Amounts.TransferPrice.Int64())
	assert.Equal(t, int64(300000000), tx.Amounts.AcquisitionPrice.Int64())
}

func TestIsLandType(t *testing.T) {
	assert.True(t, IsLandType(AssetLand))
	assert.True(t, IsLandType(AssetLandFarm))
	assert.False(t, IsLandType(AssetGeneralHouse))
	assert.False(t, IsLandType(AssetUnregistered))
}
