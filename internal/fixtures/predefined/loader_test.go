package predefined_test

import (
	"strings"
	"testing"

	"github.com/amirasaad/networth/internal/fixtures/predefined"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencies(t *testing.T) {
	currencies, err := predefined.Currencies()
	require.NoError(t, err)
	require.Len(t, currencies, 15)

	codes := make([]string, 0, len(currencies))
	var crypto int
	for _, c := range currencies {
		codes = append(codes, c.Code)
		if c.Type == "crypto" {
			crypto++
		}
	}
	assert.Equal(t, 5, crypto)
	assert.Contains(t, codes, "USD")
	assert.Contains(t, codes, "NZD")
	assert.Contains(t, codes, "BCH")
}

func TestCategories(t *testing.T) {
	categories, err := predefined.Categories()
	require.NoError(t, err)
	require.Len(t, categories, 6)
	assert.Equal(t, predefined.Category{Name: "Bank Transfer", Type: "transfer"}, categories[5])
}

func TestAssetTypes(t *testing.T) {
	names, err := predefined.AssetTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"Real Estate", "Vehicle", "Precious Metals", "Collectibles", "Art"}, names)
}

func TestParseCurrencies(t *testing.T) {
	csvContent := `code,name,symbol,type
USD,US Dollar,$,fiat
broken,row
DOGE,Dogecoin,Ð,crypto`

	currencies, err := predefined.ParseCurrencies(strings.NewReader(csvContent))
	require.NoError(t, err)
	require.Len(t, currencies, 2)
	assert.Equal(t, "DOGE", currencies[1].Code)
	assert.Equal(t, "crypto", currencies[1].Type)
}

func TestParseCurrencies_InvalidHeader(t *testing.T) {
	_, err := predefined.ParseCurrencies(strings.NewReader("code,name\nUSD,US Dollar"))
	assert.Error(t, err)
}
