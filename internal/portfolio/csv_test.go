package portfolio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadHoldings(t *testing.T) {
	path := writeCSV(t, "ticker,shares,avg_cost,sector\naapl,25,148.30,Technology\nMSFT,12.5,289.10,Technology\n")

	holdings, err := LoadHoldings(path)
	require.NoError(t, err)
	require.Len(t, holdings, 2)

	assert.Equal(t, "AAPL", holdings[0].Ticker) // upper-cased
	assert.Equal(t, 25.0, holdings[0].Shares)
	assert.Equal(t, 148.30, holdings[0].AvgCost)
	assert.Equal(t, "Technology", holdings[0].Sector)
	assert.Equal(t, 12.5, holdings[1].Shares)
}

func TestLoadHoldings_HeaderNormalization(t *testing.T) {
	// Mixed case and stray whitespace in the header, columns reordered
	path := writeCSV(t, " Sector , TICKER ,Avg_Cost,shares\nTech,nvda,412.55,8\n")

	holdings, err := LoadHoldings(path)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "NVDA", holdings[0].Ticker)
	assert.Equal(t, 412.55, holdings[0].AvgCost)
	assert.Equal(t, 8.0, holdings[0].Shares)
}

func TestLoadHoldings_MissingColumns(t *testing.T) {
	path := writeCSV(t, "ticker,shares\nAAPL,25\n")

	_, err := LoadHoldings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "avg_cost")
	assert.Contains(t, err.Error(), "sector")
}

func TestLoadHoldings_BadNumber(t *testing.T) {
	path := writeCSV(t, "ticker,shares,avg_cost,sector\nAAPL,lots,148.30,Tech\n")

	_, err := LoadHoldings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shares")
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoadHoldings_MissingFile(t *testing.T) {
	_, err := LoadHoldings(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadUniverse(t *testing.T) {
	path := writeCSV(t, "ticker,company_name,sector,growth_pct_3y,ai_exposure\nnvda,NVIDIA Corp.,Semiconductors,58,95\nAMD,Advanced Micro Devices,Semiconductors,22,80\n")

	candidates, err := LoadUniverse(path)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "NVDA", candidates[0].Ticker)
	assert.Equal(t, "NVIDIA Corp.", candidates[0].CompanyName)
	assert.Equal(t, 58.0, candidates[0].GrowthPct3y)
	assert.Equal(t, 95.0, candidates[0].AIExposureScore)
}

func TestLoadUniverse_MissingColumns(t *testing.T) {
	path := writeCSV(t, "ticker,sector\nNVDA,Semis\n")

	_, err := LoadUniverse(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "company_name")
	assert.Contains(t, err.Error(), "growth_pct_3y")
}
