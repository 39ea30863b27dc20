package l10n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageHelpersUseDefaults(t *testing.T) {
	assert.Equal(t, "1,234.50", FormatNumber("en", 1234.5, 2))
	assert.Equal(t, "1.234,50", FormatNumber("de", 1234.5, 2))
	assert.Equal(t, "1.5 KB", FormatFileSize("en", 1536, 1))
	assert.Equal(t, 1234.5, ParseNumber("de", "1.234,50"))

	assert.Equal(t, "$1,234.50", FormatCurrency("en", 1234.5, "USD"))
	assert.Equal(t, "($50.50)", FormatAccounting("en", -50.5, "USD"))
	assert.Equal(t, -50.5, ParseCurrency("en", "($50.50)", "USD"))

	ts := time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)
	date, err := FormatDate("en", ts, PresetLong)
	require.NoError(t, err)
	assert.Equal(t, "March 15, 2024", date)

	clock, err := FormatTime("de", ts, PresetShort)
	require.NoError(t, err)
	assert.Equal(t, "14:30", clock)

	_, err = FormatDateTime("en", ts, FormatPreset(9))
	require.ErrorIs(t, err, ErrUnknownPreset)

	assert.Equal(t, "2 hours ago", FormatRelative("en", time.Now().Add(-2*time.Hour-time.Minute)))
	assert.Same(t, defaultConfig(), defaultConfig())
}
