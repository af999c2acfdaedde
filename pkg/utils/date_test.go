package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateStamp(t *testing.T) {
	// 2026-08-31 00:00:00 WIB
	start, err := ParseDateStartOfDay("2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, "20260831", DateStamp(start))

	// One second before midnight WIB still belongs to the same day.
	end, err := ParseDateEndOfDay("2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, "20260831", DateStamp(end))
	assert.Equal(t, "20260901", DateStamp(end+1))
}

func TestParseDateRange(t *testing.T) {
	start, err := ParseDateStartOfDay("2026-08-31")
	require.NoError(t, err)

	end, err := ParseDateEndOfDay("2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, int64(24*60*60-1), end-start)

	_, err = ParseDateStartOfDay("31/08/2026")
	assert.Error(t, err)
}
