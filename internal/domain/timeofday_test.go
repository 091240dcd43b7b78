package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripweaver/backend/internal/domain"
)

func TestParseTimeOfDay(t *testing.T) {
	got, err := domain.ParseTimeOfDay("14:30")

	require.NoError(t, err)
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, "14:30", got.String())
}

func TestParseTimeOfDay_Midnight(t *testing.T) {
	got, err := domain.ParseTimeOfDay("00:00")

	require.NoError(t, err)
	assert.Equal(t, domain.TimeOfDay(0), got)
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, s := range []string{"", "25:00", "12:60", "noon", "12:30:45"} {
		_, err := domain.ParseTimeOfDay(s)
		assert.ErrorIs(t, err, domain.ErrValidation, "input %q", s)
	}
}

func TestMinutesOfDay_Range(t *testing.T) {
	got, err := domain.MinutesOfDay(23*60 + 59)
	require.NoError(t, err)
	assert.Equal(t, "23:59", got.String())

	_, err = domain.MinutesOfDay(24 * 60)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = domain.MinutesOfDay(-1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTimeOfDay_JSONRoundTrip(t *testing.T) {
	tod, err := domain.ParseTimeOfDay("09:05")
	require.NoError(t, err)

	raw, err := json.Marshal(tod)
	require.NoError(t, err)
	assert.Equal(t, `"09:05"`, string(raw))

	var back domain.TimeOfDay
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, tod, back)
}
