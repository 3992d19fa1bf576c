package salary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustIdentity(t *testing.T) {
	for _, s := range []float64{0, 1_000_000, 12_569_100, -500} {
		assert.Equal(t, s, Adjust(s, 2024, 2024, 0.02))
	}
}

func TestAdjustCompounds(t *testing.T) {
	// Two years at 2%: 1.02^2 = 1.0404
	got := Adjust(1_000_000, 2023, 2025, 0.02)
	assert.InDelta(t, 1_040_400, got, 0.01)
}

func TestAdjustRoundTrip(t *testing.T) {
	original := 8_342_880.0
	forward := Adjust(original, 2019, 2025, 0.02)
	back := Adjust(forward, 2025, 2019, 0.02)
	assert.InDelta(t, original, back, 1e-6)
}

func TestAdjustDeflation(t *testing.T) {
	// Going back in time deflates below the nominal amount.
	got := Adjust(1_000_000, 2025, 2019, 0.02)
	assert.Less(t, got, 1_000_000.0)
	assert.InDelta(t, 1_000_000/Adjust(1, 2019, 2025, 0.02), got, 1e-6)
}

func TestAdjustSeasonParsesLabels(t *testing.T) {
	got, err := AdjustSeason(1_000_000, "2023-24", "2025-26", 0.02)
	require.NoError(t, err)
	assert.InDelta(t, 1_040_400, got, 0.01)

	_, err = AdjustSeason(1_000_000, "not-a-season", "2025-26", 0.02)
	assert.Error(t, err)
}
