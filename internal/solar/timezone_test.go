package solar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

func TestTZFResolver(t *testing.T) {
	r, err := NewTZFResolver()
	require.NoError(t, err)

	name, err := r.Resolve(24.7136, 46.6753)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Riyadh", name)

	name, err = r.Resolve(41.8781, -87.6298)
	require.NoError(t, err)
	assert.Equal(t, "America/Chicago", name)

	// open ocean maps to the nautical zone for the longitude
	name, err = r.Resolve(0, -140)
	require.NoError(t, err)
	assert.Equal(t, "Etc/GMT+9", name)
}

func TestStaticResolver(t *testing.T) {
	name, err := StaticResolver("Europe/Istanbul").Resolve(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Istanbul", name)

	_, err = StaticResolver("Mars/Olympus").Resolve(0, 0)
	assert.True(t, errors.Is(err, prayer.ErrAstronomicalDataUnavailable))
}
