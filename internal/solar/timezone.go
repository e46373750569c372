package solar

import (
	"fmt"
	"time"

	"github.com/ringsaturn/tzf"

	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

// TZFResolver looks timezones up in the polygon data bundled with tzf.
type TZFResolver struct {
	finder tzf.F
}

func NewTZFResolver() (*TZFResolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("load timezone finder: %w", err)
	}
	return &TZFResolver{finder: finder}, nil
}

// Resolve returns the IANA name for the coordinates. Over open ocean tzf
// answers with the nautical zone for the longitude (e.g. "Etc/GMT+9" at
// 0,-140), which is a real zone rather than a fallback. Only an empty answer
// is an error.
func (r *TZFResolver) Resolve(latitude, longitude float64) (string, error) {
	name := r.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("%w: no timezone for %.4f,%.4f", prayer.ErrAstronomicalDataUnavailable, latitude, longitude)
	}
	return name, nil
}

// StaticResolver always answers with the same timezone. Used when the
// timezone is configured explicitly.
type StaticResolver string

func (s StaticResolver) Resolve(_, _ float64) (string, error) {
	if _, err := time.LoadLocation(string(s)); err != nil {
		return "", fmt.Errorf("%w: %w", prayer.ErrAstronomicalDataUnavailable, err)
	}
	return string(s), nil
}
