package prayer

import (
	"fmt"
	"strings"
)

type Method string

const (
	MethodStandard Method = "standard"
	MethodMakkah   Method = "makkah"
	MethodISNA     Method = "isna"
)

type Madhab string

const (
	MadhabShafi  Madhab = "shafi"
	MadhabHanafi Madhab = "hanafi"
)

// Config selects the adjustment rules applied on top of the base solar times.
type Config struct {
	Method Method
	Madhab Madhab
}

// ParseMethod accepts any identifier. Unknown methods are kept as-is and get
// no adjustment; empty means standard.
func ParseMethod(s string) Method {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return MethodStandard
	}
	return Method(s)
}

// ParseMadhab returns ErrInvalidConfig for anything but shafi or hanafi.
// Empty means shafi.
func ParseMadhab(s string) (Madhab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(MadhabShafi):
		return MadhabShafi, nil
	case string(MadhabHanafi):
		return MadhabHanafi, nil
	default:
		return "", fmt.Errorf("%w: unknown madhab %q", ErrInvalidConfig, s)
	}
}

// ParseConfig builds a Config from raw identifiers.
func ParseConfig(method, madhab string) (Config, error) {
	m, err := ParseMadhab(madhab)
	if err != nil {
		return Config{}, err
	}
	return Config{Method: ParseMethod(method), Madhab: m}, nil
}

func (m Madhab) shadowCoefficient() float64 {
	if m == MadhabHanafi {
		return 2
	}
	return 1
}
