package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Hertz is a frequency in cycles per second
type Hertz float64

// Period returns the duration of a single cycle, 0 for non-positive frequencies
func (h Hertz) Period() time.Duration {
	if h <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(h))
}

func (h Hertz) String() string {
	return strconv.FormatFloat(float64(h), 'f', -1, 64) + "Hz"
}

// ParseHertz parses values like "50", "50Hz", "50 hz" or "1kHz"
func ParseHertz(s string) (Hertz, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	multiplier := 1.0
	switch {
	case strings.HasSuffix(value, "khz"):
		multiplier = 1000
		value = strings.TrimSuffix(value, "khz")
	case strings.HasSuffix(value, "hz"):
		value = strings.TrimSuffix(value, "hz")
	}
	value = strings.TrimSpace(value)

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as frequency: %w", s, err)
	}
	return Hertz(f * multiplier), nil
}

// HertzHookFunc returns a mapstructure decode hook that allows frequencies
// to be written with a unit suffix.
func HertzHookFunc() mapstructure.DecodeHookFuncType {
	hertzType := reflect.TypeOf(Hertz(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != hertzType || f.Kind() != reflect.String {
			return data, nil
		}
		return ParseHertz(data.(string))
	}
}
