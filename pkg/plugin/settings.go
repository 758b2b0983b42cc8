package plugin

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultSize = 1024

type Settings struct {
	APIKey string `json:"stabilityAPIKey" yaml:"stabilityAPIKey"`

	Width  Dimension `json:"width,omitempty" yaml:"width,omitempty"`
	Height Dimension `json:"height,omitempty" yaml:"height,omitempty"`
}

// Dimension holds a width or height as the user entered it, either a number or a string.
type Dimension string

func DimensionOf(v int) Dimension {
	return Dimension(strconv.Itoa(v))
}

// Int coerces the dimension to a number. Missing, unparsable, zero and
// non-finite values yield fallback. Fractions are truncated; unsigned
// 0x, 0o and 0b literals are accepted.
func (d Dimension) Int(fallback int) int {
	s := strings.TrimSpace(string(d))

	if s == "" {
		return fallback
	}

	v, err := parseNumber(s)

	if err != nil || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}

	if v > math.MaxInt32 || v < math.MinInt32 {
		return fallback
	}

	return int(v)
}

func (d *Dimension) UnmarshalJSON(data []byte) error {
	var v any

	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*d = DimensionFrom(v)
	return nil
}

func (d *Dimension) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		*d = ""
		return nil
	}

	if value.Tag == "!!null" {
		*d = ""
		return nil
	}

	*d = Dimension(value.Value)
	return nil
}

// DimensionFrom converts a decoded JSON or tool argument value. true counts
// as 1; false, nil and other types are treated as missing.
func DimensionFrom(v any) Dimension {
	switch val := v.(type) {
	case Dimension:
		return val

	case string:
		return Dimension(val)

	case float64:
		return Dimension(strconv.FormatFloat(val, 'f', -1, 64))

	case int:
		return DimensionOf(val)

	case json.Number:
		return Dimension(val.String())

	case bool:
		if val {
			return "1"
		}

		return ""
	}

	return ""
}

func parseNumber(s string) (float64, error) {
	if len(s) > 2 && s[0] == '0' {
		base := 0

		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}

		if base != 0 {
			v, err := strconv.ParseUint(s[2:], base, 64)
			return float64(v), err
		}
	}

	return strconv.ParseFloat(s, 64)
}
