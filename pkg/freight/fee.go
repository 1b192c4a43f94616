package freight

import (
	"strconv"
	"strings"
)

// Fee computes the handling fee for a quoted cost. A spec with a
// trailing "%" is a percentage of the quoted cost before the fee is
// added; anything else is a flat amount. Blank or unparsable specs
// yield no fee. Comma decimal separators are accepted.
func Fee(spec string, cost float64) float64 {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0
	}

	percentage := strings.HasSuffix(spec, "%")
	spec = strings.TrimSuffix(spec, "%")
	spec = strings.ReplaceAll(spec, ",", ".")

	value, err := strconv.ParseFloat(spec, 64)
	if err != nil || value < 0 {
		return 0
	}

	if percentage {
		return cost * value / 100
	}
	return value
}
