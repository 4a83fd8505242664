package insights

import (
	"fmt"
	"strconv"
	"strings"
)

// monthNumbers maps Hungarian month names and their common abbreviations to
// month numbers. Lookup is case-insensitive and ignores periods, so "Már.",
// "már" and "Március" all resolve to 3.
var monthNumbers = map[string]int{
	"január":     1,
	"jan":        1,
	"február":    2,
	"feb":        2,
	"március":    3,
	"már":        3,
	"április":    4,
	"ápr":        4,
	"május":      5,
	"máj":        5,
	"június":     6,
	"jún":        6,
	"július":     7,
	"júl":        7,
	"augusztus":  8,
	"aug":        8,
	"szeptember": 9,
	"szept":      9,
	"október":    10,
	"okt":        10,
	"november":   11,
	"nov":        11,
	"december":   12,
	"dec":        12,
}

// ResolveMonth interprets a user-supplied month token, which arrives from the
// tool-call arguments either as a number or as a (possibly localized) name.
//
//   - nil means "no month filter": (0, "Full Year", true).
//   - Numbers pass through without range validation; an out-of-range value
//     like 13 simply matches no rows downstream.
//   - Strings are lower-cased, stripped of periods, and looked up in the
//     month table. An unresolvable string returns ok=false and the callers
//     answer with an explicit error mapping instead of silently dropping the
//     filter.
func ResolveMonth(token any) (num int, label string, ok bool) {
	switch v := token.(type) {
	case nil:
		return 0, "Full Year", true
	case string:
		n, found := monthNumbers[strings.ReplaceAll(strings.ToLower(v), ".", "")]
		if !found {
			return 0, v, false
		}
		return n, v, true
	case float64:
		// JSON numbers decode as float64.
		return int(v), strconv.Itoa(int(v)), true
	case int:
		return v, strconv.Itoa(v), true
	default:
		return 0, fmt.Sprint(token), false
	}
}
