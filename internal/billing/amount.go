// Package billing holds the money rules of the tenant portal: reading the
// amounts the upstream API sends in whatever shape it likes, deciding whether
// a billing period is settled, summing a list of periods and spelling amounts
// out in Vietnamese.
//
// Nothing here performs I/O and nothing here panics on bad input.
package billing

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a whole number of Vietnamese đồng that may be absent.
// The zero value is absent, which is different from a confirmed zero.
type Amount struct {
	Value int64
	Valid bool
}

// Some returns a present amount.
func Some(v int64) Amount {
	return Amount{Value: v, Valid: true}
}

// Or returns the amount, or def when it is absent.
func (a Amount) Or(def int64) int64 {
	if !a.Valid {
		return def
	}
	return a.Value
}

// MarshalJSON encodes an absent amount as null.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, a.Value, 10), nil
}

// UnmarshalJSON accepts numbers, formatted strings and null. Malformed input
// leaves the amount absent instead of failing the whole document.
func (a *Amount) UnmarshalJSON(b []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		*a = Amount{}
		return nil
	}
	*a = NormalizeAmount(v)
	return nil
}

var (
	disallowedAmountChars = regexp.MustCompile(`[^\d,.\-]`)
	trailingDecimalGroup  = regexp.MustCompile(`([,.])(\d{1,2})$`)
	half                  = decimal.New(5, -1)
	maxInt64              = decimal.NewFromInt(math.MaxInt64)
	minInt64              = decimal.NewFromInt(math.MinInt64)
)

// NormalizeAmount reads a numeric value of unknown shape into whole đồng.
//
// Native numbers are rounded half-up. Strings may use either Vietnamese
// (1.900.000,50) or English (1,900,000.50) grouping; a trailing separator
// followed by one or two digits is read as a decimal fraction, every other
// separator as a thousands separator.
func NormalizeAmount(v any) Amount {
	switch x := v.(type) {
	case nil:
		return Amount{}
	case Amount:
		return x
	case *Amount:
		if x == nil {
			return Amount{}
		}
		return *x
	case int:
		return Some(int64(x))
	case int8:
		return Some(int64(x))
	case int16:
		return Some(int64(x))
	case int32:
		return Some(int64(x))
	case int64:
		return Some(x)
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return Some(int64(x))
	case uint16:
		return Some(int64(x))
	case uint32:
		return Some(int64(x))
	case uint64:
		return fromUint(x)
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case json.Number:
		d, err := decimal.NewFromString(string(x))
		if err != nil {
			return Amount{}
		}
		return fromDecimal(d)
	case string:
		return fromString(x)
	case *string:
		if x == nil {
			return Amount{}
		}
		return fromString(*x)
	default:
		return Amount{}
	}
}

func fromUint(u uint64) Amount {
	if u > math.MaxInt64 {
		return Amount{}
	}
	return Some(int64(u))
}

func fromFloat(f float64) Amount {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}
	}
	r := math.Floor(f + 0.5)
	if r >= math.MaxInt64 || r < math.MinInt64 {
		return Amount{}
	}
	return Some(int64(r))
}

func fromDecimal(d decimal.Decimal) Amount {
	r := d.Add(half).Floor()
	if r.GreaterThan(maxInt64) || r.LessThan(minInt64) {
		return Amount{}
	}
	return Some(r.IntPart())
}

func fromString(raw string) Amount {
	cleaned := disallowedAmountChars.ReplaceAllString(strings.TrimSpace(raw), "")
	sign := ""
	if strings.HasPrefix(cleaned, "-") {
		sign = "-"
	}
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	if cleaned == "" {
		return Amount{}
	}

	if m := trailingDecimalGroup.FindStringSubmatch(cleaned); m != nil {
		var normalized string
		if m[1] == "," {
			normalized = strings.ReplaceAll(cleaned, ".", "")
			i := strings.LastIndex(normalized, ",")
			normalized = normalized[:i] + "." + normalized[i+1:]
		} else {
			normalized = strings.ReplaceAll(cleaned, ",", "")
		}
		// Leftover separators make this fail; fall through to the
		// thousands-only reading below.
		if d, err := decimal.NewFromString(sign + normalized); err == nil {
			if a := fromDecimal(d); a.Valid {
				return a
			}
		}
	}

	digits := strings.NewReplacer(".", "", ",", "").Replace(cleaned)
	n, err := strconv.ParseInt(sign+digits, 10, 64)
	if err != nil {
		return Amount{}
	}
	return Some(n)
}
