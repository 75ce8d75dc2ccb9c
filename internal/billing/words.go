package billing

import (
	"math"
	"strings"
)

var digitWords = [10]string{"không", "một", "hai", "ba", "bốn", "năm", "sáu", "bảy", "tám", "chín"}

// groupUnits are the labels of the base-1000 groups, lowest first.
var groupUnits = []string{"", "nghìn", "triệu", "tỷ", "nghìn tỷ", "triệu tỷ", "tỷ tỷ"}

// ToWords spells n out in Vietnamese without a currency suffix.
// Negative input yields an empty string.
func ToWords(n int64) string {
	if n < 0 {
		return ""
	}
	if n == 0 {
		return digitWords[0]
	}

	var groups []int
	for v := n; v > 0; v /= 1000 {
		groups = append(groups, int(v%1000))
	}

	top := len(groups) - 1
	parts := make([]string, 0, 2*len(groups))
	for i := top; i >= 0; i-- {
		g := groups[i]
		if g == 0 {
			continue
		}
		parts = append(parts, readGroup(g, i < top)...)
		if groupUnits[i] != "" {
			parts = append(parts, groupUnits[i])
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// ToWordsFloat spells a float amount out after flooring it. NaN, infinities,
// negatives and values beyond int64 yield an empty string.
func ToWordsFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64 {
		return ""
	}
	return ToWords(int64(math.Floor(f)))
}

// readGroup reads one non-zero group of three digits. padded is set when a
// higher group precedes it, which makes a zero hundreds digit audible.
func readGroup(g int, padded bool) []string {
	hundreds, tens, ones := g/100, g/10%10, g%10

	var words []string
	if hundreds > 0 || padded {
		words = append(words, digitWords[hundreds], "trăm")
	}

	switch tens {
	case 0:
		if ones == 0 {
			break
		}
		if hundreds > 0 || padded {
			words = append(words, "linh")
		}
		words = append(words, digitWords[ones])
	case 1:
		words = append(words, "mười")
		words = append(words, onesAfterTens(ones, false)...)
	default:
		words = append(words, digitWords[tens], "mươi")
		words = append(words, onesAfterTens(ones, true)...)
	}
	return words
}

func onesAfterTens(ones int, mot bool) []string {
	switch {
	case ones == 0:
		return nil
	case ones == 1 && mot:
		return []string{"mốt"}
	case ones == 5:
		return []string{"lăm"}
	default:
		return []string{digitWords[ones]}
	}
}
