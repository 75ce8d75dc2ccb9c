package repository

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var firstNumber = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// parseAmenities reads the room amenities, which arrive as an array, a JSON
// array inside a string, a comma separated string or a single value.
func parseAmenities(v gjson.Result) []string {
	out := []string{}
	switch {
	case v.IsArray():
		for _, item := range v.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				out = append(out, s)
			}
		}
	case v.Type == gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return out
		}
		if inner := gjson.Parse(s); gjson.Valid(s) && inner.IsArray() {
			return parseAmenities(inner)
		}
		if strings.Contains(s, ",") {
			for _, part := range strings.Split(s, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
			return out
		}
		out = append(out, s)
	}
	return out
}

// normalizeArea keeps the first number of an area like "20,5 m2" as "20.5".
func normalizeArea(v gjson.Result) string {
	if !v.Exists() || v.Type == gjson.Null {
		return ""
	}
	s := strings.TrimSpace(v.String())
	if m := firstNumber.FindString(s); m != "" {
		return strings.Replace(m, ",", ".", 1)
	}
	return s
}

// numericID sends numeric IDs as JSON numbers, which the upstream expects.
func numericID(id string) any {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}

func rawJSON(v gjson.Result) json.RawMessage {
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	return json.RawMessage(v.Raw)
}
