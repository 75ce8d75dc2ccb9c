package upstream

import (
	"encoding/json"

	"tenant-portal-svc/internal/billing"

	"github.com/tidwall/gjson"
)

// FirstOf returns the first of paths holding a non-null value.
func FirstOf(r gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// StringOf reads the first present alias as a string. Numbers keep their raw
// JSON text so IDs like 12 come back as "12".
func StringOf(r gjson.Result, paths ...string) string {
	v := FirstOf(r, paths...)
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return v.Raw
	case gjson.True, gjson.False:
		return v.Raw
	default:
		return ""
	}
}

// AmountOf reads the first present alias as an amount.
func AmountOf(r gjson.Result, paths ...string) billing.Amount {
	v := FirstOf(r, paths...)
	switch v.Type {
	case gjson.Number:
		return billing.NormalizeAmount(json.Number(v.Raw))
	case gjson.String:
		return billing.NormalizeAmount(v.Str)
	default:
		return billing.Amount{}
	}
}

// ValueOf reads the first present alias as a plain Go value: string,
// json.Number, bool or nil. Objects and arrays read as nil.
func ValueOf(r gjson.Result, paths ...string) any {
	v := FirstOf(r, paths...)
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return json.Number(v.Raw)
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return nil
	}
}

// ListOf returns r itself when it is an array, otherwise the first envelope
// that holds one.
func ListOf(r gjson.Result, envelopes ...string) []gjson.Result {
	if r.IsArray() {
		return r.Array()
	}
	for _, env := range envelopes {
		if v := r.Get(env); v.IsArray() {
			return v.Array()
		}
	}
	return nil
}

// ObjectOf returns the first envelope that holds an object, or r itself.
func ObjectOf(r gjson.Result, envelopes ...string) gjson.Result {
	for _, env := range envelopes {
		if v := r.Get(env); v.IsObject() {
			return v
		}
	}
	return r
}
