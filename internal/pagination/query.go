package pagination

import (
	"net/url"
	"strings"
)

// Param is a single query-string parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. url.Values is not used here
// because it is a map and loses parameter order; the page links must encode
// parameters in a stable order across requests.
type Params []Param

// Parse decodes a raw query string into an ordered parameter list. Malformed
// escape sequences keep their literal text rather than dropping the parameter.
func Parse(rawQuery string) Params {
	var params Params
	for _, segment := range strings.Split(rawQuery, "&") {
		if segment == "" {
			continue
		}
		key, value, _ := strings.Cut(segment, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		params = append(params, Param{Key: key, Value: value})
	}
	return params
}

// WithValue returns a copy of the parameter list with key set to value.
// An existing key is replaced in place (first occurrence wins, duplicates are
// dropped); a missing key is appended. The receiver is never mutated.
func (ps Params) WithValue(key, value string) Params {
	out := make(Params, 0, len(ps)+1)
	replaced := false
	for _, p := range ps {
		if p.Key == key {
			if !replaced {
				out = append(out, Param{Key: key, Value: value})
				replaced = true
			}
			continue
		}
		out = append(out, p)
	}
	if !replaced {
		out = append(out, Param{Key: key, Value: value})
	}
	return out
}

// Get returns the value of the first parameter with the given key.
func (ps Params) Get(key string) string {
	for _, p := range ps {
		if p.Key == key {
			return p.Value
		}
	}
	return ""
}

// Encode renders the parameters as a query string, preserving order.
func (ps Params) Encode() string {
	var b strings.Builder
	for i, p := range ps {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
