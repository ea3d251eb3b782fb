package staticmap

import (
	"net/url"
	"strings"
)

// Param is a single ordered key/value pair, used for overlays and
// caller-ordered style maps where insertion order is significant.
type Param struct {
	Key   string
	Value string
}

// Params is an insertion-ordered query parameter multimap.
// The standard url.Values is backed by a plain map and loses ordering,
// which would make serialized URLs non-deterministic; Params keeps an
// explicit key list so the same inputs always encode to the same string.
type Params struct {
	keys   []string
	values map[string][]string
}

// NewParams returns an empty ordered parameter set.
func NewParams() *Params {
	return &Params{values: make(map[string][]string)}
}

// Set replaces the value for key, keeping the key's original position
// if it is already present; otherwise the key is appended at the end.
func (p *Params) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = []string{value}
}

// Add appends a repeated value for key. The key's position is fixed by
// its first appearance.
func (p *Params) Add(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = append(p.values[key], value)
}

// Del removes key and all of its values.
func (p *Params) Del(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Get returns the first value for key, or "" if absent.
func (p *Params) Get(key string) string {
	if vs, ok := p.values[key]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Has reports whether key is present.
func (p *Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Encode serializes the parameters as a query string in insertion
// order. Every value is percent-encoded; keys are emitted verbatim
// (they are fixed identifiers like "center" or "style[0]", never user
// input). Keys whose value is the empty string are omitted entirely;
// repeated values emit one pair each.
func (p *Params) Encode() string {
	var sb strings.Builder
	for _, k := range p.keys {
		for _, v := range p.values[k] {
			if v == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(v))
		}
	}
	return sb.String()
}
