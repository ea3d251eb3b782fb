package staticmap

import "strings"

// markerStyleOrder is the fixed serialization order for marker style
// keys. Input maps may list them in any order; output is stable.
var markerStyleOrder = []string{"size", "color", "label", "scale", "anchor", "icon"}

// MarkerGroup is one set of locations sharing a marker style. It is
// built per call and consumed once during serialization.
type MarkerGroup struct {
	// Style holds any subset of size, color, label, scale, anchor,
	// icon. Values are passed through unvalidated.
	Style map[string]string
	// Locations are "lat,lng" pairs or free-text addresses, rendered
	// pipe-joined in order. A group with no locations is skipped.
	Locations []string
}

// encode renders the group as a single markers parameter value:
// style keys in fixed order as "k:v|", then the pipe-joined locations.
// Returns "" for a group with no locations.
func (g MarkerGroup) encode() string {
	if len(g.Locations) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, k := range markerStyleOrder {
		if v, ok := g.Style[k]; ok && v != "" {
			sb.WriteString(k)
			sb.WriteByte(':')
			sb.WriteString(v)
			sb.WriteByte('|')
		}
	}
	sb.WriteString(strings.Join(g.Locations, "|"))
	return sb.String()
}

// PathSpec is an ordered list of path points plus optional styling
// (weight, color, geodesic, fillcolor — unvalidated, caller order).
type PathSpec struct {
	Style  []Param
	Points []string
}

// encode renders the path parameter value: style pairs as "k:v|" in
// caller order, then the pipe-joined points. Returns "" without points.
func (ps PathSpec) encode() string {
	if len(ps.Points) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, s := range ps.Style {
		if s.Value == "" {
			continue
		}
		sb.WriteString(s.Key)
		sb.WriteByte(':')
		sb.WriteString(s.Value)
		sb.WriteByte('|')
	}
	sb.WriteString(strings.Join(ps.Points, "|"))
	return sb.String()
}

// StyleRule customizes the rendering of one map feature/element pair.
// Rules keep caller order. Multiple rules are indexed positionally in
// the output (style[0], style[1], ...).
type StyleRule struct {
	Feature string
	Element string
	Rules   []Param
}

// encode renders "feature:F|element:E|rule:v|...", omitting absent
// segments. A rule with nothing set encodes to "".
func (r StyleRule) encode() string {
	segs := make([]string, 0, 2+len(r.Rules))
	if r.Feature != "" {
		segs = append(segs, "feature:"+r.Feature)
	}
	if r.Element != "" {
		segs = append(segs, "element:"+r.Element)
	}
	for _, ru := range r.Rules {
		if ru.Value == "" {
			continue
		}
		segs = append(segs, ru.Key+":"+ru.Value)
	}
	return strings.Join(segs, "|")
}
