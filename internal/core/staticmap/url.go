package staticmap

import "fmt"

// Endpoint is the fixed Static Maps API base URL every built URL
// starts with.
const Endpoint = "https://maps.googleapis.com/maps/api/staticmap"

// buildURL is the shared serialization pipeline: base snapshot first,
// overlay entries next (overwriting same-named keys), operation extras
// last, authentication key always the final parameter. Fails before
// any work when no API key is configured.
func (o *Options) buildURL(overlay []Param, extras func(*Params)) (string, error) {
	if o.apiKey == "" {
		return "", ErrMissingAPIKey
	}
	p := o.Snapshot()
	for _, ov := range overlay {
		p.Set(ov.Key, ov.Value)
	}
	if extras != nil {
		extras(p)
	}
	p.Del("key")
	p.Add("key", o.apiKey)
	return Endpoint + "?" + p.Encode(), nil
}

// LocationURL builds a URL for a map centered on location, which may
// be a "lat,lng" pair or a free-text address. The forced center key
// wins over any overlay value.
func (o *Options) LocationURL(location string, overlay ...Param) (string, error) {
	return o.buildURL(overlay, func(p *Params) {
		p.Set("center", location)
	})
}

// MarkersURL builds a URL with one repeated markers parameter per
// non-empty group, in input order. Groups without locations are
// skipped silently.
func (o *Options) MarkersURL(groups []MarkerGroup, overlay ...Param) (string, error) {
	return o.buildURL(overlay, func(p *Params) {
		for _, g := range groups {
			if enc := g.encode(); enc != "" {
				p.Add("markers", enc)
			}
		}
	})
}

// PathURL builds a URL with a single path parameter drawn through the
// given points, optionally styled.
func (o *Options) PathURL(path PathSpec, overlay ...Param) (string, error) {
	return o.buildURL(overlay, func(p *Params) {
		if enc := path.encode(); enc != "" {
			p.Set("path", enc)
		}
	})
}

// StyledURL builds a URL carrying one positional style[i] parameter
// per rule, in input order.
func (o *Options) StyledURL(rules []StyleRule, overlay ...Param) (string, error) {
	return o.buildURL(overlay, func(p *Params) {
		for i, r := range rules {
			p.Set(fmt.Sprintf("style[%d]", i), r.encode())
		}
	})
}
