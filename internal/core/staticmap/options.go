package staticmap

import (
	"fmt"
	"strconv"
)

// MapType selects the base map imagery.
type MapType string

const (
	MapTypeRoadmap   MapType = "roadmap"
	MapTypeSatellite MapType = "satellite"
	MapTypeTerrain   MapType = "terrain"
	MapTypeHybrid    MapType = "hybrid"
)

// Format selects the image encoding of the rendered map.
type Format string

const (
	FormatPNG         Format = "png"
	FormatPNG8        Format = "png8"
	FormatPNG32       Format = "png32"
	FormatGIF         Format = "gif"
	FormatJPG         Format = "jpg"
	FormatJPGBaseline Format = "jpg-baseline"
)

var mapTypes = map[MapType]bool{
	MapTypeRoadmap:   true,
	MapTypeSatellite: true,
	MapTypeTerrain:   true,
	MapTypeHybrid:    true,
}

var formats = map[Format]bool{
	FormatPNG:         true,
	FormatPNG8:        true,
	FormatPNG32:       true,
	FormatGIF:         true,
	FormatJPG:         true,
	FormatJPGBaseline: true,
}

// Documented defaults for a fresh options store.
const (
	DefaultWidth   = 600
	DefaultHeight  = 300
	DefaultZoom    = 14
	DefaultScale   = 1
	DefaultFormat  = FormatPNG
	DefaultMapType = MapTypeRoadmap
)

// Options holds the map-rendering parameters for the Static Maps API.
// Every field always carries a value inside its declared domain:
// setters validate before mutating and return a *ValidationError
// without touching the store when the argument is out of range.
// An Options value is request-scoped and not safe for concurrent use.
type Options struct {
	width    int
	height   int
	zoom     int
	scale    int
	format   Format
	mapType  MapType
	language string
	region   string
	heading  *float64
	pitch    *float64
	apiKey   string
}

// NewOptions returns an options store with the documented defaults:
// 600x300, zoom 14, scale 1, png, roadmap.
func NewOptions() *Options {
	o := &Options{}
	o.Reset()
	return o
}

// Reset restores every field to its documented default in one step.
func (o *Options) Reset() {
	o.width = DefaultWidth
	o.height = DefaultHeight
	o.zoom = DefaultZoom
	o.scale = DefaultScale
	o.format = DefaultFormat
	o.mapType = DefaultMapType
	o.language = ""
	o.region = ""
	o.heading = nil
	o.pitch = nil
	// apiKey survives a reset: it is configuration, not a render option.
}

// SetSize sets the image dimensions. Both must be strictly positive.
func (o *Options) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return &ValidationError{
			Field:  "size",
			Reason: fmt.Sprintf("dimensions must be positive, got %dx%d", width, height),
		}
	}
	o.width = width
	o.height = height
	return nil
}

// Size returns the current width and height.
func (o *Options) Size() (width, height int) {
	return o.width, o.height
}

// SetZoom sets the zoom level, 0 through 21 inclusive.
func (o *Options) SetZoom(zoom int) error {
	if zoom < 0 || zoom > 21 {
		return &ValidationError{
			Field:  "zoom",
			Reason: fmt.Sprintf("must be between 0 and 21, got %d", zoom),
		}
	}
	o.zoom = zoom
	return nil
}

// Zoom returns the current zoom level.
func (o *Options) Zoom() int { return o.zoom }

// SetScale sets the pixel density multiplier. Allowed values: 1, 2, 4.
func (o *Options) SetScale(scale int) error {
	if scale != 1 && scale != 2 && scale != 4 {
		return &ValidationError{
			Field:  "scale",
			Reason: fmt.Sprintf("must be 1, 2 or 4, got %d", scale),
		}
	}
	o.scale = scale
	return nil
}

// Scale returns the current scale.
func (o *Options) Scale() int { return o.scale }

// SetFormat sets the image format.
func (o *Options) SetFormat(format Format) error {
	if !formats[format] {
		return &ValidationError{
			Field:  "format",
			Reason: fmt.Sprintf("unknown format %q", string(format)),
		}
	}
	o.format = format
	return nil
}

// Format returns the current image format.
func (o *Options) Format() Format { return o.format }

// SetMapType sets the base map type.
func (o *Options) SetMapType(mt MapType) error {
	if !mapTypes[mt] {
		return &ValidationError{
			Field:  "maptype",
			Reason: fmt.Sprintf("unknown map type %q", string(mt)),
		}
	}
	o.mapType = mt
	return nil
}

// MapType returns the current map type.
func (o *Options) MapType() MapType { return o.mapType }

// SetLanguage sets the label language code. The value is passed through
// unvalidated; the API falls back to a default for unknown codes.
func (o *Options) SetLanguage(lang string) error {
	o.language = lang
	return nil
}

// Language returns the current language code ("" when unset).
func (o *Options) Language() string { return o.language }

// SetRegion sets the region code biasing borders and labels. Unvalidated,
// like SetLanguage.
func (o *Options) SetRegion(region string) error {
	o.region = region
	return nil
}

// Region returns the current region code ("" when unset).
func (o *Options) Region() string { return o.region }

// SetHeading sets the camera heading in degrees, 0 through 360.
func (o *Options) SetHeading(heading float64) error {
	if heading < 0 || heading > 360 {
		return &ValidationError{
			Field:  "heading",
			Reason: fmt.Sprintf("must be between 0 and 360, got %g", heading),
		}
	}
	h := heading
	o.heading = &h
	return nil
}

// Heading returns the camera heading and whether one has been set.
func (o *Options) Heading() (float64, bool) {
	if o.heading == nil {
		return 0, false
	}
	return *o.heading, true
}

// SetPitch sets the camera pitch in degrees, -90 through 90.
func (o *Options) SetPitch(pitch float64) error {
	if pitch < -90 || pitch > 90 {
		return &ValidationError{
			Field:  "pitch",
			Reason: fmt.Sprintf("must be between -90 and 90, got %g", pitch),
		}
	}
	p := pitch
	o.pitch = &p
	return nil
}

// Pitch returns the camera pitch and whether one has been set.
func (o *Options) Pitch() (float64, bool) {
	if o.pitch == nil {
		return 0, false
	}
	return *o.pitch, true
}

// SetAPIKey sets the authentication key appended to every URL.
func (o *Options) SetAPIKey(key string) error {
	o.apiKey = key
	return nil
}

// APIKey returns the configured authentication key.
func (o *Options) APIKey() string { return o.apiKey }

// Snapshot returns the current option values as an ordered parameter
// set, base keys first, ready for overlay merging. Unset optional
// fields appear with an empty value and are dropped at encode time.
// The API key is deliberately absent; the URL builders read it via
// APIKey and append key= last so overlays can never displace it.
func (o *Options) Snapshot() *Params {
	p := NewParams()
	p.Set("size", fmt.Sprintf("%dx%d", o.width, o.height))
	p.Set("zoom", strconv.Itoa(o.zoom))
	p.Set("scale", strconv.Itoa(o.scale))
	p.Set("format", string(o.format))
	p.Set("maptype", string(o.mapType))
	p.Set("language", o.language)
	p.Set("region", o.region)
	p.Set("heading", formatOptFloat(o.heading))
	p.Set("pitch", formatOptFloat(o.pitch))
	return p
}

func formatOptFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
