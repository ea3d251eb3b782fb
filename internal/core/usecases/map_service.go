package usecases

import (
	"context"
	"fmt"

	"github.com/unaigarro/mapstamp/internal/core/domain"
	"github.com/unaigarro/mapstamp/internal/core/ports"
	"github.com/unaigarro/mapstamp/internal/core/staticmap"
)

// MapRequest carries the per-call rendering options collected by the
// presentation layer. Zero values mean "keep the documented default";
// pointers distinguish unset numeric fields from explicit zeroes.
type MapRequest struct {
	Width    int
	Height   int
	Zoom     *int
	Scale    *int
	Format   string
	MapType  string
	Language string
	Region   string
	Heading  *float64
	Pitch    *float64
}

// MapService builds Static Maps URLs from stored configuration plus
// per-request options, and validates the configured API key.
type MapService struct {
	settings *SettingService
	fetcher  ports.ImageFetcher
}

// NewMapService creates a new MapService.
func NewMapService(settings *SettingService, fetcher ports.ImageFetcher) *MapService {
	return &MapService{settings: settings, fetcher: fetcher}
}

// options assembles a validated options store for one request. Any
// out-of-domain field surfaces as a *staticmap.ValidationError.
func (s *MapService) options(ctx context.Context, req MapRequest) (*staticmap.Options, error) {
	o := staticmap.NewOptions()

	if req.Width != 0 || req.Height != 0 {
		if err := o.SetSize(req.Width, req.Height); err != nil {
			return nil, err
		}
	}
	if req.Zoom != nil {
		if err := o.SetZoom(*req.Zoom); err != nil {
			return nil, err
		}
	}
	if req.Scale != nil {
		if err := o.SetScale(*req.Scale); err != nil {
			return nil, err
		}
	}
	if req.Format != "" {
		if err := o.SetFormat(staticmap.Format(req.Format)); err != nil {
			return nil, err
		}
	}
	if req.MapType != "" {
		if err := o.SetMapType(staticmap.MapType(req.MapType)); err != nil {
			return nil, err
		}
	}
	if err := o.SetLanguage(req.Language); err != nil {
		return nil, err
	}
	if err := o.SetRegion(req.Region); err != nil {
		return nil, err
	}
	if req.Heading != nil {
		if err := o.SetHeading(*req.Heading); err != nil {
			return nil, err
		}
	}
	if req.Pitch != nil {
		if err := o.SetPitch(*req.Pitch); err != nil {
			return nil, err
		}
	}

	key, err := s.settings.APIKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("load api key: %w", err)
	}
	_ = o.SetAPIKey(key)

	return o, nil
}

// BuildLocationURL builds a URL centered on a coordinate pair or
// free-text address.
func (s *MapService) BuildLocationURL(ctx context.Context, location string, req MapRequest) (string, error) {
	if location == "" {
		return "", &staticmap.ValidationError{Field: "center", Reason: "location must not be empty"}
	}
	o, err := s.options(ctx, req)
	if err != nil {
		return "", err
	}
	return o.LocationURL(location)
}

// BuildMarkersURL builds a URL with one markers parameter per
// non-empty group.
func (s *MapService) BuildMarkersURL(ctx context.Context, groups []staticmap.MarkerGroup, req MapRequest) (string, error) {
	o, err := s.options(ctx, req)
	if err != nil {
		return "", err
	}
	return o.MarkersURL(groups)
}

// BuildPathURL builds a URL with a single styled path.
func (s *MapService) BuildPathURL(ctx context.Context, path staticmap.PathSpec, req MapRequest) (string, error) {
	if len(path.Points) == 0 {
		return "", &staticmap.ValidationError{Field: "path", Reason: "at least one point is required"}
	}
	o, err := s.options(ctx, req)
	if err != nil {
		return "", err
	}
	return o.PathURL(path)
}

// BuildStyledURL builds a URL carrying positional style rules.
func (s *MapService) BuildStyledURL(ctx context.Context, rules []staticmap.StyleRule, req MapRequest) (string, error) {
	o, err := s.options(ctx, req)
	if err != nil {
		return "", err
	}
	return o.StyledURL(rules)
}

// ValidateKey checks the configured API key against the live API by
// requesting a minimal 1x1 image of coordinate 0,0. The key is valid
// iff the API answers 200. Fetcher failures propagate unchanged.
func (s *MapService) ValidateKey(ctx context.Context) (bool, error) {
	o, err := s.options(ctx, MapRequest{Width: 1, Height: 1})
	if err != nil {
		return false, err
	}
	origin := domain.GeoPoint{}
	url, err := o.LocationURL(origin.String())
	if err != nil {
		return false, err
	}
	img, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return false, err
	}
	return img.Status == 200, nil
}
