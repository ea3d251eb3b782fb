package usecases_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/unaigarro/mapstamp/internal/core/domain"
	"github.com/unaigarro/mapstamp/internal/core/staticmap"
	"github.com/unaigarro/mapstamp/internal/core/usecases"
)

func keyedSettings() *usecases.SettingService {
	return usecases.NewSettingService(&mockSettingRepo{
		getFn: func(ctx context.Context, name string) (*domain.Setting, error) {
			return &domain.Setting{Name: name, Value: "ABC"}, nil
		},
	}, nil)
}

func TestBuildLocationURL_Success(t *testing.T) {
	svc := usecases.NewMapService(keyedSettings(), &mockFetcher{})

	zoom := 12
	url, err := svc.BuildLocationURL(context.Background(), "43.263,-2.935", usecases.MapRequest{
		Width:   800,
		Height:  400,
		Zoom:    &zoom,
		MapType: "terrain",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, part := range []string{"size=800x400", "zoom=12", "maptype=terrain", "center=43.263%2C-2.935", "key=ABC"} {
		if !strings.Contains(url, part) {
			t.Errorf("url missing %s: %s", part, url)
		}
	}
}

func TestBuildLocationURL_EmptyLocation(t *testing.T) {
	svc := usecases.NewMapService(keyedSettings(), &mockFetcher{})

	_, err := svc.BuildLocationURL(context.Background(), "", usecases.MapRequest{})
	var verr *staticmap.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBuildLocationURL_InvalidOption(t *testing.T) {
	svc := usecases.NewMapService(keyedSettings(), &mockFetcher{})

	zoom := 99
	_, err := svc.BuildLocationURL(context.Background(), "Bilbao", usecases.MapRequest{Zoom: &zoom})
	var verr *staticmap.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "zoom" {
		t.Errorf("expected field zoom, got %s", verr.Field)
	}
}

func TestBuildLocationURL_NoKeyConfigured(t *testing.T) {
	settings := usecases.NewSettingService(&mockSettingRepo{}, nil)
	svc := usecases.NewMapService(settings, &mockFetcher{})

	_, err := svc.BuildLocationURL(context.Background(), "Bilbao", usecases.MapRequest{})
	var cerr *staticmap.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestBuildMarkersURL(t *testing.T) {
	svc := usecases.NewMapService(keyedSettings(), &mockFetcher{})

	url, err := svc.BuildMarkersURL(context.Background(), []staticmap.MarkerGroup{
		{Style: map[string]string{"color": "red"}, Locations: []string{"Bilbao"}},
	}, usecases.MapRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(url, "markers=color%3Ared%7CBilbao") {
		t.Errorf("markers parameter missing: %s", url)
	}
}

func TestValidateKey_UsesMinimalProbe(t *testing.T) {
	var fetched string
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, url string) (*domain.FetchedImage, error) {
			fetched = url
			return &domain.FetchedImage{Status: 200, ContentType: "image/png"}, nil
		},
	}
	svc := usecases.NewMapService(keyedSettings(), fetcher)

	ok, err := svc.ValidateKey(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected key to be reported valid")
	}
	if !strings.Contains(fetched, "size=1x1") || !strings.Contains(fetched, "center=0%2C0") {
		t.Errorf("probe should be a 1x1 request for 0,0: %s", fetched)
	}
}

func TestValidateKey_RejectedStatus(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, url string) (*domain.FetchedImage, error) {
			return &domain.FetchedImage{Status: 403}, nil
		},
	}
	svc := usecases.NewMapService(keyedSettings(), fetcher)

	ok, err := svc.ValidateKey(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("403 must mean invalid key")
	}
}

func TestValidateKey_TransportFailurePropagates(t *testing.T) {
	wantErr := errors.New("connection refused")
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, url string) (*domain.FetchedImage, error) {
			return nil, wantErr
		},
	}
	svc := usecases.NewMapService(keyedSettings(), fetcher)

	_, err := svc.ValidateKey(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("fetcher error must propagate unchanged, got %v", err)
	}
}
