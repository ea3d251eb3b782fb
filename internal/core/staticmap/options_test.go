package staticmap

import (
	"errors"
	"testing"
)

func TestSetZoom_Bounds(t *testing.T) {
	o := NewOptions()

	for _, z := range []int{0, 1, 14, 21} {
		if err := o.SetZoom(z); err != nil {
			t.Errorf("SetZoom(%d): unexpected error: %v", z, err)
		}
		if o.Zoom() != z {
			t.Errorf("SetZoom(%d): zoom is %d", z, o.Zoom())
		}
	}

	o.Reset()
	for _, z := range []int{-1, 22, 100} {
		err := o.SetZoom(z)
		if err == nil {
			t.Fatalf("SetZoom(%d): expected error", z)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("SetZoom(%d): expected ValidationError, got %T", z, err)
		}
		if verr.Field != "zoom" {
			t.Errorf("expected field zoom, got %s", verr.Field)
		}
		if o.Zoom() != DefaultZoom {
			t.Errorf("store mutated on rejected zoom: %d", o.Zoom())
		}
	}
}

func TestSetSize_RoundTrip(t *testing.T) {
	o := NewOptions()
	if err := o.SetSize(1024, 768); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, h := o.Size()
	if w != 1024 || h != 768 {
		t.Errorf("expected 1024x768, got %dx%d", w, h)
	}
}

func TestSetSize_RejectsNonPositive(t *testing.T) {
	o := NewOptions()
	for _, dims := range [][2]int{{0, 300}, {600, 0}, {-1, 300}, {600, -5}} {
		if err := o.SetSize(dims[0], dims[1]); err == nil {
			t.Errorf("SetSize(%d, %d): expected error", dims[0], dims[1])
		}
	}
	w, h := o.Size()
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("store mutated on rejected size: %dx%d", w, h)
	}
}

func TestSetScale_ClosedSet(t *testing.T) {
	o := NewOptions()
	for _, s := range []int{1, 2, 4} {
		if err := o.SetScale(s); err != nil {
			t.Errorf("SetScale(%d): unexpected error: %v", s, err)
		}
	}
	for _, s := range []int{0, 3, 5, -1} {
		if err := o.SetScale(s); err == nil {
			t.Errorf("SetScale(%d): expected error", s)
		}
	}
}

func TestSetMapType_ClosedSet(t *testing.T) {
	o := NewOptions()
	for _, mt := range []MapType{MapTypeRoadmap, MapTypeSatellite, MapTypeTerrain, MapTypeHybrid} {
		if err := o.SetMapType(mt); err != nil {
			t.Errorf("SetMapType(%s): unexpected error: %v", mt, err)
		}
	}
	if err := o.SetMapType("streetview"); err == nil {
		t.Error("expected error for unknown map type")
	}
	if o.MapType() != MapTypeHybrid {
		t.Errorf("store mutated on rejected map type: %s", o.MapType())
	}
}

func TestSetFormat_ClosedSet(t *testing.T) {
	o := NewOptions()
	for _, f := range []Format{FormatPNG, FormatPNG8, FormatPNG32, FormatGIF, FormatJPG, FormatJPGBaseline} {
		if err := o.SetFormat(f); err != nil {
			t.Errorf("SetFormat(%s): unexpected error: %v", f, err)
		}
	}
	if err := o.SetFormat("webp"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSetHeadingPitch_Bounds(t *testing.T) {
	o := NewOptions()

	if _, ok := o.Heading(); ok {
		t.Error("heading should be unset by default")
	}
	if err := o.SetHeading(90.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h, ok := o.Heading(); !ok || h != 90.5 {
		t.Errorf("expected heading 90.5, got %g (set=%v)", h, ok)
	}
	if err := o.SetHeading(361); err == nil {
		t.Error("expected error for heading 361")
	}
	if err := o.SetHeading(-0.1); err == nil {
		t.Error("expected error for negative heading")
	}

	if err := o.SetPitch(-45); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := o.SetPitch(91); err == nil {
		t.Error("expected error for pitch 91")
	}
	if err := o.SetPitch(-91); err == nil {
		t.Error("expected error for pitch -91")
	}
	if p, ok := o.Pitch(); !ok || p != -45 {
		t.Errorf("pitch mutated on rejected value: %g", p)
	}
}

func TestReset_RestoresDefaults(t *testing.T) {
	o := NewOptions()
	_ = o.SetSize(100, 100)
	_ = o.SetZoom(3)
	_ = o.SetScale(2)
	_ = o.SetFormat(FormatGIF)
	_ = o.SetMapType(MapTypeTerrain)
	_ = o.SetLanguage("eu")
	_ = o.SetRegion("es")
	_ = o.SetHeading(180)
	_ = o.SetPitch(30)
	_ = o.SetAPIKey("ABC")

	o.Reset()

	got := o.Snapshot()
	want := NewOptions().Snapshot()
	gk, wk := got.Keys(), want.Keys()
	if len(gk) != len(wk) {
		t.Fatalf("snapshot key counts differ: %d vs %d", len(gk), len(wk))
	}
	for i := range wk {
		if gk[i] != wk[i] {
			t.Errorf("key %d: got %s, want %s", i, gk[i], wk[i])
		}
		if got.Get(wk[i]) != want.Get(wk[i]) {
			t.Errorf("%s: got %q, want %q", wk[i], got.Get(wk[i]), want.Get(wk[i]))
		}
	}

	// The API key is configuration, not a render option.
	if o.APIKey() != "ABC" {
		t.Errorf("reset should not clear the API key, got %q", o.APIKey())
	}
}
