package staticmap

import (
	"errors"
	"strings"
	"testing"
)

func keyedOptions(t *testing.T) *Options {
	t.Helper()
	o := NewOptions()
	if err := o.SetAPIKey("ABC"); err != nil {
		t.Fatalf("set api key: %v", err)
	}
	return o
}

func TestLocationURL_Defaults(t *testing.T) {
	o := keyedOptions(t)

	got, err := o.LocationURL("47.6205,-122.3493")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Endpoint + "?size=600x300&zoom=14&scale=1&format=png&maptype=roadmap" +
		"&center=47.6205%2C-122.3493&key=ABC"
	if got != want {
		t.Errorf("url mismatch:\n got  %s\n want %s", got, want)
	}

	// Unset optional fields must be omitted, not emitted bare.
	for _, bad := range []string{"language=", "region=", "heading=", "pitch="} {
		if strings.Contains(got, bad) {
			t.Errorf("url contains empty parameter %q: %s", bad, got)
		}
	}
	if strings.Count(got, "center=") != 1 {
		t.Errorf("expected exactly one center parameter: %s", got)
	}
	if strings.Count(got, "key=") != 1 {
		t.Errorf("expected exactly one key parameter: %s", got)
	}
}

func TestLocationURL_KeyIsAlwaysLast(t *testing.T) {
	o := keyedOptions(t)
	_ = o.SetLanguage("eu")

	got, err := o.LocationURL("Bilbao", Param{Key: "zoom", Value: "12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(got, "&key=ABC") {
		t.Errorf("key must be the final parameter: %s", got)
	}
	// Overlay overwrites the stored zoom in place.
	if !strings.Contains(got, "zoom=12") || strings.Contains(got, "zoom=14") {
		t.Errorf("overlay did not overwrite zoom: %s", got)
	}
}

func TestLocationURL_MissingKey(t *testing.T) {
	o := NewOptions()
	url, err := o.LocationURL("0,0")
	if err == nil {
		t.Fatal("expected error with no API key")
	}
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}
	if url != "" {
		t.Errorf("no URL should be produced, got %q", url)
	}
}

func TestLocationURL_Idempotent(t *testing.T) {
	o := keyedOptions(t)
	_ = o.SetMapType(MapTypeHybrid)
	_ = o.SetHeading(45)

	a, err := o.LocationURL("Plaza Moyua, Bilbao")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := o.LocationURL("Plaza Moyua, Bilbao")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("identical inputs produced different URLs:\n%s\n%s", a, b)
	}
}

func TestMarkersURL_TwoGroups(t *testing.T) {
	o := keyedOptions(t)

	got, err := o.MarkersURL([]MarkerGroup{
		{
			Style:     map[string]string{"color": "red", "label": "A"},
			Locations: []string{"Seattle, WA"},
		},
		{
			Locations: []string{"Tacoma, WA", "Olympia, WA"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := "markers=color%3Ared%7Clabel%3AA%7CSeattle%2C+WA"
	second := "markers=Tacoma%2C+WA%7COlympia%2C+WA"
	i, j := strings.Index(got, first), strings.Index(got, second)
	if i < 0 {
		t.Fatalf("missing first marker group in %s", got)
	}
	if j < 0 {
		t.Fatalf("missing second marker group in %s", got)
	}
	if i > j {
		t.Errorf("marker groups out of input order: %s", got)
	}
	if strings.Count(got, "markers=") != 2 {
		t.Errorf("expected two markers parameters: %s", got)
	}
}

func TestMarkersURL_EmptyGroupSkipped(t *testing.T) {
	o := keyedOptions(t)

	got, err := o.MarkersURL([]MarkerGroup{
		{Style: map[string]string{"color": "blue"}},
		{Locations: []string{"Getxo"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(got, "markers=") != 1 {
		t.Errorf("empty group must contribute nothing: %s", got)
	}
}

func TestPathURL_StyleThenPoints(t *testing.T) {
	o := keyedOptions(t)

	got, err := o.PathURL(PathSpec{
		Style:  []Param{{Key: "weight", Value: "5"}, {Key: "color", Value: "0x0000ff"}},
		Points: []string{"43.263,-2.935", "43.257,-2.924"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "path=weight%3A5%7Ccolor%3A0x0000ff%7C43.263%2C-2.935%7C43.257%2C-2.924"
	if !strings.Contains(got, want) {
		t.Errorf("path parameter mismatch:\n got  %s\n want substring %s", got, want)
	}
}

func TestStyledURL_PositionalIndexes(t *testing.T) {
	o := keyedOptions(t)

	got, err := o.StyledURL([]StyleRule{
		{
			Feature: "road",
			Element: "geometry",
			Rules:   []Param{{Key: "color", Value: "0x00ff00"}},
		},
		{
			Feature: "water",
			Rules:   []Param{{Key: "visibility", Value: "off"}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "style[0]=feature%3Aroad%7Celement%3Ageometry%7Ccolor%3A0x00ff00") {
		t.Errorf("missing style[0]: %s", got)
	}
	if !strings.Contains(got, "style[1]=feature%3Awater%7Cvisibility%3Aoff") {
		t.Errorf("missing style[1]: %s", got)
	}
}

func TestStyledURL_EmptyRuleOmitted(t *testing.T) {
	o := keyedOptions(t)
	got, err := o.StyledURL([]StyleRule{{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "style[0]=") {
		t.Errorf("empty rule must be omitted: %s", got)
	}
}
