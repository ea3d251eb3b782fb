package staticmap

import "testing"

func TestParams_SetKeepsPosition(t *testing.T) {
	p := NewParams()
	p.Set("a", "1")
	p.Set("b", "2")
	p.Set("a", "3")

	if got := p.Encode(); got != "a=3&b=2" {
		t.Errorf("expected a=3&b=2, got %s", got)
	}
}

func TestParams_EmptyValuesOmitted(t *testing.T) {
	p := NewParams()
	p.Set("language", "")
	p.Set("zoom", "14")
	p.Set("region", "")

	if got := p.Encode(); got != "zoom=14" {
		t.Errorf("expected zoom=14, got %s", got)
	}
}

func TestParams_AddRepeats(t *testing.T) {
	p := NewParams()
	p.Add("markers", "first")
	p.Set("zoom", "5")
	p.Add("markers", "second")

	if got := p.Encode(); got != "markers=first&markers=second&zoom=5" {
		t.Errorf("repeated values must stay at first key position, got %s", got)
	}
}

func TestParams_Del(t *testing.T) {
	p := NewParams()
	p.Set("a", "1")
	p.Set("key", "old")
	p.Set("b", "2")
	p.Del("key")
	p.Add("key", "new")

	if got := p.Encode(); got != "a=1&b=2&key=new" {
		t.Errorf("expected key moved to the end, got %s", got)
	}
}

func TestParams_ValuesEscaped(t *testing.T) {
	p := NewParams()
	p.Set("center", "Plaza Moyua, Bilbao")

	if got := p.Encode(); got != "center=Plaza+Moyua%2C+Bilbao" {
		t.Errorf("unexpected encoding: %s", got)
	}
}
