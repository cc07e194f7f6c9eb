package validate

import "testing"

func TestCanonical(t *testing.T) {
	cases := map[string]string{
		"furniture":  "Furniture",
		"FURNITURE":  "Furniture",
		"  color  ":  "Color",
		"sporting G": "Sporting g",
		"":           "",
	}
	for in, want := range cases {
		if got := Canonical(in); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPhone(t *testing.T) {
	if _, ok := Phone("+7 (912) 555-01-02"); !ok {
		t.Error("international format should pass")
	}
	if _, ok := Phone("call me"); ok {
		t.Error("letters should fail")
	}
}
