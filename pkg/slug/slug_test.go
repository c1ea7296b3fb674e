package slug

import "testing"

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Sample Product 1", "sample-product-1"},
		{"  Mama Njeri's Duka  ", "mama-njeri-s-duka"},
		{"UPPER case", "upper-case"},
		{"already-a-slug", "already-a-slug"},
		{"weird!!chars##", "weird-chars"},
		{"--edge--case--", "edge-case"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Make(tc.in); got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWithSuffix(t *testing.T) {
	if got := WithSuffix("tea", 1); got != "tea" {
		t.Errorf("first occurrence should keep base, got %q", got)
	}
	if got := WithSuffix("tea", 2); got != "tea-2" {
		t.Errorf("expected tea-2, got %q", got)
	}
	if got := WithSuffix("tea", 3); got != "tea-3" {
		t.Errorf("expected tea-3, got %q", got)
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("kenya-crafts") {
		t.Error("expected kenya-crafts to be valid")
	}
	if IsValid("Kenya Crafts") {
		t.Error("expected raw name to be invalid")
	}
	if IsValid("") {
		t.Error("expected empty string to be invalid")
	}
}
