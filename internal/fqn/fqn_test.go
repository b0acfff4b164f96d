package fqn

import "testing"

func TestTypeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"UIView", "view"},
		{"UILabel", "label"},
		{"UIImageView", "imageView"},
		{"UISegmentedControl", "segmentedControl"},
		{"App.CardView", "cardView"},
		{"URLField", "urlField"},
		{"UIURLField", "urlField"},
		{"_UIBackdropView", "backdropView"},
		{"HTML", "html"},
		{"", "view"},
	}
	for _, tt := range tests {
		if got := TypeName(tt.in); got != tt.want {
			t.Errorf("TypeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		typ  string
		path []int
		want string
	}{
		{"UIView", []int{0}, "view_0"},
		{"UILabel", []int{0, 0}, "label_0_0"},
		{"UILabel", []int{0, 1}, "label_0_1"},
		{"UIButton", []int{0, 1, 0}, "button_0_1_0"},
	}
	for _, tt := range tests {
		if got := Compute(tt.typ, tt.path); got != tt.want {
			t.Errorf("Compute(%q, %v) = %q, want %q", tt.typ, tt.path, got, tt.want)
		}
	}
}

func TestScreenName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Login.json", "Login"},
		{"onboarding/Step1.yaml", "onboarding.Step1"},
		{"./a/b.yml", "a.b"},
	}
	for _, tt := range tests {
		if got := ScreenName(tt.in); got != tt.want {
			t.Errorf("ScreenName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if FileName("Login") != "Login.swift" {
		t.Error("unexpected file name")
	}
}
