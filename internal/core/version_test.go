package core

import (
	"slices"
	"testing"
)

func TestCompareDotted(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.9", "1.11", -1},
		{"2", "2.0", 0},
		{"2.0rc1", "2.0", 0},
		{"2.0rc1", "2.1", -1},
		{"10", "2.11", 1},
		{"1804", "2004", -1},
		{"2204", "2204.1.8.0", -1},
		{"2204.1.8.0", "2404", -1},
		{"0.1101.416.0", "0.1201.442.0", -1},
		{"01.2", "1.2", 0},
		{"99999999999999999999999.1", "99999999999999999999998.9", 1},
		{"foo", "0", 0},
		{"v2.0", "1.0", 1},
		{"v10", "V9.9", 1},
		{"v1.2", "1.2", 0},
	}

	for _, tt := range tests {
		if got := CompareDotted(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareDotted(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := CompareDotted(tt.b, tt.a); got != -tt.want {
			t.Errorf("CompareDotted(%q, %q) = %d, want %d", tt.b, tt.a, got, -tt.want)
		}
	}
}

func TestSortDotted(t *testing.T) {
	tests := []struct {
		input []string
		want  []string
	}{
		{
			[]string{"2.0", "1.9", "10", "1.11", "2.1", "2.11"},
			[]string{"1.9", "1.11", "2.0", "2.1", "2.11", "10"},
		},
		{
			[]string{"2", "1.9", "10", "1.11", "2.1", "2.11"},
			[]string{"1.9", "1.11", "2", "2.1", "2.11", "10"},
		},
		{
			[]string{"2.0rc1", "10", "1.9", "1.11", "2.1", "2.11"},
			[]string{"1.9", "1.11", "2.0rc1", "2.1", "2.11", "10"},
		},
		{
			[]string{"2404", "2204.1.8.0", "1804", "2004"},
			[]string{"1804", "2004", "2204.1.8.0", "2404"},
		},
		{
			[]string{"v2.0", "1.0", "v10"},
			[]string{"1.0", "v2.0", "v10"},
		},
		{nil, []string{}},
	}

	for _, tt := range tests {
		input := slices.Clone(tt.input)
		got := SortDotted(tt.input)
		if !slices.Equal(got, tt.want) && !(len(got) == 0 && len(tt.want) == 0) {
			t.Errorf("SortDotted(%v) = %v, want %v", tt.input, got, tt.want)
		}
		if !slices.Equal(tt.input, input) {
			t.Errorf("SortDotted mutated its input: %v", tt.input)
		}
		if again := SortDotted(got); !slices.Equal(again, got) {
			t.Errorf("SortDotted not idempotent: %v then %v", got, again)
		}
	}
}

func TestSortDottedStable(t *testing.T) {
	got := SortDotted([]string{"2.0", "2", "1", "2.0rc1"})
	want := []string{"1", "2.0", "2", "2.0rc1"}
	if !slices.Equal(got, want) {
		t.Errorf("SortDotted = %v, want %v", got, want)
	}
}

func TestLatestDotted(t *testing.T) {
	got, ok := LatestDotted([]string{"0.1001.389.0", "0.1201.442.0", "0.1101.416.0"})
	if !ok || got != "0.1201.442.0" {
		t.Errorf("LatestDotted = %q, %v", got, ok)
	}
	if _, ok := LatestDotted(nil); ok {
		t.Error("LatestDotted(nil) should report false")
	}
}
