package github

import (
	"reflect"
	"testing"

	"github.com/git-pkgs/versionbadge/internal/core"
)

func TestLimit(t *testing.T) {
	tests := []struct {
		sort   core.Sort
		filter string
		want   int
	}{
		{core.SortDate, "", 1},
		{core.SortDate, "!*-dev", 100},
		{core.SortSemver, "", 100},
		{core.SortSemver, "!*-dev", 100},
	}

	for _, tt := range tests {
		if got := Limit(tt.sort, tt.filter); got != tt.want {
			t.Errorf("Limit(%q, %q) = %d, want %d", tt.sort, tt.filter, got, tt.want)
		}
	}
}

func TestApplyFilter(t *testing.T) {
	tags := []string{"v1.1.0", "v1.2.0", "server-2022-01-01"}

	tests := []struct {
		filter string
		want   []string
	}{
		{"", tags},
		{"*", tags},
		{"!*", []string{}},
		{"foo", []string{}},
		{"server-*", []string{"server-2022-01-01"}},
		{"!server-*", []string{"v1.1.0", "v1.2.0"}},
		{"SERVER-*", []string{"server-2022-01-01"}},
		{"v1.?.0", []string{}},
		{"*2.0", []string{"v1.2.0"}},
		{"v1.[12].0", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got := ApplyFilter(tags, tt.filter)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ApplyFilter(%q) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestLatestTag(t *testing.T) {
	fixture := []string{"cheese", "v1.2", "v1.3-beta3"}

	tests := []struct {
		name string
		tags []string
		sort core.Sort
		pre  bool
		want string
	}{
		{"semver with pre-releases", fixture, core.SortSemver, true, "v1.3-beta3"},
		{"semver stable", fixture, core.SortSemver, false, "v1.2"},
		{"date with pre-releases", fixture, core.SortDate, true, "cheese"},
		{"date stable", fixture, core.SortDate, false, "cheese"},
		{"only pre-releases", []string{"1.2.0-beta"}, core.SortSemver, false, "1.2.0-beta"},
		{"only pre-releases by date", []string{"1.2.0-beta"}, core.SortDate, false, "1.2.0-beta"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LatestTag(tt.tags, tt.sort, tt.pre)
			if err != nil {
				t.Fatalf("LatestTag failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("LatestTag() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLatestTagNoSemver(t *testing.T) {
	_, err := LatestTag([]string{"cheese", "nightly"}, core.SortSemver, false)
	if !core.IsNotFound(err, core.NoCandidates) {
		t.Fatalf("expected NoCandidates, got %v", err)
	}
	if err.Error() != "no valid semver tags found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestSelectTag(t *testing.T) {
	tags := []string{"v2.0.0-rc1", "v1.1.0", "server-2022-01-01", "v1.0.0"}
	submodules := []string{"docs", "vendor/lib"}

	tests := []struct {
		name    string
		q       core.Query
		want    Selection
		wantErr string
	}{
		{"date", core.Query{Sort: core.SortDate}, Selection{"v2.0.0-rc1", "v2.0.0-rc1"}, ""},
		{"semver", core.Query{Sort: core.SortSemver}, Selection{"v1.1.0", "v1.1.0"}, ""},
		{"semver pre", core.Query{Sort: core.SortSemver, IncludePrereleases: true}, Selection{"v2.0.0-rc1", "v2.0.0-rc1"}, ""},
		{"filter", core.Query{Filter: "server-*"}, Selection{"server-2022-01-01", "server-2022-01-01"}, ""},
		{"submodule", core.Query{Sort: core.SortSemver, Submodule: "docs"}, Selection{"v1.1.0", "docs@v1.1.0"}, ""},
		{"unknown submodule", core.Query{Submodule: "missing"}, Selection{}, "submodule not found"},
		{"no match", core.Query{Filter: "!*"}, Selection{}, "no matching tags found"},
		{"unknown submodule checked first", core.Query{Submodule: "missing", Filter: "!*"}, Selection{}, "submodule not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectTag(tags, submodules, tt.q)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectTag failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("SelectTag() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSelectTagEmpty(t *testing.T) {
	_, err := SelectTag(nil, nil, core.Query{})
	if err == nil || err.Error() != "no tags found" {
		t.Fatalf("err = %v, want no tags found", err)
	}
	if !core.IsNotFound(err, core.NoCandidates) {
		t.Error("expected NoCandidates kind")
	}
}

func TestSelectTagSemverMembership(t *testing.T) {
	pools := [][]string{
		{"v1.0.0", "junk", "2.0.0-alpha"},
		{"release-1", "0.0.1"},
		{"v10.0.0", "v9.9.9", "v10.0.0-rc1"},
	}
	for _, tags := range pools {
		sel, err := SelectTag(tags, nil, core.Query{Sort: core.SortSemver, IncludePrereleases: true})
		if err != nil {
			t.Fatalf("SelectTag(%v) failed: %v", tags, err)
		}
		found := false
		for _, tag := range tags {
			if tag == sel.Version {
				found = true
			}
		}
		if !found {
			t.Errorf("SelectTag(%v) = %q, not in input", tags, sel.Version)
		}
	}
}
