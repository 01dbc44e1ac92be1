package pypi

import (
	"reflect"
	"regexp"
	"testing"
)

func TestLicenses(t *testing.T) {
	mit := "License :: OSI Approved :: MIT License"

	tests := []struct {
		name string
		info Info
		want []string
	}{
		{"expression", Info{LicenseExpression: "MIT"}, []string{"MIT"}},
		{"short license field", Info{License: "MIT"}, []string{"MIT"}},
		{"classifier", Info{Classifiers: []string{mit}}, []string{"MIT"}},
		{"empty license field", Info{License: "", Classifiers: []string{mit}}, []string{"MIT"}},
		{"license text", Info{License: "this text is really really really really really really long", Classifiers: []string{mit}}, []string{"MIT"}},
		{"dfsg dropped", Info{Classifiers: []string{mit, "License :: DFSG approved"}}, []string{"MIT"}},
		{"public domain", Info{Classifiers: []string{"License :: Public Domain"}}, []string{"Public Domain"}},
		{"parenthesised acronym", Info{Classifiers: []string{"License :: Netscape Public License (NPL)"}}, []string{"NPL"}},
		{"apache", Info{Classifiers: []string{"License :: OSI Approved :: Apache Software License"}}, []string{"Apache-2.0"}},
		{"cc0", Info{Classifiers: []string{"License :: CC0 1.0 Universal (CC0 1.0) Public Domain Dedication"}}, []string{"CC0-1.0"}},
		{"agpl", Info{Classifiers: []string{"License :: OSI Approved :: GNU Affero General Public License v3"}}, []string{"AGPL-3.0"}},
		{"0bsd", Info{Classifiers: []string{"License :: OSI Approved :: Zero-Clause BSD (0BSD)"}}, []string{"0BSD"}},
		{"expression beats classifier", Info{LicenseExpression: "MIT OR Apache-2.0", Classifiers: []string{"License :: OSI Approved :: BSD License"}}, []string{"MIT OR Apache-2.0"}},
		{"deduplicated", Info{Classifiers: []string{mit, "License :: MIT License"}}, []string{"MIT"}},
		{"unknown phrase", Info{Classifiers: []string{"License :: Other/Proprietary License"}}, nil},
		{"nothing", Info{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Licenses(tt.info)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Licenses() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestLicenseResolverThreshold(t *testing.T) {
	info := Info{
		License:     "BSD 3-Clause",
		Classifiers: []string{"License :: OSI Approved :: MIT License"},
	}

	if got := (LicenseResolver{}).Resolve(info); !reflect.DeepEqual(got, []string{"BSD 3-Clause"}) {
		t.Errorf("default threshold: got %v", got)
	}
	if got := (LicenseResolver{MaxNameLength: 5}).Resolve(info); !reflect.DeepEqual(got, []string{"MIT"}) {
		t.Errorf("threshold 5: got %v", got)
	}
}

func TestLicenseResolverCustomTable(t *testing.T) {
	table := LicenseTable{
		{Pattern: regexp.MustCompile(`^Other/Proprietary License$`), ID: "LicenseRef-Proprietary"},
	}
	r := LicenseResolver{Table: table}
	got := r.Resolve(Info{Classifiers: []string{"License :: Other/Proprietary License"}})
	if !reflect.DeepEqual(got, []string{"LicenseRef-Proprietary"}) {
		t.Errorf("got %v", got)
	}
}

func TestLicenseTableLookup(t *testing.T) {
	tests := []struct {
		phrase string
		want   string
		ok     bool
	}{
		{"MIT License", "MIT", true},
		{"BSD License", "BSD", true},
		{"ISC License (ISCL)", "ISC", true},
		{"Apache-2.0", "Apache-2.0", true},
		{"OSI Approved", "", false},
	}

	for _, tt := range tests {
		got, ok := DefaultLicenseTable.Lookup(tt.phrase)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%q) = %q, %v; want %q, %v", tt.phrase, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValidLicenses(t *testing.T) {
	if ok, _ := ValidLicenses([]string{"MIT", "Apache-2.0"}); !ok {
		t.Error("expected MIT and Apache-2.0 to be valid")
	}
	ok, invalid := ValidLicenses([]string{"MIT", "Public Domain"})
	if ok {
		t.Error("expected Public Domain to be invalid")
	}
	if !reflect.DeepEqual(invalid, []string{"Public Domain"}) {
		t.Errorf("invalid = %v", invalid)
	}
	if ok, _ := ValidLicenses(nil); ok {
		t.Error("empty list should not be valid")
	}
}
