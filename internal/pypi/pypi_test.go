package pypi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/git-pkgs/versionbadge/internal/core"
)

func TestResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pypi/django-rest/json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(404)
			return
		}

		resp := packageResponse{
			Info: infoBlock{
				Name:           "django-rest",
				Version:        "3.14.0",
				License:        "this text is really really really really really really long",
				Classifiers:    classifiersFixture,
				RequiresPython: ">=3.6",
			},
			URLs: []File{{PackageType: "bdist_wheel"}, {PackageType: "sdist"}},
			Releases: map[string][]File{
				"3.14.0": {{PackageType: "sdist"}},
				"3.9.1":  {{PackageType: "sdist"}},
				"10.0":   {},
				"3.10":   {},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	src := New(server.URL, core.DefaultClient())
	res, err := src.Resolve(context.Background(), "django-rest", core.Query{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if res.Version != "3.14.0" {
		t.Errorf("version = %q, want 3.14.0", res.Version)
	}
	if !reflect.DeepEqual(res.Licenses, []string{"BSD"}) {
		t.Errorf("licenses = %v, want [BSD]", res.Licenses)
	}
	if !reflect.DeepEqual(res.Versions, []string{"3.9.1", "3.10", "3.14.0", "10.0"}) {
		t.Errorf("versions = %v", res.Versions)
	}
	if !reflect.DeepEqual(res.Metadata["python_versions"], []string{"2.7", "3.4", "3.5", "3.6"}) {
		t.Errorf("python_versions = %v", res.Metadata["python_versions"])
	}
	if !reflect.DeepEqual(res.Metadata["django_versions"], []string{"1.10", "1.11"}) {
		t.Errorf("django_versions = %v", res.Metadata["django_versions"])
	}
	if res.Metadata["has_wheel"] != true || res.Metadata["has_egg"] != false {
		t.Errorf("formats = %v/%v", res.Metadata["has_wheel"], res.Metadata["has_egg"])
	}
}

func TestResolveLicenseThresholdFromQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"info":{"name":"pkg","version":"1.0","license":"Apache 2.0","classifiers":["License :: OSI Approved :: MIT License"]},"urls":[],"releases":{}}`))
	}))
	defer server.Close()

	src := New(server.URL, core.DefaultClient())

	res, err := src.Resolve(context.Background(), "pkg", core.Query{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !reflect.DeepEqual(res.Licenses, []string{"Apache 2.0"}) {
		t.Errorf("licenses = %v", res.Licenses)
	}

	res, err = src.Resolve(context.Background(), "pkg", core.Query{MaxLicenseNameLength: 4})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !reflect.DeepEqual(res.Licenses, []string{"MIT"}) {
		t.Errorf("licenses = %v", res.Licenses)
	}
}

func TestResolveNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	src := New(server.URL, core.DefaultClient())
	_, err := src.Resolve(context.Background(), "missing", core.Query{})
	if !core.IsNotFound(err, core.UnknownParent) {
		t.Fatalf("expected unknown parent NotFound, got %v", err)
	}
	if err.Error() != "package not found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Django", "django"},
		{"zope.interface", "zope-interface"},
		{"typing_extensions", "typing-extensions"},
	}

	for _, tt := range tests {
		if got := normalizeName(tt.input); got != tt.want {
			t.Errorf("normalizeName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestURLBuilder(t *testing.T) {
	src := New("", nil)
	urls := src.URLs()

	if got := urls.Registry("requests", "2.31.0"); got != "https://pypi.org/project/requests/2.31.0/" {
		t.Errorf("Registry = %q", got)
	}
	if got := urls.Documentation("requests", ""); got != "https://requests.readthedocs.io/" {
		t.Errorf("Documentation = %q", got)
	}
	if got := urls.PURL("Typing_Extensions", "4.0"); got != "pkg:pypi/typing-extensions@4.0" {
		t.Errorf("PURL = %q", got)
	}
}

func TestEcosystem(t *testing.T) {
	if got := New("", nil).Ecosystem(); got != "pypi" {
		t.Errorf("Ecosystem() = %q", got)
	}
}
