package winget

import (
	"strings"

	"github.com/git-pkgs/versionbadge/internal/core"
)

// Node types in a repository listing.
const (
	TypeTree = "tree"
	TypeBlob = "blob"
)

// TreeNode is one entry of a hierarchical directory listing. Children is
// nil for blobs and for trees listed without their contents.
type TreeNode struct {
	Type     string
	Name     string
	Children []TreeNode
}

// isManifest reports whether name is one of pkg's own manifest files:
// "<pkg>.yaml", "<pkg>.installer.yaml" or "<pkg>.locale.<tag>.yaml".
func isManifest(name, pkg string) bool {
	if name == pkg+".yaml" || name == pkg+".installer.yaml" {
		return true
	}
	locale, ok := strings.CutPrefix(name, pkg+".locale.")
	if !ok {
		return false
	}
	tag, ok := strings.CutSuffix(locale, ".yaml")
	return ok && tag != ""
}

// holdsManifest reports whether node directly contains a manifest of pkg.
func holdsManifest(node TreeNode, pkg string) bool {
	for _, child := range node.Children {
		if child.Type == TypeBlob && isManifest(child.Name, pkg) {
			return true
		}
	}
	return false
}

// versionLike reports whether a directory name could be a version or a
// version prefix such as "2204".
func versionLike(name string) bool {
	name = strings.TrimPrefix(name, "v")
	return name != "" && name[0] >= '0' && name[0] <= '9'
}

func collectVersions(node TreeNode, pkg string, out []string) []string {
	for _, child := range node.Children {
		if child.Type != TypeTree {
			continue
		}
		if holdsManifest(child, pkg) {
			out = append(out, child.Name)
			continue
		}
		if versionLike(child.Name) && len(child.Children) > 0 {
			out = collectVersions(child, pkg, out)
		}
	}
	return out
}

// Versions walks the listing of pkg's manifest directory and returns the
// names of the directories that directly hold pkg's own manifest files,
// in ascending dotted-numeric order. Directories that only look like
// versions are searched recursively. Sibling sub-packages never match
// because their manifests carry a longer identifier.
func Versions(root TreeNode, pkg string) ([]string, error) {
	versions := collectVersions(root, pkg, nil)
	if len(versions) == 0 {
		return nil, core.NoCandidatesError("versions", false)
	}
	return core.SortDotted(versions), nil
}

// LatestVersion returns the highest version found by Versions.
func LatestVersion(root TreeNode, pkg string) (string, error) {
	versions, err := Versions(root, pkg)
	if err != nil {
		return "", err
	}
	return versions[len(versions)-1], nil
}
