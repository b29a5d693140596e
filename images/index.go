package images

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ak0r/zero-theme/content"
)

var imageExtensionPattern = regexp.MustCompile(`(?i)\.(png|jpe?g|webp|avif|gif|svg)$`)

var remoteURLPattern = regexp.MustCompile(`(?i)^https?://`)

// Kind tells how the build treats a resolved image.
type Kind int

const (
	// Embedded images are part of the content tree and get optimized.
	Embedded Kind = iota
	// StaticAsset images are served verbatim from the public directory.
	StaticAsset
	// Remote images are external URLs.
	Remote
)

func (k Kind) String() string {
	switch k {
	case Embedded:
		return "embedded"
	case StaticAsset:
		return "static"
	case Remote:
		return "remote"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Asset is a local image known at build time.
type Asset struct {
	VaultPath string // slash separated, relative to the content root
	FilePath  string
	Taken     *time.Time
}

// URL is the site-absolute URL the asset is published under.
func (a *Asset) URL() string {
	return "/" + a.VaultPath
}

// ResolvedImage is the outcome of resolving a raw image reference.
type ResolvedImage struct {
	Kind   Kind
	URL    string
	Asset  *Asset // set for Embedded only
	Source string
}

// Index maps vault paths of local images to their assets. It is built once
// per build and only read afterwards.
type Index struct {
	root   string
	byPath map[string]*Asset
}

func NewIndex(root string) *Index {
	return &Index{
		root:   root,
		byPath: make(map[string]*Asset),
	}
}

// BuildIndex walks root and registers every image file.
func BuildIndex(root string) (*Index, error) {
	ix := NewIndex(root)

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() || !imageExtensionPattern.MatchString(p) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		asset := ix.Add(filepath.ToSlash(rel), p)
		if taken, err := CaptureTime(p); err == nil {
			asset.Taken = &taken
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not index images: %w", err)
	}

	return ix, nil
}

func (ix *Index) Root() string {
	return ix.root
}

// Add registers an asset under vaultPath.
func (ix *Index) Add(vaultPath string, filePath string) *Asset {
	vaultPath = cleanVaultPath(vaultPath)
	asset := &Asset{
		VaultPath: vaultPath,
		FilePath:  filePath,
	}
	ix.byPath[vaultPath] = asset

	return asset
}

func (ix *Index) Lookup(vaultPath string) (*Asset, bool) {
	asset, ok := ix.byPath[cleanVaultPath(vaultPath)]
	return asset, ok
}

func (ix *Index) Len() int {
	return len(ix.byPath)
}

// Assets returns all assets ordered by vault path.
func (ix *Index) Assets() []*Asset {
	assets := make([]*Asset, 0, len(ix.byPath))
	for _, a := range ix.byPath {
		assets = append(assets, a)
	}

	sort.Slice(assets, func(i, j int) bool {
		return assets[i].VaultPath < assets[j].VaultPath
	})

	return assets
}

// InDirectory returns the assets directly inside the vault directory dir,
// ordered by capture time; assets without one follow, ordered by path.
func (ix *Index) InDirectory(dir string) []*Asset {
	dir = cleanVaultPath(dir)

	var assets []*Asset
	for _, a := range ix.Assets() {
		if path.Dir(a.VaultPath) == dir {
			assets = append(assets, a)
		}
	}

	sort.SliceStable(assets, func(i, j int) bool {
		a1, a2 := assets[i], assets[j]

		if a1.Taken == nil || a2.Taken == nil {
			return a1.Taken != nil && a2.Taken == nil
		}

		return a1.Taken.Before(*a2.Taken)
	})

	return assets
}

// Resolve maps a raw image value, e.g. a frontmatter field, onto one of the
// three image kinds. Empty values do not resolve.
func (ix *Index) Resolve(raw string) (ResolvedImage, bool) {
	cleaned := strings.TrimSpace(StripObsidianBrackets(raw))
	if cleaned == "" {
		return ResolvedImage{}, false
	}

	if remoteURLPattern.MatchString(cleaned) {
		return ResolvedImage{Kind: Remote, URL: cleaned, Source: "external"}, true
	}

	vaultPath := strings.TrimLeft(cleaned, "/")
	isAttachment := strings.HasPrefix(vaultPath, content.AttachmentsDirectory+"/")

	if imageExtensionPattern.MatchString(vaultPath) {
		if asset, ok := ix.Lookup(vaultPath); ok {
			source := "post"
			if isAttachment {
				source = "shared"
			}
			return ResolvedImage{Kind: Embedded, URL: asset.URL(), Asset: asset, Source: source}, true
		}
	}

	if isAttachment {
		return ResolvedImage{Kind: StaticAsset, URL: "/" + vaultPath, Source: content.AttachmentsDirectory}, true
	}

	return ResolvedImage{Kind: StaticAsset, URL: "/" + vaultPath}, true
}

// ResolveRelative resolves src as referenced from a document located in the
// vault directory docDir. Relative references are joined with docDir first.
func (ix *Index) ResolveRelative(docDir string, src string) (ResolvedImage, bool) {
	if src == "" || remoteURLPattern.MatchString(src) || strings.HasPrefix(src, "/") || strings.HasPrefix(src, "data:") {
		return ix.Resolve(src)
	}

	return ix.Resolve(path.Join(docDir, src))
}

// Locate resolves the relative reference src of a document in the vault
// directory docDir. Besides the plain join it tries the document's
// attachments and images directories, since path resolution strips those
// prefixes, and finally the shared attachments directory of the vault.
func (ix *Index) Locate(docDir string, src string) (ResolvedImage, bool) {
	if rest, ok := strings.CutPrefix(src, "./"); ok {
		for _, dir := range []string{"", content.AttachmentsDirectory, content.ImagesDirectory} {
			if asset, ok := ix.Lookup(path.Join(docDir, dir, rest)); ok {
				return ResolvedImage{Kind: Embedded, URL: asset.URL(), Asset: asset, Source: "post"}, true
			}
		}

		if asset, ok := ix.Lookup(path.Join(content.AttachmentsDirectory, rest)); ok {
			return ResolvedImage{Kind: Embedded, URL: asset.URL(), Asset: asset, Source: "shared"}, true
		}
	}

	return ix.ResolveRelative(docDir, src)
}

func cleanVaultPath(p string) string {
	p = path.Clean(content.NormalizePath(p))
	return strings.TrimPrefix(p, "/")
}
