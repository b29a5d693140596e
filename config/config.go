package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goodsign/monday"
	"github.com/spf13/viper"
)

var (
	KeyContentDirectory = "content.directory"
	KeyBuildDirectory   = "build.directory"
	KeySiteURL          = "site.url"
	KeySiteTitle        = "site.title"
	KeySiteDescription  = "site.description"
	KeySiteAuthor       = "site.author"
	KeySiteLanguage     = "site.language"
	KeyPostsPerPage     = "posts.per_page"
	KeyMaxImageWidth    = "images.max_width"
	KeyWebP             = "images.webp"
	KeyServeAddr        = "serve.addr"
	KeyEditor           = "tools.editor"
)

var ErrNoContentDirectory = errors.New("no content directory configured")

func HasContentDirectory() bool {
	return viper.IsSet(KeyContentDirectory)
}

func ContentDirectory() string {
	return viper.GetString(KeyContentDirectory)
}

func HasBuildDirectory() bool {
	return viper.IsSet(KeyBuildDirectory)
}

func BuildDirectory() string {
	return viper.GetString(KeyBuildDirectory)
}

func SiteAuthor() string {
	return viper.GetString(KeySiteAuthor)
}

func HasEditor() bool {
	return viper.IsSet(KeyEditor)
}

func Editor() string {
	return viper.GetString(KeyEditor)
}

func DefaultBuildDirectory() string {
	return "dist"
}

func DefaultPostsPerPage() int {
	return 10
}

func DefaultMaxImageWidth() int {
	return 2000
}

func DefaultCoverSize() int {
	return 1200
}

func DefaultServeAddr() string {
	return ":4321"
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBuildDirectory, DefaultBuildDirectory())
	v.SetDefault(KeySiteTitle, "Zero")
	v.SetDefault(KeySiteLanguage, "en-US")
	v.SetDefault(KeyPostsPerPage, DefaultPostsPerPage())
	v.SetDefault(KeyMaxImageWidth, DefaultMaxImageWidth())
	v.SetDefault(KeyWebP, false)
	v.SetDefault(KeyServeAddr, DefaultServeAddr())
}

type Site struct {
	URL         string
	Title       string
	Description string
	Author      string
	Language    string
}

func (s *Site) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Title, validation.Required),
		validation.Field(&s.URL, validation.By(absoluteURL)),
		validation.Field(&s.Language, validation.Required, validation.By(knownLanguage)),
	)
}

// Settings is the validated view of the configuration used by the commands.
type Settings struct {
	ContentDirectory string
	BuildDirectory   string
	Site             Site
	PostsPerPage     int
	MaxImageWidth    int
	WebP             bool
	ServeAddr        string
}

func (s *Settings) Validate() error {
	if s.ContentDirectory == "" {
		return ErrNoContentDirectory
	}

	err := validation.ValidateStruct(s,
		validation.Field(&s.BuildDirectory, validation.Required),
		validation.Field(&s.PostsPerPage, validation.Required, validation.Min(1)),
		validation.Field(&s.MaxImageWidth, validation.Min(0)),
		validation.Field(&s.ServeAddr, validation.Required),
	)
	if err != nil {
		return err
	}

	if err := s.Site.Validate(); err != nil {
		return fmt.Errorf("site: %w", err)
	}

	if isWithin(s.BuildDirectory, s.ContentDirectory) {
		return fmt.Errorf("build directory must not be inside the content directory")
	}

	return nil
}

// Read extracts the settings from v and validates them.
func Read(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		ContentDirectory: v.GetString(KeyContentDirectory),
		BuildDirectory:   v.GetString(KeyBuildDirectory),
		Site: Site{
			URL:         strings.TrimRight(v.GetString(KeySiteURL), "/"),
			Title:       v.GetString(KeySiteTitle),
			Description: v.GetString(KeySiteDescription),
			Author:      v.GetString(KeySiteAuthor),
			Language:    v.GetString(KeySiteLanguage),
		},
		PostsPerPage:  v.GetInt(KeyPostsPerPage),
		MaxImageWidth: v.GetInt(KeyMaxImageWidth),
		WebP:          v.GetBool(KeyWebP),
		ServeAddr:     v.GetString(KeyServeAddr),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Current reads the settings from the global viper instance.
func Current() (*Settings, error) {
	return Read(viper.GetViper())
}

func absoluteURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
}

func knownLanguage(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	tag := strings.ReplaceAll(s, "-", "_")
	for _, l := range monday.ListLocales() {
		if strings.EqualFold(string(l), tag) || strings.HasPrefix(strings.ToLower(string(l)), strings.ToLower(tag)+"_") {
			return nil
		}
	}
	return fmt.Errorf("unsupported language %q", s)
}

// isWithin reports whether p equals dir or lies below it.
func isWithin(p, dir string) bool {
	absP, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(absDir, absP)
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
