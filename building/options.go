package building

import (
	"github.com/ak0r/zero-theme/config"
	"github.com/ak0r/zero-theme/filesystem"
)

// NewOptions derives build options from validated settings. Directories are
// made absolute.
func NewOptions(s *config.Settings) Options {
	return Options{
		ContentDirectory: filesystem.Abs(s.ContentDirectory),
		BuildDirectory:   filesystem.Abs(s.BuildDirectory),
		Site: Site{
			Title:       s.Site.Title,
			Description: s.Site.Description,
			URL:         s.Site.URL,
			Author:      s.Site.Author,
			Language:    s.Site.Language,
		},
		PostsPerPage:  s.PostsPerPage,
		MaxImageWidth: s.MaxImageWidth,
		WebP:          s.WebP,
	}
}
