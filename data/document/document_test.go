package document

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ak0r/zero-theme/content"
)

func TestDocumentURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		slug   string
		url    string
		output string
	}{
		{"posts/my-post/index.md", "my-post", "/posts/my-post/", "posts/my-post/index.html"},
		{"docs/setup.md", "setup", "/docs/setup/", "docs/setup/index.html"},
		{"pages/about/index.md", "about", "/about/", "about/index.html"},
		{"notes/x.md", "x", "/x/", "x/index.html"},
	}

	for _, tt := range tests {
		doc := &Document{
			VaultPath:      tt.path,
			Classification: content.Classify(tt.path),
			Slug:           tt.slug,
		}
		assert.Equal(t, tt.url, doc.URL(), tt.path)
		assert.Equal(t, tt.output, doc.OutputPath(), tt.path)
	}
}

func TestDocumentTags(t *testing.T) {
	t.Parallel()

	doc := &Document{}
	doc.AddTag(Tag{Raw: "Go"})
	doc.AddTag(Tag{Raw: " go "})
	doc.AddTag(Tag{Raw: "travel/europe"})

	assert.Len(t, doc.Tags, 2)
	assert.True(t, doc.HasTag("#GO"))
	assert.Equal(t, "travel-europe", doc.Tags[1].Slug())
}
