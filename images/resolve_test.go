package images

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ak0r/zero-theme/content"
)

func TestResolveImagePath(t *testing.T) {
	t.Parallel()

	folder := content.Classify("content/posts/my-post/index.md")
	single := content.Classify("content/posts/hello.md")
	none := content.Classify("notes/scratch.md")

	tests := []struct {
		name  string
		raw   string
		class content.Classification
		want  string
	}{
		{"folder strips attachments", "attachments/cover.jpg", folder, "./cover.jpg"},
		{"folder strips images", "images/a/b.png", folder, "./a/b.png"},
		{"folder bare name", "cover.jpg", folder, "./cover.jpg"},
		{"single strips attachments", "attachments/cover.jpg", single, "./cover.jpg"},
		{"single strips images", "images/cover.jpg", single, "./cover.jpg"},
		{"single keeps nested dirs", "attachments/trip/a.png", single, "./trip/a.png"},
		{"single bare name", "cover.jpg", single, "./attachments/cover.jpg"},
		{"brackets unwrapped", "[[cover.jpg]]", single, "./attachments/cover.jpg"},
		{"remote", "https://example.com/a.png", folder, "https://example.com/a.png"},
		{"absolute", "/images/a.png", folder, "/images/a.png"},
		{"already relative", "./a.png", single, "./a.png"},
		{"parent relative", "../a.png", single, "../a.png"},
		{"audio untouched", "song.mp3", folder, "song.mp3"},
		{"pdf untouched", "attachments/paper.PDF", folder, "attachments/paper.PDF"},
		{"no collection", "cover.jpg", none, "cover.jpg"},
		{"no collection attachments fallback", "attachments/cover.jpg", none, "./cover.jpg"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ResolveImagePath(tt.raw, tt.class)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, ResolveImagePath(got, tt.class), "resolving twice must be a no-op")
		})
	}
}

func TestWebPPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"a.jpg":               "a.webp",
		"dir/a.JPEG":          "dir/a.webp",
		"a.png":               "a.webp",
		"a.gif":               "a.webp",
		"a.bmp":               "a.webp",
		"a.tiff":              "a.webp",
		"a.svg":               "a.svg",
		"a.webp":              "a.webp",
		"http://x.org/a.jpg":  "http://x.org/a.jpg",
		"https://x.org/a.png": "https://x.org/a.png",
		"notes.jpg.txt":       "notes.jpg.txt",
		"":                    "",
	}

	for in, want := range tests {
		assert.Equal(t, want, WebPPath(in), in)
	}
}

func TestStripObsidianBrackets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cover.jpg", StripObsidianBrackets("[[cover.jpg]]"))
	assert.Equal(t, "[[cover.jpg", StripObsidianBrackets("[[cover.jpg"))
	assert.Equal(t, "[[]]", StripObsidianBrackets("[[]]"))
	assert.Equal(t, "a", StripObsidianBrackets("[[a]]"))
}
