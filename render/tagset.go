package render

import (
	"hash/fnv"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ak0r/zero-theme/data/document"
)

// TagSet assigns every tag a color. The color only depends on the
// normalized tag name, so pages rendered in parallel or by different
// builds agree on it.
type TagSet struct {
	mu     sync.Mutex
	colors map[string]colorful.Color
}

func NewTagSet() *TagSet {
	return &TagSet{
		colors: make(map[string]colorful.Color),
	}
}

// HexColor returns the color of tag as #rrggbb.
func (ts *TagSet) HexColor(tag string) string {
	normTag := document.NormalizeTagName(tag)

	ts.mu.Lock()
	defer ts.mu.Unlock()

	c, ok := ts.colors[normTag]
	if !ok {
		c = tagColor(normTag)
		ts.colors[normTag] = c
	}

	return c.Hex()
}

func tagColor(name string) colorful.Color {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))

	return colorful.Hsv(float64(h.Sum32()%360), 0.45, 0.75)
}
