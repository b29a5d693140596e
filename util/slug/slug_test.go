package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Hello World":         "hello-world",
		"  Trim me  ":         "trim-me",
		"Go & Rust: a story!": "go-rust-a-story",
		"--already--dashed--": "already-dashed",
		"snake_case stays":    "snake_case-stays",
		"":                    "",
	}

	for in, want := range tests {
		assert.Equal(t, want, Make(in), in)
	}
}

func TestTag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "travel-europe", Tag("#travel/europe"))
	assert.Equal(t, "golang", Tag("GoLang"))
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "My First Post", Title("my-first-post"))
	assert.Equal(t, "Snake Case", Title("snake_case"))
	assert.Equal(t, "", Title("--"))
}
