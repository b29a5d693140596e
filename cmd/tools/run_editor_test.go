package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorCommand(t *testing.T) {
	argv, err := editorCommand("code --wait", "vim")
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "--wait"}, argv)

	argv, err = editorCommand("  ", "vim")
	require.NoError(t, err)
	assert.Equal(t, []string{"vim"}, argv)

	_, err = editorCommand("", "")
	assert.ErrorIs(t, err, ErrNoEditor)
}
