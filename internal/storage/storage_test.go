package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckName(t *testing.T) {
	for _, bad := range []string{"", "../x.png", "a/b.png", `a\b.png`, ".hidden", ".."} {
		assert.ErrorIs(t, CheckName(bad), ErrInvalidName, bad)
	}
	assert.NoError(t, CheckName("3f2a_logo.png"))
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "logo.png", strings.NewReader("png-bytes"), 9, "image/png"))

	rc, contentType, err := s.Open(ctx, "logo.png")
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "png-bytes", string(body))
	assert.Equal(t, "image/png", contentType)

	_, _, err = s.Open(ctx, "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Save(ctx, "../escape.png", strings.NewReader("x"), 1, "image/png"), ErrInvalidName)
}

func TestLocalStore_NonImageServedAsBinary(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "old.html", strings.NewReader("<script>"), 8, "image/png"))
	rc, contentType, err := s.Open(ctx, "old.html")
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "application/octet-stream", contentType)
}
