package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFontResolver_FallsBackToBuiltin(t *testing.T) {
	resolver := NewFontResolver([]string{
		"/nonexistent/font-one.ttf",
		"/nonexistent/font-two.ttf",
	}, zap.NewNop())

	// system font paths may or may not exist on the test machine; either way
	// Resolve must return a usable handle
	handle := resolver.Resolve()

	assert.NotEmpty(t, handle.Family)
	if handle.Builtin {
		assert.Empty(t, handle.Path)
	} else {
		assert.FileExists(t, handle.Path)
	}
}

func TestFontResolver_NoCandidates(t *testing.T) {
	resolver := NewFontResolver(nil, zap.NewNop())
	handle := resolver.Resolve()
	assert.NotEmpty(t, handle.Family)
}
