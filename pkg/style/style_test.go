package style_test

import (
	"testing"

	"github.com/shellup/shellup/pkg/style"
	"github.com/stretchr/testify/assert"
)

// Test output is piped, so styling is disabled and the message must come
// back verbatim.
func TestRenderers_PassThroughWithoutTTY(t *testing.T) {
	assert.Equal(t, "watch out", style.Warning("watch out"))
	assert.Equal(t, "all good", style.Success("all good"))
	assert.Equal(t, "Bootstrapping /ws", style.Header("Bootstrapping /ws"))
	assert.False(t, style.IsTTY())
}
