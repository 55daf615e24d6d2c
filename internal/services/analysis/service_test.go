package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	rendered := RenderTemplate("we discussed the quarterly roadmap")

	assert.Contains(t, rendered, "## Original Text:")
	assert.Contains(t, rendered, "we discussed the quarterly roadmap")
	assert.Contains(t, rendered, "3-sentence summary")
	assert.False(t, strings.Contains(rendered, "{transcription}"), "placeholder should be substituted")
}

func TestNewService_DefaultModel(t *testing.T) {
	service := NewService("key", "")
	assert.Equal(t, "gpt-4o-mini", service.model)
}
