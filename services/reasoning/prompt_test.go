package reasoning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt("BrightSmile Dental", "Emma", "We are open weekdays 9-5.")

	assert.Contains(t, prompt, "named Emma at BrightSmile Dental")
	assert.Contains(t, prompt, "We are open weekdays 9-5.")
	assert.Contains(t, prompt, "check_slots(date)")
	assert.Contains(t, prompt, "book_appointment(name, phone, date, time, service)")
}

func TestLoadKnowledgeBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.txt")
	require.NoError(t, os.WriteFile(path, []byte("opening hours"), 0o644))

	kb, err := LoadKnowledgeBase(path)
	require.NoError(t, err)
	assert.Equal(t, "opening hours", kb)

	_, err = LoadKnowledgeBase(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
