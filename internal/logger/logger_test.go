package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestVerboseToggle(t *testing.T) {
	defer reset()

	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevelsCarryPrefixes(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("compiled %s", "vi/my-post.mdx")
	Info("%d documents", 3)
	Warn("cache unavailable")

	want := "debug: compiled vi/my-post.mdx\n" +
		"info: 3 documents\n" +
		"warn: cache unavailable\n"
	assert.Equal(t, want, buf.String())
}

func TestQuietByDefault(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("should not appear")
	Info("should not appear")
	Warn("should not appear")
	Section("build")

	assert.Zero(t, buf.Len())
}

func TestSectionHeader(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("build")

	assert.Equal(t, "\n── build ──\n", buf.String())
}
