package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldV, oldSHA, oldTime := Version, GitSHA, BuildTime
	t.Cleanup(func() { Version, GitSHA, BuildTime = oldV, oldSHA, oldTime })

	assert.Equal(t, "dev (commit unknown, built unknown)", String())

	Version, GitSHA, BuildTime = "0.3.1", "abc123", "2026-01-02T03:04:05Z"
	assert.Equal(t, "0.3.1 (commit abc123, built 2026-01-02T03:04:05Z)", String())
}
