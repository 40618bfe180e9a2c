package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	v, c, b := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = v, c, b })

	Version, GitCommit, BuildTime = "v1.2.0", "0123456789abcdef", "2025-11-05"
	assert.Equal(t, "sitegen v1.2.0 (0123456789ab, built 2025-11-05)", String())

	BuildTime = ""
	assert.Equal(t, "sitegen v1.2.0 (0123456789ab)", String())
	assert.Equal(t, "0123456789abcdef", Commit())
}

func TestDefaults(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.Contains(t, String(), Version)
}
