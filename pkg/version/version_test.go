package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVersion(t *testing.T) {
	origVersion, origCommit, origBuildTime := Version, Commit, BuildTime
	t.Cleanup(func() {
		Version, Commit, BuildTime = origVersion, origCommit, origBuildTime
	})

	Version, Commit, BuildTime = "0.0.0-dev", "", ""
	assert.Equal(t, "0.0.0-dev (development)", FormatVersion())

	Version, Commit, BuildTime = "1.2.3", "abc1234", ""
	assert.Equal(t, "1.2.3 (commit: abc1234)", FormatVersion())

	Version, Commit, BuildTime = "1.2.3", "abc1234", "2026-01-15T00:00:00Z"
	assert.Equal(t, "1.2.3 (commit: abc1234, built at: 2026-01-15T00:00:00Z)", FormatVersion())

	Version, Commit, BuildTime = "", "", ""
	assert.Equal(t, "0.0.0-dev (development)", FormatVersion())
}
