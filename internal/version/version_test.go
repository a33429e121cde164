package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withBuild sets the ldflags variables and the module build info for one test
func withBuild(t *testing.T, version, commit string, info *debug.BuildInfo) {
	t.Helper()
	oldVersion, oldCommit, oldDate, oldRead := Version, Commit, Date, readBuildInfo
	t.Cleanup(func() {
		Version, Commit, Date, readBuildInfo = oldVersion, oldCommit, oldDate, oldRead
	})
	Version, Commit, Date = version, commit, "unknown"
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return info, info != nil
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		name    string
		version string
		info    *debug.BuildInfo
		want    string
	}{
		{name: "ldflags win", version: "v1.2.0", info: &debug.BuildInfo{Main: debug.Module{Version: "v0.9.0"}}, want: "v1.2.0"},
		{name: "module version", version: "dev", info: &debug.BuildInfo{Main: debug.Module{Version: "v0.9.0"}}, want: "v0.9.0"},
		{name: "devel build", version: "dev", info: &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, want: "dev"},
		{name: "no build info", version: "dev", want: "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuild(t, tt.version, "unknown", tt.info)
			assert.Equal(t, tt.want, Short())
		})
	}
}

func TestInfo(t *testing.T) {
	withBuild(t, "v1.2.0", "abc1234", nil)

	lines := strings.Split(Info(), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "rtdbuild v1.2.0", lines[0])
	assert.Equal(t, "Commit: abc1234", lines[1])
	assert.Equal(t, "Built: unknown", lines[2])
	assert.Equal(t, "Go: "+runtime.Version(), lines[3])
	assert.Equal(t, "OS/Arch: "+runtime.GOOS+"/"+runtime.GOARCH, lines[4])
}

func TestInfo_VCSSettings(t *testing.T) {
	withBuild(t, "dev", "unknown", &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "f00dfeed"},
			{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
		},
	})

	info := Info()
	assert.True(t, strings.HasPrefix(info, "rtdbuild v0.3.1\n"))
	assert.Contains(t, info, "Commit: f00dfeed\n")
	assert.Contains(t, info, "Built: 2026-10-01T12:00:00Z\n")
}

func TestInfo_LdflagsCommitWins(t *testing.T) {
	withBuild(t, "v1.0.0", "0123abc", &debug.BuildInfo{
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "f00dfeed"}},
	})
	assert.Contains(t, Info(), "Commit: 0123abc\n")
}
