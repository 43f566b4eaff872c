package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	original := rootCmd.Version
	t.Cleanup(func() { rootCmd.Version = original })
	SetVersion(v)
}

func TestNewSelfUpdateCmd(t *testing.T) {
	cmd := newSelfUpdateCmd()

	assert.Equal(t, "self-update", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.RunE)
	assert.True(t, cmd.SilenceUsage)
	assert.Equal(t, "clitestbed/clitestbed", githubRepoSlug)
}

func TestRunSelfUpdate_RefusesDevelopmentVersions(t *testing.T) {
	for _, v := range []string{"", "dev"} {
		t.Run("version "+v, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newSelfUpdateCmd()
			cmd.SetOut(&out)

			err := runSelfUpdate(cmd, v)
			require.ErrorIs(t, err, errDevVersion)
			assert.Empty(t, out.String())
		})
	}
}

func TestSelfUpdateCmd_DevVersionIsARunError(t *testing.T) {
	withVersion(t, "dev")

	var out bytes.Buffer
	cmd := newSelfUpdateCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.ErrorIs(t, err, errDevVersion)
	assert.Equal(t, ExitRunError, exitCode(err))
}

func TestSelfUpdateCmd_RejectsArguments(t *testing.T) {
	withVersion(t, "1.0.0")

	cmd := newSelfUpdateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitUsage, exitCode(err))
}

func TestSelfUpdateCmd_Help(t *testing.T) {
	var out bytes.Buffer
	cmd := newSelfUpdateCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Checks for the latest release")
	assert.Contains(t, out.String(), "self-update")
}
