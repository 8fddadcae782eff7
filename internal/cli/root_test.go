package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "girder", cmd.Use)
	assert.Contains(t, cmd.Long, "unit-aware")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"eval", "convert", "solve", "diff", "integrate", "optimize", "units", "vars"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("db"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("worksheet"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("profile"))
}

func TestInvalidFormatRejected(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "xml", "eval", "1+1"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestWorksheetRequiresDatabase(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--worksheet", "beam", "eval", "1+1"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--worksheet requires --db")
}

func TestSolveCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	solveCmd, _, err := cmd.Find([]string{"solve"})
	require.NoError(t, err)

	require.NotNil(t, solveCmd.Flags().Lookup("guess"))
	require.NotNil(t, solveCmd.Flags().Lookup("tolerance"))
	require.NotNil(t, solveCmd.Flags().Lookup("max-iterations"))
}

func TestIntegrateCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	integrateCmd, _, err := cmd.Find([]string{"integrate"})
	require.NoError(t, err)

	methodFlag := integrateCmd.Flags().Lookup("method")
	require.NotNil(t, methodFlag)
	assert.Equal(t, "simpson", methodFlag.DefValue)
}
