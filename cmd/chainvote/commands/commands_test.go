package commands

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainvote/internal/app"
	"chainvote/internal/devchain"
)

const testPass = "Cli-Test-Pass-42!"

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	cleanup()
	return out.String(), err
}

func TestCommands_WriteToCommandOutput(t *testing.T) {
	home := t.TempDir()

	out, err := runCLI(t, "--home", home, "-p", testPass, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wallet created.")
	var addrLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Address: 0x") {
			addrLine = line
		}
	}
	require.NotEmpty(t, addrLine, "init output: %q", out)

	out, err = runCLI(t, "--home", home, "-p", testPass, "address")
	require.NoError(t, err)
	assert.Contains(t, out, addrLine)

	out, err = runCLI(t, "--home", home, "history")
	require.NoError(t, err)
	assert.Equal(t, "No votes recorded.\n", out)
}

func TestCommands_InitRequiresPassphrase(t *testing.T) {
	t.Setenv("CHAINVOTE_PASSPHRASE", "")
	_, err := runCLI(t, "--home", t.TempDir(), "init")
	assert.ErrorContains(t, err, "passphrase required")
}

func TestCommandTimeout(t *testing.T) {
	assert.Zero(t, commandTimeout(0))
	assert.Equal(t, time.Minute+dialTimeout, commandTimeout(time.Minute))
}

func TestWithTimeout_UnboundedWithoutConfirmTimeout(t *testing.T) {
	defer func() { appCtx = nil }()
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	appCtx = &app.App{Settings: app.Settings{}}
	ctx, cancel := withTimeout(cmd)
	_, ok := ctx.Deadline()
	cancel()
	assert.False(t, ok)

	appCtx = &app.App{Settings: app.Settings{ConfirmTimeout: time.Minute}}
	ctx, cancel = withTimeout(cmd)
	deadline, ok := ctx.Deadline()
	cancel()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute+dialTimeout), deadline, 5*time.Second)
}

func TestCommands_TallyAndVoteAgainstDevChain(t *testing.T) {
	chain := devchain.New(common.HexToAddress(app.DefaultContractAddress))
	chain.SetTally(1200, 34)
	srv, err := devchain.NewServer(chain)
	require.NoError(t, err)
	defer srv.Stop()
	node := httptest.NewServer(srv)
	defer node.Close()

	home := t.TempDir()
	_, err = runCLI(t, "--home", home, "-p", testPass, "init")
	require.NoError(t, err)

	out, err := runCLI(t, "--home", home, "-p", testPass, "--rpc", node.URL, "tally")
	require.NoError(t, err)
	assert.Contains(t, out, "Yes votes:   1,200")
	assert.Contains(t, out, "Total votes: 1,234")

	out, err = runCLI(t, "--home", home, "-p", testPass, "--rpc", node.URL, "vote", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "Submitting no vote")
	assert.Contains(t, out, "Vote mined in block")
	assert.Contains(t, out, "No votes:    35")
	require.Len(t, chain.Sent(), 1)
}
