// Package procgroup starts external tools so that cancelling their context
// terminates every process they spawned, not only the direct child.
package procgroup

import (
	"context"
	"os/exec"
	"time"
)

// WaitDelay bounds how long Wait keeps draining output pipes after the
// context is done.
const WaitDelay = 2 * time.Second

// Command is exec.CommandContext with the process placed in its own group.
// When ctx is done the whole group is killed.
func Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	setGroup(cmd)
	cmd.WaitDelay = WaitDelay
	return cmd
}
