package grnutils

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/valyala/fastrand"
)

/*ExceCmd run cmd with its arguments and wait for completion. Stdout is written to stdout
when it is not empty */
func ExceCmd(ctx context.Context, stdout string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = os.Stderr

	if stdout != "" {
		out, err := os.Create(stdout)
		if err != nil {
			return err
		}
		defer out.Close()

		cmd.Stdout = out
	}

	LOGGER.WithField("cmd", cmd.String()).Debug("running external command")

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("error with cmd %s: %w", cmd.String(), err)
	}

	return nil
}

/*TmpFilename return a random file name in dir that does not exist yet */
func TmpFilename(dir, prefix string) string {
	for {
		fname := filepath.Join(dir, fmt.Sprintf("%s.%d", prefix, fastrand.Uint32n(1000000)))

		if _, err := os.Stat(fname); os.IsNotExist(err) {
			return fname
		}
	}
}
