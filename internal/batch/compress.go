package batch

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"slices"

	"golang.org/x/sync/semaphore"
)

// Compressor runs an external command on each written shape file, at most
// max processes at a time across all workers.
type Compressor struct {
	Command string
	Args    []string

	sem *semaphore.Weighted
}

// NewCompressor returns a Compressor invoking command as "command args... file".
func NewCompressor(command string, args []string, max int) *Compressor {
	if max < 1 {
		max = 1
	}
	return &Compressor{
		Command: command,
		Args:    slices.Clone(args),
		sem:     semaphore.NewWeighted(int64(max)),
	}
}

// Compress runs the command on path and waits for it to exit.
func (c *Compressor) Compress(ctx context.Context, path string) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("batch: compress %s: %w", path, err)
	}
	defer c.sem.Release(1)

	args := append(slices.Clone(c.Args), path)
	out, err := exec.CommandContext(ctx, c.Command, args...).CombinedOutput()
	if err != nil {
		if msg := bytes.TrimSpace(out); len(msg) > 0 {
			return fmt.Errorf("batch: compress %s: %w: %s", path, err, msg)
		}
		return fmt.Errorf("batch: compress %s: %w", path, err)
	}
	return nil
}
