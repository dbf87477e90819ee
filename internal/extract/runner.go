package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Runner abstracts external binary execution so tests can stub pdftotext.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	if err := cmd.Run(); err != nil {
		return out.Bytes(), errb.Bytes(), fmt.Errorf("%s: %w", name, err)
	}
	return out.Bytes(), errb.Bytes(), nil
}
