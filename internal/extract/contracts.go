// Package extract runs the ordered receipt-extraction fallback chain:
// vision LLM on image bytes, local PDF text + text LLM, direct text LLM,
// then a deterministic static record.
package extract

import (
	"context"
	"errors"

	"github.com/sendbackhq/sendback/internal/llm"
)

// Input is the raw ingestion payload handed to each strategy.
type Input struct {
	Data      []byte
	MediaType string // constants.PDF | constants.IMAGE | constants.TEXT | ""
	MIME      string // declared content type, used for vision attachments
	Text      string // plain text supplied directly, if any
}

// Strategy is one named extraction attempt. A strategy that cannot serve the
// input (wrong media type, backend not configured) returns ErrNotApplicable
// so the pipeline moves on without treating it as a failure.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, in Input) (llm.OrderFields, error)
}

// ErrNotApplicable signals that a strategy does not apply to this input.
var ErrNotApplicable = errors.New("strategy not applicable")

// AttemptError records why one strategy in the chain did not produce fields.
type AttemptError struct {
	Strategy string
	Err      error
}

func (e AttemptError) Error() string {
	return e.Strategy + ": " + e.Err.Error()
}
