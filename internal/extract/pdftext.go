package extract

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// PDFConfig holds local text extraction settings.
type PDFConfig struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // cap on pages read; default 5
}

// PDFTextExtractor pulls embedded text out of a PDF via pdftotext. Scanned
// PDFs with no text layer yield empty output, which the caller treats as a
// strategy failure.
type PDFTextExtractor struct {
	cfg    PDFConfig
	runner Runner
	log    *zap.Logger
}

func NewPDFTextExtractor(cfg PDFConfig, logger *zap.Logger) *PDFTextExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 5
	}
	return &PDFTextExtractor{cfg: cfg, runner: execRunner{}, log: logger}
}

// ExtractText writes the bytes to a temp file and runs
// pdftotext -layout -enc UTF-8 -eol unix -l <maxPages> <path> -
func (e *PDFTextExtractor) ExtractText(ctx context.Context, pdf []byte) (string, int, error) {
	f, err := os.CreateTemp("", "sendback-*.pdf")
	if err != nil {
		return "", 0, err
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil {
			e.log.Warn("pdftext.tempfile_remove_failed", zap.String("path", f.Name()), zap.Error(err))
		}
	}()
	if _, err := f.Write(pdf); err != nil {
		_ = f.Close()
		return "", 0, err
	}
	if err := f.Close(); err != nil {
		return "", 0, err
	}

	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext,
		"-layout", "-enc", "UTF-8", "-eol", "unix",
		"-l", strconv.Itoa(e.cfg.MaxPages),
		f.Name(), "-")
	if err != nil {
		return "", 0, fmt.Errorf("pdftotext: %w (%s)", err, strings.TrimSpace(string(errb)))
	}

	text := strings.TrimSpace(string(out))
	// A form-feed \f is used as page separator by default
	pages := 1 + strings.Count(text, "\f")
	return text, pages, nil
}
