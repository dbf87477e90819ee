package extract

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/sendbackhq/sendback/constants"
	"github.com/sendbackhq/sendback/internal/llm"
)

// VisionStrategy sends image bytes to a vision-capable backend.
type VisionStrategy struct {
	Backend llm.Backend
}

func (s VisionStrategy) Name() string { return "vision" }

func (s VisionStrategy) Attempt(ctx context.Context, in Input) (llm.OrderFields, error) {
	if s.Backend == nil || in.MediaType != constants.IMAGE || len(in.Data) == 0 {
		return llm.OrderFields{}, ErrNotApplicable
	}
	fields, _, err := s.Backend.ExtractFromImage(ctx, in.Data, in.MIME)
	return fields, err
}

// PDFTextStrategy extracts embedded PDF text locally, then continues through
// the text backend with it.
type PDFTextStrategy struct {
	Extractor *PDFTextExtractor
	Backend   llm.Backend
}

func (s PDFTextStrategy) Name() string { return "pdf-text" }

func (s PDFTextStrategy) Attempt(ctx context.Context, in Input) (llm.OrderFields, error) {
	if s.Extractor == nil || s.Backend == nil || in.MediaType != constants.PDF || len(in.Data) == 0 {
		return llm.OrderFields{}, ErrNotApplicable
	}
	text, _, err := s.Extractor.ExtractText(ctx, in.Data)
	if err != nil {
		return llm.OrderFields{}, err
	}
	if text == "" {
		return llm.OrderFields{}, fmt.Errorf("pdf has no embedded text")
	}
	fields, _, err := s.Backend.ExtractFromText(ctx, text)
	return fields, err
}

// TextStrategy sends supplied or decoded plain text to the text backend.
type TextStrategy struct {
	Backend llm.Backend
}

func (s TextStrategy) Name() string { return "text" }

func (s TextStrategy) Attempt(ctx context.Context, in Input) (llm.OrderFields, error) {
	if s.Backend == nil {
		return llm.OrderFields{}, ErrNotApplicable
	}
	text := in.Text
	if text == "" && in.MediaType == constants.TEXT {
		text = decodeBestEffort(in.Data)
	}
	if text == "" {
		return llm.OrderFields{}, ErrNotApplicable
	}
	fields, _, err := s.Backend.ExtractFromText(ctx, text)
	return fields, err
}

// FallbackStrategy is the deterministic terminal record: unknown merchant,
// no order id, no purchase date, no items. It never errors.
type FallbackStrategy struct{}

func (FallbackStrategy) Name() string { return "fallback" }

func (FallbackStrategy) Attempt(_ context.Context, _ Input) (llm.OrderFields, error) {
	return llm.OrderFields{
		Merchant: "Unknown",
		Items:    []llm.ItemField{},
	}, nil
}

// decodeBestEffort keeps valid UTF-8 and drops everything else.
func decodeBestEffort(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	runes := make([]rune, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r != utf8.RuneError || size > 1 {
			runes = append(runes, r)
		}
		b = b[size:]
	}
	return string(runes)
}
