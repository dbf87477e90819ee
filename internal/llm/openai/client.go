package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sendbackhq/sendback/internal/llm"
)

// ExtractFromText implements llm.Backend using text-only chat/completions.
func (c *Client) ExtractFromText(ctx context.Context, text string) (llm.OrderFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		zap.String("req_id", rid),
		zap.String("model", c.cfg.Model),
		zap.Int("text_len", len(text)),
	)

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": buildOrderSystemPrompt()},
			{"role": "user", "content": buildOrderUserPrompt(text)},
		},
	}
	return c.extract(ctx, rid, start, body)
}

// ExtractFromImage sends the image as a base64 data URL alongside the same
// strict-JSON instruction.
func (c *Client) ExtractFromImage(ctx context.Context, image []byte, mimeType string) (llm.OrderFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	if mimeType == "" {
		mimeType = "image/png"
	}
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)

	c.log.Info("llm.extract.vision.start",
		zap.String("req_id", rid),
		zap.String("model", c.cfg.VisionModel),
		zap.String("mime_type", mimeType),
		zap.Int("image_bytes", len(image)),
	)

	body := map[string]any{
		"model":           c.cfg.VisionModel,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": buildOrderSystemPrompt()},
			{"role": "user", "content": []map[string]any{
				{"type": "text", "text": visionInstruction},
				{"type": "image_url", "image_url": map[string]any{"url": dataURL}},
			}},
		},
	}
	return c.extract(ctx, rid, start, body)
}

func (c *Client) extract(ctx context.Context, rid string, start time.Time, body map[string]any) (llm.OrderFields, []byte, error) {
	content, raw, err := c.complete(ctx, rid, body)
	if err != nil {
		return llm.OrderFields{}, raw, err
	}

	fields, coerced, err := llm.DecodeOrderFields(content)
	if err != nil {
		c.log.Error("llm.extract.decode_failed",
			zap.String("req_id", rid), zap.Error(err),
			zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
		)
		return llm.OrderFields{}, content, fmt.Errorf("decode order fields: %w", err)
	}
	if len(coerced) > 0 {
		c.log.Warn("llm.extract.fields_coerced",
			zap.String("req_id", rid), zap.Strings("fields", coerced))
	}

	c.log.Info("llm.extract.ok",
		zap.String("req_id", rid),
		zap.String("merchant", fields.Merchant),
		zap.Int("items", len(fields.Items)),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)
	return fields, content, nil
}

// SummarizePolicy normalizes free policy text into PolicyFields.
func (c *Client) SummarizePolicy(ctx context.Context, policyText string) (llm.PolicyFields, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "user", "content": buildPolicyPrompt(policyText)},
		},
	}

	content, raw, err := c.complete(ctx, rid, body)
	if err != nil {
		return llm.PolicyFields{}, raw, err
	}

	fields, err := llm.DecodePolicyFields(content)
	if err != nil {
		c.log.Error("llm.policy.decode_failed",
			zap.String("req_id", rid), zap.Error(err),
			zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
		)
		return llm.PolicyFields{}, content, fmt.Errorf("decode policy fields: %w", err)
	}

	c.log.Info("llm.policy.ok",
		zap.String("req_id", rid),
		zap.Int("window_days", fields.WindowDays),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)
	return fields, content, nil
}

// complete runs one chat/completions round trip and returns the first
// choice's content, trimmed.
func (c *Client) complete(ctx context.Context, rid string, body map[string]any) ([]byte, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, _, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
	if err != nil {
		return nil, raw, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.complete.decode_error", zap.String("req_id", rid), zap.Error(err), zap.Int("raw_bytes", len(raw)))
		return nil, raw, fmt.Errorf("decode completion response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.complete.no_choices", zap.String("req_id", rid))
		return nil, raw, fmt.Errorf("no choices in completion response")
	}
	return []byte(strings.TrimSpace(cc.Choices[0].Message.Content)), raw, nil
}
