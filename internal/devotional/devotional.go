// Package devotional turns a selected scripture reference into a publishable
// post: it prompts a language model for a short reflection on the verse,
// checks the result against the site's shape rules, and hands back a draft.
package devotional

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/sadhuseva/gitaverse/internal/canon"
)

// Draft is the model's output once parsed and validated.
type Draft struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// LLM generates text for a prompt. Implemented by the Gemini client; tests
// substitute a fake.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// maxGenerationAttempts bounds how many times a draft that fails validation
// is regenerated before the run is abandoned.
const maxGenerationAttempts = 3

type Generator struct {
	llm LLM
	log *zap.Logger
}

func NewGenerator(llm LLM, log *zap.Logger) *Generator {
	return &Generator{llm: llm, log: log}
}

// Devotional produces a validated draft for ref. verseText may be empty if
// the extractor has not seeded this verse; the prompt degrades gracefully.
// Transient model errors are retried with exponential backoff inside each
// attempt; drafts that parse but fail validation consume an attempt.
func (g *Generator) Devotional(ctx context.Context, ref canon.Reference, verseText string) (Draft, error) {
	prompt := buildPrompt(ref, verseText)

	var lastErr error
	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		raw, err := g.generateWithBackoff(ctx, prompt)
		if err != nil {
			return Draft{}, fmt.Errorf("generating devotional for %s: %w", ref, err)
		}

		draft, err := parseDraft(raw)
		if err == nil {
			err = Validate(draft)
		}
		if err == nil {
			return draft, nil
		}

		lastErr = err
		g.log.Warn("rejected generated draft",
			zap.String("reference", ref.String()),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return Draft{}, fmt.Errorf("no acceptable draft for %s after %d attempts: %w",
		ref, maxGenerationAttempts, lastErr)
}

func (g *Generator) generateWithBackoff(ctx context.Context, prompt string) (string, error) {
	var out string
	op := func() error {
		raw, err := g.llm.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		out = raw
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}
	return out, nil
}

func buildPrompt(ref canon.Reference, verseText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are writing the daily devotional for a Vaishnava study website.

Today's verse is %s.`, ref)
	if verseText != "" {
		fmt.Fprintf(&b, "\n\nTranslation of the verse:\n%s", verseText)
	}
	b.WriteString(`

Write a short devotional reflection on this verse for a general reader.

Respond with ONLY a JSON object, no markdown fences, in exactly this shape:
{"title": "...", "body": "..."}

Rules:
- title: an evocative title, 8 to 90 characters, no quotation marks around it
- body: 150 to 500 words, plain prose paragraphs separated by blank lines
- do not quote more of the scripture than the verse itself
- no headings, no lists, no links`)
	return b.String()
}

// parseDraft strips markdown fences the model sometimes adds and decodes
// the JSON payload.
func parseDraft(raw string) (Draft, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var d Draft
	if err := json.Unmarshal([]byte(cleaned), &d); err != nil {
		return Draft{}, fmt.Errorf("model output is not the expected JSON: %w", err)
	}
	d.Title = strings.TrimSpace(d.Title)
	d.Body = strings.TrimSpace(d.Body)
	return d, nil
}
