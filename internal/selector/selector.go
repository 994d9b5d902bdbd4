package selector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sadhuseva/gitaverse/internal/canon"
)

// maxSelectionAttempts bounds the recency-skip loop. It is far larger than
// either scripture's verse count, so hitting it means the structural data or
// the history is broken, not that we should try again later.
const maxSelectionAttempts = 1000

// ErrCanonExhausted is returned when no eligible reference was found within
// the attempt bound. It signals a misconfiguration and is not retryable.
var ErrCanonExhausted = errors.New("no eligible reference within attempt bound")

// History is the read-only view of past publications the selector needs.
// Storage errors are passed through to the caller untouched.
type History interface {
	// LastPublished returns the reference of the most recent post, or
	// ok=false when nothing has ever been published.
	LastPublished(ctx context.Context) (ref canon.Reference, ok bool, err error)
	// Publications returns the full publication history.
	Publications(ctx context.Context) ([]Publication, error)
}

// Selector picks the next reference to publish. Callers must not run two
// selections against the same history store concurrently; the store has no
// transactional guard against both picking the same candidate.
type Selector struct {
	history History
	log     *zap.Logger
	now     func() time.Time
}

func New(history History, log *zap.Logger) *Selector {
	return &Selector{history: history, log: log, now: time.Now}
}

// Select returns the earliest ring-successor of the last published reference
// that has not been used within the recency window. With identical history
// and no wall-clock drift across the window boundary, repeated calls return
// the same reference.
func (s *Selector) Select(ctx context.Context) (canon.Reference, error) {
	last, ok, err := s.history.LastPublished(ctx)
	if err != nil {
		return canon.Reference{}, fmt.Errorf("reading last published reference: %w", err)
	}
	if !ok {
		first := canon.First()
		s.log.Info("empty history, starting from the beginning",
			zap.String("reference", first.String()))
		return first, nil
	}

	history, err := s.history.Publications(ctx)
	if err != nil {
		return canon.Reference{}, fmt.Errorf("reading publication history: %w", err)
	}

	now := s.now()
	candidate := Next(last)
	attempts := 0
	for wasPublishedRecently(candidate, RecencyWindowDays, history, now) {
		attempts++
		if attempts > maxSelectionAttempts {
			return canon.Reference{}, fmt.Errorf("walked %d candidates from %s: %w",
				attempts, last, ErrCanonExhausted)
		}
		candidate = Next(candidate)
	}

	s.log.Info("selected next reference",
		zap.String("reference", candidate.String()),
		zap.String("last", last.String()),
		zap.Int("skipped", attempts))
	return candidate, nil
}
