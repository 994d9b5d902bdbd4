// Package pipeline runs one daily publication end to end: select the next
// reference, generate and validate the devotional, derive a unique slug,
// and append the post to the store, optionally announcing it on X.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sadhuseva/gitaverse/internal/canon"
	"github.com/sadhuseva/gitaverse/internal/devotional"
	"github.com/sadhuseva/gitaverse/internal/history"
	"github.com/sadhuseva/gitaverse/internal/selector"
	"github.com/sadhuseva/gitaverse/internal/slug"
)

// Store is the write side of the publication repository, plus the verse
// texts the generator quotes. history.Store implements it.
type Store interface {
	VerseText(ctx context.Context, ref canon.Reference) (string, bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	SavePost(ctx context.Context, p history.Post) error
}

// Announcer posts a published devotional to X. Optional.
type Announcer interface {
	Announce(title string, ref canon.Reference, postSlug string) (int64, error)
}

type Pipeline struct {
	sel       *selector.Selector
	store     Store
	gen       *devotional.Generator
	announcer Announcer // nil when announcements are disabled
	log       *zap.Logger
	now       func() time.Time
}

func New(sel *selector.Selector, store Store, gen *devotional.Generator, announcer Announcer, log *zap.Logger) *Pipeline {
	return &Pipeline{
		sel:       sel,
		store:     store,
		gen:       gen,
		announcer: announcer,
		log:       log,
		now:       time.Now,
	}
}

// Run publishes one devotional and returns the stored post. Callers must
// not run two publications against the same store concurrently.
func (p *Pipeline) Run(ctx context.Context) (history.Post, error) {
	ref, err := p.sel.Select(ctx)
	if err != nil {
		return history.Post{}, err
	}

	verseText, seeded, err := p.store.VerseText(ctx, ref)
	if err != nil {
		return history.Post{}, err
	}
	if !seeded {
		p.log.Warn("no seeded text for verse, prompting without quotation",
			zap.String("reference", ref.String()))
	}

	draft, err := p.gen.Devotional(ctx, ref, verseText)
	if err != nil {
		return history.Post{}, err
	}

	postSlug, err := slug.Unique(ctx, slug.Make(draft.Title), p.store.SlugExists)
	if err != nil {
		return history.Post{}, err
	}

	post := history.Post{
		ID:        uuid.NewString(),
		Source:    ref.Source,
		RefText:   ref.RefText(),
		Title:     draft.Title,
		Slug:      postSlug,
		Body:      draft.Body,
		CreatedAt: p.now().UTC(),
	}
	if err := p.store.SavePost(ctx, post); err != nil {
		return history.Post{}, fmt.Errorf("storing post %s: %w", post.Slug, err)
	}
	p.log.Info("published devotional",
		zap.String("reference", ref.String()),
		zap.String("slug", post.Slug))

	if p.announcer != nil {
		tweetID, err := p.announcer.Announce(post.Title, ref, post.Slug)
		if err != nil {
			// The post is already live; a failed announcement is not worth
			// failing the run over.
			p.log.Warn("announcement failed", zap.Error(err))
		} else {
			p.log.Info("announced on X", zap.Int64("tweet_id", tweetID))
		}
	}

	return post, nil
}
