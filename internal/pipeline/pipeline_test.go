package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sadhuseva/gitaverse/internal/canon"
	"github.com/sadhuseva/gitaverse/internal/devotional"
	"github.com/sadhuseva/gitaverse/internal/history"
	"github.com/sadhuseva/gitaverse/internal/selector"
)

type stubLLM struct {
	title string
	calls int
}

func (s *stubLLM) Generate(context.Context, string) (string, error) {
	s.calls++
	body := strings.TrimSpace(strings.Repeat("word ", 200))
	return fmt.Sprintf(`{"title": %q, "body": %q}`, s.title, body), nil
}

type recordingAnnouncer struct {
	titles []string
	err    error
}

func (r *recordingAnnouncer) Announce(title string, _ canon.Reference, _ string) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.titles = append(r.titles, title)
	return 42, nil
}

func newTestPipeline(t *testing.T, store *history.Store, llm devotional.LLM, ann Announcer) *Pipeline {
	t.Helper()
	log := zap.NewNop()
	p := New(selector.New(store, log), store, devotional.NewGenerator(llm, log), ann, log)
	p.now = func() time.Time {
		return time.Date(2026, time.March, 1, 6, 0, 0, 0, time.UTC)
	}
	return p
}

func newStore(t *testing.T) *history.Store {
	t.Helper()
	s, err := history.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRun_FirstPublication(t *testing.T) {
	store := newStore(t)
	p := newTestPipeline(t, store, &stubLLM{title: "The Steady Mind"}, nil)

	post, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, canon.SourceGita, post.Source)
	assert.Equal(t, "1.1", post.RefText)
	assert.Equal(t, "the-steady-mind", post.Slug)
	assert.NotEmpty(t, post.ID)

	// The post must be visible to the next selection.
	last, ok, err := store.LastPublished(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, canon.First(), last)
}

func TestRun_AdvancesThroughTheRing(t *testing.T) {
	store := newStore(t)
	p := newTestPipeline(t, store, &stubLLM{title: "The Steady Mind"}, nil)
	ctx := context.Background()

	first, err := p.Run(ctx)
	require.NoError(t, err)
	second, err := p.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, "1.1", first.RefText)
	assert.Equal(t, "1.2", second.RefText)
	// Identical titles force slug suffixing.
	assert.Equal(t, "the-steady-mind", first.Slug)
	assert.Equal(t, "the-steady-mind-2", second.Slug)
}

func TestRun_UsesSeededVerseText(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.SeedVerseText(ctx, canon.SourceGita, "1.1", "Dhritarashtra said..."))

	llm := &stubLLM{title: "On the Field of Dharma"}
	p := newTestPipeline(t, store, llm, nil)

	_, err := p.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, llm.calls)
}

func TestRun_Announces(t *testing.T) {
	store := newStore(t)
	ann := &recordingAnnouncer{}
	p := newTestPipeline(t, store, &stubLLM{title: "The Steady Mind"}, ann)

	_, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"The Steady Mind"}, ann.titles)
}

func TestRun_AnnouncementFailureDoesNotFailRun(t *testing.T) {
	store := newStore(t)
	ann := &recordingAnnouncer{err: fmt.Errorf("api down")}
	p := newTestPipeline(t, store, &stubLLM{title: "The Steady Mind"}, ann)

	post, err := p.Run(context.Background())
	require.NoError(t, err)

	ok, err := store.SlugExists(context.Background(), post.Slug)
	require.NoError(t, err)
	assert.True(t, ok, "post must be stored even when the announcement fails")
}
