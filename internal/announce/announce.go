// Package announce posts a link to the day's devotional on X.
package announce

import (
	"context"
	"fmt"
	"strings"

	"github.com/dghubble/go-twitter/twitter"
	"github.com/dghubble/oauth1"

	"github.com/sadhuseva/gitaverse/internal/canon"
)

// Credentials are the four OAuth1 values an X app needs.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
}

func (c Credentials) validate() error {
	missing := []string{}
	for name, v := range map[string]string{
		"consumer key":    c.ConsumerKey,
		"consumer secret": c.ConsumerSecret,
		"access token":    c.AccessToken,
		"access secret":   c.AccessSecret,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing X credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

type Announcer struct {
	client  *twitter.Client
	siteURL string
}

func New(creds Credentials, siteURL string) (*Announcer, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}
	config := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := config.Client(context.Background(), token)
	return &Announcer{client: twitter.NewClient(httpClient), siteURL: siteURL}, nil
}

// Announce posts the status for a published devotional and returns the
// tweet ID.
func (a *Announcer) Announce(title string, ref canon.Reference, postSlug string) (int64, error) {
	status := FormatStatus(title, ref, a.PostURL(postSlug))
	tweet, _, err := a.client.Statuses.Update(status, nil)
	if err != nil {
		return 0, fmt.Errorf("posting announcement: %w", err)
	}
	return tweet.ID, nil
}

func (a *Announcer) PostURL(postSlug string) string {
	return strings.TrimRight(a.siteURL, "/") + "/devotional/" + postSlug
}

const (
	hashtags = "#bhagavadgita #bhagavatam #dailyverse"
	maxLen   = 280
)

// FormatStatus composes the announcement, truncating the title if the whole
// status would exceed 280 runes. The reference, link, and hashtags are never
// cut.
func FormatStatus(title string, ref canon.Reference, url string) string {
	tail := fmt.Sprintf(" — %s %s %s", ref, url, hashtags)

	text := title + tail
	if len([]rune(text)) <= maxLen {
		return text
	}

	const ellipsis = "…"
	avail := maxLen - len([]rune(tail)) - len([]rune(ellipsis))
	if avail < 10 {
		avail = 10
	}
	titleRunes := []rune(title)
	if avail > len(titleRunes) {
		avail = len(titleRunes)
	}
	return string(titleRunes[:avail]) + ellipsis + tail
}
