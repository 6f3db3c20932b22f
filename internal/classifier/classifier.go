// Package classifier decides which extraction strategy applies to a raw item.
package classifier

import (
	"regexp"

	"newsletter_digest/internal/domain"
)

type Platform string

const (
	PlatformNone    Platform = ""
	PlatformYouTube Platform = "youtube"
	PlatformSpotify Platform = "spotify"
	PlatformApple   Platform = "apple_podcasts"
)

// Classification is the classifier verdict. URL is empty for documents.
type Classification struct {
	Type     domain.ContentType
	Platform Platform
	URL      string
}

func (c Classification) URLPtr() *string {
	if c.URL == "" {
		return nil
	}
	u := c.URL
	return &u
}

type Rule struct {
	Type     domain.ContentType
	Platform Platform
	Pattern  *regexp.Regexp
}

// DefaultRules are evaluated in order; video rules precede audio rules.
var DefaultRules = []Rule{
	{domain.ContentTypeVideo, PlatformYouTube, regexp.MustCompile(`https?://(?:www\.|m\.)?youtube\.com/watch\?v=[a-zA-Z0-9_-]+`)},
	{domain.ContentTypeVideo, PlatformYouTube, regexp.MustCompile(`https?://youtu\.be/[a-zA-Z0-9_-]+`)},
	{domain.ContentTypeVideo, PlatformYouTube, regexp.MustCompile(`https?://(?:www\.)?youtube\.com/live/[a-zA-Z0-9_-]+`)},
	{domain.ContentTypeAudio, PlatformSpotify, regexp.MustCompile(`https?://open\.spotify\.com/episode/[a-zA-Z0-9]+`)},
	{domain.ContentTypeAudio, PlatformSpotify, regexp.MustCompile(`https?://open\.spotify\.com/show/[a-zA-Z0-9]+`)},
	{domain.ContentTypeAudio, PlatformApple, regexp.MustCompile(`https?://podcasts\.apple\.com/\S+/id\d+(?:\?i=\d+)?`)},
}

type Classifier struct {
	rules []Rule
}

func New(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Classifier{rules: rules}
}

// Classify returns the first rule that matches anywhere in text, or a
// document classification when none does.
func (c *Classifier) Classify(text string) Classification {
	for _, r := range c.rules {
		if m := r.Pattern.FindString(text); m != "" {
			return Classification{Type: r.Type, Platform: r.Platform, URL: m}
		}
	}
	return Classification{Type: domain.ContentTypeDocument}
}

func (c *Classifier) ClassifyItem(item domain.RawItem) Classification {
	return c.Classify(item.SearchText())
}
