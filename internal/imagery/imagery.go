// Package imagery picks an illustrative picture for a step. Lookups are
// best effort: any failure means no picture.
package imagery

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var ErrDisabled = errors.New("imagery: disabled")

const fallbackQuery = "focus productivity workspace"

var (
	punctuation = regexp.MustCompile(`[^\w\s]`)

	commonWords = map[string]bool{
		"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
		"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
		"with": true, "by": true, "your": true, "this": true, "that": true, "it": true,
		"is": true, "are": true, "was": true, "were": true,
	}

	visualMapping = map[string]string{
		"email":    "typing computer",
		"write":    "writing desk",
		"call":     "phone call",
		"clean":    "organized space",
		"organize": "organized desk",
		"read":     "reading book",
		"research": "studying laptop",
		"create":   "creative workspace",
		"plan":     "planning notebook",
		"exercise": "fitness workout",
		"cook":     "cooking kitchen",
		"study":    "studying desk",
		"meeting":  "office meeting",
		"review":   "analyzing document",
		"document": "paperwork desk",
		"file":     "organized files",
	}
)

// ExtractSearchQuery reduces step text to a short image query.
func ExtractSearchQuery(description string) string {
	clean := strings.TrimSpace(punctuation.ReplaceAllString(strings.ToLower(description), ""))

	var words []string
	for _, w := range strings.Fields(clean) {
		if len(w) > 3 && !commonWords[w] {
			words = append(words, w)
		}
		if len(words) == 3 {
			break
		}
	}

	for _, w := range words {
		if q, ok := visualMapping[w]; ok {
			return q
		}
	}
	if len(words) > 0 {
		return strings.Join(words, " ")
	}
	return fallbackQuery
}

// Finder resolves step text to an image URL.
type Finder interface {
	Find(ctx context.Context, description string) (string, error)
}

// URLFinder builds a query URL against BaseURL without any network call.
type URLFinder struct {
	BaseURL string
}

func (f URLFinder) Find(ctx context.Context, description string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.BaseURL == "" {
		return "", ErrDisabled
	}
	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return "", err
	}
	base.RawQuery = url.QueryEscape(ExtractSearchQuery(description))
	return base.String(), nil
}
