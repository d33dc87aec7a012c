package youtube

import (
	"context"
	"regexp"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/creatorlens/creatorlens-go/internal/apperr"
)

// canonicalIDRe matches the platform's stable channel identifier:
// "UC" followed by 22 ID characters, 24 total.
var canonicalIDRe = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)

// urlPatterns are tried in priority order; the first match wins.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/@([A-Za-z0-9._-]+)`),
	regexp.MustCompile(`/c/([A-Za-z0-9._-]+)`),
	regexp.MustCompile(`/user/([A-Za-z0-9._-]+)`),
	regexp.MustCompile(`/channel/([A-Za-z0-9_-]+)`),
}

const (
	resolveTTL   = time.Hour
	resolveSweep = 2 * time.Hour
)

// Resolver maps a free-form user-supplied string (raw canonical ID, handle,
// or channel URL in several shapes) to a canonical channel ID. Successful
// search resolutions are memoized for an hour so repeated adds of the same
// handle cost one upstream call.
type Resolver struct {
	client *Client
	memo   *gocache.Cache
}

// NewResolver creates a resolver backed by the given Data API client.
func NewResolver(client *Client) *Resolver {
	return &Resolver{
		client: client,
		memo:   gocache.New(resolveTTL, resolveSweep),
	}
}

// Resolve returns the canonical channel ID for input. Canonical-ID-shaped
// inputs are returned unchanged without any network call; a /channel/ URL
// carrying a canonical ID likewise resolves locally. Everything else costs
// at most one channel-search call.
func (r *Resolver) Resolve(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", &apperr.ValidationError{Field: "channel", Reason: "must not be blank"}
	}

	if canonicalIDRe.MatchString(input) {
		return input, nil
	}

	query := input
	for _, re := range urlPatterns {
		if m := re.FindStringSubmatch(input); m != nil {
			query = m[1]
			break
		}
	}

	// A /channel/ URL already carries the canonical ID.
	if canonicalIDRe.MatchString(query) {
		return query, nil
	}

	query = strings.TrimPrefix(query, "@")
	if query == "" {
		return "", &apperr.ValidationError{Field: "channel", Reason: "no handle or channel name found"}
	}

	if cached, ok := r.memo.Get(query); ok {
		return cached.(string), nil
	}

	id, err := r.client.SearchChannel(ctx, query)
	if err != nil {
		return "", err
	}
	r.memo.Set(query, id, gocache.DefaultExpiration)
	return id, nil
}
