// Package scripttmpl generates video script drafts from a fixed set of
// static templates. There is no generative model behind it: one template is
// picked by a seeded uniform draw, three placeholder words are substituted,
// and the supplied video URLs are echoed into the output.
package scripttmpl

import (
	"math/rand"
	"regexp"
	"strings"
)

// Fixed substitution phrases. Matching is case-insensitive and whole-word.
const (
	competitorPhrase = "the top creators in your space"
	nichePhrase      = "your corner of YouTube"
	videoPhrase      = "upload"
)

var templates = []string{
	`HOOK: "Everyone in this space is making the same mistake — and it's costing them millions of views."

INTRO: Call out what the Competitor gets right, then promise the one thing their Video never covers.

BODY:
1. Open with the pattern you spotted across the niche.
2. Break down why their best-performing video works: pacing, thumbnail promise, payoff.
3. Show your own take — same hook structure, but with your angle on the niche.

OUTRO: Ask viewers which competitor you should break down next.`,

	`HOOK: "I watched every video this channel posted for 90 days. Here's what actually works."

INTRO: Frame the competitor as a case study, not a rival. The niche rewards generosity.

BODY:
1. The three title formulas their top video reuses.
2. The retention trick in the first 30 seconds of each video.
3. What you'd do differently for your niche audience.

OUTRO: Tell viewers the next video applies this playbook from scratch.`,

	`HOOK: "This competitor grew 10x faster than everyone else in the niche. It's not luck."

INTRO: Promise a teardown: one channel, one video, one repeatable system.

BODY:
1. Positioning — how they named a sub-niche nobody else claimed.
2. Packaging — thumbnail and title working as one promise.
3. Payoff — why their video delivers in the first minute.

OUTRO: Invite viewers to steal the system before the niche catches on.`,
}

var (
	competitorRe = regexp.MustCompile(`(?i)\bcompetitor\b`)
	nicheRe      = regexp.MustCompile(`(?i)\bniche\b`)
	videoRe      = regexp.MustCompile(`(?i)\bvideo\b`)
)

// TemplateCount is the number of static templates the engine draws from.
func TemplateCount() int { return len(templates) }

// Generate produces a script draft. The same seed always yields the same
// template choice and therefore the same output for the same URLs.
func Generate(seed int64, videoURLs []string) string {
	rng := rand.New(rand.NewSource(seed))
	tmpl := templates[rng.Intn(len(templates))]

	out := competitorRe.ReplaceAllString(tmpl, competitorPhrase)
	out = nicheRe.ReplaceAllString(out, nichePhrase)
	out = videoRe.ReplaceAllString(out, videoPhrase)

	if len(videoURLs) > 0 {
		var b strings.Builder
		b.WriteString(out)
		b.WriteString("\n\nSOURCE VIDEOS:\n")
		for _, u := range videoURLs {
			b.WriteString("- ")
			b.WriteString(u)
			b.WriteString("\n")
		}
		out = strings.TrimRight(b.String(), "\n")
	}
	return out
}
