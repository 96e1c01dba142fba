package links

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

// Classification confidences
const (
	PatternConfidence   = 1.0
	PortfolioConfidence = 0.8
	ContextConfidence   = 0.7
	OtherConfidence     = 0.5
)

// Rule maps a URL pattern to a platform. When the pattern has a capture
// group, its first group is the username.
type Rule struct {
	Platform types.Platform
	Pattern  *regexp.Regexp
}

// DefaultRules are tried in order; the first match wins.
var DefaultRules = []Rule{
	{types.PlatformLinkedin, regexp.MustCompile(`(?i)linkedin\.com/in/([A-Za-z0-9_-]+)`)},
	{types.PlatformGithub, regexp.MustCompile(`(?i)github\.com/([A-Za-z0-9_-]+)`)},
	{types.PlatformPortfolio, regexp.MustCompile(`(?i)(?:vercel\.app|netlify\.app|github\.io|herokuapp\.com|render\.com|personal|portfolio)`)},
	{types.PlatformLeetcode, regexp.MustCompile(`(?i)leetcode\.com/(?:u/)?([A-Za-z0-9_-]+)`)},
	{types.PlatformCodolio, regexp.MustCompile(`(?i)codolio\.com/profile/([A-Za-z0-9_-]+)`)},
	{types.PlatformTwitter, regexp.MustCompile(`(?i)(?:^|[/.])(?:twitter\.com|x\.com)/([A-Za-z0-9_]+)`)},
	{types.PlatformStackOverflow, regexp.MustCompile(`(?i)stackoverflow\.com/users/(\d+)`)},
	{types.PlatformMedium, regexp.MustCompile(`(?i)medium\.com/@?([A-Za-z0-9_-]+)`)},
	{types.PlatformYoutube, regexp.MustCompile(`(?i)youtube\.com/(?:c/|channel/|@)?([A-Za-z0-9_-]+)`)},
	{types.PlatformBehance, regexp.MustCompile(`(?i)behance\.net/([A-Za-z0-9_-]+)`)},
	{types.PlatformDribbble, regexp.MustCompile(`(?i)dribbble\.com/([A-Za-z0-9_-]+)`)},
	{types.PlatformEmail, regexp.MustCompile(`(?i)^mailto:(.+)`)},
}

// githubReserved are first path segments that are GitHub pages, not users.
var githubReserved = map[string]bool{
	"orgs": true, "topics": true, "explore": true, "features": true,
	"marketplace": true, "settings": true, "about": true, "pricing": true,
}

// PortfolioKeywords mark a URL as a likely personal site.
var PortfolioKeywords = []string{"portfolio", "personal", "blog", "website", "projects"}

// StaticHostSuffixes are hosting domains that usually serve personal sites.
var StaticHostSuffixes = []string{".vercel.app", ".netlify.app", ".github.io", ".herokuapp.com", ".pages.dev", ".render.com"}

// Classifier assigns URLs to platforms using an ordered rule table followed
// by context and personal-site fallbacks.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier over the given rules. nil uses DefaultRules.
func NewClassifier(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules
	}
	return &Classifier{rules: rules}
}

var defaultClassifier = NewClassifier(nil)

// Classify classifies a URL with the default rules.
func Classify(rawURL, context string) types.ClassifiedLink {
	return defaultClassifier.Classify(rawURL, context)
}

// ClassifyMultiple classifies links with the default rules.
func ClassifyMultiple(links []types.RawLink) *ClassifiedSet {
	return defaultClassifier.ClassifyMultiple(links)
}

// Classify normalizes the URL and returns its platform, username and confidence.
func (c *Classifier) Classify(rawURL, context string) types.ClassifiedLink {
	normalized := Normalize(rawURL)

	for _, rule := range c.rules {
		m := rule.Pattern.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		username := ""
		if len(m) > 1 {
			username = m[1]
		}
		if rule.Platform == types.PlatformGithub && githubReserved[strings.ToLower(username)] {
			continue
		}
		return types.ClassifiedLink{
			Platform:   rule.Platform,
			URL:        normalized,
			Username:   username,
			Confidence: PatternConfidence,
		}
	}

	if context != "" {
		lower := strings.ToLower(context)
		for _, rule := range c.rules {
			if strings.Contains(lower, string(rule.Platform)) {
				return types.ClassifiedLink{Platform: rule.Platform, URL: normalized, Confidence: ContextConfidence}
			}
		}
	}

	if IsLikelyPortfolio(normalized) {
		return types.ClassifiedLink{Platform: types.PlatformPortfolio, URL: normalized, Confidence: PortfolioConfidence}
	}

	return types.ClassifiedLink{Platform: types.PlatformOther, URL: normalized, Confidence: OtherConfidence}
}

// IsLikelyPortfolio reports whether a URL looks like a personal site.
func IsLikelyPortfolio(u string) bool {
	lower := strings.ToLower(u)
	for _, kw := range PortfolioKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	host := hostOf(lower)
	for _, suffix := range StaticHostSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

func hostOf(u string) string {
	rest := u
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// ClassifiedSet keeps the best link per platform and every unrecognized link.
type ClassifiedSet struct {
	best  map[types.Platform]types.ClassifiedLink
	order []types.Platform
	Other []types.ClassifiedLink
}

// ClassifyMultiple classifies every link, keeping per platform only the
// highest-confidence match (the first one on ties).
func (c *Classifier) ClassifyMultiple(links []types.RawLink) *ClassifiedSet {
	set := &ClassifiedSet{
		best:  make(map[types.Platform]types.ClassifiedLink),
		Other: []types.ClassifiedLink{},
	}
	for _, link := range links {
		cl := c.Classify(link.URL, link.Context)
		if cl.Platform == types.PlatformOther {
			set.Other = append(set.Other, cl)
			continue
		}
		current, ok := set.best[cl.Platform]
		if !ok {
			set.order = append(set.order, cl.Platform)
		}
		if !ok || cl.Confidence > current.Confidence {
			set.best[cl.Platform] = cl
		}
	}
	return set
}

// Best returns the retained link for a platform.
func (s *ClassifiedSet) Best(p types.Platform) (types.ClassifiedLink, bool) {
	if s == nil {
		return types.ClassifiedLink{}, false
	}
	cl, ok := s.best[p]
	return cl, ok
}

// Links returns the retained per-platform links in first-seen order, followed
// by the unrecognized ones.
func (s *ClassifiedSet) Links() []types.ClassifiedLink {
	if s == nil {
		return nil
	}
	out := make([]types.ClassifiedLink, 0, len(s.order)+len(s.Other))
	for _, p := range s.order {
		out = append(out, s.best[p])
	}
	return append(out, s.Other...)
}
