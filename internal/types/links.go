package types

// Platform is the category a URL is classified into
type Platform string

// Known platforms, in classification priority order (email last among exact patterns)
const (
	PlatformLinkedin      Platform = "linkedin"
	PlatformGithub        Platform = "github"
	PlatformPortfolio     Platform = "portfolio"
	PlatformLeetcode      Platform = "leetcode"
	PlatformCodolio       Platform = "codolio"
	PlatformTwitter       Platform = "twitter"
	PlatformStackOverflow Platform = "stackoverflow"
	PlatformMedium        Platform = "medium"
	PlatformYoutube       Platform = "youtube"
	PlatformBehance       Platform = "behance"
	PlatformDribbble      Platform = "dribbble"
	PlatformEmail         Platform = "email"
	PlatformOther         Platform = "other"
)

// SourceType records where a raw link was found
type SourceType string

const (
	// SourceAnnotation is an embedded hyperlink annotation (clickable link)
	SourceAnnotation SourceType = "annotation"
	// SourceText is a URL scanned out of the document text
	SourceText SourceType = "text"
)

// RawLink is a URL observed in a document
type RawLink struct {
	URL        string     `json:"url"`
	Page       *int       `json:"page,omitempty"`
	SourceType SourceType `json:"sourceType"`
	Confidence float64    `json:"confidence"`
	Context    string     `json:"context,omitempty"` // Surrounding text line, when known
}

// ClassifiedLink is a URL annotated with its inferred platform
type ClassifiedLink struct {
	Platform   Platform `json:"platform"`
	URL        string   `json:"url"`
	Username   string   `json:"username,omitempty"`
	Confidence float64  `json:"confidence"`
}

// CompletenessScore is the weighted share of populated fields in a record
type CompletenessScore struct {
	Score      float64  `json:"score"`
	IsComplete bool     `json:"isComplete"`
	Populated  []string `json:"populated,omitempty"` // Field names that contributed weight
}
