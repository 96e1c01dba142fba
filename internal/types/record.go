// Package types provides type definitions for structured data used throughout the resume-extractor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Social link slot names, in the order they appear in a fresh record.
const (
	SlotLinkedin  = "Linkedin"
	SlotGithub    = "Github"
	SlotLeetcode  = "Leetcode"
	SlotPortfolio = "Portfolio"
)

// SocialSlots lists the conceptual socialLinks slots every record carries.
var SocialSlots = []string{SlotLinkedin, SlotGithub, SlotLeetcode, SlotPortfolio}

// SlotPlatforms maps each social slot to the link platform that fills it.
var SlotPlatforms = map[string]Platform{
	SlotLinkedin:  PlatformLinkedin,
	SlotGithub:    PlatformGithub,
	SlotLeetcode:  PlatformLeetcode,
	SlotPortfolio: PlatformPortfolio,
}

// StructuredRecord is the profile extracted from a résumé document
type StructuredRecord struct {
	FirstName         string           `json:"firstName"`
	LastName          string           `json:"lastName"`
	About             string           `json:"about"`
	Title             string           `json:"title"`
	YearsOfExperience Years            `json:"yearsOfExperience"`
	Education         []EducationEntry `json:"education"`
	Skills            []string         `json:"skills"`
	SocialLinks       []SocialLink     `json:"socialLinks"`
	Contact           Contact          `json:"contact"`
	ExtractedURLs     []string         `json:"extractedUrls"`
}

// SocialLink is one platform slot of a record
type SocialLink struct {
	PlatformName string `json:"platformName"`
	URL          string `json:"url"`
}

// Contact holds direct contact details and profile URLs
type Contact struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Linkedin  string `json:"linkedin"`
	Github    string `json:"github"`
	Portfolio string `json:"portfolio"`
	Leetcode  string `json:"leetcode"`
}

// NewRecord returns an empty record with every collection initialized and
// one empty socialLinks slot per known platform.
func NewRecord() *StructuredRecord {
	r := &StructuredRecord{
		Education:     []EducationEntry{},
		Skills:        []string{},
		SocialLinks:   make([]SocialLink, 0, len(SocialSlots)),
		ExtractedURLs: []string{},
	}
	for _, name := range SocialSlots {
		r.SocialLinks = append(r.SocialLinks, SocialLink{PlatformName: name})
	}
	return r
}

// Clone returns a deep copy of the record.
func (r *StructuredRecord) Clone() *StructuredRecord {
	if r == nil {
		return nil
	}
	c := *r
	c.Education = append([]EducationEntry(nil), r.Education...)
	for i, e := range c.Education {
		if e.Fields != nil {
			fields := make(map[string]any, len(e.Fields))
			for k, v := range e.Fields {
				fields[k] = v
			}
			c.Education[i].Fields = fields
		}
	}
	c.Skills = append([]string(nil), r.Skills...)
	c.SocialLinks = append([]SocialLink(nil), r.SocialLinks...)
	c.ExtractedURLs = append([]string(nil), r.ExtractedURLs...)
	return &c
}

// SocialLink returns the slot for a platform (case-insensitive) and whether it exists.
func (r *StructuredRecord) SocialLink(platformName string) (SocialLink, bool) {
	for _, l := range r.SocialLinks {
		if strings.EqualFold(l.PlatformName, platformName) {
			return l, true
		}
	}
	return SocialLink{}, false
}

// SetSocialLink overwrites the slot for a platform, appending it if absent.
// Duplicate slots for the same platform are collapsed into the first one.
func (r *StructuredRecord) SetSocialLink(platformName, url string) {
	found := false
	kept := r.SocialLinks[:0]
	for _, l := range r.SocialLinks {
		if strings.EqualFold(l.PlatformName, platformName) {
			if found {
				continue
			}
			found = true
			l.URL = url
		}
		kept = append(kept, l)
	}
	r.SocialLinks = kept
	if !found {
		r.SocialLinks = append(r.SocialLinks, SocialLink{PlatformName: platformName, URL: url})
	}
}

// ContactURL returns the contact URL field that backs a social slot.
func (c *Contact) ContactURL(slot string) string {
	switch strings.ToLower(slot) {
	case "linkedin":
		return c.Linkedin
	case "github":
		return c.Github
	case "leetcode":
		return c.Leetcode
	case "portfolio":
		return c.Portfolio
	}
	return ""
}

// SetContactURL sets the contact URL field that backs a social slot.
func (c *Contact) SetContactURL(slot, url string) {
	switch strings.ToLower(slot) {
	case "linkedin":
		c.Linkedin = url
	case "github":
		c.Github = url
	case "leetcode":
		c.Leetcode = url
	case "portfolio":
		c.Portfolio = url
	}
}

// EducationEntry is a free-form education item. The model may return either a
// plain string or a small object; both round-trip unchanged.
type EducationEntry struct {
	Text   string
	Fields map[string]any
}

// MarshalJSON encodes the entry as an object when it has fields, otherwise as a string
func (e EducationEntry) MarshalJSON() ([]byte, error) {
	if len(e.Fields) > 0 {
		return json.Marshal(e.Fields)
	}
	return json.Marshal(e.Text)
}

// UnmarshalJSON accepts a string or an object
func (e *EducationEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &e.Text)
	}
	if data[0] == '{' {
		return json.Unmarshal(data, &e.Fields)
	}
	return fmt.Errorf("education entry must be a string or an object, got %s", string(data))
}

// Years is a non-negative experience count. Models sometimes answer "5+" or
// "3 years", so a leading number inside a string is accepted too.
type Years float64

// UnmarshalJSON accepts a number, a numeric string, or null
func (y *Years) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*y = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Years(leadingNumber(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("yearsOfExperience must be a number: %w", err)
	}
	if f < 0 {
		f = 0
	}
	*y = Years(f)
	return nil
}

// leadingNumber parses the first run of digits (with an optional fraction) in s.
func leadingNumber(s string) float64 {
	start := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return 0
	}
	end := start
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[start:end], "."), 64)
	if err != nil {
		return 0
	}
	return f
}
