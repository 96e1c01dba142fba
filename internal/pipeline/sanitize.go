package pipeline

import (
	"strings"

	"github.com/jonathan/resume-extractor/internal/links"
	"github.com/jonathan/resume-extractor/internal/skills"
	"github.com/jonathan/resume-extractor/internal/types"
)

// Sanitize returns a copy of rec that satisfies the record invariants:
// contact URLs are empty or valid absolute URLs, each platform has exactly
// one social slot (every known slot present) that agrees with its contact
// field, and skills are unique ignoring case and capped at maxSkills.
func Sanitize(rec *types.StructuredRecord, maxSkills int) *types.StructuredRecord {
	if rec == nil {
		return types.NewRecord()
	}
	out := rec.Clone()

	for _, slot := range types.SocialSlots {
		if !links.IsValidURL(out.Contact.ContactURL(slot)) {
			out.Contact.SetContactURL(slot, "")
		}
	}

	social := out.SocialLinks
	out.SocialLinks = make([]types.SocialLink, 0, len(types.SocialSlots))
	for _, slot := range types.SocialSlots {
		out.SetSocialLink(slot, "")
	}
	for _, l := range social {
		name := strings.TrimSpace(l.PlatformName)
		if name == "" {
			continue
		}
		if existing, ok := out.SocialLink(name); ok && existing.URL != "" {
			continue
		}
		if !links.IsValidURL(l.URL) {
			if _, ok := out.SocialLink(name); !ok {
				out.SetSocialLink(name, "")
			}
			continue
		}
		out.SetSocialLink(name, l.URL)
	}

	// A known slot and its contact field name the same profile; the contact
	// value wins and an empty contact takes the slot's URL.
	for _, slot := range types.SocialSlots {
		if u := out.Contact.ContactURL(slot); u != "" {
			out.SetSocialLink(slot, u)
		} else if l, _ := out.SocialLink(slot); l.URL != "" {
			out.Contact.SetContactURL(slot, l.URL)
		}
	}

	out.Skills = skills.Dedupe(out.Skills, maxSkills)
	if out.Education == nil {
		out.Education = []types.EducationEntry{}
	}
	if out.ExtractedURLs == nil {
		out.ExtractedURLs = []string{}
	}
	return out
}
