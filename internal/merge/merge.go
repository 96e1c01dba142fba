// Package merge reconciles a deterministic record with a model-produced one.
package merge

import (
	"strings"

	"github.com/jonathan/resume-extractor/internal/links"
	"github.com/jonathan/resume-extractor/internal/skills"
	"github.com/jonathan/resume-extractor/internal/types"
)

// DefaultMaxSkills caps the merged skill list.
const DefaultMaxSkills = 15

// Options configures a merge.
type Options struct {
	MaxSkills int
}

// Records combines det and ai into a new record. Neither input is modified.
//
// Scalars take the deterministic value when its trimmed form is non-empty and
// the model value otherwise. Skills are the case-insensitive union, deterministic
// spellings first. Fields the deterministic pass never produces reliably
// (about, education, leetcode, social slots) keep the model value and fall
// back to the deterministic one. A known social slot always carries the same
// URL as its contact field: a valid contact URL overrides the slot, and an
// empty contact field is filled from the slot.
func Records(det, ai *types.StructuredRecord, opts Options) *types.StructuredRecord {
	if opts.MaxSkills <= 0 {
		opts.MaxSkills = DefaultMaxSkills
	}
	switch {
	case det == nil && ai == nil:
		return types.NewRecord()
	case det == nil:
		det = types.NewRecord()
	case ai == nil:
		ai = types.NewRecord()
	}

	out := ai.Clone()

	out.FirstName = prefer(det.FirstName, ai.FirstName)
	out.LastName = prefer(det.LastName, ai.LastName)
	out.Title = prefer(det.Title, ai.Title)
	out.About = prefer(ai.About, det.About)
	if det.YearsOfExperience > 0 {
		out.YearsOfExperience = det.YearsOfExperience
	}

	out.Contact.Email = prefer(det.Contact.Email, ai.Contact.Email)
	out.Contact.Phone = prefer(det.Contact.Phone, ai.Contact.Phone)
	out.Contact.Linkedin = prefer(det.Contact.Linkedin, ai.Contact.Linkedin)
	out.Contact.Github = prefer(det.Contact.Github, ai.Contact.Github)
	out.Contact.Portfolio = prefer(det.Contact.Portfolio, ai.Contact.Portfolio)
	out.Contact.Leetcode = prefer(ai.Contact.Leetcode, det.Contact.Leetcode)

	if len(out.Education) == 0 {
		out.Education = det.Clone().Education
	}
	if out.Education == nil {
		out.Education = []types.EducationEntry{}
	}

	out.Skills = skills.Dedupe(append(append([]string{}, det.Skills...), ai.Skills...), opts.MaxSkills)

	out.SocialLinks = make([]types.SocialLink, 0, len(types.SocialSlots))
	for _, name := range socialNames(ai, det) {
		aiLink, _ := ai.SocialLink(name)
		detLink, _ := det.SocialLink(name)
		u := prefer(validOrEmpty(aiLink.URL), validOrEmpty(detLink.URL))
		if contact := validOrEmpty(out.Contact.ContactURL(name)); contact != "" {
			u = contact
		} else if u != "" {
			out.Contact.SetContactURL(name, u)
		}
		out.SetSocialLink(name, u)
	}

	out.ExtractedURLs = links.UniqueStrings(det.ExtractedURLs, ai.ExtractedURLs)
	return out
}

// prefer returns first when it has content, otherwise second.
func prefer(first, second string) string {
	if strings.TrimSpace(first) != "" {
		return first
	}
	return second
}

func validOrEmpty(u string) string {
	if links.IsValidURL(u) {
		return u
	}
	return ""
}

// socialNames lists every slot name across the known slots and both
// records, case-insensitively unique, known slots first.
func socialNames(records ...*types.StructuredRecord) []string {
	names := append([]string{}, types.SocialSlots...)
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[strings.ToLower(n)] = true
	}
	for _, r := range records {
		for _, l := range r.SocialLinks {
			key := strings.ToLower(strings.TrimSpace(l.PlatformName))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			names = append(names, l.PlatformName)
		}
	}
	return names
}
