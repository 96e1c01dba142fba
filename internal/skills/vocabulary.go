// Package skills holds the skill vocabulary, canonical skill names, and the
// case-insensitive skill set used by every extraction path.
package skills

// DefaultVocabulary is the list of common technology terms matched against
// résumé text. Order is the order skills are reported in.
var DefaultVocabulary = []string{
	"JavaScript", "Python", "Java", "C++", "C#", "PHP", "Ruby", "Go", "Rust", "Swift",
	"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask", "Spring", "Laravel",
	"HTML", "CSS", "SCSS", "Sass", "Bootstrap", "Tailwind", "Material-UI", "Chakra UI",
	"MongoDB", "MySQL", "PostgreSQL", "SQLite", "Redis", "Firebase", "Supabase",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "Git", "GitHub", "GitLab",
	"TypeScript", "GraphQL", "REST API", "Microservices", "Machine Learning", "AI",
	"Data Analysis", "SQL", "NoSQL", "Linux", "Windows", "macOS", "Agile", "Scrum",
}

// canonicalNames maps known skill spellings (lowercased) to their canonical form
var canonicalNames = map[string]string{
	"shaden ui":  "shadcn/ui",
	"shadcn ui":  "shadcn/ui",
	"shadcn":     "shadcn/ui",
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"nodejs":     "Node.js",
	"node":       "Node.js",
	"postgres":   "PostgreSQL",
	"mui":        "Material-UI",
}
