package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "ResumeProfile")
	Description string        // Preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
	Rules       []string      // Extra assignment rules, one per line
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint shown to the model
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the prompt from a schema. When inputText
// is empty the prompt refers to the attached document instead; attachedNote
// is the sentence used for that.
func BuildExtractionPrompt(schema ExtractionSchema, inputText, attachedNote string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	if len(schema.Rules) > 0 {
		sb.WriteString("URL ASSIGNMENT RULES:\n")
		for _, rule := range schema.Rules {
			sb.WriteString("- ")
			sb.WriteString(rule)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	if inputText == "" {
		sb.WriteString(attachedNote)
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}

// ResumeProfileSchema returns the schema for the structured résumé record.
func ResumeProfileSchema(description string, rules []string) ExtractionSchema {
	return ExtractionSchema{
		Name:        "ResumeProfile",
		Description: description,
		Rules:       rules,
		Fields: []SchemaField{
			{Name: "firstName", Description: "Given name", Required: true},
			{Name: "lastName", Description: "Family name, including any middle names"},
			{Name: "about", Description: "One-sentence professional summary taken from the résumé"},
			{Name: "title", Description: "Current or most recent job title"},
			{Name: "yearsOfExperience", Type: "number", Description: "Total years of professional experience, 0 if unknown"},
			{Name: "education", Type: `[{"degree": "string", "institution": "string", "year": "string"}]`, Description: "In document order"},
			{Name: "skills", Type: `["string"]`, Description: "Technical skills, at most 15, no duplicates"},
			{Name: "socialLinks", Type: `[{"platformName": "Linkedin|Github|Leetcode|Portfolio", "url": "string"}]`, Description: "One entry per platform"},
			{Name: "contact", Type: `{"email": "string", "phone": "string", "linkedin": "string", "github": "string", "portfolio": "string", "leetcode": "string"}`, Required: true},
			{Name: "extractedUrls", Type: `["string"]`, Description: "Every URL seen in the document"},
		},
	}
}
