package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "JobDetails")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "number"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
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

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent details.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// jobDetailsSchema returns the extraction schema for job posting pages.
func jobDetailsSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "JobDetails",
		Description: `You are an expert job posting parser. Extract the posting's details from the page text.
Preserve the description wording; do not paraphrase or summarize requirement lists.`,
		Fields: []SchemaField{
			{
				Name:        "company",
				Type:        "\"string\"",
				Description: "Company name",
				Required:    true,
			},
			{
				Name:        "job_title",
				Type:        "\"string\"",
				Description: "Role title as posted",
				Required:    true,
			},
			{
				Name:        "locations",
				Type:        "[\"string\"]",
				Description: "All posted locations (city/state or Remote)",
				Required:    false,
			},
			{
				Name:        "description",
				Type:        "\"string\"",
				Description: "Full job description: responsibilities, requirements, compensation if listed",
				Required:    true,
			},
			{
				Name:        "job_type",
				Type:        "\"string\"",
				Description: "One of: Internship, Full-Time, Part-Time, Contract",
				Required:    false,
			},
			{
				Name:        "category",
				Type:        "\"string\"",
				Description: "One of: SWE, ML/AI, Data, Quant, Other",
				Required:    false,
			},
			{
				Name:        "work_arrangement",
				Type:        "\"string\"",
				Description: "One of: On-site, Remote, Hybrid; omit if not stated",
				Required:    false,
			},
		},
	}
}

// scoreSchema returns the extraction schema for resume-against-description scoring.
func scoreSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ResumeScore",
		Description: `You are an experienced technical recruiter. Score how well the resume below matches
the job description, from 0 (no overlap) to 100 (ideal candidate). Weigh required skills,
experience level, and domain fit. Then write ONE sentence explaining the score, wrapping
the most important matching or missing terms in **double asterisks** for emphasis.`,
		Fields: []SchemaField{
			{
				Name:        "score",
				Type:        "number",
				Description: "Integer 0-100",
				Required:    true,
			},
			{
				Name:        "summary",
				Type:        "\"string\"",
				Description: "One sentence rationale with key terms in **bold**",
				Required:    true,
			},
		},
	}
}

// keywordsSchema returns the extraction schema for job-description keywords.
func keywordsSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "Keywords",
		Description: `You are an ATS keyword analyst. From the job description below, extract the
skills, technologies, and qualifications a resume should mention.`,
		Fields: []SchemaField{
			{
				Name:        "keywords",
				Type:        "[\"string\"]",
				Description: "Concrete skills and technologies, most important first",
				Required:    true,
			},
			{
				Name:        "suggestions",
				Type:        "\"string\"",
				Description: "Short advice on working the keywords into a resume",
				Required:    false,
			},
		},
	}
}

// resumeTextPrompt is the prompt for extracting plain text from an attached resume PDF.
const resumeTextPrompt = `Extract the complete plain text of the attached resume PDF.
Preserve section order and bullet text exactly. Return only the extracted text,
with no commentary and no markdown formatting.`
