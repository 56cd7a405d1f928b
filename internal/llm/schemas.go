package llm

// JSON Schemas used to validate gateway output before it is trusted.
// A response that fails validation is a gateway error, never a partial result.

const jobDetailsJSONSchema = `{
  "type": "object",
  "required": ["company", "job_title", "description"],
  "properties": {
    "company": {"type": "string"},
    "job_title": {"type": "string"},
    "locations": {"type": "array", "items": {"type": "string"}},
    "description": {"type": "string"},
    "job_type": {"type": "string"},
    "category": {"type": "string"},
    "work_arrangement": {"type": "string"}
  }
}`

const scoreJSONSchema = `{
  "type": "object",
  "required": ["score", "summary"],
  "properties": {
    "score": {"type": "number"},
    "summary": {"type": "string"}
  }
}`

const keywordsJSONSchema = `{
  "type": "object",
  "required": ["keywords"],
  "properties": {
    "keywords": {"type": "array", "items": {"type": "string"}},
    "suggestions": {"type": "string"}
  }
}`
