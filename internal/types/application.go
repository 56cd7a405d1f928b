// Package types holds the domain enums and API request/response types shared
// by the store, the ingestion pipeline, and the HTTP server.
package types

// AllUsersSentinel is the user reference meaning "every known user". A bulk
// row carrying it fans out to one application record per user.
const AllUsersSentinel = "all"

// Status is the pipeline state of an application. The set is closed and
// ordered; every application starts at StatusYetToApply.
type Status string

const (
	StatusYetToApply Status = "Yet to Apply"
	StatusApplied    Status = "Applied"
	StatusOA         Status = "OA"
	StatusInterview  Status = "Interview"
	StatusOffer      Status = "Offer"
	StatusRejected   Status = "Rejected"
)

// Statuses returns the pipeline states in order.
func Statuses() []Status {
	return []Status{
		StatusYetToApply,
		StatusApplied,
		StatusOA,
		StatusInterview,
		StatusOffer,
		StatusRejected,
	}
}

// ValidStatus reports whether s is one of the pipeline states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusYetToApply, StatusApplied, StatusOA, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// JobType classifies the employment type of a posting.
type JobType string

const (
	TypeInternship JobType = "Internship"
	TypeFullTime   JobType = "Full-Time"
	TypePartTime   JobType = "Part-Time"
	TypeContract   JobType = "Contract"
)

// ValidJobType reports whether t is one of the recognized job types.
func ValidJobType(t JobType) bool {
	switch t {
	case TypeInternship, TypeFullTime, TypePartTime, TypeContract:
		return true
	}
	return false
}

// Category classifies the role family of a posting.
type Category string

const (
	CategorySWE   Category = "SWE"
	CategoryMLAI  Category = "ML/AI"
	CategoryData  Category = "Data"
	CategoryQuant Category = "Quant"
	CategoryOther Category = "Other"
)

// ValidCategory reports whether c is one of the recognized categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategorySWE, CategoryMLAI, CategoryData, CategoryQuant, CategoryOther:
		return true
	}
	return false
}

// WorkArrangement is the optional on-site/remote classification. The empty
// string means unspecified.
type WorkArrangement string

const (
	ArrangementOnSite WorkArrangement = "On-site"
	ArrangementRemote WorkArrangement = "Remote"
	ArrangementHybrid WorkArrangement = "Hybrid"
)

// ValidWorkArrangement reports whether w is one of the recognized
// arrangements. The empty string is not valid here; callers that treat
// "unspecified" as acceptable check for it explicitly.
func ValidWorkArrangement(w WorkArrangement) bool {
	switch w {
	case ArrangementOnSite, ArrangementRemote, ArrangementHybrid:
		return true
	}
	return false
}
