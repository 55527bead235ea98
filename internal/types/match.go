// Package types provides the request and response types shared by the API, the CLI and the match service.
package types

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/job-matcher/internal/skills"
)

// MaxTextLength bounds job and resume text accepted in a request.
const MaxTextLength = 100000

// StatusSuccess is the status reported on successful responses.
const StatusSuccess = "success"

// LegacyStatusSuccess is the status reported by the legacy comparison endpoint.
const LegacyStatusSuccess = "Success"

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// JobMatchRequest is the input to a full job/resume comparison.
// Either JobText or JobURL must be set.
type JobMatchRequest struct {
	JobText    string `json:"job_text" validate:"required_without=JobURL,max=100000"`
	ResumeText string `json:"resume_text" validate:"required,max=100000"`
	JobURL     string `json:"job_url,omitempty" validate:"omitempty,http_url"`
}

// Validate validates the JobMatchRequest using the validator.
func (r *JobMatchRequest) Validate() error {
	return validate.Struct(r)
}

// JobMatchResult is the outcome of a full comparison.
type JobMatchResult struct {
	SimilarityScore        float64             `json:"similarity_score"`
	MatchedSkillPercentage float64             `json:"matched_skill_percentage"`
	MatchedSkills          []string            `json:"matched_skills"`
	MissingSkills          []string            `json:"missing_skills"`
	ExtraSkills            []string            `json:"extra_skills"`
	Explanation            *skills.Explanation `json:"explanation,omitempty"`
}

// JobMatchResponse is the response body of POST /api/match.
type JobMatchResponse struct {
	JobMatchResult
	Status string `json:"status"`
}

// LegacyMatchResponse is the response body of POST /cvjob-compare, which
// older clients read a capitalized "Status" from.
type LegacyMatchResponse struct {
	JobMatchResult
	Status string `json:"Status"`
}

// SkillMatchRequest compares two explicit skill lists without extraction.
type SkillMatchRequest struct {
	JobSkills    []string `json:"job_skills" validate:"required,max=500,dive,max=200"`
	ResumeSkills []string `json:"resume_skills" validate:"required,max=500,dive,max=200"`
	Explain      bool     `json:"explain,omitempty"`
}

// Validate validates the SkillMatchRequest using the validator.
func (r *SkillMatchRequest) Validate() error {
	return validate.Struct(r)
}

// SkillMatchResponse is the response body of POST /api/match-skills.
type SkillMatchResponse struct {
	skills.Result
	Explanation *skills.Explanation `json:"explanation,omitempty"`
	Status      string              `json:"status"`
}

// PDFUploadResponse is the response body of POST /api/upload-pdf.
type PDFUploadResponse struct {
	Text      string `json:"text"`
	PageCount int    `json:"page_count"`
	CharCount int    `json:"char_count"`
	Status    string `json:"status"`
}
