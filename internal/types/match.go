package types

import (
	"github.com/go-playground/validator/v10"
)

// ParseJobRequest is the body of POST /api/job/parse.
// HTML is used only when Text is empty.
type ParseJobRequest struct {
	Text string `json:"text" validate:"max=100000"`
	HTML string `json:"html,omitempty" validate:"max=500000"`
}

// ParseJobResponse lists the known skills found in a job description.
type ParseJobResponse struct {
	Skills []string `json:"skills"`
}

// MatchRequest is the body of POST /api/match.
type MatchRequest struct {
	Resume   Resume   `json:"resume"`
	JDSkills []string `json:"jdSkills" validate:"max=500"`
}

// MatchResult scores how well a résumé covers a set of target skills.
type MatchResult struct {
	Score      int         `json:"score"`
	Coverage   Coverage    `json:"coverage"`
	TopBullets []TopBullet `json:"topBullets"`
}

// Coverage partitions the target skills into matched and missing
type Coverage struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// TopBullet is an experience bullet that mentions matched skills
type TopBullet struct {
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Validate validates the ParseJobRequest using the validator.
func (r *ParseJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
