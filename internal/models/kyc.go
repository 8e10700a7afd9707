package models

import (
	"fmt"
	"strings"
)

// VerificationStatus represents the review state of a verification case.
// The JSON value is the display label, which is also what list filters compare against.
type VerificationStatus string

const (
	VerificationStatusPending   VerificationStatus = "Pending"
	VerificationStatusApproved  VerificationStatus = "Approved"
	VerificationStatusRejected  VerificationStatus = "Rejected"
	VerificationStatusReview    VerificationStatus = "Review"
	VerificationStatusCompleted VerificationStatus = "Completed"
	VerificationStatusFailed    VerificationStatus = "Failed"
)

// StatusFilterAll is the pseudo-status that disables status filtering
const StatusFilterAll = "All"

// VerificationStatuses lists every status in display order
var VerificationStatuses = []VerificationStatus{
	VerificationStatusPending,
	VerificationStatusApproved,
	VerificationStatusRejected,
	VerificationStatusReview,
	VerificationStatusCompleted,
	VerificationStatusFailed,
}

// ParseVerificationStatus converts a display label into a VerificationStatus
func ParseVerificationStatus(label string) (VerificationStatus, error) {
	for _, status := range VerificationStatuses {
		if string(status) == label {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown verification status %q", label)
}

// IsActive reports whether cases in this status are still being worked and
// therefore eligible for live risk updates
func (s VerificationStatus) IsActive() bool {
	return s == VerificationStatusPending || s == VerificationStatusReview
}

// Template is the verification flow a case was submitted under
type Template string

const (
	TemplateStandard Template = "Standard"
	TemplateEnhanced Template = "Enhanced"
)

// Risk score bounds. 100 is the safest score.
const (
	MinRiskScore = 0
	MaxRiskScore = 100
)

// RiskBand groups risk scores for coloring in the dashboard
type RiskBand string

const (
	RiskBandLow    RiskBand = "low"
	RiskBandMedium RiskBand = "medium"
	RiskBandHigh   RiskBand = "high"
)

// User is the natural person under review
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
}

// FullName returns "First Last"
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// VerificationCase is one identity-verification request under review.
// Values are replaced whole in the store; never mutate a shared copy.
type VerificationCase struct {
	ID             string             `json:"id"`
	User           User               `json:"user"`
	Status         VerificationStatus `json:"status"`
	Date           string             `json:"date"`
	DecisionTime   string             `json:"decisionTime,omitempty"`
	Template       Template           `json:"template"`
	RiskScore      int                `json:"riskScore"`
	Country        string             `json:"country"`
	DocumentType   string             `json:"documentType"`
	DocumentNumber string             `json:"documentNumber"`
	Address        string             `json:"address"`
	DOB            string             `json:"dob"`
}

// WithRiskScore returns a copy of the case carrying the clamped score
func (c VerificationCase) WithRiskScore(score int) VerificationCase {
	c.RiskScore = ClampRiskScore(score)
	return c
}

// RiskBand returns the coloring band for the case's current score
func (c VerificationCase) RiskBand() RiskBand {
	switch {
	case c.RiskScore > 80:
		return RiskBandLow
	case c.RiskScore > 50:
		return RiskBandMedium
	default:
		return RiskBandHigh
	}
}

// ClampRiskScore forces a score into [MinRiskScore, MaxRiskScore]
func ClampRiskScore(score int) int {
	if score < MinRiskScore {
		return MinRiskScore
	}
	if score > MaxRiskScore {
		return MaxRiskScore
	}
	return score
}

// CaseView is the API representation of a case with derived fields
type CaseView struct {
	VerificationCase
	RiskBand RiskBand `json:"riskBand"`
}

// NewCaseView wraps a case with its derived fields
func NewCaseView(c VerificationCase) CaseView {
	return CaseView{VerificationCase: c, RiskBand: c.RiskBand()}
}

// NewCaseViews wraps a slice of cases
func NewCaseViews(cases []VerificationCase) []CaseView {
	views := make([]CaseView, 0, len(cases))
	for _, c := range cases {
		views = append(views, NewCaseView(c))
	}
	return views
}
