package models

import "time"

// JSON is a free-form details map attached to activity entries
type JSON map[string]interface{}

// DashboardStats holds the headline numbers of the dashboard.
// These are seeded independently of the case collection.
type DashboardStats struct {
	TodayVerifications int     `json:"todayVerifications"`
	AvgDecisionTime    string  `json:"avgDecisionTime"`
	ApprovalRate       float64 `json:"approvalRate"`
	PendingReview      int     `json:"pendingReview"`
}

// StatusBucket is one bar of the verification status chart
type StatusBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// DashboardOverview is everything the dashboard screen renders
type DashboardOverview struct {
	Stats         DashboardStats `json:"stats"`
	Chart         []StatusBucket `json:"chart"`
	Alert         string         `json:"alert"`
	LiveUpdates   bool           `json:"liveUpdates"`
	LastChangedID *string        `json:"lastChangedId"`
	Recent        []CaseView     `json:"recent"`
}

// Organization is the tenant profile edited on the settings page
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrganizationUpdate carries the editable organization fields
type OrganizationUpdate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}
