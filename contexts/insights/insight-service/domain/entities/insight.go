package entities

import "time"

const (
	ReportMembershipSummary   = "membership_summary"
	ReportGrowthAnalysis      = "growth_analysis"
	ReportDemographicInsights = "demographic_insights"
	ReportEngagementMetrics   = "engagement_metrics"
	ReportCustomAnalysis      = "custom_analysis"
)

const (
	PredictionMembershipGrowth = "membership_growth"
	PredictionChurnRisk        = "churn_risk"
)

// Report is a generated narrative document.
type Report struct {
	Title       string
	Content     string
	GeneratedAt time.Time
}

// Prediction carries the generator's structured forecast text verbatim;
// the frontend parses the embedded JSON.
type Prediction struct {
	Title       string
	Content     string
	GeneratedAt time.Time
}

// MemberSnapshot is the member-directory projection the prompt builders
// aggregate over.
type MemberSnapshot struct {
	MemberID         string
	Gender           string
	DateOfBirth      time.Time
	Address          string
	Source           string
	Verified         bool
	ProfileCompleted bool
	CreatedAt        time.Time
}

// MonthlyCount is one month of registrations, keyed YYYY-MM.
type MonthlyCount struct {
	Month string
	Count int
}

// StructuredInsight is one model-generated insight card.
type StructuredInsight struct {
	Title          string
	Description    string
	Recommendation string
}

// GrowthPoint is one month of the cumulative growth series.
type GrowthPoint struct {
	Month   string
	Members int
}

type NameCount struct {
	Name  string
	Value int
}

type SourceCount struct {
	Source string
	Count  int
}

type AgeGroupCount struct {
	AgeGroup string
	Count    int
}

// Analytics is the computed membership analytics payload together with
// the structured insight cards derived from it.
type Analytics struct {
	TotalMembers       int
	MobileUsers        int
	MobilePercentage   float64
	VerifiedMembers    int
	VerificationRate   float64
	AverageAge         float64
	MostCommonAgeGroup string
	GrowthRate         float64
	GrowthData         []GrowthPoint
	GenderDistribution []NameCount
	SourceDistribution []SourceCount
	AgeDistribution    []AgeGroupCount
	Insights           []StructuredInsight
}
