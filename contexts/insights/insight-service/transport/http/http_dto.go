package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type GenerateReportRequest struct {
	ReportType  string `json:"report_type"`
	Period      string `json:"period,omitempty"`
	AddressTerm string `json:"address_term,omitempty"`
	UserQuery   string `json:"user_query,omitempty"`
}

type ReportDTO struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
}

type ReportResponse struct {
	Success bool      `json:"success"`
	Report  ReportDTO `json:"report"`
}

type GeneratePredictionRequest struct {
	PredictionType   string `json:"prediction_type"`
	PredictionPeriod string `json:"prediction_period,omitempty"`
}

type PredictionDTO struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
}

type PredictionResponse struct {
	Success     bool          `json:"success"`
	Predictions PredictionDTO `json:"predictions"`
}

type GrowthPointDTO struct {
	Month   string `json:"month"`
	Members int    `json:"members"`
}

type NameValueDTO struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type SourceCountDTO struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

type AgeGroupCountDTO struct {
	AgeGroup string `json:"age_group"`
	Count    int    `json:"count"`
}

type InsightCardDTO struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

type AnalyticsDTO struct {
	TotalMembers       int                `json:"total_members"`
	MobileUsers        int                `json:"mobile_users"`
	MobilePercentage   float64            `json:"mobile_percentage"`
	VerifiedMembers    int                `json:"verified_members"`
	VerificationRate   float64            `json:"verification_rate"`
	AverageAge         float64            `json:"average_age"`
	MostCommonAgeGroup string             `json:"most_common_age_group"`
	GrowthRate         float64            `json:"growth_rate"`
	GrowthData         []GrowthPointDTO   `json:"growth_data"`
	GenderDistribution []NameValueDTO     `json:"gender_distribution"`
	SourceDistribution []SourceCountDTO   `json:"source_distribution"`
	AgeDistribution    []AgeGroupCountDTO `json:"age_distribution"`
	AIInsights         []InsightCardDTO   `json:"ai_insights"`
}

type AnalyticsResponse struct {
	Success   bool         `json:"success"`
	Analytics AnalyticsDTO `json:"analytics"`
}
