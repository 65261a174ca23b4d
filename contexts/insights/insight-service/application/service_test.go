package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"shepherd/contexts/insights/insight-service/adapters/memory"
	"shepherd/contexts/insights/insight-service/domain/entities"
	domainerrors "shepherd/contexts/insights/insight-service/domain/errors"
	"shepherd/contexts/insights/insight-service/ports"
)

var insightNow = time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)

func newInsightFixture(seed []entities.MemberSnapshot) (*memory.Store, *memory.StaticGenerator, Service) {
	store := memory.NewStore(seed)
	store.SetNow(insightNow)
	generator := &memory.StaticGenerator{}
	return store, generator, Service{Data: store, Generator: generator, Clock: store}
}

func snapshot(id, gender, source, address string, verified, completed bool, createdAt time.Time) entities.MemberSnapshot {
	return entities.MemberSnapshot{
		MemberID:         id,
		Gender:           gender,
		DateOfBirth:      time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		Address:          address,
		Source:           source,
		Verified:         verified,
		ProfileCompleted: completed,
		CreatedAt:        createdAt,
	}
}

func TestGenerateReportDefaultsToMembershipSummary(t *testing.T) {
	_, generator, svc := newInsightFixture([]entities.MemberSnapshot{
		snapshot("m1", "female", "Mobile", "Osu", true, true, insightNow.AddDate(0, -1, 0)),
		snapshot("m2", "male", "Web", "Tema", false, false, insightNow.AddDate(0, -2, 0)),
	})

	report, err := svc.GenerateReport(context.Background(), ports.ReportRequest{})
	if err != nil {
		t.Fatalf("generate report failed: %v", err)
	}
	if report.Title != "Membership Summary Report for Last 30 Days" {
		t.Fatalf("unexpected title %q", report.Title)
	}
	if !report.GeneratedAt.Equal(insightNow) {
		t.Fatalf("unexpected generated_at %v", report.GeneratedAt)
	}

	prompts := generator.Prompts()
	if len(prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(prompts))
	}
	for _, fragment := range []string{
		"Total Members: 2",
		"Mobile Users: 1",
		"Web Users: 1",
		"Verified Members: 1",
	} {
		if !strings.Contains(prompts[0], fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, prompts[0])
		}
	}
}

func TestGenerateReportInvalidType(t *testing.T) {
	_, _, svc := newInsightFixture(nil)
	_, err := svc.GenerateReport(context.Background(), ports.ReportRequest{ReportType: "astrology"})
	if !errors.Is(err, domainerrors.ErrInvalidReportType) {
		t.Fatalf("expected ErrInvalidReportType, got %v", err)
	}
}

func TestGenerateReportTitlesPerType(t *testing.T) {
	_, _, svc := newInsightFixture(nil)
	ctx := context.Background()

	cases := []struct {
		reportType string
		want       string
	}{
		{entities.ReportGrowthAnalysis, "Membership Growth Analysis for Last 90 Days"},
		{entities.ReportDemographicInsights, "Demographic Insights Report for Last 90 Days"},
		{entities.ReportEngagementMetrics, "Member Engagement Metrics Report for Last 90 Days"},
		{entities.ReportCustomAnalysis, "Custom AI Analysis Report for All Members (Last 90 Days)"},
	}
	for _, tc := range cases {
		report, err := svc.GenerateReport(ctx, ports.ReportRequest{ReportType: tc.reportType, Period: "last_90_days"})
		if err != nil {
			t.Fatalf("%s: generate failed: %v", tc.reportType, err)
		}
		if report.Title != tc.want {
			t.Fatalf("%s: title %q, want %q", tc.reportType, report.Title, tc.want)
		}
	}
}

func TestCustomAnalysisFiltersByAddressOnlyWithoutQuery(t *testing.T) {
	_, generator, svc := newInsightFixture([]entities.MemberSnapshot{
		snapshot("m1", "female", "Web", "Osu, Accra", false, true, insightNow.AddDate(0, -1, 0)),
		snapshot("m2", "male", "Web", "Tema", false, true, insightNow.AddDate(0, -1, 0)),
	})
	ctx := context.Background()

	report, err := svc.GenerateReport(ctx, ports.ReportRequest{
		ReportType:  entities.ReportCustomAnalysis,
		AddressTerm: "Osu",
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if report.Title != "Custom AI Analysis Report for Osu Area (Last 30 Days)" {
		t.Fatalf("unexpected title %q", report.Title)
	}
	prompts := generator.Prompts()
	if strings.Contains(prompts[0], "Member ID: m2") {
		t.Fatal("address-filtered analysis leaked non-matching member")
	}
	if !strings.Contains(prompts[0], "Member ID: m1") {
		t.Fatal("address-filtered analysis dropped matching member")
	}

	// A user query overrides address filtering and sees everyone.
	if _, err := svc.GenerateReport(ctx, ports.ReportRequest{
		ReportType:  entities.ReportCustomAnalysis,
		AddressTerm: "Osu",
		UserQuery:   "Which members are most engaged?",
	}); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	prompts = generator.Prompts()
	if !strings.Contains(prompts[1], "Member ID: m2") {
		t.Fatal("query-driven analysis should include the full snapshot set")
	}
	if !strings.Contains(prompts[1], `"Which members are most engaged?"`) {
		t.Fatalf("prompt missing user query:\n%s", prompts[1])
	}
}

func TestGeneratePredictionDefaultsToGrowth(t *testing.T) {
	_, generator, svc := newInsightFixture([]entities.MemberSnapshot{
		snapshot("m1", "female", "Web", "Osu", false, true, insightNow.AddDate(0, -2, 0)),
		snapshot("m2", "male", "Web", "Tema", false, true, insightNow.AddDate(0, -1, 0)),
		snapshot("m3", "male", "Mobile", "Tema", true, true, insightNow.AddDate(0, -1, 0)),
	})

	prediction, err := svc.GeneratePrediction(context.Background(), ports.PredictionRequest{})
	if err != nil {
		t.Fatalf("generate prediction failed: %v", err)
	}
	if prediction.Title != "Predicted Membership Growth for Next 6 Months" {
		t.Fatalf("unexpected title %q", prediction.Title)
	}
	prompt := generator.Prompts()[0]
	if !strings.Contains(prompt, "predict the total membership for the 6 subsequent months") {
		t.Fatalf("prompt missing default horizon:\n%s", prompt)
	}
	// Cumulative data: the later month carries the running total of 3.
	if !strings.Contains(prompt, `"actual":3`) {
		t.Fatalf("prompt missing cumulative total:\n%s", prompt)
	}
}

func TestGeneratePredictionHorizonFollowsPeriod(t *testing.T) {
	_, generator, svc := newInsightFixture(nil)
	ctx := context.Background()

	cases := []struct {
		period string
		want   string
	}{
		{"next_3_months", "for the 3 subsequent months"},
		{"next_year", "for the 12 subsequent months"},
	}
	for i, tc := range cases {
		if _, err := svc.GeneratePrediction(ctx, ports.PredictionRequest{
			PredictionType:   entities.PredictionMembershipGrowth,
			PredictionPeriod: tc.period,
		}); err != nil {
			t.Fatalf("%s: generate failed: %v", tc.period, err)
		}
		if prompt := generator.Prompts()[i]; !strings.Contains(prompt, tc.want) {
			t.Fatalf("%s: prompt missing %q:\n%s", tc.period, tc.want, prompt)
		}
	}
}

func TestGenerateChurnRiskPrediction(t *testing.T) {
	_, generator, svc := newInsightFixture([]entities.MemberSnapshot{
		snapshot("m1", "female", "Mobile", "Osu", true, true, insightNow.AddDate(0, -1, 0)),
		snapshot("m2", "male", "Web", "Tema", false, false, insightNow.AddDate(0, -1, 0)),
	})

	prediction, err := svc.GeneratePrediction(context.Background(), ports.PredictionRequest{
		PredictionType: entities.PredictionChurnRisk,
	})
	if err != nil {
		t.Fatalf("generate prediction failed: %v", err)
	}
	if prediction.Title != "Member Churn Risk Prediction for Next 6 Months" {
		t.Fatalf("unexpected title %q", prediction.Title)
	}
	prompt := generator.Prompts()[0]
	if !strings.Contains(prompt, `"total_members":2`) || !strings.Contains(prompt, `"completed_profiles":1`) {
		t.Fatalf("prompt missing engagement figures:\n%s", prompt)
	}
}

func TestGeneratePredictionInvalidType(t *testing.T) {
	_, _, svc := newInsightFixture(nil)
	_, err := svc.GeneratePrediction(context.Background(), ports.PredictionRequest{PredictionType: "lottery"})
	if !errors.Is(err, domainerrors.ErrInvalidPredictionType) {
		t.Fatalf("expected ErrInvalidPredictionType, got %v", err)
	}
}

func TestGeneratorFailureMapsToUnavailable(t *testing.T) {
	store := memory.NewStore(nil)
	store.SetNow(insightNow)
	generator := &memory.StaticGenerator{Err: errors.New("quota exceeded")}
	svc := Service{Data: store, Generator: generator, Clock: store}

	_, err := svc.GenerateReport(context.Background(), ports.ReportRequest{})
	if !errors.Is(err, domainerrors.ErrGeneratorUnavailable) {
		t.Fatalf("expected ErrGeneratorUnavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected cause in error, got %v", err)
	}
}
