package unit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	insightservice "shepherd/contexts/insights/insight-service"
	"shepherd/contexts/insights/insight-service/adapters/memory"
	"shepherd/contexts/insights/insight-service/domain/entities"
	domainerrors "shepherd/contexts/insights/insight-service/domain/errors"
	httptransport "shepherd/contexts/insights/insight-service/transport/http"
)

func insightSeed() []entities.MemberSnapshot {
	return []entities.MemberSnapshot{
		{
			MemberID:         "m1",
			Gender:           "female",
			DateOfBirth:      time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
			Address:          "Osu, Accra",
			Source:           "Mobile",
			Verified:         true,
			ProfileCompleted: true,
			CreatedAt:        time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			MemberID:    "m2",
			Gender:      "male",
			DateOfBirth: time.Date(1975, 3, 15, 0, 0, 0, 0, time.UTC),
			Address:     "Tema",
			Source:      "Web",
			CreatedAt:   time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestInsightReportGeneration(t *testing.T) {
	generator := &memory.StaticGenerator{Response: "The congregation is growing steadily."}
	module := insightservice.NewInMemoryModule(insightSeed(), generator, nil)
	module.Store.SetNow(time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	report, err := module.Handler.GenerateReportHandler(ctx, httptransport.GenerateReportRequest{})
	if err != nil {
		t.Fatalf("generate report failed: %v", err)
	}
	if !report.Success {
		t.Fatal("expected success response")
	}
	if report.Report.Title != "Membership Summary Report for Last 30 Days" {
		t.Fatalf("unexpected title %q", report.Report.Title)
	}
	if report.Report.Content != "The congregation is growing steadily." {
		t.Fatalf("unexpected content %q", report.Report.Content)
	}

	prompts := generator.Prompts()
	if len(prompts) != 1 || !strings.Contains(prompts[0], "Total Members: 2") {
		t.Fatalf("unexpected prompt capture %v", prompts)
	}
}

func TestInsightPredictionGeneration(t *testing.T) {
	generator := &memory.StaticGenerator{Response: `{"title":"Growth Outlook"}`}
	module := insightservice.NewInMemoryModule(insightSeed(), generator, nil)
	module.Store.SetNow(time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	prediction, err := module.Handler.GeneratePredictionHandler(ctx, httptransport.GeneratePredictionRequest{
		PredictionType:   entities.PredictionMembershipGrowth,
		PredictionPeriod: "next_3_months",
	})
	if err != nil {
		t.Fatalf("generate prediction failed: %v", err)
	}
	if prediction.Predictions.Title != "Predicted Membership Growth for Next 3 Months" {
		t.Fatalf("unexpected title %q", prediction.Predictions.Title)
	}
	if prediction.Predictions.Content != `{"title":"Growth Outlook"}` {
		t.Fatalf("unexpected content %q", prediction.Predictions.Content)
	}
	if prompt := generator.Prompts()[0]; !strings.Contains(prompt, "for the 3 subsequent months") {
		t.Fatalf("prompt missing horizon:\n%s", prompt)
	}
}

func TestInsightInvalidTypes(t *testing.T) {
	module := insightservice.NewInMemoryModule(nil, nil, nil)
	ctx := context.Background()

	_, err := module.Handler.GenerateReportHandler(ctx, httptransport.GenerateReportRequest{ReportType: "astrology"})
	if !errors.Is(err, domainerrors.ErrInvalidReportType) {
		t.Fatalf("expected ErrInvalidReportType, got %v", err)
	}
	_, err = module.Handler.GeneratePredictionHandler(ctx, httptransport.GeneratePredictionRequest{PredictionType: "lottery"})
	if !errors.Is(err, domainerrors.ErrInvalidPredictionType) {
		t.Fatalf("expected ErrInvalidPredictionType, got %v", err)
	}
}

func TestInsightGeneratorOutage(t *testing.T) {
	generator := &memory.StaticGenerator{Err: errors.New("model overloaded")}
	module := insightservice.NewInMemoryModule(nil, generator, nil)

	_, err := module.Handler.GenerateReportHandler(context.Background(), httptransport.GenerateReportRequest{})
	if !errors.Is(err, domainerrors.ErrGeneratorUnavailable) {
		t.Fatalf("expected ErrGeneratorUnavailable, got %v", err)
	}
}

func TestInsightAnalytics(t *testing.T) {
	generator := &memory.StaticGenerator{
		Response: `Here are your insights: [{"title":"Mobile adoption","description":"Half the membership registers on mobile.","recommendation":"Promote the mobile app during services."}]`,
	}
	module := insightservice.NewInMemoryModule(insightSeed(), generator, nil)
	module.Store.SetNow(time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC))

	resp, err := module.Handler.AnalyticsHandler(context.Background())
	if err != nil {
		t.Fatalf("analytics failed: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success response")
	}
	analytics := resp.Analytics
	if analytics.TotalMembers != 2 || analytics.MobileUsers != 1 || analytics.VerifiedMembers != 1 {
		t.Fatalf("unexpected totals %+v", analytics)
	}
	if analytics.MobilePercentage != 50 || analytics.VerificationRate != 50 {
		t.Fatalf("unexpected rates %+v", analytics)
	}
	if len(analytics.GrowthData) != 12 || analytics.GrowthData[11].Members != 2 {
		t.Fatalf("unexpected growth series %+v", analytics.GrowthData)
	}
	if len(analytics.AIInsights) != 1 || analytics.AIInsights[0].Title != "Mobile adoption" {
		t.Fatalf("unexpected insights %+v", analytics.AIInsights)
	}
}

func TestInsightAnalyticsSurvivesGeneratorOutage(t *testing.T) {
	generator := &memory.StaticGenerator{Err: errors.New("model overloaded")}
	module := insightservice.NewInMemoryModule(insightSeed(), generator, nil)
	module.Store.SetNow(time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC))

	resp, err := module.Handler.AnalyticsHandler(context.Background())
	if err != nil {
		t.Fatalf("analytics should degrade, not fail: %v", err)
	}
	if resp.Analytics.TotalMembers != 2 {
		t.Fatalf("expected computed figures, got %+v", resp.Analytics)
	}
	if len(resp.Analytics.AIInsights) != 1 || resp.Analytics.AIInsights[0].Title != "AI Insight Generation Failed" {
		t.Fatalf("unexpected fallback %+v", resp.Analytics.AIInsights)
	}
}
