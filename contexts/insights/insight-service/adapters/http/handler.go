package httpadapter

import (
	"context"
	"log/slog"

	"shepherd/contexts/insights/insight-service/application"
	"shepherd/contexts/insights/insight-service/ports"
	httptransport "shepherd/contexts/insights/insight-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) GenerateReportHandler(ctx context.Context, req httptransport.GenerateReportRequest) (httptransport.ReportResponse, error) {
	report, err := h.Service.GenerateReport(ctx, ports.ReportRequest{
		ReportType:  req.ReportType,
		Period:      req.Period,
		AddressTerm: req.AddressTerm,
		UserQuery:   req.UserQuery,
	})
	if err != nil {
		return httptransport.ReportResponse{}, err
	}
	return httptransport.ReportResponse{
		Success: true,
		Report: httptransport.ReportDTO{
			Title:       report.Title,
			Content:     report.Content,
			GeneratedAt: report.GeneratedAt,
		},
	}, nil
}

func (h Handler) AnalyticsHandler(ctx context.Context) (httptransport.AnalyticsResponse, error) {
	analytics, err := h.Service.Analytics(ctx)
	if err != nil {
		return httptransport.AnalyticsResponse{}, err
	}

	growth := make([]httptransport.GrowthPointDTO, 0, len(analytics.GrowthData))
	for _, point := range analytics.GrowthData {
		growth = append(growth, httptransport.GrowthPointDTO{Month: point.Month, Members: point.Members})
	}
	gender := make([]httptransport.NameValueDTO, 0, len(analytics.GenderDistribution))
	for _, entry := range analytics.GenderDistribution {
		gender = append(gender, httptransport.NameValueDTO{Name: entry.Name, Value: entry.Value})
	}
	sources := make([]httptransport.SourceCountDTO, 0, len(analytics.SourceDistribution))
	for _, entry := range analytics.SourceDistribution {
		sources = append(sources, httptransport.SourceCountDTO{Source: entry.Source, Count: entry.Count})
	}
	ages := make([]httptransport.AgeGroupCountDTO, 0, len(analytics.AgeDistribution))
	for _, entry := range analytics.AgeDistribution {
		ages = append(ages, httptransport.AgeGroupCountDTO{AgeGroup: entry.AgeGroup, Count: entry.Count})
	}
	insights := make([]httptransport.InsightCardDTO, 0, len(analytics.Insights))
	for _, insight := range analytics.Insights {
		insights = append(insights, httptransport.InsightCardDTO{
			Title:          insight.Title,
			Description:    insight.Description,
			Recommendation: insight.Recommendation,
		})
	}

	return httptransport.AnalyticsResponse{
		Success: true,
		Analytics: httptransport.AnalyticsDTO{
			TotalMembers:       analytics.TotalMembers,
			MobileUsers:        analytics.MobileUsers,
			MobilePercentage:   analytics.MobilePercentage,
			VerifiedMembers:    analytics.VerifiedMembers,
			VerificationRate:   analytics.VerificationRate,
			AverageAge:         analytics.AverageAge,
			MostCommonAgeGroup: analytics.MostCommonAgeGroup,
			GrowthRate:         analytics.GrowthRate,
			GrowthData:         growth,
			GenderDistribution: gender,
			SourceDistribution: sources,
			AgeDistribution:    ages,
			AIInsights:         insights,
		},
	}, nil
}

func (h Handler) GeneratePredictionHandler(ctx context.Context, req httptransport.GeneratePredictionRequest) (httptransport.PredictionResponse, error) {
	prediction, err := h.Service.GeneratePrediction(ctx, ports.PredictionRequest{
		PredictionType:   req.PredictionType,
		PredictionPeriod: req.PredictionPeriod,
	})
	if err != nil {
		return httptransport.PredictionResponse{}, err
	}
	return httptransport.PredictionResponse{
		Success: true,
		Predictions: httptransport.PredictionDTO{
			Title:       prediction.Title,
			Content:     prediction.Content,
			GeneratedAt: prediction.GeneratedAt,
		},
	}, nil
}
