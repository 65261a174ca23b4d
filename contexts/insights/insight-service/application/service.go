package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"shepherd/contexts/insights/insight-service/domain/entities"
	domainerrors "shepherd/contexts/insights/insight-service/domain/errors"
	"shepherd/contexts/insights/insight-service/ports"
)

const monthsOfHistory = 12

type Service struct {
	Data      ports.DataSource
	Generator ports.TextGenerator
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (s Service) GenerateReport(ctx context.Context, req ports.ReportRequest) (entities.Report, error) {
	reportType := strings.TrimSpace(req.ReportType)
	if reportType == "" {
		reportType = entities.ReportMembershipSummary
	}
	period := strings.TrimSpace(req.Period)
	if period == "" {
		period = "last_30_days"
	}

	title, prompt, err := s.buildReportPrompt(ctx, reportType, period, strings.TrimSpace(req.AddressTerm), strings.TrimSpace(req.UserQuery))
	if err != nil {
		return entities.Report{}, err
	}
	content, err := s.generate(ctx, prompt)
	if err != nil {
		return entities.Report{}, err
	}

	s.logger().Info("report generated",
		"event", "insight_report_generated",
		"module", "insights/insight-service",
		"layer", "application",
		"report_type", reportType,
	)
	return entities.Report{
		Title:       title,
		Content:     content,
		GeneratedAt: s.Clock.Now().UTC(),
	}, nil
}

func (s Service) GeneratePrediction(ctx context.Context, req ports.PredictionRequest) (entities.Prediction, error) {
	predictionType := strings.TrimSpace(req.PredictionType)
	if predictionType == "" {
		predictionType = entities.PredictionMembershipGrowth
	}
	period := strings.TrimSpace(req.PredictionPeriod)
	if period == "" {
		period = "next_6_months"
	}

	var title, prompt string
	switch predictionType {
	case entities.PredictionMembershipGrowth:
		monthly, err := s.Data.MonthlyRegistrations(ctx, 2*monthsOfHistory)
		if err != nil {
			return entities.Prediction{}, err
		}
		title, prompt = membershipGrowthPrompt(period, monthly)
	case entities.PredictionChurnRisk:
		total, err := s.Data.CountMembers(ctx)
		if err != nil {
			return entities.Prediction{}, err
		}
		completed, err := s.Data.CountCompletedProfiles(ctx)
		if err != nil {
			return entities.Prediction{}, err
		}
		snapshots, err := s.Data.ListMemberSnapshots(ctx)
		if err != nil {
			return entities.Prediction{}, err
		}
		title, prompt = churnRiskPrompt(period, total, completed, snapshots)
	default:
		return entities.Prediction{}, domainerrors.ErrInvalidPredictionType
	}

	content, err := s.generate(ctx, prompt)
	if err != nil {
		return entities.Prediction{}, err
	}

	s.logger().Info("prediction generated",
		"event", "insight_prediction_generated",
		"module", "insights/insight-service",
		"layer", "application",
		"prediction_type", predictionType,
	)
	return entities.Prediction{
		Title:       title,
		Content:     content,
		GeneratedAt: s.Clock.Now().UTC(),
	}, nil
}

func (s Service) buildReportPrompt(ctx context.Context, reportType, period, addressTerm, userQuery string) (string, string, error) {
	now := s.Clock.Now().UTC()
	switch reportType {
	case entities.ReportMembershipSummary:
		total, err := s.Data.CountMembers(ctx)
		if err != nil {
			return "", "", err
		}
		mobile, err := s.Data.CountMobileUsers(ctx)
		if err != nil {
			return "", "", err
		}
		snapshots, err := s.Data.ListMemberSnapshots(ctx)
		if err != nil {
			return "", "", err
		}
		gender, source, ageGroups, verified := distributions(snapshots, now)
		title, prompt := membershipSummaryPrompt(period, total, mobile, verified, gender, source, ageGroups)
		return title, prompt, nil
	case entities.ReportGrowthAnalysis:
		monthly, err := s.Data.MonthlyRegistrations(ctx, monthsOfHistory)
		if err != nil {
			return "", "", err
		}
		title, prompt := growthAnalysisPrompt(period, monthly)
		return title, prompt, nil
	case entities.ReportDemographicInsights:
		snapshots, err := s.Data.ListMemberSnapshots(ctx)
		if err != nil {
			return "", "", err
		}
		gender, _, ageGroups, _ := distributions(snapshots, now)
		title, prompt := demographicInsightsPrompt(period, gender, ageGroups)
		return title, prompt, nil
	case entities.ReportEngagementMetrics:
		total, err := s.Data.CountMembers(ctx)
		if err != nil {
			return "", "", err
		}
		completed, err := s.Data.CountCompletedProfiles(ctx)
		if err != nil {
			return "", "", err
		}
		title, prompt := engagementMetricsPrompt(period, total, completed)
		return title, prompt, nil
	case entities.ReportCustomAnalysis:
		var snapshots []entities.MemberSnapshot
		var err error
		if addressTerm != "" && userQuery == "" {
			snapshots, err = s.Data.ListMemberSnapshotsByAddress(ctx, addressTerm)
		} else {
			snapshots, err = s.Data.ListMemberSnapshots(ctx)
		}
		if err != nil {
			return "", "", err
		}
		title, prompt := customAnalysisPrompt(period, addressTerm, userQuery, snapshots)
		return title, prompt, nil
	default:
		return "", "", domainerrors.ErrInvalidReportType
	}
}

func (s Service) generate(ctx context.Context, prompt string) (string, error) {
	content, err := s.Generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger().Error("text generation failed",
			"event", "insight_generation_failed",
			"module", "insights/insight-service",
			"layer", "application",
			"error", err.Error(),
		)
		return "", fmt.Errorf("%w: %v", domainerrors.ErrGeneratorUnavailable, err)
	}
	return content, nil
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
