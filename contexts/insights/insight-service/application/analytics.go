package application

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"shepherd/contexts/insights/insight-service/domain/entities"
)

var ageGroupOrder = []string{"Under 18", "18-24", "25-34", "35-44", "45-54", "55-64", "65+"}

// Analytics computes the membership analytics block and asks the
// generator for three structured insight cards over it. Generator
// failures and unparseable model output degrade to a placeholder card;
// the computed figures are always returned.
func (s Service) Analytics(ctx context.Context) (entities.Analytics, error) {
	snapshots, err := s.Data.ListMemberSnapshots(ctx)
	if err != nil {
		return entities.Analytics{}, err
	}
	now := s.Clock.Now().UTC()
	analytics := computeAnalytics(snapshots, now)

	text, err := s.Generator.GenerateText(ctx, analyticsInsightsPrompt(analytics))
	if err != nil {
		s.logger().Error("analytics insight generation failed",
			"event", "insight_generation_failed",
			"module", "insights/insight-service",
			"layer", "application",
			"error", err.Error(),
		)
		analytics.Insights = []entities.StructuredInsight{{
			Title:          "AI Insight Generation Failed",
			Description:    "Failed to retrieve any content from the AI for insights. Check API logs and Gemini API key.",
			Recommendation: "Ensure Gemini API is accessible and prompt is clear.",
		}}
		return analytics, nil
	}

	insights, ok := extractInsights(text)
	if !ok {
		snippet := text
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		analytics.Insights = []entities.StructuredInsight{{
			Title:          "AI Insights Unavailable",
			Description:    "Failed to parse AI-generated insights. The AI response might not be in the expected JSON format. Raw output snippet: " + snippet + "...",
			Recommendation: "Review the Gemini API prompt and response. The model should return only JSON.",
		}}
	} else {
		analytics.Insights = insights
	}

	s.logger().Info("analytics generated",
		"event", "insight_analytics_generated",
		"module", "insights/insight-service",
		"layer", "application",
		"total_members", analytics.TotalMembers,
	)
	return analytics, nil
}

func computeAnalytics(snapshots []entities.MemberSnapshot, now time.Time) entities.Analytics {
	total := len(snapshots)
	mobile, verified, ageSum := 0, 0, 0
	gender := map[string]int{"male": 0, "female": 0}
	source := map[string]int{"Mobile": 0, "Web": 0}
	ageGroups := map[string]int{}

	// Pre-initialize the 12-month window so quiet months still chart.
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]string, monthsOfHistory)
	monthly := map[string]int{}
	for i := range months {
		month := currentMonth.AddDate(0, i-(monthsOfHistory-1), 0).Format("2006-01")
		months[i] = month
		monthly[month] = 0
	}

	for _, snapshot := range snapshots {
		if snapshot.Source == "Mobile" {
			mobile++
		}
		if snapshot.Verified {
			verified++
		}
		gender[snapshot.Gender]++
		source[snapshot.Source]++
		if !snapshot.DateOfBirth.IsZero() {
			age := ageAt(snapshot.DateOfBirth, now)
			ageSum += age
			ageGroups[AgeGroup(age)]++
		}
		if !snapshot.CreatedAt.IsZero() {
			month := snapshot.CreatedAt.Format("2006-01")
			if _, ok := monthly[month]; ok {
				monthly[month]++
			}
		}
	}

	growth := make([]entities.GrowthPoint, 0, len(months))
	running := 0
	for _, month := range months {
		running += monthly[month]
		growth = append(growth, entities.GrowthPoint{Month: month, Members: running})
	}

	averageAge := 0.0
	if total > 0 {
		averageAge = math.Round(float64(ageSum)/float64(total)*10) / 10
	}

	mostCommon := "N/A"
	best := 0
	for _, group := range ageGroupOrder {
		if count := ageGroups[group]; count > best {
			best = count
			mostCommon = group
		}
	}

	// Month-over-month rate from the totals standing at each month end.
	atLastMonthEnd, atTwoMonthsEnd := 0, 0
	twoMonthsEnd := currentMonth.AddDate(0, -1, 0)
	for _, snapshot := range snapshots {
		if snapshot.CreatedAt.Before(currentMonth) {
			atLastMonthEnd++
		}
		if snapshot.CreatedAt.Before(twoMonthsEnd) {
			atTwoMonthsEnd++
		}
	}
	growthRate := 0.0
	switch {
	case atTwoMonthsEnd > 0:
		growthRate = round2(float64(atLastMonthEnd-atTwoMonthsEnd) / float64(atTwoMonthsEnd) * 100)
	case atLastMonthEnd > 0:
		growthRate = 100
	}

	return entities.Analytics{
		TotalMembers:       total,
		MobileUsers:        mobile,
		MobilePercentage:   percentage(mobile, total),
		VerifiedMembers:    verified,
		VerificationRate:   percentage(verified, total),
		AverageAge:         averageAge,
		MostCommonAgeGroup: mostCommon,
		GrowthRate:         growthRate,
		GrowthData:         growth,
		GenderDistribution: nameCounts(gender),
		SourceDistribution: sourceCounts(source),
		AgeDistribution:    ageGroupCounts(ageGroups),
	}
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func nameCounts(counts map[string]int) []entities.NameCount {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]entities.NameCount, 0, len(keys))
	for _, key := range keys {
		out = append(out, entities.NameCount{Name: key, Value: counts[key]})
	}
	return out
}

func sourceCounts(counts map[string]int) []entities.SourceCount {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]entities.SourceCount, 0, len(keys))
	for _, key := range keys {
		out = append(out, entities.SourceCount{Source: key, Count: counts[key]})
	}
	return out
}

func ageGroupCounts(counts map[string]int) []entities.AgeGroupCount {
	out := make([]entities.AgeGroupCount, 0, len(counts))
	for _, group := range ageGroupOrder {
		if count, ok := counts[group]; ok {
			out = append(out, entities.AgeGroupCount{AgeGroup: group, Count: count})
		}
	}
	return out
}

func analyticsInsightsPrompt(a entities.Analytics) string {
	gender := map[string]int{}
	for _, entry := range a.GenderDistribution {
		gender[entry.Name] = entry.Value
	}
	source := map[string]int{}
	for _, entry := range a.SourceDistribution {
		source[entry.Source] = entry.Count
	}
	type growthPoint struct {
		Month   string `json:"month"`
		Members int    `json:"members"`
	}
	trend := make([]growthPoint, 0, len(a.GrowthData))
	for _, point := range a.GrowthData {
		trend = append(trend, growthPoint{Month: point.Month, Members: point.Members})
	}

	return fmt.Sprintf(
		"Generate 3 concise and actionable AI-generated insights and recommendations based on the following membership analytics data. "+
			"Each insight must have a 'title' (string), 'description' (string), and a 'recommendation' (string). "+
			"and should contain really brief explanations and in basic terminologies for anyone to understand "+
			"**ONLY return a JSON array of objects. Do NOT include any other text, greetings, or explanations outside the JSON.** "+
			"The JSON structure must be: "+
			"[\n  {\"title\": \"Insight Title\", \"description\": \"Insight description.\", \"recommendation\": \"Actionable recommendation.\"}\n]\n\n"+
			"Analytics Data:\n"+
			"- Total Members: %d\n"+
			"- Growth Rate (from last month): %v%%\n"+
			"- Mobile Users: %d (%v%%)\n"+
			"- Verified Members: %d (%v%% verification rate)\n"+
			"- Average Age: %v\n"+
			"- Most Common Age Group: %s\n"+
			"- Gender Distribution: %s\n"+
			"- Registration Source Distribution: %s\n"+
			"- Monthly Growth Trend (cumulative members): %s\n",
		a.TotalMembers, a.GrowthRate, a.MobileUsers, a.MobilePercentage,
		a.VerifiedMembers, a.VerificationRate, a.AverageAge, a.MostCommonAgeGroup,
		encode(gender), encode(source), encode(trend))
}

// extractInsights pulls the first JSON array out of the model output;
// generators routinely wrap the JSON in prose or code fences.
func extractInsights(text string) ([]entities.StructuredInsight, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, false
	}
	var insights []entities.StructuredInsight
	if err := json.Unmarshal([]byte(text[start:end+1]), &insights); err != nil {
		return nil, false
	}
	return insights, true
}
