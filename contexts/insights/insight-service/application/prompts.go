package application

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"shepherd/contexts/insights/insight-service/domain/entities"
)

const snapshotSampleLimit = 50

// AgeGroup buckets a whole-year age the way the dashboards display it.
func AgeGroup(age int) string {
	switch {
	case age < 18:
		return "Under 18"
	case age <= 24:
		return "18-24"
	case age <= 34:
		return "25-34"
	case age <= 44:
		return "35-44"
	case age <= 54:
		return "45-54"
	case age <= 64:
		return "55-64"
	default:
		return "65+"
	}
}

func ageAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// periodLabel turns last_30_days into "Last 30 Days".
func periodLabel(period string) string {
	words := strings.Split(strings.ReplaceAll(period, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func distributions(snapshots []entities.MemberSnapshot, now time.Time) (gender, source, ageGroups map[string]int, verified int) {
	gender = map[string]int{}
	source = map[string]int{}
	ageGroups = map[string]int{}
	for _, snapshot := range snapshots {
		gender[snapshot.Gender]++
		source[snapshot.Source]++
		if snapshot.Verified {
			verified++
		}
		if !snapshot.DateOfBirth.IsZero() {
			ageGroups[AgeGroup(ageAt(snapshot.DateOfBirth, now))]++
		}
	}
	return gender, source, ageGroups, verified
}

func encode(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func membershipSummaryPrompt(period string, total, mobile, verified int, gender, source, ageGroups map[string]int) (string, string) {
	label := periodLabel(period)
	title := "Membership Summary Report for " + label
	prompt := fmt.Sprintf(
		"Generate a comprehensive membership summary report for the %s period. "+
			"Focus on overall numbers, growth, demographics, and user sources. "+
			"The report should be professional, insightful, and easy to read, using clear headings and bullet points. "+
			"Here is the summarized data:\n\n"+
			"- Total Members: %d\n"+
			"- Mobile Users: %d\n"+
			"- Web Users: %d\n"+
			"- Verified Members: %d\n"+
			"- Gender Distribution: %s\n"+
			"- Source Distribution: %s\n"+
			"- Age Group Distribution: %s\n\n"+
			"Analyze this data and provide a detailed report including an overview, key findings, and recommendations. "+
			"Make sure the report sounds like it was written by an expert analyst.",
		label, total, mobile, total-mobile, verified, encode(gender), encode(source), encode(ageGroups))
	return title, prompt
}

func growthAnalysisPrompt(period string, monthly []entities.MonthlyCount) (string, string) {
	label := periodLabel(period)
	title := "Membership Growth Analysis for " + label
	prompt := fmt.Sprintf(
		"Conduct a membership growth analysis for the %s period. "+
			"Analyze the provided monthly membership additions and discuss trends, peak periods, and potential reasons for growth or stagnation. "+
			"Provide actionable insights and strategies for sustained growth. "+
			"Format as an analysis report with very easy to understand language and keep it brief, "+
			"keeping in mind that this data is for a church so recommendations should center on church related activities.\n\n"+
			"Historical monthly new members data:\n%s\n",
		label, encode(monthly))
	return title, prompt
}

func demographicInsightsPrompt(period string, gender, ageGroups map[string]int) (string, string) {
	label := periodLabel(period)
	title := "Demographic Insights Report for " + label
	prompt := fmt.Sprintf(
		"Generate a demographic insights report for members over the %s period. "+
			"Analyze the provided gender and age distribution data. "+
			"Identify key demographic segments, discuss their characteristics, and suggest how these insights can be used for targeted strategies. "+
			"Format as a detailed demographic analysis.\n\n"+
			"Gender Distribution: %s\n"+
			"Age Distribution: %s\n",
		label, encode(gender), encode(ageGroups))
	return title, prompt
}

func engagementMetricsPrompt(period string, total, completedProfiles int) (string, string) {
	label := periodLabel(period)
	title := "Member Engagement Metrics Report for " + label
	completionRate := 0.0
	if total > 0 {
		completionRate = float64(completedProfiles) / float64(total) * 100
	}
	prompt := fmt.Sprintf(
		"Generate a member engagement metrics report for the %s period. "+
			"Analyze metrics like profile completion and discuss implications. "+
			"Provide strategies to enhance member engagement and reduce inactivity. "+
			"Format as an engagement analysis report.\n\n"+
			"Key Engagement Data:\n"+
			"- Total Members: %d\n"+
			"- Profile Completion Rate: %.2f%%\n",
		label, total, completionRate)
	return title, prompt
}

func customAnalysisPrompt(period, addressTerm, userQuery string, snapshots []entities.MemberSnapshot) (string, string) {
	label := periodLabel(period)
	var title, context string
	switch {
	case userQuery != "":
		short := userQuery
		if len(short) > 50 {
			short = short[:50] + "..."
		}
		title = "Custom AI Query Analysis: " + short
		context = fmt.Sprintf("Based on your specific query: %q, ", userQuery)
	case addressTerm != "":
		title = fmt.Sprintf("Custom AI Analysis Report for %s Area (%s)", addressTerm, label)
		context = fmt.Sprintf("This data specifically includes members associated with the address search term: '%s'. ", addressTerm)
	default:
		title = fmt.Sprintf("Custom AI Analysis Report for All Members (%s)", label)
		context = "Analyze the overall membership data. "
	}

	var b strings.Builder
	b.WriteString("Perform a custom AI analysis on the provided membership data. ")
	b.WriteString(context)
	b.WriteString("Identify any interesting patterns, anomalies, or correlations within this group. ")
	b.WriteString("Provide a high-level overview and unique insights relevant to the data provided. ")
	b.WriteString("Here is a sample of the raw member data for context:\n\n")

	sample := snapshots
	if len(sample) > snapshotSampleLimit {
		sample = sample[:snapshotSampleLimit]
	}
	if len(sample) == 0 {
		b.WriteString("No members found for the specified criteria. Please analyze potential reasons or implications.")
	} else {
		for _, snapshot := range sample {
			verified := "No"
			if snapshot.Verified {
				verified = "Yes"
			}
			fmt.Fprintf(&b, "   - Member ID: %s, Gender: %s, DOB: %s, Address: %s, Source: %s, Verified: %s\n",
				snapshot.MemberID, snapshot.Gender, snapshot.DateOfBirth.Format("2006-01-02"),
				snapshot.Address, snapshot.Source, verified)
		}
	}
	b.WriteString("\nBased on this data and the provided context, provide detailed insights and actionable recommendations tailored to this group.")
	return title, b.String()
}

func membershipGrowthPrompt(period string, monthly []entities.MonthlyCount) (string, string) {
	label := periodLabel(period)
	title := "Predicted Membership Growth for " + label

	type cumulativePoint struct {
		Period string `json:"period"`
		Actual int    `json:"actual"`
	}
	cumulative := make([]cumulativePoint, 0, len(monthly))
	running := 0
	for _, month := range monthly {
		running += month.Count
		cumulative = append(cumulative, cumulativePoint{Period: month.Month, Actual: running})
	}

	horizon := 6
	switch period {
	case "next_3_months":
		horizon = 3
	case "next_year":
		horizon = 12
	}

	prompt := fmt.Sprintf(
		"Given the following historical cumulative membership growth data (YYYY-MM, total members), predict the total membership for the %d subsequent months. "+
			"Also, provide a summary of the predictions, key risk factors that could affect this growth, and actionable recommendations to achieve or exceed the predicted growth. "+
			"Return the data in a single JSON object with the keys title, chart_data (period/actual/predicted), summary (metric/value/description), "+
			"risk_factors (factor/impact), and recommendations (action/expected_impact).\n\n"+
			"Historical Data:\n%s",
		horizon, encode(cumulative))
	return title, prompt
}

func churnRiskPrompt(period string, total, completedProfiles int, snapshots []entities.MemberSnapshot) (string, string) {
	label := periodLabel(period)
	title := "Member Churn Risk Prediction for " + label

	type engagementRow struct {
		MemberID         string `json:"member_id"`
		Source           string `json:"source"`
		Verified         bool   `json:"verified"`
		ProfileCompleted bool   `json:"profile_completed"`
	}
	sample := snapshots
	if len(sample) > snapshotSampleLimit {
		sample = sample[:snapshotSampleLimit]
	}
	rows := make([]engagementRow, 0, len(sample))
	for _, snapshot := range sample {
		rows = append(rows, engagementRow{
			MemberID:         snapshot.MemberID,
			Source:           snapshot.Source,
			Verified:         snapshot.Verified,
			ProfileCompleted: snapshot.ProfileCompleted,
		})
	}

	prompt := fmt.Sprintf(
		"Analyze the provided member engagement sample and overall figures. "+
			"Predict key churn indicators and patterns for the %s. "+
			"Identify top risk factors for member churn and provide actionable recommendations to reduce churn. "+
			"Return the data in a single JSON object with the keys title, chart_data (period/actual/predicted), summary (metric/value/description), "+
			"risk_factors (factor/impact), and recommendations (action/expected_impact).\n\n"+
			"Data for analysis:\n%s",
		label, encode(map[string]any{
			"total_members":      total,
			"completed_profiles": completedProfiles,
			"member_sample":      rows,
		}))
	return title, prompt
}
