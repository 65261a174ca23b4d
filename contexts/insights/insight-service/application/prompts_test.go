package application

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"shepherd/contexts/insights/insight-service/domain/entities"
)

func TestAgeGroupBuckets(t *testing.T) {
	cases := []struct {
		age  int
		want string
	}{
		{5, "Under 18"},
		{17, "Under 18"},
		{18, "18-24"},
		{24, "18-24"},
		{25, "25-34"},
		{34, "25-34"},
		{35, "35-44"},
		{45, "45-54"},
		{55, "55-64"},
		{64, "55-64"},
		{65, "65+"},
		{90, "65+"},
	}
	for _, tc := range cases {
		if got := AgeGroup(tc.age); got != tc.want {
			t.Fatalf("AgeGroup(%d) = %q, want %q", tc.age, got, tc.want)
		}
	}
}

func TestPeriodLabel(t *testing.T) {
	cases := []struct {
		period string
		want   string
	}{
		{"last_30_days", "Last 30 Days"},
		{"next_6_months", "Next 6 Months"},
		{"next_year", "Next Year"},
		{"all_time", "All Time"},
	}
	for _, tc := range cases {
		if got := periodLabel(tc.period); got != tc.want {
			t.Fatalf("periodLabel(%q) = %q, want %q", tc.period, got, tc.want)
		}
	}
}

func TestDistributionsSkipsZeroDateOfBirth(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	snapshots := []entities.MemberSnapshot{
		{MemberID: "m1", Gender: "female", Source: "Mobile", Verified: true,
			DateOfBirth: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)},
		{MemberID: "m2", Gender: "male", Source: "Web"},
	}

	gender, source, ageGroups, verified := distributions(snapshots, now)
	if gender["female"] != 1 || gender["male"] != 1 {
		t.Fatalf("unexpected gender distribution %v", gender)
	}
	if source["Mobile"] != 1 || source["Web"] != 1 {
		t.Fatalf("unexpected source distribution %v", source)
	}
	if verified != 1 {
		t.Fatalf("verified = %d, want 1", verified)
	}
	// m2 has no date of birth and must not land in a bucket.
	if len(ageGroups) != 1 || ageGroups["35-44"] != 1 {
		t.Fatalf("unexpected age groups %v", ageGroups)
	}
}

func TestCustomAnalysisPromptSamplesAtFifty(t *testing.T) {
	snapshots := make([]entities.MemberSnapshot, 60)
	for i := range snapshots {
		snapshots[i] = entities.MemberSnapshot{
			MemberID:    fmt.Sprintf("m%02d", i),
			Gender:      "male",
			Source:      "Web",
			DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		}
	}
	_, prompt := customAnalysisPrompt("last_30_days", "", "", snapshots)

	if rows := strings.Count(prompt, "- Member ID:"); rows != snapshotSampleLimit {
		t.Fatalf("expected %d sample rows, got %d", snapshotSampleLimit, rows)
	}
}
