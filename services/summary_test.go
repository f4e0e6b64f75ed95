package services

import (
	"testing"

	"foreclosure-scraper/models"
	"foreclosure-scraper/utils"
)

func sampleRecords() []*models.PropertyRecord {
	return []*models.PropertyRecord{
		{Details: map[string]string{
			models.FieldSheriffNumber:  "12-0001",
			models.FieldJudgmentAmount: "$100,000.00",
		}},
		{Details: map[string]string{
			models.FieldSheriffNumber:  "12-0002",
			models.FieldJudgmentAmount: "$300,000.00",
		}},
		{Details: map[string]string{
			models.FieldSheriffNumber: "12-0003",
		}},
	}
}

func TestSummaryCounts(t *testing.T) {
	svc := NewSummaryService(utils.NewLogger())
	r := svc.Generate(sampleRecords(), 2, 1, 4)

	if r.Processed != 3 {
		t.Errorf("Processed: got %d, want 3", r.Processed)
	}
	if r.Failed != 4 {
		t.Errorf("Failed: got %d, want 4", r.Failed)
	}
	if r.Created != 2 || r.Updated != 1 {
		t.Errorf("Created/Updated: got %d/%d, want 2/1", r.Created, r.Updated)
	}
}

func TestSummaryJudgmentStats(t *testing.T) {
	svc := NewSummaryService(utils.NewLogger())
	r := svc.Generate(sampleRecords(), 3, 0, 0)

	if r.WithJudgment != 2 {
		t.Errorf("WithJudgment: got %d, want 2", r.WithJudgment)
	}
	if r.TotalJudgment != 400000 {
		t.Errorf("TotalJudgment: got %.2f, want 400000", r.TotalJudgment)
	}
	if r.AverageJudgment != 200000 {
		t.Errorf("AverageJudgment: got %.2f, want 200000", r.AverageJudgment)
	}
	if r.MaxJudgment != 300000 || r.MaxJudgmentKey != "12-0002" {
		t.Errorf("MaxJudgment: got %.2f (%s), want 300000 (12-0002)",
			r.MaxJudgment, r.MaxJudgmentKey)
	}
}

func TestSummaryEmptyInput(t *testing.T) {
	svc := NewSummaryService(utils.NewLogger())
	r := svc.Generate(nil, 0, 0, 0)

	if r.Processed != 0 || r.WithJudgment != 0 {
		t.Errorf("expected zeroed report for empty input, got %+v", r)
	}
}
