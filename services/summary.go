package services

import (
	"fmt"
	"strings"

	"foreclosure-scraper/models"
	"foreclosure-scraper/utils"
)

// SummaryService builds the end-of-run report over successfully processed
// records.
type SummaryService struct {
	money  *utils.MoneyParser
	logger *utils.Logger
}

// NewSummaryService creates a SummaryService with the given logger.
func NewSummaryService(logger *utils.Logger) *SummaryService {
	return &SummaryService{money: utils.NewMoneyParser(logger), logger: logger}
}

// Generate aggregates the run counters and judgment-amount statistics.
// records holds only the listings that made it through parse and upsert.
func (s *SummaryService) Generate(records []*models.PropertyRecord, created, updated, failed int) *models.RunReport {
	report := &models.RunReport{
		Processed: len(records),
		Failed:    failed,
		Created:   created,
		Updated:   updated,
	}

	for _, r := range records {
		judgment, ok := s.money.Parse(r.Details[models.FieldJudgmentAmount])
		if !ok || judgment <= 0 {
			continue
		}
		report.WithJudgment++
		report.TotalJudgment += judgment
		if judgment > report.MaxJudgment {
			report.MaxJudgment = judgment
			report.MaxJudgmentKey = r.SheriffNumber()
		}
	}

	if report.WithJudgment > 0 {
		report.AverageJudgment = round2(report.TotalJudgment / float64(report.WithJudgment))
		report.TotalJudgment = round2(report.TotalJudgment)
		report.MaxJudgment = round2(report.MaxJudgment)
	}

	return report
}

// Print writes the run report to stdout.
func (s *SummaryService) Print(r *models.RunReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  FORECLOSURE SCRAPE SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Run\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Successfully processed : \033[1m%d\033[0m\n", r.Processed)
	fmt.Printf("  Failed                 : \033[1m%d\033[0m\n", r.Failed)
	fmt.Printf("  Records created        : \033[1m%d\033[0m\n", r.Created)
	fmt.Printf("  Records updated        : \033[1m%d\033[0m\n", r.Updated)
	fmt.Println()

	fmt.Printf("\033[1;33m  Judgment Amounts\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.WithJudgment == 0 {
		fmt.Printf("  No judgment data available\n")
	} else {
		fmt.Printf("  Listings with judgment : \033[1m%d\033[0m\n", r.WithJudgment)
		fmt.Printf("  Total judgment         : \033[1;32m$%.2f\033[0m\n", r.TotalJudgment)
		fmt.Printf("  Average judgment       : \033[1;32m$%.2f\033[0m\n", r.AverageJudgment)
		fmt.Printf("  Largest judgment       : \033[1;31m$%.2f\033[0m (sheriff # %s)\n",
			r.MaxJudgment, r.MaxJudgmentKey)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
