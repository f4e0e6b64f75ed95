package models

// Field names as they appear in the detail-page headings on the sale site.
const (
	FieldSheriffNumber  = "Sheriff #"
	FieldCaseNumber     = "Court Case #"
	FieldAddress        = "Address"
	FieldSalesDate      = "Sales Date"
	FieldPlaintiff      = "Plaintiff"
	FieldDefendant      = "Defendant"
	FieldDescription    = "Description"
	FieldJudgmentAmount = "Judgment"
	FieldGoodFaithUpset = "Good Faith Upset*"
	FieldAttorney       = "Attorney"
	FieldAttorneyPhone  = "Attorney Phone"
)

// Column names in the hosted sales table.
const (
	ColSheriffNumber  = "Sheriff Number"
	ColCaseNumber     = "Case Number"
	ColAddress        = "Address"
	ColSalesDate      = "Sales Date"
	ColPlaintiff      = "Plaintiff"
	ColDefendant      = "Defendant"
	ColDescription    = "Description"
	ColJudgmentAmount = "Judgment Amount"
	ColGoodFaithUpset = "Good Faith Upset"
	ColAttorney       = "Attorney"
	ColAttorneyPhone  = "Attorney Phone"
	ColStatusHistory  = "Status History"
)

// StatusEntry is one row of a listing's status-history table, in the order
// the site publishes it.
type StatusEntry struct {
	Status string `yaml:"Status"`
	Date   string `yaml:"Date"`
}

// PropertyRecord holds everything parsed from one listing's detail page.
// Details is keyed by the site's heading text (see Field* constants); fields
// missing from the page are simply absent from the map.
type PropertyRecord struct {
	Details map[string]string
	History []StatusEntry
}

// SheriffNumber returns the listing's business key, or "" if the page
// didn't carry one.
func (r *PropertyRecord) SheriffNumber() string {
	return r.Details[FieldSheriffNumber]
}

// RunReport holds the counters and aggregates reported at the end of a run.
type RunReport struct {
	Processed int
	Failed    int
	Created   int
	Updated   int

	WithJudgment    int
	TotalJudgment   float64
	AverageJudgment float64
	MaxJudgment     float64
	MaxJudgmentKey  string
}
