package services

import (
	"reflect"
	"testing"

	"foreclosure-scraper/models"
	"foreclosure-scraper/utils"
)

const sampleDetailPage = `
<html><body>
<table class="table table-striped">
	<tr>
		<td class="heading-bold columnwidth-15">Sheriff #:</td>
		<td>12-3456</td>
	</tr>
	<tr>
		<td class="heading-bold columnwidth-15">Court Case #:</td>
		<td>F-001234-24</td>
	</tr>
	<tr>
		<td class="heading-bold columnwidth-15">Address</td>
		<td>1 Main St</td>
	</tr>
	<tr>
		<td class="heading-bold columnwidth-15">Judgment:</td>
		<td>$310,000.25</td>
	</tr>
	<tr>
		<td>orphan value cell without heading</td>
	</tr>
</table>
<table id="longTable">
	<tr><th>Status</th></tr>
	<tr><td>Active</td><td>2024-01-01</td></tr>
	<tr><td>Sold</td><td>2024-02-01</td></tr>
	<tr><td>only one cell</td></tr>
</table>
</body></html>`

func TestParserDetailsTable(t *testing.T) {
	p := NewParser(utils.NewLogger())

	details, _, err := p.Parse(sampleDetailPage)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := map[string]string{
		"Sheriff #":    "12-3456",
		"Court Case #": "F-001234-24",
		"Address":      "1 Main St",
		"Judgment":     "$310,000.25",
	}
	if !reflect.DeepEqual(details, want) {
		t.Errorf("details: got %v, want %v", details, want)
	}
}

func TestParserStatusHistoryOrder(t *testing.T) {
	p := NewParser(utils.NewLogger())

	_, history, err := p.Parse(sampleDetailPage)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []models.StatusEntry{
		{Status: "Active", Date: "2024-01-01"},
		{Status: "Sold", Date: "2024-02-01"},
	}
	if !reflect.DeepEqual(history, want) {
		t.Errorf("history: got %v, want %v", history, want)
	}
}

func TestParserIdempotence(t *testing.T) {
	p := NewParser(utils.NewLogger())

	d1, h1, err := p.Parse(sampleDetailPage)
	if err != nil {
		t.Fatalf("first Parse: %v", err)
	}
	d2, h2, err := p.Parse(sampleDetailPage)
	if err != nil {
		t.Fatalf("second Parse: %v", err)
	}

	if !reflect.DeepEqual(d1, d2) {
		t.Error("details differ between identical parses")
	}
	if !reflect.DeepEqual(h1, h2) {
		t.Error("history differs between identical parses")
	}
}

func TestParserMissingDetailsTable(t *testing.T) {
	p := NewParser(utils.NewLogger())

	details, history, err := p.Parse(`<html><body><p>no tables here</p></body></html>`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(details) != 0 {
		t.Errorf("expected empty details, got %v", details)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %v", history)
	}
}

func TestParserRowWithoutValueCellSkipped(t *testing.T) {
	p := NewParser(utils.NewLogger())

	html := `<html><body><table class="table-striped">
		<tr><td class="heading-bold columnwidth-15">Attorney:</td><td class="other">styled value</td></tr>
	</table></body></html>`

	details, _, err := p.Parse(html)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(details) != 0 {
		t.Errorf("row without a class-less value cell should contribute nothing, got %v", details)
	}
}
