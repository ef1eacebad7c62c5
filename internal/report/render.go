package report

import (
	"bytes"
	"html/template"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// A Renderer turns a report into a document for mailing. The HTML
// renderer below is what the monthly cron uses; a PDF implementation
// would satisfy the same interface.
type Renderer interface {
	Render(r Report, userName string) (string, error)
}

var reportTemplate = template.Must(template.New("report").Parse(`<h2>Expense Report</h2>
<p>Generated on: {{.GeneratedOn}}<br>Name: {{.Name}}</p>
<p>Total Expenses: {{.TotalExpenses}}<br>Budget: {{.Budget}}<br>Remaining: {{.Remaining}}</p>
<h3>Category Breakdown</h3>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Category</th><th>Spent</th><th>Budget</th><th>Usage</th></tr>
{{range .Categories}}<tr><td>{{.Category}}</td><td>{{.Spent}}</td><td>{{.Budget}}</td><td>{{.Usage}}</td></tr>
{{end}}</table>
<h3>Transactions</h3>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Date</th><th>Category</th><th>Description</th><th>Amount</th></tr>
{{range .Transactions}}<tr><td>{{.Date}}</td><td>{{.Category}}</td><td>{{.Description}}</td><td>{{.Amount}}</td></tr>
{{end}}</table>
<h3>Recurring Expenses</h3>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Description</th><th>Amount</th><th>Frequency</th><th>Status</th></tr>
{{range .Recurring}}<tr><td>{{.Description}}</td><td>{{.Amount}}</td><td>{{.Frequency}}</td><td>{{.Status}}</td></tr>
{{end}}</table>`))

// HTMLRenderer renders a report as an HTML fragment suitable for
// embedding into the monthly report mail body.
type HTMLRenderer struct {
	printer *message.Printer
}

func NewHTMLRenderer() HTMLRenderer {
	return HTMLRenderer{
		printer: message.NewPrinter(language.English),
	}
}

func (h HTMLRenderer) Render(r Report, userName string) (string, error) {
	type categoryRow struct {
		Category string
		Spent    string
		Budget   string
		Usage    string
	}
	type transactionRow struct {
		Date        string
		Category    string
		Description string
		Amount      string
	}
	type recurringRow struct {
		Description string
		Amount      string
		Frequency   string
		Status      string
	}

	data := struct {
		GeneratedOn   string
		Name          string
		TotalExpenses string
		Budget        string
		Remaining     string
		Categories    []categoryRow
		Transactions  []transactionRow
		Recurring     []recurringRow
	}{
		GeneratedOn:   r.Summary.GeneratedOn,
		Name:          userName,
		TotalExpenses: h.amount(r.Summary.TotalExpenses),
		Budget:        h.amount(r.Summary.Budget),
		Remaining:     h.amount(r.Summary.Remaining),
	}

	for _, c := range r.CategoryBreakdown {
		data.Categories = append(data.Categories, categoryRow{
			Category: string(c.Category),
			Spent:    h.amount(c.Spent),
			Budget:   h.amount(c.Budget),
			Usage:    c.Usage,
		})
	}

	for _, t := range r.Transactions {
		data.Transactions = append(data.Transactions, transactionRow{
			Date:        t.Date,
			Category:    string(t.Category),
			Description: t.Description,
			Amount:      h.amount(t.Amount),
		})
	}

	for _, rec := range r.RecurringExpenses {
		data.Recurring = append(data.Recurring, recurringRow{
			Description: rec.Description,
			Amount:      h.amount(rec.Amount),
			Frequency:   rec.Frequency,
			Status:      rec.Status,
		})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// amount formats a decimal with grouping separators and two decimal
// places.
func (h HTMLRenderer) amount(d decimal.Decimal) string {
	f, _ := d.Float64()
	return h.printer.Sprintf("%.2f", f)
}
