package services

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"wine-analysis/models"
)

var (
	headingColor = color.New(color.FgMagenta, color.Bold)
	sectionColor = color.New(color.FgYellow, color.Bold)
)

// Reporter prints the key statistics as console tables.
type Reporter struct {
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Print writes the three statistics blocks in fixed order.
func (p *Reporter) Print(r *models.Report) {
	headingColor.Fprintln(p.out, "\nKey Statistics:")

	sectionColor.Fprintln(p.out, "\n1. Average Ticket Value by Place:")
	p.printAvgByPlace(r.AvgTicketByPlace)

	sectionColor.Fprintln(p.out, "\n2. Average Ticket Value by Product:")
	p.printAvgByProduct(r.AvgTicketByProduct)

	sectionColor.Fprintln(p.out, "\n3. Payment Mode Percentages by Age Group:")
	p.printPercentages(r.PaymentShareByAge)
}

func (p *Reporter) newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(p.out)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return table
}

func (p *Reporter) printAvgByPlace(stats []models.GroupStat) {
	table := p.newTable([]string{string(models.ColPlace), string(models.ColTicket)})
	for _, s := range stats {
		table.Append([]string{s.Label, fmt.Sprintf("%.2f", s.Mean)})
	}
	table.Render()
}

func (p *Reporter) printAvgByProduct(stats []models.GroupStat) {
	table := p.newTable([]string{string(models.ColAdditionalProducts), "mean", "count"})
	for _, s := range stats {
		table.Append([]string{s.Label, fmt.Sprintf("%.2f", s.Mean), strconv.Itoa(s.Count)})
	}
	table.Render()
}

func (p *Reporter) printPercentages(pct *models.Percentages) {
	header := append([]string{string(models.ColAge)}, pct.Cols...)
	table := p.newTable(header)
	for i, label := range pct.Rows {
		row := make([]string, 0, len(header))
		row = append(row, label)
		for _, v := range pct.Values[i] {
			row = append(row, fmt.Sprintf("%.1f", v))
		}
		table.Append(row)
	}
	table.Render()
}
