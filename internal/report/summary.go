package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"timetabling-UDP/internal/model"
)

// PrintSummary renders the shutdown console table (best value, unassigned
// count, per-criterion contribution), independent of whatever CSV files
// Config.Reports also wrote.
func PrintSummary(w io.Writer, m *model.Model, a model.Assignment, bestValue float64) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Criterion", "Weight", "Value", "Contribution"})

	for _, c := range m.Criteria {
		v := c.GetValue(a)
		w := c.GetWeight()
		table.Append([]string{c.Name(), fmt.Sprintf("%.2f", w), fmt.Sprintf("%.4f", v), fmt.Sprintf("%.4f", v*w)})
	}
	table.Render()

	fmt.Fprintf(w, "\nbest value: %.4f, unassigned: %d\n", bestValue, a.NrUnassigned())
}
