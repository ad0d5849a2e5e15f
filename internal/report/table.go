// Package report renders analysis reports for the terminal. The core hands
// over exact integer cents; all formatting decisions live here.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/BadPackage/receipt-analyzer/internal/analysis"
)

// FormatCents renders an exact cent amount with a currency symbol, e.g.
// "€3.99". No floating point is involved.
func FormatCents(cents int64, symbol string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, cents/100, cents%100)
}

// Render writes the aggregated report as a bordered table followed by a
// grand total row and a unique-product count, mirroring what the tool has
// always printed.
func Render(w io.Writer, rep analysis.Report, symbol string) {
	if len(rep.Products) == 0 {
		fmt.Fprintln(w, "No products found in receipt images.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Product Name", "Qty", "Total Price"})
	for _, p := range rep.Products {
		table.Append([]string{
			p.Name,
			strconv.Itoa(p.Count),
			FormatCents(p.TotalCents, symbol),
		})
	}
	table.SetFooter([]string{"TOTAL", "", FormatCents(rep.GrandTotalCents, symbol)})
	table.Render()

	fmt.Fprintf(w, "\nFound %d unique products across %d receipts\n", rep.UniqueProducts, rep.Receipts)
}
