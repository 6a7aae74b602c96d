package services

import (
	"drink-shop/models"

	"github.com/shopspring/decimal"
)

// Aggregate groups cart entries by name. Lines are ordered by first appearance in the
// cart and use the unit price of the first entry with that name.
func Aggregate(entries []models.MenuItem) []models.AggregatedLine {
	index := make(map[string]int, len(entries))
	var lines []models.AggregatedLine
	for _, it := range entries {
		i, ok := index[it.Name]
		if !ok {
			index[it.Name] = len(lines)
			lines = append(lines, models.AggregatedLine{Name: it.Name, UnitPrice: it.Price})
			i = len(lines) - 1
		}
		lines[i].Count++
	}
	for i := range lines {
		lines[i].LineTotal = lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(lines[i].Count)))
	}
	return lines
}

// LinesTotal sums the line totals.
func LinesTotal(lines []models.AggregatedLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}
	return total
}
