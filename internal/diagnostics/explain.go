package diagnostics

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/fortuna/aurum/internal/dataset"
	"github.com/fortuna/aurum/internal/residuals"
)

// ErrPlayerNotFound means a breakdown was requested for a player absent
// from the current-season residual set. Recoverable: report and continue,
// nothing already computed changes.
var ErrPlayerNotFound = errors.New("player not found in current season")

// Breakdown is the textual residual explanation for one player.
type Breakdown struct {
	Record residuals.ResidualRecord

	// Cohort statistics over historical rookies within the salary band.
	CohortSize      int
	CohortMean      float64
	CohortMedian    float64
	CohortMin       float64
	CohortMax       float64
	Percentile      float64
	TopPerformers   []dataset.ModelingRow
	CohortSinceYear int
}

// Explain builds a breakdown for the first record whose name contains the
// query, case-insensitively. The historical table supplies salary-band
// context.
func Explain(query string, records []residuals.ResidualRecord, historical []dataset.ModelingRow, bandPct float64, sinceYear int) (*Breakdown, error) {
	var rec *residuals.ResidualRecord
	for i := range records {
		if strings.Contains(strings.ToLower(records[i].PlayerName), strings.ToLower(query)) {
			rec = &records[i]
			break
		}
	}
	if rec == nil {
		return nil, fmt.Errorf("%q: %w", query, ErrPlayerNotFound)
	}

	b := &Breakdown{
		Record:          *rec,
		CohortSinceYear: sinceYear,
	}

	cohort := residuals.Cohort(historical, rec.Salary, bandPct)
	b.CohortSize = len(cohort)
	b.Percentile = residuals.Percentile(cohort, rec.Actual)

	if len(cohort) > 0 {
		production := make([]float64, len(cohort))
		for i, row := range cohort {
			production[i] = row.Production
		}
		sort.Float64s(production)

		b.CohortMean = stat.Mean(production, nil)
		b.CohortMedian = stat.Quantile(0.5, stat.Empirical, production, nil)
		b.CohortMin = production[0]
		b.CohortMax = production[len(production)-1]

		byProduction := make([]dataset.ModelingRow, len(cohort))
		copy(byProduction, cohort)
		sort.Slice(byProduction, func(i, j int) bool {
			return byProduction[i].Production > byProduction[j].Production
		})
		if len(byProduction) > 5 {
			byProduction = byProduction[:5]
		}
		b.TopPerformers = byProduction
	}

	return b, nil
}

// Format renders the breakdown for the terminal.
func (b *Breakdown) Format() string {
	rec := b.Record
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", rec.PlayerName)
	fmt.Fprintf(&sb, "Team: %s\n", rec.TeamAbbreviation)
	fmt.Fprintf(&sb, "Draft Pick: #%d\n", rec.Pick)

	fmt.Fprintf(&sb, "\n  Stats:\n")
	fmt.Fprintf(&sb, "  Games Played: %d\n", rec.GamesPlayed)
	fmt.Fprintf(&sb, "  Total Minutes: %.0f\n", rec.Minutes)
	fmt.Fprintf(&sb, "  Player Impact Estimate (PIE): %.3f\n", rec.PIE)

	fmt.Fprintf(&sb, "\n  Contract:\n")
	fmt.Fprintf(&sb, "  4-Year Avg. Salary: $%.0f\n", rec.Salary)

	fmt.Fprintf(&sb, "\n  Production Analysis:\n")
	fmt.Fprintf(&sb, "  Actual Production: %.1f (PIE %.3f × Minutes %.0f)\n", rec.Actual, rec.PIE, rec.Minutes)
	fmt.Fprintf(&sb, "  Expected Production: %.1f (historical rookies at $%.0f)\n", rec.Predicted, rec.Salary)

	fmt.Fprintf(&sb, "\n  Residual Value: %+.1f\n", rec.Residual)
	if rec.Residual > 0 {
		fmt.Fprintf(&sb, "  SURPLUS: producing %.1f units more than expected at this salary\n", rec.Residual)
	} else {
		fmt.Fprintf(&sb, "  DEFICIT: producing %.1f units less than expected at this salary\n", -rec.Residual)
	}
	fmt.Fprintf(&sb, "  %s\n", pickExpectation(rec.Pick))

	if b.CohortSize > 0 {
		fmt.Fprintf(&sb, "\n  Historical Rookies at Similar Salary:\n")
		fmt.Fprintf(&sb, "  %d rookies around $%.0f\n", b.CohortSize, rec.Salary)
		fmt.Fprintf(&sb, "    Average: %.1f  Median: %.1f  Range: %.1f - %.1f\n",
			b.CohortMean, b.CohortMedian, b.CohortMin, b.CohortMax)

		fmt.Fprintf(&sb, "  Top performers at this salary:\n")
		for _, row := range b.TopPerformers {
			fmt.Fprintf(&sb, "    %-22s (%s) - %.1f\n", row.PlayerName, row.Season, row.Production)
		}

		fmt.Fprintf(&sb, "  %s ranks in the %.0fth percentile of historical rookies at this salary since %d\n",
			rec.PlayerName, b.Percentile, b.CohortSinceYear)
	}

	fmt.Fprintf(&sb, "\n  The residual reflects contract value, not absolute skill:\n")
	fmt.Fprintf(&sb, "  negative means the contract is expensive relative to production,\n")
	fmt.Fprintf(&sb, "  positive means production exceeds what the contract predicts.\n")

	return sb.String()
}

// pickExpectation summarizes how hard the contract bar is at a pick slot.
func pickExpectation(pick int) string {
	switch {
	case pick <= 3:
		return "Top-3 picks face extremely high expectations; even strong rookie seasons can show deficits."
	case pick <= 10:
		return "Lottery pick expectations are very high; expected to contribute immediately."
	case pick <= 30:
		return "First-round pick expectations are moderate."
	default:
		return "Second-round picks have low expectations; surplus value comes easy at this price."
	}
}
