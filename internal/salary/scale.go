package salary

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Scale maps a draft pick (1-60) to its 4-year-average rookie-scale salary
// in nominal dollars. Loaded once at startup and treated as immutable.
type Scale map[int]float64

// Lookup returns the nominal salary for a pick.
func (s Scale) Lookup(pick int) (float64, bool) {
	salary, ok := s[pick]
	return salary, ok
}

// Picks returns the picks present in the scale, ascending.
func (s Scale) Picks() []int {
	picks := make([]int, 0, len(s))
	for pick := range s {
		picks = append(picks, pick)
	}
	sort.Ints(picks)
	return picks
}

// LoadScale reads the rookie-scale salary table from dataDir, preferring a
// season-specific file (rookie_scale_2025-26.csv) over the generic
// rookie_scale.csv.
//
// Two layouts are accepted:
//
//	pick,salary_year1,salary_year2,salary_year3,salary_year4
//	pick,salary
//
// With the four-year layout the salary is the mean of the four years.
// Year 4 is zero for second-round picks and deliberately stays in the
// average.
func LoadScale(dataDir, season string) (Scale, error) {
	seasonFile := filepath.Join(dataDir, fmt.Sprintf("rookie_scale_%s.csv", season))
	genericFile := filepath.Join(dataDir, "rookie_scale.csv")

	path := seasonFile
	if _, err := os.Stat(path); err != nil {
		path = genericFile
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rookie scale file: %w", err)
	}
	defer f.Close()

	return parseScaleCSV(f)
}

func parseScaleCSV(f *os.File) (Scale, error) {
	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rookie scale csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("rookie scale csv %s has no data rows", f.Name())
	}

	header := records[0]
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	pickCol, ok := cols["pick"]
	if !ok {
		return nil, fmt.Errorf("rookie scale csv missing 'pick' column")
	}

	yearCols := make([]int, 0, 4)
	for _, name := range []string{"salary_year1", "salary_year2", "salary_year3", "salary_year4"} {
		if i, ok := cols[name]; ok {
			yearCols = append(yearCols, i)
		}
	}
	salaryCol, hasSalary := cols["salary"]

	if len(yearCols) != 4 && !hasSalary {
		return nil, fmt.Errorf("rookie scale csv needs a 'salary' column or all of 'salary_year1'..'salary_year4'")
	}

	scale := make(Scale, len(records)-1)
	for _, row := range records[1:] {
		pick, err := strconv.Atoi(row[pickCol])
		if err != nil {
			return nil, fmt.Errorf("invalid pick %q: %w", row[pickCol], err)
		}

		var salary float64
		if len(yearCols) == 4 {
			for _, col := range yearCols {
				v, err := strconv.ParseFloat(row[col], 64)
				if err != nil {
					return nil, fmt.Errorf("invalid salary for pick %d: %w", pick, err)
				}
				salary += v
			}
			salary /= 4
		} else {
			salary, err = strconv.ParseFloat(row[salaryCol], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid salary for pick %d: %w", pick, err)
			}
		}

		scale[pick] = salary
	}

	return scale, nil
}
