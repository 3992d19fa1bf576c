package salary

import (
	"math"

	"github.com/fortuna/aurum/internal/config"
)

// Adjust converts a nominal salary from one season's dollars into another's
// using annual compounding. A negative year difference deflates symmetrically;
// equal years return the input unchanged.
func Adjust(nominal float64, fromYear, toYear int, annualRate float64) float64 {
	return nominal * math.Pow(1+annualRate, float64(toYear-fromYear))
}

// AdjustSeason is Adjust over season labels like "2019-20".
func AdjustSeason(nominal float64, fromSeason, toSeason string, annualRate float64) (float64, error) {
	fromYear, err := config.SeasonStartYear(fromSeason)
	if err != nil {
		return 0, err
	}
	toYear, err := config.SeasonStartYear(toSeason)
	if err != nil {
		return 0, err
	}
	return Adjust(nominal, fromYear, toYear, annualRate), nil
}
