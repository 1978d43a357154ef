package chart

import (
	"fmt"

	"github.com/GregMSThompson/covid-tracker/internal/errs"
)

// Metric selects which increase field is projected.
type Metric int

const (
	MetricPositive Metric = iota
	MetricNegative
	MetricDeath
)

func (m Metric) String() string {
	switch m {
	case MetricPositive:
		return "positive"
	case MetricNegative:
		return "negative"
	case MetricDeath:
		return "death"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// ParseMetric accepts "positive", "negative" or "death". Empty means positive.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "", "positive":
		return MetricPositive, nil
	case "negative":
		return MetricNegative, nil
	case "death":
		return MetricDeath, nil
	}
	return MetricPositive, errs.NewValidationError(`metric must be one of: positive, negative, death`)
}

// TimeScale selects the trailing window width.
type TimeScale int

const (
	TimeScaleMax TimeScale = iota
	TimeScaleWeek
	TimeScaleMonth
)

// Days is the window width in days, 0 for TimeScaleMax. It panics on an
// undefined TimeScale.
func (t TimeScale) Days() int {
	switch t {
	case TimeScaleMax:
		return 0
	case TimeScaleWeek:
		return 7
	case TimeScaleMonth:
		return 30
	default:
		panic(fmt.Sprintf("chart: unknown time scale %d", int(t)))
	}
}

func (t TimeScale) String() string {
	switch t {
	case TimeScaleMax:
		return "max"
	case TimeScaleWeek:
		return "week"
	case TimeScaleMonth:
		return "month"
	default:
		return fmt.Sprintf("TimeScale(%d)", int(t))
	}
}

// ParseTimeScale accepts "week", "month" or "max". Empty means max.
func ParseTimeScale(s string) (TimeScale, error) {
	switch s {
	case "", "max":
		return TimeScaleMax, nil
	case "week":
		return TimeScaleWeek, nil
	case "month":
		return TimeScaleMonth, nil
	}
	return TimeScaleMax, errs.NewValidationError(`window must be one of: week, month, max`)
}
