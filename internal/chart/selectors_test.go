package chart

import (
	"errors"
	"testing"

	"github.com/GregMSThompson/covid-tracker/internal/errs"
)

func TestParseMetric(t *testing.T) {
	tests := map[string]Metric{
		"":         MetricPositive,
		"positive": MetricPositive,
		"negative": MetricNegative,
		"death":    MetricDeath,
	}
	for in, want := range tests {
		got, err := ParseMetric(in)
		if err != nil {
			t.Fatalf("ParseMetric(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseMetric(%q) = %v, want %v", in, got, want)
		}
		if in != "" && got.String() != in {
			t.Errorf("String() = %q, want %q", got.String(), in)
		}
	}

	_, err := ParseMetric("hospitalized")
	var vErr *errs.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestParseTimeScale(t *testing.T) {
	tests := map[string]struct {
		want TimeScale
		days int
	}{
		"":      {TimeScaleMax, 0},
		"max":   {TimeScaleMax, 0},
		"week":  {TimeScaleWeek, 7},
		"month": {TimeScaleMonth, 30},
	}
	for in, tt := range tests {
		got, err := ParseTimeScale(in)
		if err != nil {
			t.Fatalf("ParseTimeScale(%q) error: %v", in, err)
		}
		if got != tt.want || got.Days() != tt.days {
			t.Errorf("ParseTimeScale(%q) = %v (%d days), want %v (%d days)", in, got, got.Days(), tt.want, tt.days)
		}
	}

	_, err := ParseTimeScale("year")
	var vErr *errs.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUndefinedSelectors(t *testing.T) {
	if got := Metric(9).String(); got != "Metric(9)" {
		t.Errorf("Metric(9).String() = %q", got)
	}
	if got := TimeScale(4).String(); got != "TimeScale(4)" {
		t.Errorf("TimeScale(4).String() = %q", got)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected Days to panic on an undefined time scale")
		}
	}()
	TimeScale(4).Days()
}
