package bls

import (
	"fmt"

	"github.com/JakeFAU/occupation-risk/internal/occupation"
)

// OEWS national, cross-industry series prefix: survey OE, unadjusted, area 0000000, industry 000000.
const oewsPrefix = "OEUN0000000000000"

// Employment projections series prefix.
const projectionsPrefix = "EPUEP"

// ConnectivitySeries is CPI-U, all items, U.S. city average: a series that always exists.
const ConnectivitySeries = "CUUR0000SA0"

// OEWS datatype codes.
const (
	MeasureEmployment = "01"
	MeasureMeanWage   = "03"
	MeasureMedianWage = "04"
)

// Projection measure codes.
const (
	MeasureBaseEmployment      = "01"
	MeasureProjectedEmployment = "02"
	MeasureNumericChange       = "03"
	MeasurePercentChange       = "04"
	MeasureAnnualOpenings      = "05"
)

// OEWSSeriesID builds the national OEWS series ID for a SOC code and datatype.
func OEWSSeriesID(code, measure string) (string, error) {
	digits, err := socDigits(code)
	if err != nil {
		return "", err
	}
	return oewsPrefix + digits + measure, nil
}

// ProjectionSeriesID builds the projections series ID for a SOC code and measure.
func ProjectionSeriesID(code, measure string) (string, error) {
	digits, err := socDigits(code)
	if err != nil {
		return "", err
	}
	return projectionsPrefix + digits + measure, nil
}

func socDigits(code string) (string, error) {
	normalized, err := occupation.NormalizeCode(code)
	if err != nil {
		return "", fmt.Errorf("series id: %w", err)
	}
	return occupation.DigitsOnly(normalized), nil
}
