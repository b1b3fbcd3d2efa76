package calculator

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Veraticus/askarray/internal/model"
)

// DefaultBandTitles are the six monetary bands shown on every ask sheet.
var DefaultBandTitles = []string{
	"$0-$1000",
	"$1000-$5000",
	"$5000-$10000",
	"$10000-$20000",
	"$20000-$25000",
	"$25000-$50000",
}

var digitRuns = regexp.MustCompile(`\d+`)

// ParseBand extracts the bounds from a title such as "$1000-$5000".
// The first digit run is the lower bound and the second the upper bound;
// anything after the second run is ignored.
func ParseBand(title string) (model.MonetaryBand, error) {
	runs := digitRuns.FindAllString(title, -1)
	if len(runs) < 2 {
		return model.MonetaryBand{}, &ParseError{
			Title:  title,
			Reason: fmt.Sprintf("found %d numeric bounds, need 2", len(runs)),
		}
	}

	lower, err := strconv.ParseInt(runs[0], 10, 64)
	if err != nil {
		return model.MonetaryBand{}, &ParseError{Title: title, Reason: "lower bound out of range"}
	}
	upper, err := strconv.ParseInt(runs[1], 10, 64)
	if err != nil {
		return model.MonetaryBand{}, &ParseError{Title: title, Reason: "upper bound out of range"}
	}
	if lower >= upper {
		return model.MonetaryBand{}, &ParseError{
			Title:  title,
			Reason: fmt.Sprintf("lower bound %d is not below upper bound %d", lower, upper),
		}
	}

	return model.MonetaryBand{Title: title, LowerBound: lower, UpperBound: upper}, nil
}

// ParseBands parses every title in order and fails on the first malformed one.
func ParseBands(titles []string) ([]model.MonetaryBand, error) {
	bands := make([]model.MonetaryBand, 0, len(titles))
	for _, title := range titles {
		band, err := ParseBand(title)
		if err != nil {
			return nil, err
		}
		bands = append(bands, band)
	}
	return bands, nil
}

// DefaultBands returns the parsed default bands.
func DefaultBands() []model.MonetaryBand {
	bands, err := ParseBands(DefaultBandTitles)
	if err != nil {
		panic(err)
	}
	return bands
}
