package demographics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	TimeframeMonth   = "month"
	TimeframeQuarter = "quarter"
	TimeframeYear    = "year"
	Timeframe5Year   = "5year"
)

// Selection is the Demographics filter bar state.
type Selection struct {
	Region    string `json:"region" form:"region" validate:"oneof=all midwest south west northeast"`
	Crop      string `json:"crop" form:"crop" validate:"oneof=all wheat corn soybean rice"`
	Timeframe string `json:"timeframe" form:"timeframe" validate:"oneof=month quarter year 5year"`
}

// DefaultSelection is the state the page opens with.
func DefaultSelection() Selection {
	return Selection{Region: "all", Crop: "all", Timeframe: TimeframeYear}
}

// WithDefaults fills empty fields from DefaultSelection.
func (s Selection) WithDefaults() Selection {
	d := DefaultSelection()
	if s.Region == "" {
		s.Region = d.Region
	}
	if s.Crop == "" {
		s.Crop = d.Crop
	}
	if s.Timeframe == "" {
		s.Timeframe = d.Timeframe
	}
	return s
}

var ErrInvalidSelection = errors.New("invalid selection")

var selectionValidator = validator.New()

// Validate rejects values outside the offered option lists.
func (s Selection) Validate() error {
	err := selectionValidator.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s must be one of: %s",
			strings.ToLower(fe.Field()), strings.ReplaceAll(fe.Param(), " ", ", ")))
	}
	return fmt.Errorf("%w: %s", ErrInvalidSelection, strings.Join(msgs, "; "))
}

// Option is a select-control entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SelectionOptions lists what each filter control offers.
type SelectionOptions struct {
	Regions    []Option `json:"regions"`
	Crops      []Option `json:"crops"`
	Timeframes []Option `json:"timeframes"`
}

func Options() SelectionOptions {
	return SelectionOptions{
		Regions: []Option{
			{"all", "All Regions"},
			{"midwest", "Midwest"},
			{"south", "South"},
			{"west", "West"},
			{"northeast", "Northeast"},
		},
		Crops: []Option{
			{"all", "All Crops"},
			{"wheat", "Wheat"},
			{"corn", "Corn"},
			{"soybean", "Soybean"},
			{"rice", "Rice"},
		},
		Timeframes: []Option{
			{TimeframeMonth, "Last Month"},
			{TimeframeQuarter, "Last Quarter"},
			{TimeframeYear, "Last Year"},
			{Timeframe5Year, "Last 5 Years"},
		},
	}
}
