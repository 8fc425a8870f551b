package data

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"agri-market/internal/model"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidRecord = errors.New("invalid market record")
	ErrDuplicateID   = errors.New("duplicate market record id")
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// PrepareRecords validates a loaded collection and recomputes the derived
// change fields of every record. Any invalid record rejects the whole load;
// the returned slice is a fresh copy in input order.
func PrepareRecords(records []model.MarketRecord) ([]model.MarketRecord, error) {
	v := recordValidator()
	seen := make(map[string]int, len(records))
	out := make([]model.MarketRecord, 0, len(records))

	for i, r := range records {
		if err := v.Struct(r); err != nil {
			return nil, fmt.Errorf("%w: record %d: %s", ErrInvalidRecord, i, describeValidation(err))
		}
		if r.CurrentPrice.IsNegative() {
			return nil, fmt.Errorf("%w: record %d (%s): current_price must be >= 0", ErrInvalidRecord, i, r.ID)
		}
		if r.PreviousPrice.IsNegative() {
			return nil, fmt.Errorf("%w: record %d (%s): previous_price must be >= 0", ErrInvalidRecord, i, r.ID)
		}
		if first, ok := seen[r.ID]; ok {
			return nil, fmt.Errorf("%w: %q at records %d and %d", ErrDuplicateID, r.ID, first, i)
		}
		seen[r.ID] = i
		out = append(out, r.Derive())
	}
	return out, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, ", ")
}
