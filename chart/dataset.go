package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Series is one named sequence of values plotted as bars.
type Series struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
}

// Dataset is the payload carried by the data-chart attribute.
type Dataset struct {
	Labels   []string `json:"labels,omitempty"`
	Datasets []Series `json:"datasets"`
}

// MaxSeries is the number of series a bar chart dataset may carry.
const MaxSeries = 2

// ParseError reports a data-chart payload that is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse dataset: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ShapeError reports valid JSON that does not have the dataset shape.
type ShapeError struct {
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid dataset: %s: %s", e.Field, e.Reason)
}

// ErrEmptySeries is returned when the plotted series contain no values.
var ErrEmptySeries = errors.New("dataset series contain no values")

// wire types keep track of which fields were present at all
type rawSeries struct {
	Label           string     `json:"label"`
	Data            *[]float64 `json:"data"`
	BackgroundColor string     `json:"backgroundColor"`
}

type rawDataset struct {
	Labels   []string     `json:"labels"`
	Datasets *[]rawSeries `json:"datasets"`
}

func ParseDataset(raw string) (Dataset, error) {
	var rd rawDataset
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&rd); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "(root)"
			}
			return Dataset{}, &ShapeError{Field: field, Reason: "expected " + typeErr.Type.String() + ", got " + typeErr.Value}
		}
		return Dataset{}, &ParseError{Err: err}
	}
	if dec.More() {
		return Dataset{}, &ParseError{Err: errors.New("unexpected data after top-level value")}
	}

	if rd.Datasets == nil {
		return Dataset{}, &ShapeError{Field: "datasets", Reason: "missing"}
	}
	series := *rd.Datasets
	if len(series) == 0 {
		return Dataset{}, &ShapeError{Field: "datasets", Reason: "at least one series is required"}
	}
	if len(series) > MaxSeries {
		return Dataset{}, &ShapeError{
			Field:  "datasets",
			Reason: fmt.Sprintf("at most %d series are supported, got %d", MaxSeries, len(series)),
		}
	}

	ds := Dataset{Labels: rd.Labels}
	for i, s := range series {
		if s.Data == nil {
			return Dataset{}, &ShapeError{Field: fmt.Sprintf("datasets[%d].data", i), Reason: "missing"}
		}
		ds.Datasets = append(ds.Datasets, Series{
			Label:           s.Label,
			Data:            *s.Data,
			BackgroundColor: s.BackgroundColor,
		})
	}
	return ds, nil
}

// Encode returns the JSON form of the dataset, as embedded in the page.
func (d Dataset) Encode() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode dataset: %w", err)
	}
	return string(b), nil
}

// Values returns the first series followed by the second, if any.
func (d Dataset) Values() []float64 {
	var values []float64
	if len(d.Datasets) > 0 {
		values = append(values, d.Datasets[0].Data...)
	}
	if len(d.Datasets) > 1 {
		values = append(values, d.Datasets[1].Data...)
	}
	return values
}
