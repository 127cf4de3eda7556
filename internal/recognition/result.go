package recognition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// UnknownLabel is shown when a result carries none of the label fields
const UnknownLabel = "Unknown"

// Result is the prediction returned by the classification endpoint.
// Recognized fields are typed; anything else the server sends is kept in Extra.
type Result struct {
	Class          string
	PredictedClass string
	Label          string

	Confidence  *float64
	Probability *float64
	Score       *float64

	Error string

	// Extra holds every other top-level key, decoded with encoding/json defaults
	Extra map[string]any
}

// Field is one generic label/value row for display
type Field struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// ParseResult decodes a JSON object into a Result without validating its schema
func ParseResult(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// UnmarshalJSON keeps a recognized key in Extra when its value has an
// unexpected type, so odd server payloads never fail the decode.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("expected a JSON object, got %s", bytes.TrimSpace(data))
	}

	*r = Result{}
	strFields := map[string]*string{
		"class":           &r.Class,
		"predicted_class": &r.PredictedClass,
		"label":           &r.Label,
		"error":           &r.Error,
	}
	numFields := map[string]**float64{
		"confidence":  &r.Confidence,
		"probability": &r.Probability,
		"score":       &r.Score,
	}

	for key, value := range raw {
		strDst, isStr := strFields[key]
		numDst, isNum := numFields[key]
		if (isStr || isNum) && isNull(value) {
			continue
		}
		if isStr && json.Unmarshal(value, strDst) == nil {
			continue
		}
		if isNum {
			var f float64
			if json.Unmarshal(value, &f) == nil {
				*numDst = &f
				continue
			}
		}

		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("failed to decode field %q: %w", key, err)
		}
		if r.Extra == nil {
			r.Extra = make(map[string]any)
		}
		r.Extra[key] = v
	}

	return nil
}

// MarshalJSON writes the typed fields under their wire names merged with Extra
func (r Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+4)
	maps.Copy(out, r.Extra)

	setString := func(key, v string) {
		if v != "" {
			out[key] = v
		}
	}
	setNumber := func(key string, v *float64) {
		if v != nil {
			out[key] = *v
		}
	}

	setString("class", r.Class)
	setString("predicted_class", r.PredictedClass)
	setString("label", r.Label)
	setString("error", r.Error)
	setNumber("confidence", r.Confidence)
	setNumber("probability", r.Probability)
	setNumber("score", r.Score)

	return json.Marshal(out)
}

// Failed reports whether the result carries an error message
func (r *Result) Failed() bool {
	return r != nil && r.Error != ""
}

// DisplayLabel returns the first non-empty of class, predicted_class and
// label, or UnknownLabel.
func (r *Result) DisplayLabel() string {
	if r == nil {
		return UnknownLabel
	}
	for _, v := range []string{r.Class, r.PredictedClass, r.Label} {
		if v != "" {
			return v
		}
	}
	return UnknownLabel
}

// DisplayConfidence returns the first present of confidence, probability and
// score. ok is false when none is present.
func (r *Result) DisplayConfidence() (c float64, ok bool) {
	if r == nil {
		return 0, false
	}
	for _, v := range []*float64{r.Confidence, r.Probability, r.Score} {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

// FormatConfidence renders a 0..1 confidence as a percentage, e.g. 92.0%
func FormatConfidence(c float64) string {
	return strconv.FormatFloat(c*100, 'f', 1, 64) + "%"
}

// ExtraFields returns the passthrough fields sorted by key, with underscores
// in keys replaced by spaces.
func (r *Result) ExtraFields() []Field {
	if r == nil {
		return nil
	}
	keys := slices.Sorted(maps.Keys(r.Extra))
	fields := make([]Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, Field{
			Label: strings.ReplaceAll(k, "_", " "),
			Value: formatValue(r.Extra[k]),
		})
	}
	return fields
}

// Clone returns a deep copy of the typed fields and a shallow copy of Extra
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	c := *r
	c.Confidence = clonePtr(r.Confidence)
	c.Probability = clonePtr(r.Probability)
	c.Score = clonePtr(r.Score)
	c.Extra = maps.Clone(r.Extra)
	return &c
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
