package recognition

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseResult(t *testing.T) {
	r, err := ParseResult([]byte(`{"class":"Bayog Bamboo","confidence":0.92,"model_version":"v2","top_k":[1,2]}`))
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}

	if r.Class != "Bayog Bamboo" {
		t.Errorf("Expected class Bayog Bamboo, got %s", r.Class)
	}
	if r.Confidence == nil || *r.Confidence != 0.92 {
		t.Errorf("Expected confidence 0.92, got %v", r.Confidence)
	}
	wantExtra := map[string]any{"model_version": "v2", "top_k": []any{float64(1), float64(2)}}
	if !reflect.DeepEqual(r.Extra, wantExtra) {
		t.Errorf("Expected extra %v, got %v", wantExtra, r.Extra)
	}
}

func TestParseResultKeepsMistypedFieldsAsExtra(t *testing.T) {
	r, err := ParseResult([]byte(`{"class":7,"confidence":"high","label":"Moso Bamboo","score":null}`))
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}

	if r.Class != "" || r.Confidence != nil || r.Score != nil {
		t.Errorf("Expected mistyped and null fields to stay unset, got %+v", r)
	}
	if r.Label != "Moso Bamboo" {
		t.Errorf("Expected label Moso Bamboo, got %s", r.Label)
	}
	if r.Extra["class"] != float64(7) || r.Extra["confidence"] != "high" {
		t.Errorf("Expected mistyped fields in extra, got %v", r.Extra)
	}
	if _, ok := r.Extra["score"]; ok {
		t.Error("Expected null score to be dropped")
	}
}

func TestParseResultRejectsNonObjects(t *testing.T) {
	for _, input := range []string{`not json`, `[1,2,3]`, `null`, `"text"`, `{"class":"A"} trailing`} {
		if _, err := ParseResult([]byte(input)); err == nil {
			t.Errorf("Expected error for %s, got nil", input)
		}
	}
}

func TestResultMarshalJSON(t *testing.T) {
	input := `{"class":"Bayog Bamboo","confidence":0.92,"error":"partial","extra_info":"yes"}`
	r, err := ParseResult([]byte(input))
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got, want map[string]any
	json.Unmarshal(data, &got)
	json.Unmarshal([]byte(input), &want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		name     string
		result   *Result
		expected string
	}{
		{name: "class wins", result: &Result{Class: "A", PredictedClass: "B", Label: "C"}, expected: "A"},
		{name: "predicted_class before label", result: &Result{PredictedClass: "B", Label: "C"}, expected: "B"},
		{name: "label last", result: &Result{Label: "C"}, expected: "C"},
		{name: "none", result: &Result{}, expected: UnknownLabel},
		{name: "nil result", result: nil, expected: UnknownLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.DisplayLabel(); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestDisplayConfidence(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name     string
		result   *Result
		expected float64
		ok       bool
	}{
		{name: "confidence wins", result: &Result{Confidence: f(0.9), Probability: f(0.5), Score: f(0.1)}, expected: 0.9, ok: true},
		{name: "zero confidence is present", result: &Result{Confidence: f(0), Score: f(0.4)}, expected: 0, ok: true},
		{name: "probability", result: &Result{Probability: f(0.5), Score: f(0.1)}, expected: 0.5, ok: true},
		{name: "score", result: &Result{Score: f(0.1)}, expected: 0.1, ok: true},
		{name: "none", result: &Result{}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.result.DisplayConfidence()
			if ok != tt.ok || got != tt.expected {
				t.Errorf("Expected (%v, %v), got (%v, %v)", tt.expected, tt.ok, got, ok)
			}
		})
	}
}

func TestFormatConfidence(t *testing.T) {
	tests := map[float64]string{
		0.92:   "92.0%",
		1:      "100.0%",
		0:      "0.0%",
		0.1234: "12.3%",
	}
	for input, expected := range tests {
		if got := FormatConfidence(input); got != expected {
			t.Errorf("FormatConfidence(%v): expected %s, got %s", input, expected, got)
		}
	}
}

func TestExtraFields(t *testing.T) {
	r, err := ParseResult([]byte(`{"class":"A","processing_time_ms":120,"top_predictions":{"A":0.9},"is_bamboo":true,"note":null}`))
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}

	expected := []Field{
		{Label: "is bamboo", Value: "true"},
		{Label: "note", Value: "null"},
		{Label: "processing time ms", Value: "120"},
		{Label: "top predictions", Value: `{"A":0.9}`},
	}
	if got := r.ExtraFields(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestClone(t *testing.T) {
	c := 0.5
	r := &Result{Class: "A", Confidence: &c, Extra: map[string]any{"k": "v"}}

	cp := r.Clone()
	*cp.Confidence = 0.9
	cp.Extra["k"] = "changed"

	if *r.Confidence != 0.5 || r.Extra["k"] != "v" {
		t.Errorf("Expected original to be unaffected, got %+v", r)
	}
	if (*Result)(nil).Clone() != nil {
		t.Error("Expected nil clone of nil result")
	}
}
