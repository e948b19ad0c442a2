package api

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseArray(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     []float64
		wantType ErrorType
	}{
		{"missing", "", []float64{}, ""},
		{"empty", "[]", []float64{}, ""},
		{"integers", "[3, 6, 2, 5]", []float64{3, 6, 2, 5}, ""},
		{"floats and negatives", "[-1.5, 0, 2e3]", []float64{-1.5, 0, 2000}, ""},
		{"string", `"not-a-list"`, nil, ErrorTypeInvalidInputShape},
		{"null", "null", nil, ErrorTypeInvalidInputShape},
		{"object", `{"a":1}`, nil, ErrorTypeInvalidInputShape},
		{"number", "42", nil, ErrorTypeInvalidInputShape},
		{"string element", `[1, "x"]`, nil, ErrorTypeInvalidElementType},
		{"bool element", "[true, 2]", nil, ErrorTypeInvalidElementType},
		{"null element", "[1, null]", nil, ErrorTypeInvalidElementType},
		{"nested array", "[[1], 2]", nil, ErrorTypeInvalidElementType},
		{"largest exact integer", "[9007199254740992, -9007199254740992]", []float64{9007199254740992, -9007199254740992}, ""},
		{"integer that would round", "[9007199254740993, 1]", nil, ErrorTypeInvalidRequest},
		{"exponent out of range", "[1e400, 2]", nil, ErrorTypeInvalidRequest},
		{"negative out of range", "[-1e400]", nil, ErrorTypeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, apiErr := ParseArray(json.RawMessage(tt.raw))
			if tt.wantType != "" {
				if apiErr == nil {
					t.Fatalf("expected %s error, got values %v", tt.wantType, got)
				}
				if apiErr.Type != tt.wantType {
					t.Errorf("error type = %q, want %q", apiErr.Type, tt.wantType)
				}
				return
			}
			if apiErr != nil {
				t.Fatalf("unexpected error: %v", apiErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseArrayReportsElementIndex(t *testing.T) {
	_, apiErr := ParseArray(json.RawMessage(`[1, 2, "three"]`))
	if apiErr == nil {
		t.Fatal("expected error")
	}
	if apiErr.Param != "array[2]" {
		t.Errorf("param = %q, want %q", apiErr.Param, "array[2]")
	}
}

func TestParseArrayOutOfRange(t *testing.T) {
	tests := []struct {
		raw       string
		wantParam string
	}{
		{"[9007199254740993, 1]", "array[0]"},
		{"[2, 1e400]", "array[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, apiErr := ParseArray(json.RawMessage(tt.raw))
			if apiErr == nil {
				t.Fatal("expected error")
			}
			if apiErr.Type != ErrorTypeInvalidRequest {
				t.Errorf("type = %q, want %q", apiErr.Type, ErrorTypeInvalidRequest)
			}
			if apiErr.Param != tt.wantParam {
				t.Errorf("param = %q, want %q", apiErr.Param, tt.wantParam)
			}
			if apiErr.Message != "number out of range" {
				t.Errorf("message = %q, want %q", apiErr.Message, "number out of range")
			}
		})
	}
}

func TestResolveAlgorithm(t *testing.T) {
	tests := []struct {
		in      Algorithm
		want    Algorithm
		wantErr bool
	}{
		{"", AlgorithmQuicksort, false},
		{"quicksort", AlgorithmQuicksort, false},
		{"bubblesort", AlgorithmBubblesort, false},
		{"mergesort", AlgorithmMergesort, false},
		{"heapsort", "", true},
		{"QuickSort", "", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, apiErr := ResolveAlgorithm(tt.in)
			if tt.wantErr {
				if apiErr == nil || apiErr.Type != ErrorTypeUnsupportedAlgorithm {
					t.Fatalf("expected unsupported_algorithm, got %v", apiErr)
				}
				return
			}
			if apiErr != nil {
				t.Fatalf("unexpected error: %v", apiErr)
			}
			if got != tt.want {
				t.Errorf("ResolveAlgorithm(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateRequestOrder(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantType ErrorType
	}{
		{"shape before algorithm", `{"array":"not-a-list","algorithm":"heapsort"}`, ErrorTypeInvalidInputShape},
		{"elements before algorithm", `{"array":[1,"x"],"algorithm":"heapsort"}`, ErrorTypeInvalidElementType},
		{"unsupported algorithm", `{"array":[1,2],"algorithm":"heapsort"}`, ErrorTypeUnsupportedAlgorithm},
		{"element default algorithm", `{"array":[1,"x"]}`, ErrorTypeInvalidElementType},
		{"numeric algorithm", `{"array":[1,2],"algorithm":5}`, ErrorTypeUnsupportedAlgorithm},
		{"null algorithm", `{"array":[1,2],"algorithm":null}`, ErrorTypeUnsupportedAlgorithm},
		{"empty algorithm", `{"array":[2,1],"algorithm":""}`, ErrorTypeUnsupportedAlgorithm},
		{"elements before numeric algorithm", `{"array":[true],"algorithm":5}`, ErrorTypeInvalidElementType},
		{"out of range before algorithm", `{"array":[1e400],"algorithm":"heapsort"}`, ErrorTypeInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SortRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			_, _, apiErr := ValidateRequest(&req, DefaultValidationConfig())
			if apiErr == nil {
				t.Fatal("expected error")
			}
			if apiErr.Type != tt.wantType {
				t.Errorf("error type = %q, want %q", apiErr.Type, tt.wantType)
			}
		})
	}
}

func TestValidateRequestMaxArrayLength(t *testing.T) {
	req := &SortRequest{Array: json.RawMessage(`[4, 3, 2, 1]`)}

	_, _, apiErr := ValidateRequest(req, ValidationConfig{MaxArrayLength: 3})
	if apiErr == nil {
		t.Fatal("expected length error")
	}
	if apiErr.Type != ErrorTypeInvalidRequest || !strings.Contains(apiErr.Message, "maximum of 3") {
		t.Errorf("unexpected error: %v", apiErr)
	}

	values, algorithm, apiErr := ValidateRequest(req, ValidationConfig{})
	if apiErr != nil {
		t.Fatalf("unlimited config should accept: %v", apiErr)
	}
	if len(values) != 4 || algorithm != AlgorithmQuicksort {
		t.Errorf("got %v %q", values, algorithm)
	}
}

func TestNewSortRequest(t *testing.T) {
	req, err := NewSortRequest(nil, AlgorithmMergesort)
	if err != nil {
		t.Fatalf("NewSortRequest: %v", err)
	}
	if string(req.Array) != "[]" {
		t.Errorf("Array = %s, want []", req.Array)
	}

	req, err = NewSortRequest([]float64{2, 1}, AlgorithmBubblesort)
	if err != nil {
		t.Fatalf("NewSortRequest: %v", err)
	}
	values, algorithm, apiErr := ValidateRequest(req, DefaultValidationConfig())
	if apiErr != nil {
		t.Fatalf("ValidateRequest: %v", apiErr)
	}
	if algorithm != AlgorithmBubblesort || len(values) != 2 || values[0] != 2 {
		t.Errorf("round trip mismatch: %v %q", values, algorithm)
	}
}

func TestStepJSONPivotNull(t *testing.T) {
	data, err := json.Marshal(Step{Array: []float64{1, 2}, Compared: []int{0, 1}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"array":[1,2],"pivot":null,"compared":[0,1]}`
	if string(data) != want {
		t.Errorf("Step JSON = %s, want %s", data, want)
	}

	p := 1
	data, _ = json.Marshal(Step{Array: []float64{1, 2}, Pivot: &p, Compared: []int{0, 1}})
	if !strings.Contains(string(data), `"pivot":1`) {
		t.Errorf("pivot not serialized: %s", data)
	}
}

func TestSortRequestUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Algorithm
		wantErr bool
	}{
		{"omitted", `{"array":[1]}`, "", false},
		{"string", `{"algorithm":"mergesort"}`, AlgorithmMergesort, false},
		{"unknown string kept for validation", `{"algorithm":"heapsort"}`, "heapsort", false},
		{"number", `{"algorithm":5}`, "", true},
		{"object", `{"algorithm":{"name":"quicksort"}}`, "", true},
		{"empty", `{"algorithm":""}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SortRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if req.Algorithm != tt.want {
				t.Errorf("Algorithm = %q, want %q", req.Algorithm, tt.want)
			}
			if (req.algorithmErr != nil) != tt.wantErr {
				t.Errorf("algorithmErr = %v, wantErr %v", req.algorithmErr, tt.wantErr)
			}
		})
	}
}

func TestSortRequestUnmarshalRejectsNonObject(t *testing.T) {
	var req SortRequest
	if err := json.Unmarshal([]byte(`[1,2]`), &req); err == nil {
		t.Error("expected error for non-object body")
	}
}

func TestValidateRequestKeepsIntegerPrecision(t *testing.T) {
	var req SortRequest
	if err := json.Unmarshal([]byte(`{"array":[9007199254740992,1]}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	values, _, apiErr := ValidateRequest(&req, ValidationConfig{})
	if apiErr != nil {
		t.Fatalf("unexpected error: %v", apiErr)
	}
	if values[0] != 9007199254740992 {
		t.Errorf("values[0] = %v, want 9007199254740992", values[0])
	}
}
