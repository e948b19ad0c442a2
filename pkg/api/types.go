package api

import "encoding/json"

// Algorithm identifies one of the instrumented sorting algorithms.
type Algorithm string

const (
	// AlgorithmQuicksort is the partition-based sort (Lomuto, last element pivot).
	AlgorithmQuicksort Algorithm = "quicksort"

	// AlgorithmBubblesort is the exchange sort. It records a step per swap.
	AlgorithmBubblesort Algorithm = "bubblesort"

	// AlgorithmMergesort is the top-down merge sort. It records a step per merge.
	AlgorithmMergesort Algorithm = "mergesort"
)

// DefaultAlgorithm is used when a request omits the algorithm field.
const DefaultAlgorithm = AlgorithmQuicksort

// Algorithms lists every supported algorithm in a stable order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmQuicksort, AlgorithmBubblesort, AlgorithmMergesort}
}

// Step is one recorded snapshot of the working array.
//
// Array is an independent copy taken when the step was recorded. Pivot is
// set only by the partition sort and serializes as null otherwise. Compared
// lists the array positions involved in the operation that produced the
// snapshot.
type Step struct {
	Array    []float64 `json:"array"`
	Pivot    *int      `json:"pivot"`
	Compared []int     `json:"compared"`
}

// SortRequest is the body of a sort call.
//
// Array is kept as raw JSON so that shape and element types can be
// validated explicitly (see ParseArray). An omitted array is treated as
// empty; an explicit null is rejected. An empty Algorithm means the field
// was omitted.
type SortRequest struct {
	Array     json.RawMessage `json:"array,omitempty"`
	Algorithm Algorithm       `json:"algorithm,omitempty"`

	// algorithmErr records an algorithm field that was present in the
	// decoded body but is not a non-empty string. It is reported in
	// validation order by ValidateRequest.
	algorithmErr *APIError
}

// UnmarshalJSON decodes a request body. A present algorithm that is not a
// non-empty JSON string (a number, null, "") does not fail decoding; it
// is reported as unsupported_algorithm during validation.
func (r *SortRequest) UnmarshalJSON(data []byte) error {
	var wire struct {
		Array     json.RawMessage `json:"array"`
		Algorithm json.RawMessage `json:"algorithm"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*r = SortRequest{Array: wire.Array}
	if wire.Algorithm == nil {
		return nil
	}

	var name string
	if err := json.Unmarshal(wire.Algorithm, &name); err != nil || string(wire.Algorithm) == "null" {
		r.algorithmErr = NewUnsupportedAlgorithmError(string(wire.Algorithm))
		return nil
	}
	if name == "" {
		r.algorithmErr = NewUnsupportedAlgorithmError(name)
		return nil
	}
	r.Algorithm = Algorithm(name)
	return nil
}

// SortResponse carries the step log of one sort invocation.
type SortResponse struct {
	Algorithm Algorithm `json:"algorithm"`
	Steps     []Step    `json:"steps"`
	Sorted    []float64 `json:"sorted"`
}

// NewSortRequest builds a SortRequest from already-typed values.
func NewSortRequest(values []float64, algorithm Algorithm) (*SortRequest, error) {
	if values == nil {
		values = []float64{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return &SortRequest{Array: raw, Algorithm: algorithm}, nil
}
