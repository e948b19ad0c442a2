package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// ValidationConfig holds configurable limits for request validation.
type ValidationConfig struct {
	// MaxArrayLength caps the number of elements. Zero means unlimited.
	MaxArrayLength int
}

// DefaultValidationConfig returns a ValidationConfig with sensible defaults.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxArrayLength: 1000,
	}
}

// ValidateRequest checks a SortRequest and returns the decoded array and the
// resolved algorithm. Checks run in a fixed order (shape, elements,
// algorithm, length) and the first failure is returned.
func ValidateRequest(req *SortRequest, cfg ValidationConfig) ([]float64, Algorithm, *APIError) {
	values, apiErr := ParseArray(req.Array)
	if apiErr != nil {
		return nil, "", apiErr
	}

	if req.algorithmErr != nil {
		return nil, "", req.algorithmErr
	}
	algorithm, apiErr := ResolveAlgorithm(req.Algorithm)
	if apiErr != nil {
		return nil, "", apiErr
	}

	if cfg.MaxArrayLength > 0 && len(values) > cfg.MaxArrayLength {
		return nil, "", NewInvalidRequestError("array",
			fmt.Sprintf("array exceeds maximum of %d elements", cfg.MaxArrayLength))
	}

	return values, algorithm, nil
}

// ParseArray decodes a raw JSON value into a numeric slice.
//
// A missing value decodes to an empty slice. Anything that is not a JSON
// array (including null) yields an invalid_input_shape error; any element
// that is not a JSON number yields an invalid_element_type error. Numbers
// that a float64 cannot hold exactly (out of range, or integers beyond
// 2^53 that would round) are rejected as invalid_request rather than
// altered.
func ParseArray(raw json.RawMessage) ([]float64, *APIError) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []float64{}, nil
	}
	if trimmed[0] != '[' {
		return nil, NewInvalidInputShapeError("input must be an array")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var elems []any
	if err := dec.Decode(&elems); err != nil {
		return nil, NewInvalidInputShapeError("input must be an array")
	}

	values := make([]float64, len(elems))
	for i, elem := range elems {
		num, ok := elem.(json.Number)
		if !ok {
			return nil, NewInvalidElementTypeError(i, "all elements must be numbers")
		}
		f, err := parseNumber(num)
		if err != nil {
			return nil, NewInvalidRequestError(fmt.Sprintf("array[%d]", i), "number out of range")
		}
		values[i] = f
	}
	return values, nil
}

var errInexact = errors.New("integer not representable as float64")

// parseNumber converts a JSON number literal to float64. Integer literals
// must convert exactly.
func parseNumber(num json.Number) (float64, error) {
	s := num.String()
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if strings.ContainsAny(s, ".eE") {
		return f, nil
	}
	want, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return 0, errInexact
	}
	got, _ := big.NewFloat(f).Int(nil)
	if got.Cmp(want) != 0 {
		return 0, errInexact
	}
	return f, nil
}

// ResolveAlgorithm maps a requested name to a known algorithm. The empty
// name stands for an omitted field and resolves to DefaultAlgorithm; an
// explicit empty string in a decoded request is rejected before this
// point. Unknown names are rejected.
func ResolveAlgorithm(name Algorithm) (Algorithm, *APIError) {
	if name == "" {
		return DefaultAlgorithm, nil
	}
	for _, a := range Algorithms() {
		if a == name {
			return a, nil
		}
	}
	return "", NewUnsupportedAlgorithmError(string(name))
}
