package utility

import (
	"encoding/json"
	"errors"
	"io"
)

// DecodeJSONAs decodes a single JSON document from r into a value of type T
// and returns a pointer to it. Unknown fields and trailing data are rejected.
//
// Example:
//
//	req, err := DecodeJSONAs[MaxSumRequest](r.Body)
func DecodeJSONAs[T any](r io.Reader) (*T, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var v T
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON document")
	}

	return &v, nil
}
