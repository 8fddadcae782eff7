package store

import (
	"encoding/json"
	"fmt"

	"github.com/girderhq/girder/internal/numeric"
)

// valueDoc is the persisted shape of a numeric.Value. The kind tag
// selects which payload fields are meaningful.
type valueDoc struct {
	Kind string      `json:"kind"`
	Num  float64     `json:"num,omitempty"`
	Re   float64     `json:"re,omitempty"`
	Im   float64     `json:"im,omitempty"`
	Data [][]float64 `json:"data,omitempty"`
}

// marshalValue converts a numeric.Value to JSON TEXT for storage.
func marshalValue(v numeric.Value) (string, error) {
	var doc valueDoc
	switch val := v.(type) {
	case numeric.Number:
		doc = valueDoc{Kind: string(numeric.KindNumber), Num: float64(val)}
	case numeric.Complex:
		doc = valueDoc{Kind: string(numeric.KindComplex), Re: val.Re, Im: val.Im}
	case numeric.Matrix:
		doc = valueDoc{Kind: string(numeric.KindMatrix), Data: val.Data}
	default:
		return "", fmt.Errorf("marshal value: unsupported kind %T", v)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal value: %w", err)
	}
	return string(data), nil
}

// unmarshalValue parses JSON TEXT back to a numeric.Value.
func unmarshalValue(data string) (numeric.Value, error) {
	var doc valueDoc
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal value: %w", err)
	}
	switch numeric.Kind(doc.Kind) {
	case numeric.KindNumber:
		return numeric.Number(doc.Num), nil
	case numeric.KindComplex:
		return numeric.Complex{Re: doc.Re, Im: doc.Im}, nil
	case numeric.KindMatrix:
		m, err := numeric.NewMatrix(doc.Data)
		if err != nil {
			return nil, fmt.Errorf("unmarshal value: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unmarshal value: unknown kind %q", doc.Kind)
	}
}
