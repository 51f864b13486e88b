package number

import (
	"encoding/json"
	"testing"
)

func TestToFloat64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input any
		ok    bool
		want  float64
	}{
		{name: "int", input: int(10), ok: true, want: 10},
		{name: "int64", input: int64(-4), ok: true, want: -4},
		{name: "uint32", input: uint32(7), ok: true, want: 7},
		{name: "float32", input: float32(1.5), ok: true, want: 1.5},
		{name: "float64", input: 12.5, ok: true, want: 12.5},
		{name: "json_number", input: json.Number("42"), ok: true, want: 42},
		{name: "json_number_decimal", input: json.Number("0.25"), ok: true, want: 0.25},
		{name: "json_number_invalid", input: json.Number("4x"), ok: false, want: 0},
		{name: "string", input: "10", ok: false, want: 0},
		{name: "bool", input: true, ok: false, want: 0},
		{name: "nil", input: nil, ok: false, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat64(tt.input)
			if ok != tt.ok {
				t.Fatalf("ToFloat64(%v) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("ToFloat64(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
