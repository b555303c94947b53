package sensor

import (
	"errors"
	"math"
	"testing"

	"github.com/oakensoul/sensorcore/internal/sample"
)

func TestMinimum_Summarize(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		want    float64
		wantErr error
	}{
		{name: "typical readings", values: []float64{25.5, 20.0, 30.0}, want: 20.0},
		{name: "single value", values: []float64{25.5}, want: 25.5},
		{name: "minimum first", values: []float64{-5.0, 0.0, 12.5}, want: -5.0},
		{name: "minimum last", values: []float64{12.5, 0.0, -5.0}, want: -5.0},
		{name: "empty history", values: nil, wantErr: ErrEmptyHistory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := sample.New[float64]()
			for _, v := range tt.values {
				history.Append(v)
			}

			got, err := Minimum[float64]{}.Summarize(history)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Summarize() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Summarize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMean_Summarize(t *testing.T) {
	tests := []struct {
		name    string
		values  []int64
		want    float64
		wantErr error
	}{
		{name: "typical readings", values: []int64{100, 102, 101}, want: 101.0},
		{name: "fractional result", values: []int64{1, 2}, want: 1.5},
		{name: "single value", values: []int64{101325}, want: 101325.0},
		{name: "empty history", values: nil, wantErr: ErrEmptyHistory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := sample.New[int64]()
			for _, v := range tt.values {
				history.Append(v)
			}

			got, err := Mean[int64]{}.Summarize(history)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Summarize() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Summarize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarize_IsIdempotent(t *testing.T) {
	history := sample.New[int64]()
	history.Append(100)
	history.Append(102)

	agg := Mean[int64]{}
	first, err := agg.Summarize(history)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	second, err := agg.Summarize(history)
	if err != nil {
		t.Fatalf("second Summarize() error = %v", err)
	}

	if first != second {
		t.Errorf("Summarize() = %v then %v, want identical results", first, second)
	}
	if history.Len() != 2 {
		t.Errorf("history Len() = %d after summarizing, want 2", history.Len())
	}
}
