package dynamo

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 99
	if s[0] != 1 {
		t.Errorf("clone aliased original: %v", s)
	}
}

func TestStateIsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"finite", State{1, -2, 0}, true},
		{"nan", State{1, math.NaN()}, false},
		{"inf", State{math.Inf(1)}, false},
		{"empty", State{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateArithmetic(t *testing.T) {
	a := State{1, 2}
	b := State{3, 4}

	if got := a.Add(b); got[0] != 4 || got[1] != 6 {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got[0] != 2 || got[1] != 2 {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got[0] != 2 || got[1] != 4 {
		t.Errorf("Scale = %v", got)
	}
	if got := b.Norm(); got != 5 {
		t.Errorf("Norm = %v, want 5", got)
	}
}

func TestSeriesColumn(t *testing.T) {
	s := &Series{Names: []string{"x", "y"}, Columns: [][]float64{{1, 2, 3}, {4, 5}}}
	if got := s.Len(); got != 3 {
		t.Errorf("Len = %d, want 3", got)
	}
	if got := s.Column("y"); len(got) != 2 || got[0] != 4 {
		t.Errorf("Column(y) = %v", got)
	}
	if s.Column("z") != nil {
		t.Error("expected nil for missing column")
	}
}

func TestSimulationErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("lorenz: %w", &SimulationError{Step: 7, Wrapped: ErrUnstable})
	if !errors.Is(err, ErrUnstable) {
		t.Error("expected errors.Is to find ErrUnstable")
	}
	var simErr *SimulationError
	if !errors.As(err, &simErr) || simErr.Step != 7 {
		t.Errorf("errors.As failed: %v", simErr)
	}
}
