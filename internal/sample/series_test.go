package sample

import "testing"

func TestSeries_AppendPreservesOrder(t *testing.T) {
	var s Series[float64]

	values := []float64{25.5, 20.0, 30.0}
	for _, v := range values {
		s.Append(v)
	}

	if s.Len() != len(values) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(values))
	}

	i := 0
	for v := range s.All() {
		if v != values[i] {
			t.Errorf("position %d = %v, want %v", i, v, values[i])
		}
		i++
	}
	if i != len(values) {
		t.Errorf("traversal visited %d values, want %d", i, len(values))
	}
}

func TestSeries_IsEmpty(t *testing.T) {
	var s Series[int64]

	if !s.IsEmpty() {
		t.Error("IsEmpty() = false for new series, want true")
	}

	s.Append(101325)

	if s.IsEmpty() {
		t.Error("IsEmpty() = true after append, want false")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSeries_AllIsRestartable(t *testing.T) {
	var s Series[int64]
	s.Append(100)
	s.Append(102)

	for range 2 {
		var got []int64
		for v := range s.All() {
			got = append(got, v)
		}
		if len(got) != 2 || got[0] != 100 || got[1] != 102 {
			t.Fatalf("traversal = %v, want [100 102]", got)
		}
	}
}

func TestSeries_AllEarlyStop(t *testing.T) {
	var s Series[int64]
	s.Append(1)
	s.Append(2)
	s.Append(3)

	count := 0
	for range s.All() {
		count++
		if count == 2 {
			break
		}
	}

	if count != 2 {
		t.Errorf("visited %d values before break, want 2", count)
	}
}

func TestSeries_CloneIsolation(t *testing.T) {
	orig := New[float64]()
	orig.Append(25.5)
	orig.Append(20.0)

	cpy := orig.Clone()
	cpy.Append(30.0)

	if orig.Len() != 2 {
		t.Errorf("original Len() = %d after appending to clone, want 2", orig.Len())
	}
	if cpy.Len() != 3 {
		t.Errorf("clone Len() = %d, want 3", cpy.Len())
	}

	// Appending to the original must not leak into the clone either.
	orig.Append(99.0)
	if cpy.Len() != 3 {
		t.Errorf("clone Len() = %d after appending to original, want 3", cpy.Len())
	}
}

func TestSeries_CloneEmpty(t *testing.T) {
	orig := New[int64]()
	cpy := orig.Clone()

	if !cpy.IsEmpty() {
		t.Error("clone of empty series is not empty")
	}

	cpy.Append(7)
	if !orig.IsEmpty() {
		t.Error("appending to clone mutated the empty original")
	}
}

func TestSeries_CloneNil(t *testing.T) {
	var s *Series[int64]
	if got := s.Clone(); got != nil {
		t.Errorf("Clone() of nil series = %v, want nil", got)
	}
}
