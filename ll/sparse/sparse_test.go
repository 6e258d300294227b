package sparse

import "testing"

func TestMatrixAddAndGet(t *testing.T) {
	M := NewIntMatrix(10, 10, -1)
	M.Add(2, 3, 4711)
	M.Add(0, 9, 1)
	M.Add(2, 1, 7)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3) to be 4711, is %d", v)
	}
	if v := M.Value(9, 9); v != -1 {
		t.Errorf("expected M(9,9) to be the null value, is %d", v)
	}
	if M.ValueCount() != 3 {
		t.Errorf("expected 3 values, have %d", M.ValueCount())
	}
}

func TestMatrixClash(t *testing.T) {
	M := NewIntMatrix(3, 3, DefaultNullValue)
	if M.Add(1, 1, 4) {
		t.Errorf("first value in a cell should not clash")
	}
	if M.Add(1, 1, 4) {
		t.Errorf("adding the same value twice should not clash")
	}
	if !M.Add(1, 1, 5) {
		t.Errorf("expected second, different value to clash")
	}
	if v := M.Value(1, 1); v != 4 || M.ValueCount() != 1 {
		t.Errorf("expected first value 4 to stay, have %d (count=%d)", v, M.ValueCount())
	}
}

func TestMatrixEachIsRowMajor(t *testing.T) {
	M := NewIntMatrix(4, 4, -1)
	M.Add(3, 0, 1)
	M.Add(0, 3, 2)
	M.Add(1, 2, 3)
	M.Add(1, 0, 4)
	var order []int32
	M.Each(func(i, j int, v int32) {
		order = append(order, v)
	})
	expected := []int32{2, 4, 3, 1}
	if len(order) != len(expected) {
		t.Fatalf("expected %d values, have %v", len(expected), order)
	}
	for k := range expected {
		if order[k] != expected[k] {
			t.Fatalf("expected iteration order %v, have %v", expected, order)
		}
	}
}

func TestMatrixBounds(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for out-of-range index")
		}
	}()
	M := NewIntMatrix(2, 2, -1)
	M.Add(2, 0, 1)
}
