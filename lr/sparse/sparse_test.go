package sparse

import "testing"

func TestMatrixSetAndValue(t *testing.T) {
	M := NewIntMatrix(10, 10, -1)
	M.Set(2, 3, 4711)
	M.Set(0, 0, 1)
	M.Set(9, 9, 99)
	M.Set(2, 1, 21)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3) to be 4711, is %d", v)
	}
	if v := M.Value(2, 1); v != 21 {
		t.Errorf("expected M(2,1) to be 21, is %d", v)
	}
	if v := M.Value(5, 5); v != -1 {
		t.Errorf("expected M(5,5) to be null value, is %d", v)
	}
	if M.ValueCount() != 4 {
		t.Errorf("expected 4 values, have %d", M.ValueCount())
	}
	var rows []int
	M.Each(func(i, j int, a, b int32) {
		rows = append(rows, i*10+j)
	})
	for k := 1; k < len(rows); k++ {
		if rows[k-1] >= rows[k] {
			t.Fatalf("expected values in row-major order, have %v", rows)
		}
	}
}

func TestMatrixAdd(t *testing.T) {
	M := NewIntMatrix(3, 3, DefaultNullValue)
	M.Add(1, 1, 5)
	M.Add(1, 1, 6)
	a, b := M.Values(1, 1)
	if a != 5 || b != 6 {
		t.Errorf("expected (5,6), have (%d,%d)", a, b)
	}
	if M.ValueCount() != 1 {
		t.Errorf("expected 1 position to be set, have %d", M.ValueCount())
	}
}

func TestMatrixCopyIsIndependent(t *testing.T) {
	M := NewIntMatrix(3, 3, -1)
	M.Set(0, 1, 1)
	C := M.Copy()
	C.Set(0, 1, 2)
	C.Set(2, 2, 3)
	if M.Value(0, 1) != 1 || M.Value(2, 2) != -1 {
		t.Errorf("copy changed original matrix")
	}
	if C.Value(0, 1) != 2 {
		t.Errorf("expected copy to hold new value")
	}
}

func TestMatrixOutOfRange(t *testing.T) {
	M := NewIntMatrix(2, 2, -1)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected access out of range to panic")
		}
	}()
	M.Set(2, 0, 1)
}
