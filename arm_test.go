package gmab

import (
	"math"
	"testing"
)

func TestNewArm(t *testing.T) {
	a := NewArm([]int{1, 2, 3})
	if a.NPulls != 0 {
		t.Errorf("NPulls = %d, want 0", a.NPulls)
	}
	if a.Mean != 0 {
		t.Errorf("Mean = %v, want 0", a.Mean)
	}
	if len(a.ActionVector) != 3 {
		t.Errorf("len(ActionVector) = %d, want 3", len(a.ActionVector))
	}

	// Mutating the caller's slice after construction must not affect the
	// arm: NewArm copies.
	original := []int{1, 2, 3}
	a2 := NewArm(original)
	original[0] = 99
	if a2.ActionVector[0] != 1 {
		t.Errorf("NewArm did not copy ActionVector, got %v", a2.ActionVector)
	}
}

func TestArmRecordPullWelford(t *testing.T) {
	a := NewArm([]int{0})
	samples := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	for _, s := range samples {
		if err := a.RecordPull(s); err != nil {
			t.Fatalf("RecordPull: %v", err)
		}
	}

	if a.NPulls != len(samples) {
		t.Fatalf("NPulls = %d, want %d", a.NPulls, len(samples))
	}

	wantMean := 5.0
	if math.Abs(a.Mean-wantMean) > 1e-9 {
		t.Errorf("Mean = %v, want %v", a.Mean, wantMean)
	}

	// Population variance of this sample set is 4 (sum of squared
	// deviations 32 / n=8); Variance() is the unbiased sample variance,
	// 32 / (n-1=7) = 4.571...; check against the classical two-pass
	// formula for the dataset.
	var sum, sumSq float64
	for _, s := range samples {
		sum += s
		sumSq += s * s
	}
	n := float64(len(samples))
	mean := sum / n
	wantVar := 0.0
	for _, s := range samples {
		wantVar += (s - mean) * (s - mean)
	}
	wantVar /= n - 1

	if math.Abs(a.Variance()-wantVar) > 1e-9 {
		t.Errorf("Variance() = %v, want %v", a.Variance(), wantVar)
	}
	if math.Abs(a.StdDev()-math.Sqrt(wantVar)) > 1e-9 {
		t.Errorf("StdDev() = %v, want %v", a.StdDev(), math.Sqrt(wantVar))
	}
}

func TestArmVarianceUndefinedCases(t *testing.T) {
	a := NewArm([]int{0})
	if v := a.Variance(); v != 0 {
		t.Errorf("Variance() with 0 pulls = %v, want 0", v)
	}
	_ = a.RecordPull(42)
	if v := a.Variance(); v != 0 {
		t.Errorf("Variance() with 1 pull = %v, want 0", v)
	}
}

func TestArmConstantObjective(t *testing.T) {
	a := NewArm([]int{0, 0})
	for i := 0; i < 50; i++ {
		_ = a.RecordPull(3.0)
	}
	if a.Mean != 3.0 {
		t.Errorf("Mean = %v, want 3.0", a.Mean)
	}
	if a.Variance() != 0 {
		t.Errorf("Variance() = %v, want 0 for a constant objective", a.Variance())
	}
}

func TestArmClone(t *testing.T) {
	a := NewArm([]int{1, 2})
	_ = a.RecordPull(10)
	clone := a.Clone()

	clone.ActionVector[0] = 999
	clone.NPulls = 100

	if a.ActionVector[0] == 999 || a.NPulls == 100 {
		t.Error("Clone() did not deep copy the arm")
	}
}

func TestArmMerge(t *testing.T) {
	a := NewArm([]int{1})
	for _, s := range []float64{1, 2, 3} {
		_ = a.RecordPull(s)
	}
	b := NewArm([]int{1})
	for _, s := range []float64{4, 5} {
		_ = b.RecordPull(s)
	}

	a.merge(b)

	if a.NPulls != 5 {
		t.Fatalf("NPulls after merge = %d, want 5", a.NPulls)
	}
	wantMean := (1.0 + 2 + 3 + 4 + 5) / 5.0
	if math.Abs(a.Mean-wantMean) > 1e-9 {
		t.Errorf("Mean after merge = %v, want %v", a.Mean, wantMean)
	}
}

func TestEncodeActionKeyDistinguishesShapes(t *testing.T) {
	k1 := encodeActionKey([]int{12})
	k2 := encodeActionKey([]int{1, 2})
	if k1 == k2 {
		t.Error("encodeActionKey([12]) collided with encodeActionKey([1, 2])")
	}
}

func TestEncodeActionKeyStableForEqualVectors(t *testing.T) {
	k1 := encodeActionKey([]int{3, -4, 5})
	k2 := encodeActionKey([]int{3, -4, 5})
	if k1 != k2 {
		t.Error("encodeActionKey is not stable for equal vectors")
	}
}
