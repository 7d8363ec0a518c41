package calibration

import (
	"testing"

	vmath "github.com/Faultbox/riftdemo/pkg/math"
)

func sample(i int) vmath.Vec3 {
	return vmath.Vec3{X: float32(i), Y: float32(2 * i), Z: float32(-i)}
}

func TestLagBufferBeforeFull(t *testing.T) {
	b := NewLagBuffer()

	// Fewer than LagCapacity pushes: every pop returns the first-ever
	// pushed value regardless of lag.
	for i := 0; i < LagCapacity-1; i++ {
		b.Push(sample(i))
		for _, lag := range []int{0, 5, LagCapacity - 1} {
			got := b.Pop(lag)
			if got != sample(0) {
				t.Fatalf("pop(%d) after %d pushes = %v, want first sample %v", lag, i+1, got, sample(0))
			}
		}
	}
}

func TestLagBufferZeroLagIsLive(t *testing.T) {
	b := NewLagBuffer()

	for i := 0; i < 100; i++ {
		b.Push(sample(i))
		got := b.Pop(0)
		if i >= LagCapacity-1 && got != sample(i) {
			t.Fatalf("frame %d: pop(0) = %v, want live sample %v", i, got, sample(i))
		}
	}
}

func TestLagBufferMaxLag(t *testing.T) {
	b := NewLagBuffer()

	for i := 0; i < 120; i++ {
		b.Push(sample(i))
		got := b.Pop(LagCapacity - 1)
		if i >= LagCapacity-1 {
			want := sample(i - (LagCapacity - 1))
			if got != want {
				t.Fatalf("frame %d: pop(%d) = %v, want %v", i, LagCapacity-1, got, want)
			}
		}
	}
}

func TestLagBufferIntermediateLag(t *testing.T) {
	b := NewLagBuffer()
	const lag = 7

	for i := 0; i < 90; i++ {
		b.Push(sample(i))
		got := b.Pop(lag)
		if i >= LagCapacity-1 {
			want := sample(i - lag)
			if got != want {
				t.Fatalf("frame %d: pop(%d) = %v, want %v", i, lag, got, want)
			}
		}
	}
}
