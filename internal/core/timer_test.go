package core

import (
	"testing"
	"time"
)

func TestFixedStepPacing(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(4)
	fs.now = func() time.Time { return clock }

	if fs.ShouldStep() {
		t.Fatal("first call only primes the clock")
	}
	clock = clock.Add(200 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("stepped before the interval elapsed")
	}
	clock = clock.Add(100 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected a step after 300ms at 4/s")
	}
	if fs.ShouldStep() {
		t.Fatal("only one step was due")
	}

	fs.Restart()
	clock = clock.Add(time.Second)
	if fs.ShouldStep() {
		t.Fatal("Restart should drop the elapsed time")
	}
}

func TestFixedStepDefaultRate(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.step != 100*time.Millisecond {
		t.Fatalf("default interval = %v", fs.step)
	}
}
