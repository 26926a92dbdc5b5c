package ui

import "testing"

func TestFillCountRGBA(t *testing.T) {
	buf := make([]byte, 12)
	fillCountRGBA(buf, []uint8{0, 8, 200})
	if buf[3] != 0 || buf[0] != 0 {
		t.Fatalf("zero count should be transparent, got %v", buf[:4])
	}
	if buf[7] != 192 {
		t.Fatalf("8 neighbors alpha = %d, want 192", buf[7])
	}
	if buf[11] != buf[7] {
		t.Fatal("counts above 8 should clamp")
	}
	for i := 4; i < 7; i++ {
		if buf[i] > buf[7] {
			t.Fatalf("channel %d exceeds alpha (not premultiplied): %v", i, buf[4:8])
		}
	}
}

func TestFillChangeRGBA(t *testing.T) {
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9}
	fillChangeRGBA(buf, []bool{false, true})
	if buf[0] != 0 || buf[3] != 0 {
		t.Fatalf("unchanged cell must be cleared, got %v", buf[:4])
	}
	if buf[7] != 160 {
		t.Fatalf("changed cell alpha = %d", buf[7])
	}
}

func TestActionString(t *testing.T) {
	if ActionStep.String() != "step" || ActionNone.String() != "none" || Action(99).String() != "none" {
		t.Fatal("unexpected action names")
	}
}
