package utils

import "testing"

func TestIDSetDeduplicates(t *testing.T) {
	s := NewIDSet()

	if !s.Add("1001") {
		t.Error("first Add should return true")
	}
	if s.Add("1001") {
		t.Error("second Add of same id should return false")
	}
	if !s.Add("1002") {
		t.Error("Add of new id should return true")
	}
	if s.Size() != 2 {
		t.Errorf("Size: got %d, want 2", s.Size())
	}
}
