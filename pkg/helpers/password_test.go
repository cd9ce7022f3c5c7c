package helpers

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash must not equal the plain password")
	}
	if !CompareHashAndPassword(hash, "hunter22") {
		t.Fatal("expected matching password to compare true")
	}
	if CompareHashAndPassword(hash, "hunter23") {
		t.Fatal("expected non-matching password to compare false")
	}
}
