package runtime

import "testing"

func TestDeriveAddress(t *testing.T) {
	program := NamedID("test-program")

	a1, bump := DeriveAddress(program, []byte("program_state"))
	a2, _ := DeriveAddress(program, []byte("program_state"))
	if a1 != a2 {
		t.Error("derivation is not deterministic")
	}
	if bump != MaxBump {
		t.Errorf("bump is %d, want %d", bump, MaxBump)
	}

	b, _ := DeriveAddress(program, []byte("other_seed"))
	if a1 == b {
		t.Error("different seeds derived the same address")
	}

	c, _ := DeriveAddress(NamedID("another-program"), []byte("program_state"))
	if a1 == c {
		t.Error("different programs derived the same address")
	}
}

func TestRentExemptMinimum(t *testing.T) {
	// 121-byte record: (128 overhead + 121) bytes * 3480 lamports/byte-year * 2 years.
	if got := RentExemptMinimum(121); got != 1_733_040 {
		t.Errorf("rent-exempt minimum for 121 bytes is %d, want 1733040", got)
	}
	if RentExemptMinimum(1) >= RentExemptMinimum(2) {
		t.Error("rent-exempt minimum is not increasing in data length")
	}
	if RentExemptMinimum(0) == 0 {
		t.Error("zero-length accounts still carry the storage overhead")
	}
}
