package coinchain

import (
	"math"
	"testing"

	"lightrail/coinchain/runtime"
)

func TestStateLayout(t *testing.T) {
	if StateSize != 121 {
		t.Fatalf("state record is %d bytes, want 121", StateSize)
	}

	authority := runtime.NamedID("test-authority")
	var s ProgramState
	s.Init(authority)
	if s.Version != 1 {
		t.Errorf("version after init is %d, want 1", s.Version)
	}
	if s.TotalTransfers != 0 || s.TotalVolume != 0 {
		t.Errorf("counters after init are %d/%d, want 0/0", s.TotalTransfers, s.TotalVolume)
	}

	bits := s.Marshal()
	if len(bits) != StateSize {
		t.Fatalf("packed state is %d bytes, want %d", len(bits), StateSize)
	}

	got, err := UnmarshalProgramState(bits)
	if err != nil {
		t.Fatal(err)
	}
	if got.Authority != authority {
		t.Errorf("authority round-tripped to %s, want %s", got.Authority, authority)
	}
}

func TestStateRejectsForeignRecord(t *testing.T) {
	r := TransferRecord{Amount: 7}
	_, err := UnmarshalProgramState(r.Marshal())
	if err == nil {
		t.Fatal("unmarshaling a transfer record as program state succeeded")
	}

	var s ProgramState
	bits := s.Marshal()
	bits[0] ^= 0xff
	_, err = UnmarshalProgramState(bits)
	if err == nil {
		t.Fatal("unmarshaling a record with a corrupt discriminator succeeded")
	}
}

func TestRecordTransferSaturates(t *testing.T) {
	s := ProgramState{
		TotalTransfers: math.MaxUint64 - 1,
		TotalVolume:    math.MaxUint64 - 5,
	}

	s.RecordTransfer(10)
	if s.TotalTransfers != math.MaxUint64 {
		t.Errorf("total transfers = %d, want %d", s.TotalTransfers, uint64(math.MaxUint64))
	}
	if s.TotalVolume != math.MaxUint64 {
		t.Errorf("total volume = %d, want saturation at max", s.TotalVolume)
	}

	// Once pinned at the top the counters stay there.
	s.RecordTransfer(1)
	if s.TotalTransfers != math.MaxUint64 || s.TotalVolume != math.MaxUint64 {
		t.Errorf("counters moved off saturation: %d/%d", s.TotalTransfers, s.TotalVolume)
	}
}
