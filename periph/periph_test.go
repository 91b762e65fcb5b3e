package periph

import (
	"testing"

	"clockcode-go/errcode"
)

func TestTakeOnce(t *testing.T) {
	set, err := Take()
	if err != nil {
		t.Fatalf("first Take: %v", err)
	}
	if set.RCC == nil || set.Flash == nil || set.Pwr == nil {
		t.Fatal("Take returned nil blocks")
	}

	if _, err := Take(); errcode.Of(err) != errcode.Claimed {
		t.Fatalf("second Take err = %v, want peripheral_claimed", err)
	}
}
