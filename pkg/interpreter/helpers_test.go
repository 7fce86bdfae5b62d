package interpreter

import (
	"math/big"
	"testing"

	"ratexpr/interpreter-go/pkg/runtime"
)

func expectRational(t *testing.T, val runtime.Value, num, den int64) {
	t.Helper()
	rv, ok := val.(runtime.RationalValue)
	if !ok {
		t.Fatalf("expected rational %d/%d, got %#v", num, den, val)
	}
	if rv.Val.Cmp(big.NewRat(num, den)) != 0 {
		t.Fatalf("expected rational %d/%d, got %s", num, den, rv.Val.RatString())
	}
}

func expectString(t *testing.T, val runtime.Value, want string) {
	t.Helper()
	sv, ok := val.(runtime.StringValue)
	if !ok || sv.Val != want {
		t.Fatalf("expected string %q, got %#v", want, val)
	}
}

func expectBool(t *testing.T, val runtime.Value, want bool) {
	t.Helper()
	bv, ok := val.(runtime.BoolValue)
	if !ok || bv.Val != want {
		t.Fatalf("expected bool %v, got %#v", want, val)
	}
}
