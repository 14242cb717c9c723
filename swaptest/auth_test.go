package swaptest

import (
	"context"
	"reflect"
	"testing"

	"github.com/tokenswap/swapper"
)

func TestAuthNoSigners(t *testing.T) {
	var a Auth

	if got := a.GetAddresses(nil); got != nil {
		t.Fatalf("unexpected addresses: %+v", got)
	}
	if a.HasAddress(nil, NewAddress()) {
		t.Fatal("random address must not be present")
	}
}

func TestAuthUsingSignerAndSigners(t *testing.T) {
	addrs := []swapper.Address{NewAddress(), NewAddress(), NewAddress()}
	a := Auth{
		Signer:  addrs[2],
		Signers: append([]swapper.Address(nil), addrs[:2]...),
	}

	if got := a.GetAddresses(nil); !reflect.DeepEqual(got, addrs) {
		t.Fatalf("unexpected addresses: %v", got)
	}
	for i, addr := range addrs {
		if !a.HasAddress(nil, addr) {
			t.Errorf("address %d (%s) should be present", i, addr)
		}
	}
	if a.HasAddress(nil, NewAddress()) {
		t.Fatal("random address must not be present")
	}
}

func TestCtxAuth(t *testing.T) {
	addrs := []swapper.Address{NewAddress(), NewAddress()}
	a := CtxAuth{Key: "auth"}
	ctx := a.SetAddresses(context.Background(), addrs...)

	if got := a.GetAddresses(ctx); !reflect.DeepEqual(got, addrs) {
		t.Fatalf("unexpected addresses: %v", got)
	}
	for i, addr := range addrs {
		if !a.HasAddress(ctx, addr) {
			t.Errorf("address %d (%s) should be present", i, addr)
		}
	}
	if a.HasAddress(ctx, NewAddress()) {
		t.Fatal("random address must not be present")
	}
	if got := (&CtxAuth{Key: "other"}).GetAddresses(ctx); got != nil {
		t.Fatalf("unexpected addresses under another key: %v", got)
	}
}

func TestHandlerCountsCalls(t *testing.T) {
	h := Handler{CheckResult: swapper.CheckResult{Log: "checked"}}

	res, err := h.Check(nil, nil, &Tx{})
	if err != nil || res.Log != "checked" {
		t.Fatalf("unexpected check result: %+v, %v", res, err)
	}
	if _, err := h.Deliver(nil, nil, &Tx{}); err != nil {
		t.Fatalf("unexpected deliver error: %s", err)
	}
	if h.CheckCallCount() != 1 || h.DeliverCallCount() != 1 || h.CallCount() != 2 {
		t.Fatalf("unexpected call counts: %d check, %d deliver", h.CheckCallCount(), h.DeliverCallCount())
	}
}
