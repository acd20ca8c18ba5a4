package domain

import (
	"strings"
	"testing"
)

// FuzzParseAddress checks the trust-boundary invariant: arbitrary input never
// panics and either parses to a round-trippable address or returns an error.
func FuzzParseAddress(f *testing.F) {
	f.Add("")
	f.Add("0x")
	f.Add("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	f.Add("0xF39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	f.Add("0x0000000000000000000000000000000000000000")
	f.Add("f39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	f.Add("0xzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz")
	f.Add("0xf39fd6e51aad88f6f4ce6ab8827279cfffb9226")

	f.Fuzz(func(t *testing.T, input string) {
		addr, err := ParseAddress(input)
		if err != nil {
			return
		}
		// A parsed address renders back to the canonical lowercase form of
		// its input.
		want := "0x" + strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), "0x")))
		if addr.Hex() != want {
			t.Errorf("round trip mismatch: input %q parsed to %s", input, addr.Hex())
		}
	})
}

func FuzzParseHash(f *testing.F) {
	f.Add("")
	f.Add("0x26700e13983fefbd9cf16da2ed70fa5c6798ac55062a4803121a869731e308d2")
	f.Add("0x26700e13983fefbd9cf16da2ed70fa5c6798ac55062a4803121a869731e308")
	f.Add("not-a-hash")

	f.Fuzz(func(t *testing.T, input string) {
		h, err := ParseHash(input)
		if err != nil {
			return
		}
		reparsed, err := ParseHash(h.Hex())
		if err != nil {
			t.Errorf("canonical form %s failed to reparse: %v", h.Hex(), err)
		}
		if reparsed != h {
			t.Errorf("round trip mismatch for input %q", input)
		}
	})
}
