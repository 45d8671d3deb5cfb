package main

import (
	"bytes"
	"testing"

	"github.com/iov-one/multiclique"
)

func TestParseInvocation(t *testing.T) {
	target := multiclique.Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}

	cases := map[string]struct {
		raw      string
		wantErr  bool
		wantFn   string
		wantArgs [][]byte
	}{
		"function without arguments": {
			raw:    "destroy_dao@0102030405060708090A0B0C0D0E0F1011121314",
			wantFn: "destroy_dao",
		},
		"bech32 target with arguments": {
			raw:      "xfer@bech32:mc1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5l8gyrc,0a0b,ff",
			wantFn:   "xfer",
			wantArgs: [][]byte{{0x0a, 0x0b}, {0xff}},
		},
		"missing target": {
			raw:     "xfer",
			wantErr: true,
		},
		"missing function": {
			raw:     "@0102030405060708090A0B0C0D0E0F1011121314",
			wantErr: true,
		},
		"invalid target": {
			raw:     "xfer@0102",
			wantErr: true,
		},
		"invalid argument": {
			raw:     "xfer@0102030405060708090A0B0C0D0E0F1011121314,zz",
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			inv, err := parseInvocation(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if !inv.Target.Equals(target) {
				t.Fatalf("unexpected target: %s", inv.Target)
			}
			if inv.Function != tc.wantFn {
				t.Fatalf("unexpected function: %q", inv.Function)
			}
			if len(inv.Args) != len(tc.wantArgs) {
				t.Fatalf("want %d arguments, got %d", len(tc.wantArgs), len(inv.Args))
			}
			for i := range inv.Args {
				if !bytes.Equal(inv.Args[i], tc.wantArgs[i]) {
					t.Fatalf("argument %d: want %x, got %x", i, tc.wantArgs[i], inv.Args[i])
				}
			}
		})
	}
}

func TestFlagAddresses(t *testing.T) {
	var addrs flagaddrs
	if err := addrs.Set("0102030405060708090A0B0C0D0E0F1011121314,cond:foo/bar/636f6e64"); err != nil {
		t.Fatalf("cannot set: %s", err)
	}
	if len(addrs) != 2 {
		t.Fatalf("want 2 addresses, got %d", len(addrs))
	}
	want := multiclique.NewCondition("foo", "bar", []byte("cond")).Address()
	if !addrs[1].Equals(want) {
		t.Fatalf("unexpected address: %s", addrs[1])
	}
	if err := addrs.Set("0102"); err == nil {
		t.Fatal("short address must be rejected")
	}
}
