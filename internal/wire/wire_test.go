package wire

import (
	"bytes"
	"math"
	"testing"
	"time"
)

func mustDecode(t *testing.T, b []byte) Entry {
	t.Helper()
	e, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return e
}

func TestRoundTrip(t *testing.T) {
	cases := []Entry{
		{Codec: 0, ExpiresAt: 0, Payload: nil},
		{Codec: 1, ExpiresAt: 42, Payload: []byte("hello")},
		{Codec: 255, ExpiresAt: math.MaxInt64, Payload: []byte{0, 1, 2, 3, 4}},
	}
	for _, tc := range cases {
		got := mustDecode(t, Encode(tc))
		if got.Codec != tc.Codec || got.ExpiresAt != tc.ExpiresAt {
			t.Fatalf("header mismatch: got %+v want %+v", got, tc)
		}
		if !bytes.Equal(got.Payload, tc.Payload) {
			t.Fatalf("payload mismatch: got %x want %x", got.Payload, tc.Payload)
		}
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := Encode(Entry{Payload: []byte("x")})
	enc = append(enc, 0xDE, 0xAD)
	if _, err := Decode(enc); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestCorruptHeadersAndLengths(t *testing.T) {
	enc := Encode(Entry{Codec: 1, ExpiresAt: 10, Payload: []byte("abc")})

	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, err := Decode(badMagic); err == nil {
		t.Fatalf("expected error on bad magic")
	}

	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, err := Decode(badVer); err == nil {
		t.Fatalf("expected error on bad version")
	}

	truncated := enc[:len(enc)-1]
	if _, err := Decode(truncated); err == nil {
		t.Fatalf("expected error on truncated payload")
	}

	if _, err := Decode(enc[:hdrLen-1]); err == nil {
		t.Fatalf("expected error on short header")
	}

	negExp := append([]byte(nil), enc...)
	negExp[6] = 0x80
	if _, err := Decode(negExp); err == nil {
		t.Fatalf("expected error on negative expiry")
	}

	if _, err := Decode([]byte("not-wire-format")); err == nil {
		t.Fatalf("expected error on foreign bytes")
	}
}

func TestExpired(t *testing.T) {
	now := time.Unix(100, 0)
	cases := []struct {
		name string
		exp  int64
		want bool
	}{
		{"none", 0, false},
		{"future", now.Add(time.Second).UnixNano(), false},
		{"exact", now.UnixNano(), true},
		{"past", now.Add(-time.Second).UnixNano(), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := (Entry{ExpiresAt: tc.exp}).Expired(now); got != tc.want {
				t.Fatalf("Expired=%v want %v", got, tc.want)
			}
		})
	}
}
