package tokenstore

import (
	"testing"
	"time"
)

func TestRecordCodecRoundTrip(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	record := Record{ID: "r1", UserID: "user-1", ExpiresAt: expiresAt}

	data, err := encodeRecord(record)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := decodeRecord("r1", data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "r1" || got.UserID != "user-1" {
		t.Fatalf("unexpected record %+v", got)
	}
	if !got.ExpiresAt.Equal(expiresAt) {
		t.Fatalf("expected expiry %v, got %v", expiresAt, got.ExpiresAt)
	}
}

func TestRecordDecodeRejectsBadInput(t *testing.T) {
	cases := map[string][]byte{
		"empty":           nil,
		"wrong version":   {0xFF, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		"truncated":       {tokenRecordVersionV1, 0, 0},
		"short user id":   {tokenRecordVersionV1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 9, 'a'},
		"missing user id": {tokenRecordVersionV1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 4},
	}

	for name, data := range cases {
		if _, err := decodeRecord("r1", data); err == nil {
			t.Fatalf("%s: expected decode error", name)
		}
	}
}
