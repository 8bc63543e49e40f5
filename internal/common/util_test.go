package common

import "testing"

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("s3cret-pass")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestStorageKeys_AreDistinct(t *testing.T) {
	keys := map[string]struct{}{
		AccessTokenKey:  {},
		RefreshTokenKey: {},
		UserIDKey:       {},
	}
	if len(keys) != 3 {
		t.Fatalf("storage keys must be distinct, got %v", keys)
	}
}
