package core

import (
	"errors"
	"testing"
	"time"

	"github.com/go-test/deep"

	"github.com/dcrodman/konami/internal/konami"
)

func newTestConfig(enabled bool) *Config {
	cfg := &Config{}
	cfg.Cache.Enabled = enabled
	cfg.Cache.TTL = time.Minute
	return cfg
}

func TestKeyCache_Offsets(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		wantLen int
	}{
		{name: "enabled", enabled: true, wantLen: 1},
		{name: "disabled", enabled: false, wantLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewKeyCache(newTestConfig(tt.enabled))

			for i := 0; i < 2; i++ {
				got, err := c.Offsets("^^vv<><>baStart>>abStart")
				if err != nil {
					t.Fatalf("Offsets() returned error: %v", err)
				}
				if diff := deep.Equal(got, []byte{0, 255}); diff != nil {
					t.Errorf("Offsets() returned the wrong offsets: %v", diff)
				}
			}
			if c.Len() != tt.wantLen {
				t.Errorf("Len() want = %d, got = %d", tt.wantLen, c.Len())
			}
		})
	}
}

func TestKeyCache_ErrorsNotCached(t *testing.T) {
	c := NewKeyCache(newTestConfig(true))

	if _, err := c.Offsets(""); !errors.Is(err, konami.ErrEmptyInput) {
		t.Errorf("Offsets(\"\") want = %v, got = %v", konami.ErrEmptyInput, err)
	}

	_, err := c.Offsets("^^^^^")
	var repeatErr *konami.TooManyRepeatsError
	if !errors.As(err, &repeatErr) {
		t.Errorf("Offsets() returned the wrong error: %v", err)
	}

	if c.Len() != 0 {
		t.Errorf("expected failed keys not to be cached, have %d entries", c.Len())
	}
}

func TestKeyCache_CallerCannotCorruptEntries(t *testing.T) {
	c := NewKeyCache(newTestConfig(true))

	first, err := c.Offsets(">>abStart")
	if err != nil {
		t.Fatalf("Offsets() returned error: %v", err)
	}
	first[0] = 7

	second, err := c.Offsets(">>abStart")
	if err != nil {
		t.Fatalf("Offsets() returned error: %v", err)
	}
	second[0] = 9

	third, err := c.Offsets(">>abStart")
	if err != nil {
		t.Fatalf("Offsets() returned error: %v", err)
	}
	if diff := deep.Equal(third, []byte{255}); diff != nil {
		t.Errorf("cached offsets were modified through a returned slice: %v", diff)
	}
}
