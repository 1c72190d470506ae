package cache

import (
	"testing"
)

func TestNewRedisCache_Unreachable(t *testing.T) {
	// Port 1 on loopback refuses connections.
	if _, err := NewRedisCache(Config{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatal("expected ping error for unreachable server")
	}
}
