package http

import "testing"

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	rl := newRateLimiter(2)
	if !rl.allow() || !rl.allow() {
		t.Fatal("first two requests should be allowed")
	}
	if rl.allow() {
		t.Fatal("third request in the same window should be blocked")
	}
}

func TestRateLimiterZeroMeansUnlimited(t *testing.T) {
	rl := newRateLimiter(0)
	for i := 0; i < 100; i++ {
		if !rl.allow() {
			t.Fatalf("request %d blocked with limit disabled", i)
		}
	}
}
