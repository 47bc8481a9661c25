package logger

import "testing"

// The middleware logs through these helpers on every request and every
// recovered panic, so they must work before InitLogger has run.
func TestHelpersSafeBeforeInit(t *testing.T) {
	if Logger != nil {
		t.Skip("logger already initialized")
	}

	if got := GetLogger(); got == nil {
		t.Fatal("GetLogger() returned nil before init")
	}

	LogRequest("GET", "/api/health", 200, 3, "127.0.0.1", "test-agent")
	LogPanic("boom")
	Sync()
}
