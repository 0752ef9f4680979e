package update

import "testing"

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("NEXTUP_DB_PATH", "/tmp/nextup-test.db")
	t.Setenv("NEXTUP_CALENDAR_ENABLED", "yes")
	t.Setenv("NEXTUP_CALENDAR_NAME", "Work")
	t.Setenv("NEXTUP_ADVISORY_TIMEOUT_MS", "750")
	t.Setenv("NEXTUP_TRACE_SCORING", "1")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DBPath != "/tmp/nextup-test.db" {
		t.Fatalf("unexpected db path: %q", cfg.DBPath)
	}
	if !cfg.CalendarEnabled || cfg.CalendarName != "Work" {
		t.Fatalf("unexpected calendar config: %+v", cfg)
	}
	if cfg.AdvisoryTimeoutMS != 750 {
		t.Fatalf("unexpected timeout: %d", cfg.AdvisoryTimeoutMS)
	}
	if !cfg.TraceScoring {
		t.Fatal("expected trace scoring enabled")
	}
}

func TestRuntimeConfigIgnoresInvalidValues(t *testing.T) {
	t.Setenv("NEXTUP_ADVISORY_TIMEOUT_MS", "soon")
	t.Setenv("NEXTUP_CALENDAR_ENABLED", "maybe")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.AdvisoryTimeoutMS != 2000 {
		t.Fatalf("expected default timeout kept, got %d", cfg.AdvisoryTimeoutMS)
	}
	if cfg.CalendarEnabled {
		t.Fatal("expected calendar disabled for unparseable value")
	}
}
