package branding

import "testing"

func TestSiteName(t *testing.T) {
	if SiteName == "" {
		t.Fatal("expected SiteName to be non-empty")
	}
	if TitleSeparator != " | " {
		t.Fatalf("TitleSeparator = %q, want %q", TitleSeparator, " | ")
	}
}
