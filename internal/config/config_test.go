package config

import "testing"

func TestMustLoad_Defaults(t *testing.T) {
	cfg := MustLoad()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.APIKey != "" {
		t.Error("APIKey should default to empty (auth disabled)")
	}
	if cfg.AllowedCIDRs != "" {
		t.Error("AllowedCIDRs should default to empty (filtering disabled)")
	}
	if !cfg.TrustProxy {
		t.Error("TrustProxy should default to true")
	}
	if cfg.VerboseRequestLog {
		t.Error("VerboseRequestLog should default to false")
	}
	if cfg.SSEChunkSize <= 0 {
		t.Errorf("SSEChunkSize = %d, want positive", cfg.SSEChunkSize)
	}
	if cfg.ModelName == "" {
		t.Error("ModelName should have a default")
	}
}

func TestMustLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("ALLOWED_CALLER_CIDR", "10.0.0.0/8,192.0.2.0/24")
	t.Setenv("API_KEY", "sekrit")
	t.Setenv("TRUST_PROXY", "false")
	t.Setenv("VERBOSE_REQUEST_LOG", "true")
	t.Setenv("SSE_CHUNK_SIZE", "48")
	t.Setenv("MODEL_NAME", "eliza-classic")

	cfg := MustLoad()

	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.AllowedCIDRs != "10.0.0.0/8,192.0.2.0/24" {
		t.Errorf("AllowedCIDRs = %q", cfg.AllowedCIDRs)
	}
	if cfg.APIKey != "sekrit" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.TrustProxy {
		t.Error("TrustProxy = true, want false")
	}
	if !cfg.VerboseRequestLog {
		t.Error("VerboseRequestLog = false, want true")
	}
	if cfg.SSEChunkSize != 48 {
		t.Errorf("SSEChunkSize = %d, want 48", cfg.SSEChunkSize)
	}
	if cfg.ModelName != "eliza-classic" {
		t.Errorf("ModelName = %q", cfg.ModelName)
	}
}

func TestGetbool(t *testing.T) {
	cases := map[string]bool{
		"1": true, "true": true, "yes": true, "TRUE": true,
		"0": false, "false": false, "no": false, "banana": false,
	}
	for v, want := range cases {
		t.Setenv("SOME_FLAG", v)
		if got := getbool("SOME_FLAG", false); got != want {
			t.Errorf("getbool(%q) = %v, want %v", v, got, want)
		}
	}
}
