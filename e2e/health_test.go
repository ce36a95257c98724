package e2e

import (
	"net/http"
	"testing"
)

func TestHealth(t *testing.T) {
	ta := setupApp(t, testConfig(t))

	resp, err := doRequest(ta.app, http.MethodGet, "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)

	body := parseJSON(t, resp)
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", body["status"])
	}

	services, ok := body["services"].(map[string]interface{})
	if !ok {
		t.Fatal("expected 'services' object in response")
	}
	if services["openai"] != false {
		t.Errorf("expected openai=false without a credential, got %v", services["openai"])
	}
}
