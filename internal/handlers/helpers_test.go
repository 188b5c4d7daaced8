package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"famfinance/internal/logger"
	"famfinance/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// mockAuditService records audit calls.
type mockAuditService struct {
	mu      sync.Mutex
	actions []string
}

func (m *mockAuditService) Log(_ uint, action, _ string, _ uint, _ string, _ map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, action)
}

func injectUserID(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	if result["sucesso"] != false {
		t.Errorf("expected sucesso=false, got %v", result["sucesso"])
	}
	if result["codigo"] != code {
		t.Errorf("expected error code %q, got %v (erro: %v)", code, result["codigo"], result["erro"])
	}
}

func TestParsePathID(t *testing.T) {
	r := gin.New()
	r.GET("/x/:id", func(c *gin.Context) {
		id, err := parsePathID(c, "id")
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(200, gin.H{"id": id})
	})

	t.Run("valid", func(t *testing.T) {
		rec := doRequest(r, "GET", "/x/42", "")
		if rec.Code != 200 {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("not_a_number", func(t *testing.T) {
		rec := doRequest(r, "GET", "/x/abc", "")
		if rec.Code != 400 {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}
