package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"famfinance/internal/logger"
	"famfinance/internal/models"
	"famfinance/internal/services"
	"famfinance/internal/testutil"
	"famfinance/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// testApp holds the full application stack backed by an in-memory SQLite.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	r := New(Services{
		User:         services.NewUserService(db),
		Category:     services.NewCategoryService(db),
		FamilyMember: services.NewFamilyMemberService(db),
		Destination:  services.NewDestinationService(db),
		Transaction:  services.NewTransactionService(db, nil),
		Export:       services.NewExportService(db),
		Dashboard:    services.NewDashboardService(db),
		Audit:        services.NewAuditService(db),
	}, Options{CORSOrigin: "*"})

	return &testApp{DB: db, Router: r}
}

// request makes an HTTP request as the given owner (0 sends no owner header).
func (app *testApp) request(method, path, body string, userID uint) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Usuario-ID", fmt.Sprint(userID))
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createUser registers a user through the API and returns its id.
func (app *testApp) createUser(t *testing.T, email string) uint {
	t.Helper()
	rec := app.request("POST", "/api/v1/usuarios", fmt.Sprintf(`{"nome":"Teste","email":%q}`, email), 0)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user failed: %d %s", rec.Code, rec.Body.String())
	}
	data := parseJSON(t, rec)["dados"].(map[string]interface{})
	return uint(data["id"].(float64))
}

// createCatalog creates a category, family member and destination for userID.
func (app *testApp) createCatalog(t *testing.T, userID uint) (categoryID, memberID, destinationID uint) {
	t.Helper()
	create := func(path, body string) uint {
		rec := app.request("POST", path, body, userID)
		if rec.Code != http.StatusCreated {
			t.Fatalf("POST %s failed: %d %s", path, rec.Code, rec.Body.String())
		}
		return uint(parseJSON(t, rec)["dados"].(map[string]interface{})["id"].(float64))
	}
	categoryID = create("/api/v1/categorias", `{"nome":"Escola","tipo":"despesa"}`)
	memberID = create("/api/v1/familiares", `{"nome":"Ana","parentesco":"filha"}`)
	destinationID = create("/api/v1/destinos", `{"nome":"Colégio"}`)
	return categoryID, memberID, destinationID
}

func (app *testApp) saveExpense(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	rec := app.request("POST", "/api/v1/despesas", body, 0)
	if rec.Code != http.StatusCreated {
		t.Fatalf("save failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

func idsOf(t *testing.T, result map[string]interface{}) []uint {
	t.Helper()
	raw := result["ids"].([]interface{})
	ids := make([]uint, len(raw))
	for i, v := range raw {
		ids[i] = uint(v.(float64))
	}
	return ids
}

func TestHealthAndCORS(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/health", "", 0)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}

	rec = app.request("OPTIONS", "/api/v1/despesas", "", 0)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("expected wildcard origin, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRecurringExpenseFlow(t *testing.T) {
	app := setupApp(t)
	userID := app.createUser(t, "serie@example.com")
	categoryID, memberID, destinationID := app.createCatalog(t, userID)

	body := fmt.Sprintf(`{"usuario_id":%d,"familiar_id":%d,"destino_id":%d,"categoria_id":%d,`+
		`"forma_pagamento":"boleto","valor":"450.00","data":"2024-01-31","observacoes":"Mensalidade",`+
		`"recorrente":true,"parcelas":3}`, userID, memberID, destinationID, categoryID)
	result := app.saveExpense(t, body)

	if result["quantidade"].(float64) != 3 {
		t.Fatalf("expected 3 installments, got %v", result["quantidade"])
	}
	groupID, ok := result["grupo_recorrencia"].(string)
	if !ok || groupID == "" {
		t.Fatal("expected grupo_recorrencia")
	}
	ids := idsOf(t, result)

	// Series listing returns installments in date order with end-of-month clamping.
	rec := app.request("GET", "/api/v1/despesas/grupo/"+groupID, "", userID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rows := parseJSON(t, rec)["dados"].([]interface{})
	wantDates := []string{"2024-01-31", "2024-02-29", "2024-03-31"}
	for i, row := range rows {
		m := row.(map[string]interface{})
		if !strings.HasPrefix(m["data"].(string), wantDates[i]) {
			t.Errorf("installment %d: expected %s, got %v", i, wantDates[i], m["data"])
		}
		wantNotes := fmt.Sprintf("Mensalidade (Parcela %d de 3)", i+1)
		if m["observacoes"] != wantNotes {
			t.Errorf("installment %d: expected %q, got %v", i, wantNotes, m["observacoes"])
		}
	}

	// The same rows are invisible through the income routes.
	rec = app.request("GET", fmt.Sprintf("/api/v1/receitas/%d", ids[0]), "", userID)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 through receitas, got %d", rec.Code)
	}

	// Deleting from the second installment onwards removes two rows.
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/despesas/%d?escopo=esta_e_futuras", ids[1]), "", 0)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	del := parseJSON(t, rec)
	if del["excluidos"].(float64) != 2 {
		t.Errorf("expected 2 deleted, got %v", del["excluidos"])
	}
	if got := testutil.CountTransactions(t, app.DB, "group_id = ?", groupID); got != 1 {
		t.Errorf("expected 1 remaining installment, got %d", got)
	}

	// Deleting an already deleted row is a 404.
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/despesas/%d", ids[2]), "", 0)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if parseJSON(t, rec)["codigo"] != "TRANSACTION_NOT_FOUND" {
		t.Error("expected TRANSACTION_NOT_FOUND")
	}

	// The catalog entries are still referenced by the remaining row.
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/categorias/%d", categoryID), "", userID)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateKeepsSeries(t *testing.T) {
	app := setupApp(t)
	userID := app.createUser(t, "update@example.com")

	result := app.saveExpense(t, fmt.Sprintf(`{"usuario_id":%d,"familiar_id":0,"destino_id":0,"categoria_id":0,`+
		`"forma_pagamento":"cartao","valor":"80","data":"2024-05-10","recorrente":true,"parcelas":2}`, userID))
	ids := idsOf(t, result)

	body := fmt.Sprintf(`{"usuario_id":%d,"familiar_id":0,"destino_id":0,"categoria_id":0,`+
		`"forma_pagamento":"pix","valor":"95.50","data":"2024-05-12","recorrente":true,"parcelas":12}`, userID)
	rec := app.request("PUT", fmt.Sprintf("/api/v1/despesas/%d", ids[0]), body, 0)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["quantidade"].(float64) != 1 {
		t.Error("expected update to touch one row")
	}

	var updated models.Transaction
	if err := app.DB.First(&updated, ids[0]).Error; err != nil {
		t.Fatalf("failed to load updated row: %v", err)
	}
	testutil.AssertDecimal(t, updated.Amount, "95.50")
	if updated.PaymentMethod != "pix" {
		t.Errorf("expected pix, got %q", updated.PaymentMethod)
	}
	if updated.Installments != 2 {
		t.Errorf("expected installments to stay 2, got %d", updated.Installments)
	}
	if got := testutil.CountTransactions(t, app.DB, ""); got != 2 {
		t.Errorf("expected no new rows, got %d", got)
	}
}

func TestOwnerResolution(t *testing.T) {
	app := setupApp(t)
	userID := app.createUser(t, "owner@example.com")

	t.Run("query parameter", func(t *testing.T) {
		rec := app.request("GET", fmt.Sprintf("/api/v1/despesas?usuario_id=%d", userID), "", 0)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing owner", func(t *testing.T) {
		rec := app.request("GET", "/api/v1/despesas", "", 0)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("malformed owner", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/despesas", http.NoBody)
		req.Header.Set("X-Usuario-ID", "abc")
		rec := httptest.NewRecorder()
		app.Router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["sucesso"] != false || result["codigo"] != "INVALID_INPUT" {
			t.Errorf("unexpected envelope %v", result)
		}
	})
}

func TestExportAndDashboard(t *testing.T) {
	app := setupApp(t)
	userID := app.createUser(t, "export@example.com")

	app.saveExpense(t, fmt.Sprintf(`{"usuario_id":%d,"familiar_id":0,"destino_id":0,"categoria_id":0,`+
		`"forma_pagamento":"pix","valor":"30","data":"2024-06-05"}`, userID))

	rec := app.request("GET", "/api/v1/despesas/exportar", "", userID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), ".xlsx") {
		t.Errorf("expected xlsx attachment, got %q", rec.Header().Get("Content-Disposition"))
	}

	rec = app.request("GET", "/api/v1/dashboard?ano=2024&mes=6", "", userID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := parseJSON(t, rec)["dados"].(map[string]interface{})
	testutil.AssertDecimal(t, decimal.RequireFromString(data["total_despesas"].(string)), "30")
}
