package finance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/Hassan-Macow/machad-darul-waxyi/app/finance"
	"github.com/Hassan-Macow/machad-darul-waxyi/app/models"
)

func newTestApp(t *testing.T) (*fiber.App, *finance.MemoryStore) {
	t.Helper()
	store := finance.NewMemoryStore()
	a := NewAPI(finance.NewService(store))

	app := fiber.New()
	app.Post("/api/finance/generate", a.GenerateMonthlyFeesAPI)
	app.Get("/api/finance/summary", a.GetFinanceSummaryAPI)
	app.Get("/api/finance/payments", a.GetPaymentsAPI)
	app.Put("/api/finance/payments/:id/status", a.MarkPaymentStatusAPI)
	app.Get("/api/finance/outstanding", a.GetOutstandingBalancesAPI)
	return app, store
}

func seedRoster(t *testing.T, store *finance.MemoryStore) models.Student {
	t.Helper()
	parent := store.PutParent(models.Parent{Name: "Amina Hassan", Phone: "0700123456"})
	class := store.PutClass(models.Class{Name: "Grade 1"})
	return store.PutStudent(models.Student{
		Name:     "Yusuf",
		ParentID: parent.ID,
		ClassID:  class.ID,
		Fee:      60,
		Discount: 10,
		Status:   models.StudentActive,
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, payload
}

func TestGenerateEndpoint(t *testing.T) {
	app, store := newTestApp(t)
	seedRoster(t, store)

	resp, payload := doJSON(t, app, "POST", "/api/finance/generate", fiber.Map{"month": "October 2025"})
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200 (%v)", resp.StatusCode, payload)
	}
	data := payload["data"].(map[string]interface{})
	if data["payments_created"].(float64) != 1 {
		t.Errorf("payments_created = %v, want 1", data["payments_created"])
	}
	if data["month"] != "October 2025" {
		t.Errorf("month = %v, want October 2025", data["month"])
	}

	// Second run is an idempotent no-op.
	_, payload = doJSON(t, app, "POST", "/api/finance/generate", fiber.Map{"month": "October 2025"})
	data = payload["data"].(map[string]interface{})
	if data["payments_created"].(float64) != 0 {
		t.Errorf("second run payments_created = %v, want 0", data["payments_created"])
	}
}

func TestGenerateEndpointRejectsBadMonth(t *testing.T) {
	app, _ := newTestApp(t)
	resp, _ := doJSON(t, app, "POST", "/api/finance/generate", fiber.Map{"month": "not-a-month"})
	if resp.StatusCode != 400 {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMarkPaymentStatusEndpoint(t *testing.T) {
	app, store := newTestApp(t)
	seedRoster(t, store)
	doJSON(t, app, "POST", "/api/finance/generate", fiber.Map{"month": "October 2025"})

	_, payload := doJSON(t, app, "GET", "/api/finance/payments?month=October+2025", nil)
	rows := payload["data"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("got %d payments, want 1", len(rows))
	}
	id := rows[0].(map[string]interface{})["id"].(string)

	resp, payload := doJSON(t, app, "PUT", "/api/finance/payments/"+id+"/status", fiber.Map{"status": "paid"})
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200 (%v)", resp.StatusCode, payload)
	}

	_, payload = doJSON(t, app, "GET", "/api/finance/summary?month=October+2025", nil)
	summaries := payload["data"].([]interface{})
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	s := summaries[0].(map[string]interface{})
	if s["status"] != "completed" || s["balance"].(float64) != 0 {
		t.Errorf("summary = %v, want completed with zero balance", s)
	}
}

func TestMarkPaymentStatusEndpointNotFound(t *testing.T) {
	app, _ := newTestApp(t)
	resp, _ := doJSON(t, app, "PUT", "/api/finance/payments/missing/status", fiber.Map{"status": "paid"})
	if resp.StatusCode != 404 {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestOutstandingEndpoint(t *testing.T) {
	app, store := newTestApp(t)
	student := seedRoster(t, store)

	doJSON(t, app, "POST", "/api/finance/generate", fiber.Map{"month": "September 2025"})
	doJSON(t, app, "POST", "/api/finance/generate", fiber.Map{"month": "October 2025"})

	resp, payload := doJSON(t, app, "GET", "/api/finance/outstanding?current_month=October+2025", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	rows := payload["data"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0].(map[string]interface{})
	if row["student_id"] != student.ID {
		t.Errorf("student_id = %v, want %v", row["student_id"], student.ID)
	}
	if row["total_outstanding"].(float64) != 100 {
		t.Errorf("total_outstanding = %v, want 100 (two months at 50)", row["total_outstanding"])
	}
	if row["current_month_status"] != "unpaid" {
		t.Errorf("current_month_status = %v, want unpaid", row["current_month_status"])
	}
}
