package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"

	"github.com/BruksfildServices01/material-rental/internal/audit"
	"github.com/BruksfildServices01/material-rental/internal/config"
	"github.com/BruksfildServices01/material-rental/internal/fieldcrypt"
	"github.com/BruksfildServices01/material-rental/internal/identity"
	"github.com/BruksfildServices01/material-rental/internal/infra/docstore"
	"github.com/BruksfildServices01/material-rental/internal/infra/events"
	"github.com/BruksfildServices01/material-rental/internal/infra/gallery"
	"github.com/BruksfildServices01/material-rental/internal/logging"
	"github.com/BruksfildServices01/material-rental/internal/metrics"
	"github.com/BruksfildServices01/material-rental/internal/validators"
)

const operatorUID = "operator-uid"

type RoutesSuite struct {
	suite.Suite

	store    *docstore.MemoryStore
	router   *gin.Engine
	dispatch *audit.Dispatcher
	operator string
	stranger string
}

func TestRoutesSuite(t *testing.T) {
	suite.Run(t, new(RoutesSuite))
}

func (s *RoutesSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(validators.Register())

	s.store = docstore.NewMemoryStore()
	cipher, err := fieldcrypt.New("routes-test")
	s.Require().NoError(err)

	verifier := identity.NewJWTVerifier("jwt-secret")
	s.operator, err = verifier.Sign(operatorUID, time.Hour)
	s.Require().NoError(err)
	s.stranger, err = verifier.Sign("someone-else", time.Hour)
	s.Require().NoError(err)

	auditLog := audit.New(s.store)
	s.dispatch = audit.NewDispatcher(auditLog)

	s.router = gin.New()
	RegisterRoutes(s.router, Deps{
		Config: &config.Config{
			MetricsEnabled: true,
			MetricsPath:    "/metrics",
		},
		Store:    s.store,
		Cipher:   cipher,
		Gallery:  gallery.Noop{},
		Gate:     identity.NewGate(verifier, operatorUID),
		Events:   &events.Recorder{},
		Metrics:  metrics.New(),
		Audit:    s.dispatch,
		AuditLog: auditLog,
		Log:      logging.Nop{},
	})
}

func (s *RoutesSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.NoError(s.dispatch.Close(ctx))
}

func (s *RoutesSuite) request(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RoutesSuite) createMaterial(id, name string) {
	w := s.request(http.MethodPost, "/api/material", s.operator, map[string]any{
		"id":               id,
		"name":             name,
		"pricePerDay":      25,
		"unavailableDates": []string{},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
}

func validMessage() map[string]any {
	return map[string]any{
		"idMaterial":   "m1",
		"materialName": "Tente",
		"firstName":    "Jean",
		"lastName":     "Dupont",
		"phone":        "0612345678",
		"email":        "jean@example.com",
		"city":         "Lyon",
		"street":       "1 rue de la Paix",
		"bookingDates": []string{"2024-07-01"},
		"total":        50,
	}
}

// ======================================================
// AUTHORIZATION
// ======================================================

func (s *RoutesSuite) TestOperatorRoutesRequireCredential() {
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/booking"},
		{http.MethodGet, "/api/booking/b1"},
		{http.MethodGet, "/api/booking/unavailableDates/m1"},
		{http.MethodPost, "/api/booking"},
		{http.MethodPut, "/api/booking/b1"},
		{http.MethodPut, "/api/booking/markAsPaid/b1"},
		{http.MethodDelete, "/api/booking/b1"},
		{http.MethodPost, "/api/material"},
		{http.MethodPut, "/api/material/m1"},
		{http.MethodDelete, "/api/material/m1"},
		{http.MethodGet, "/api/messaging"},
		{http.MethodGet, "/api/messaging/x"},
		{http.MethodPut, "/api/messaging/x"},
		{http.MethodDelete, "/api/messaging/x"},
		{http.MethodPost, "/api/messaging/create"},
		{http.MethodGet, "/api/audit-logs"},
	}

	for _, rt := range routes {
		w := s.request(rt.method, rt.path, "", nil)
		s.Equal(http.StatusUnauthorized, w.Code, rt.path)
		s.Equal("unauthorized", gjson.Get(w.Body.String(), "error_code").String())

		w = s.request(rt.method, rt.path, s.stranger, nil)
		s.Equal(http.StatusForbidden, w.Code, rt.path)
		s.Equal("forbidden", gjson.Get(w.Body.String(), "error_code").String())
	}
}

// ======================================================
// MATERIAL
// ======================================================

func (s *RoutesSuite) TestEmptyListsStoredAsPlaceholder() {
	s.createMaterial("m1", "Tente")

	raw, err := s.store.Get(context.Background(), "material", "m1")
	s.Require().NoError(err)
	s.JSONEq(`["emptyArray"]`, gjson.GetBytes(raw, "unavailableDates").Raw)

	w := s.request(http.MethodGet, "/api/material/m1", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.JSONEq(`[]`, gjson.Get(body, "unavailableDates").Raw)
	s.JSONEq(`[]`, gjson.Get(body, "arrayPicture").Raw)
	s.NotContains(body, "emptyArray")
}

func (s *RoutesSuite) TestMaterialLifecycle() {
	w := s.request(http.MethodPost, "/api/material", s.operator, map[string]any{"name": "Sans id"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("material_id_required", gjson.Get(w.Body.String(), "error_code").String())

	s.createMaterial("m1", "Tente")

	w = s.request(http.MethodPost, "/api/material", s.operator, map[string]any{"id": "m1"})
	s.Equal(http.StatusConflict, w.Code)

	w = s.request(http.MethodGet, "/api/material/nope", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Matériel introuvable", gjson.Get(w.Body.String(), "message").String())

	w = s.request(http.MethodGet, "/api/material/bad.key", "", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("invalid_key", gjson.Get(w.Body.String(), "error_code").String())

	w = s.request(http.MethodPut, "/api/material/m1", s.operator, map[string]any{"name": "Grande tente"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("Grande tente", gjson.Get(w.Body.String(), "name").String())

	w = s.request(http.MethodGet, "/api/material", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(int64(1), gjson.Get(w.Body.String(), "#").Int())

	w = s.request(http.MethodDelete, "/api/material/m1", s.operator, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Matériel supprimé", gjson.Get(w.Body.String(), "message").String())

	w = s.request(http.MethodDelete, "/api/material/m1", s.operator, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RoutesSuite) TestUpdateKeepsReservedDatesWhenOmitted() {
	s.createMaterial("m1", "Tente")
	w := s.request(http.MethodPost, "/api/booking", s.operator, map[string]any{
		"id": "b1", "idMaterial": "m1", "bookingDates": []string{"2024-01-01"},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.request(http.MethodPut, "/api/material/m1", s.operator, map[string]any{"name": "Tente XL"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`["2024-01-01"]`, gjson.Get(w.Body.String(), "unavailableDates").Raw)

	w = s.request(http.MethodPut, "/api/material/m1", s.operator, map[string]any{
		"name": "Tente XL", "unavailableDates": []string{},
	})
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, gjson.Get(w.Body.String(), "unavailableDates").Raw)
}

func (s *RoutesSuite) TestSearchFoldsCaseAndHyphens() {
	s.createMaterial("m1", "Super Tent")
	s.createMaterial("m2", "Kayak")

	w := s.request(http.MethodGet, "/api/material/search/super-tent", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(int64(1), gjson.Get(w.Body.String(), "#").Int())
	s.Equal("m1", gjson.Get(w.Body.String(), "0.id").String())

	w = s.request(http.MethodGet, "/api/material/search/zzz", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

// ======================================================
// BOOKING
// ======================================================

func (s *RoutesSuite) TestBookingLifecycle() {
	s.createMaterial("m1", "Tente")

	w := s.request(http.MethodPost, "/api/booking", s.operator, map[string]any{
		"id":           "b1",
		"idMaterial":   "m1",
		"bookingDates": []string{"2024-01-01", "2024-01-02"},
		"firstName":    "Jean",
		"phone":        "0612345678",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal("Jean", gjson.Get(w.Body.String(), "firstName").String())

	w = s.request(http.MethodGet, "/api/booking/unavailableDates/m1", s.operator, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`["2024-01-01","2024-01-02"]`, w.Body.String())

	raw, err := s.store.Get(context.Background(), "booking", "b1")
	s.Require().NoError(err)
	s.NotEqual("Jean", gjson.GetBytes(raw, "firstName").String(), "PII stored encrypted")

	w = s.request(http.MethodPost, "/api/booking", s.operator, map[string]any{"id": "b1", "idMaterial": "m1"})
	s.Equal(http.StatusConflict, w.Code)

	w = s.request(http.MethodPut, "/api/booking/b1", s.operator, map[string]any{
		"idMaterial": "m1", "bookingDates": []string{"2024-01-02", "2024-01-03"},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("b1", gjson.Get(w.Body.String(), "bookingRes.id").String())
	s.JSONEq(`["2024-01-02","2024-01-03"]`, gjson.Get(w.Body.String(), "materialRes.unavailableDates").Raw)

	w = s.request(http.MethodPut, "/api/booking/markAsPaid/b1", s.operator, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Marqué comme payé", gjson.Get(w.Body.String(), "message").String())

	w = s.request(http.MethodGet, "/api/booking/b1", s.operator, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.True(gjson.Get(w.Body.String(), "isCompleted").Bool())

	w = s.request(http.MethodDelete, "/api/booking/b1", s.operator, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, gjson.Get(w.Body.String(), "unavailableDates").Raw)

	w = s.request(http.MethodGet, "/api/booking/b1", s.operator, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Réservation introuvable", gjson.Get(w.Body.String(), "message").String())
}

func (s *RoutesSuite) TestBookingUnknownMaterial() {
	w := s.request(http.MethodPost, "/api/booking", s.operator, map[string]any{
		"id": "b1", "idMaterial": "nope", "bookingDates": []string{"2024-01-01"},
	})
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("material_not_found", gjson.Get(w.Body.String(), "error_code").String())

	w = s.request(http.MethodGet, "/api/booking", s.operator, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

// ======================================================
// MESSAGING
// ======================================================

func (s *RoutesSuite) TestInvalidPhoneRejectedWithoutMutation() {
	s.createMaterial("m1", "Tente")

	msg := validMessage()
	msg["phone"] = "12345"
	w := s.request(http.MethodPost, "/api/messaging", "", msg)

	s.Equal(http.StatusBadRequest, w.Code)
	body := w.Body.String()
	s.Equal("validation_failed", gjson.Get(body, "error_code").String())
	s.Equal("phone", gjson.Get(body, "details.0.field").String())
	s.Equal("frphone", gjson.Get(body, "details.0.rule").String())

	docs, err := s.store.List(context.Background(), "messaging")
	s.Require().NoError(err)
	s.Empty(docs)

	w = s.request(http.MethodGet, "/api/material/m1", "", nil)
	s.JSONEq(`[]`, gjson.Get(w.Body.String(), "unavailableDates").Raw)
}

func (s *RoutesSuite) TestMessageToBooking() {
	s.createMaterial("m1", "Tente")

	w := s.request(http.MethodPost, "/api/messaging", "", validMessage())
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal("Réservation crée", gjson.Get(w.Body.String(), "message").String())

	w = s.request(http.MethodGet, "/api/material/m1", "", nil)
	s.JSONEq(`["2024-07-01"]`, gjson.Get(w.Body.String(), "unavailableDates").Raw)

	w = s.request(http.MethodGet, "/api/messaging", s.operator, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().Equal(int64(1), gjson.Get(w.Body.String(), "#").Int())
	id := gjson.Get(w.Body.String(), "0.id").String()
	s.False(gjson.Get(w.Body.String(), "0.isRead").Bool())
	s.Equal("Dupont", gjson.Get(w.Body.String(), "0.lastName").String())

	w = s.request(http.MethodPut, "/api/messaging/"+id, s.operator, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.True(gjson.Get(w.Body.String(), "isRead").Bool())

	w = s.request(http.MethodPost, "/api/messaging/create", s.operator, map[string]any{"id": id})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal(id, gjson.Get(w.Body.String(), "id").String())

	w = s.request(http.MethodGet, "/api/messaging/"+id, s.operator, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Message introuvable", gjson.Get(w.Body.String(), "message").String())

	w = s.request(http.MethodGet, "/api/booking/"+id, s.operator, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/material/m1", "", nil)
	s.JSONEq(`["2024-07-01"]`, gjson.Get(w.Body.String(), "unavailableDates").Raw)
}

func (s *RoutesSuite) TestRejectMessageReleasesDates() {
	s.createMaterial("m1", "Tente")
	s.Require().Equal(http.StatusCreated, s.request(http.MethodPost, "/api/messaging", "", validMessage()).Code)

	w := s.request(http.MethodGet, "/api/messaging", s.operator, nil)
	id := gjson.Get(w.Body.String(), "0.id").String()

	w = s.request(http.MethodDelete, "/api/messaging/"+id, s.operator, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, gjson.Get(w.Body.String(), "unavailableDates").Raw)

	w = s.request(http.MethodDelete, "/api/messaging/"+id, s.operator, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Réservation introuvable", gjson.Get(w.Body.String(), "message").String())
}

// ======================================================
// OPS
// ======================================================

func (s *RoutesSuite) TestHealthAndMetrics() {
	w := s.request(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("ok", gjson.Get(w.Body.String(), "status").String())

	s.request(http.MethodGet, "/api/material", "", nil)

	w = s.request(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "material_rental_http_requests_total")
}

func (s *RoutesSuite) TestAuditTrail() {
	s.createMaterial("m1", "Tente")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Require().NoError(s.dispatch.Close(ctx))

	w := s.request(http.MethodGet, "/api/audit-logs?action=material_created", s.operator, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(int64(1), gjson.Get(w.Body.String(), "total").Int())
	s.Equal("m1", gjson.Get(w.Body.String(), "logs.0.entityId").String())
}
