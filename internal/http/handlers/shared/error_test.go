package shared

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/handmade-next/internal/service"

	"github.com/gin-gonic/gin"
)

func serve(t *testing.T, err error, acceptLanguage string) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	if acceptLanguage != "" {
		c.Request.Header.Set("Accept-Language", acceptLanguage)
	}
	RespondServiceError(c, err)

	var body map[string]interface{}
	if decodeErr := json.Unmarshal(w.Body.Bytes(), &body); decodeErr != nil {
		t.Fatalf("decode body: %v", decodeErr)
	}
	return w.Code, body
}

func TestRespondServiceErrorMapsCombinationErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: 2 missing, e.g. [1,4]", service.ErrCombinationIncomplete), 400, "incomplete_combinations"},
		{fmt.Errorf("%w: combinations[1] = [1,4]", service.ErrCombinationDuplicate), 400, "duplicate_combination"},
		{service.ErrCombinationUnexpected, 400, "unexpected_combination"},
		{fmt.Errorf("%w: option 99", service.ErrInvalidReference), 400, "invalid_reference"},
		{service.ErrConfigVersionConflict, 409, "config_version_conflict"},
		{fmt.Errorf("%w: disk full", service.ErrPersistence), 500, "persistence_error"},
		{fmt.Errorf("unexpected"), 500, "persistence_error"},
		{service.ErrForbidden, 403, "forbidden"},
		{service.ErrNotFound, 404, "not_found"},
	}
	for _, tc := range cases {
		status, body := serve(t, tc.err, "en-US")
		if status != tc.status {
			t.Fatalf("%v: status want %d got %d", tc.err, tc.status, status)
		}
		if body["code"] != tc.code {
			t.Fatalf("%v: code want %s got %v", tc.err, tc.code, body["code"])
		}
		if int(body["statusCode"].(float64)) != tc.status {
			t.Fatalf("%v: statusCode mismatch %v", tc.err, body["statusCode"])
		}
		if body["data"] != nil {
			t.Fatalf("%v: data should be null", tc.err)
		}
	}
}

func TestRespondServiceErrorAppendsDetailForClientErrors(t *testing.T) {
	_, body := serve(t, fmt.Errorf("%w: 2 missing, e.g. [1,4]", service.ErrCombinationIncomplete), "en-US")
	want := "Variation combinations are incomplete: 2 missing, e.g. [1,4]"
	if body["message"] != want {
		t.Fatalf("message want %q got %v", want, body["message"])
	}

	_, body = serve(t, fmt.Errorf("%w: pq: connection refused", service.ErrPersistence), "en-US")
	if body["message"] != "Failed to persist data" {
		t.Fatalf("server errors should not leak detail, got %v", body["message"])
	}
}

func TestRespondServiceErrorLocalizes(t *testing.T) {
	_, body := serve(t, service.ErrStockInsufficient, "zh-CN")
	if body["message"] != "库存不足" {
		t.Fatalf("unexpected zh message: %v", body["message"])
	}
	_, body = serve(t, service.ErrStockInsufficient, "")
	if body["message"] != "Không đủ tồn kho" {
		t.Fatalf("unexpected default message: %v", body["message"])
	}
}
