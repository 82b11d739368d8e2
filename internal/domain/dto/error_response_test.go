package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestErrorResponse_Error(t *testing.T) {
	e := ErrorResponse{Message: "oops"}
	if e.Error() != "oops" {
		t.Fatalf("want 'oops' got %q", e.Error())
	}
	e2 := ErrorResponse{Message: "oops", ErrorDetails: "bad"}
	if e2.Error() != "oops: bad" {
		t.Fatalf("want 'oops: bad' got %q", e2.Error())
	}
}

func TestNewErrorResponse(t *testing.T) {
	e := NewErrorResponse("msg", nil)
	if e.Message != "msg" || e.ErrorDetails != "" {
		t.Fatalf("unexpected %+v", e)
	}
	if e.Timestamp.IsZero() || time.Since(e.Timestamp) > time.Second {
		t.Fatalf("timestamp not set")
	}

	e2 := NewErrorResponse("msg", errors.New("boom"))
	if e2.ErrorDetails != "boom" || e2.Message != "msg" {
		t.Fatalf("unexpected %+v", e2)
	}
}

func TestErrorResponse_JSON(t *testing.T) {
	b, err := json.Marshal(NewErrorResponse("data file not found", nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "error_details") || !strings.Contains(string(b), `"message":"data file not found"`) {
		t.Fatalf("unexpected json %s", b)
	}

	var out ChartListResponse
	if err := json.Unmarshal([]byte(`{"fingerprint":"fp","rows":3,"charts":[{"position":1,"id":"value_by_category","kind":"image"}]}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Rows != 3 || out.Charts[0].ID != "value_by_category" {
		t.Fatalf("unexpected %+v", out)
	}
}
