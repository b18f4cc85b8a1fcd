package cloudclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
)

func TestResCountsBySecrets_Request(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/v1/cloud/vendors/aws/accounts/res_counts/by_secrets" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get(UserHeader); got != "alice" {
			t.Errorf("%s = %q, want alice", UserHeader, got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"a":"id1"}` {
			t.Errorf("body = %s, want {\"a\":\"id1\"}", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":0,"message":"","data":{"items":[{"type":"cvm","count":3}]}}`))
	}))
	defer ts.Close()

	c := New(ts.URL+"/", WithUser("alice"), WithHTTPClient(ts.Client()))
	items, err := c.ResCountsBySecrets(context.Background(), enumor.Aws, map[string]string{"a": "id1"})
	if err != nil {
		t.Fatalf("ResCountsBySecrets: %v", err)
	}
	if len(items) != 1 || items[0].Type != enumor.CvmResType || items[0].Count != 3 {
		t.Errorf("items = %+v, want [cvm 3]", items)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("server saw %d calls, want 1", n)
	}
}

func TestDo_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   int32
	}{
		{"envelope error", http.StatusNotFound, `{"code":2000005,"message":"secret not found"}`, 2000005},
		{"code on 200", http.StatusOK, `{"code":2000001,"message":"internal"}`, 2000001},
		{"plain text", http.StatusBadGateway, `bad gateway`, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			c := New(ts.URL)
			_, err := c.ResCountsBySecrets(context.Background(), enumor.Aws, map[string]string{"a": "id1"})
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tc.status || apiErr.Code != tc.code {
				t.Errorf("got status=%d code=%d, want %d %d", apiErr.StatusCode, apiErr.Code, tc.status, tc.code)
			}
		})
	}
}

func TestDo_InvalidJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer ts.Close()

	_, err := New(ts.URL).ResCountsBySecrets(context.Background(), enumor.Aws, map[string]string{"a": "id1"})
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("a 200 with bad JSON should not be an APIError: %v", err)
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0}`))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(ts.URL).ResCountsBySecrets(ctx, enumor.Aws, map[string]string{"a": "id1"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("0123456789abc", 10); got != "0123456789..." {
		t.Errorf("truncate(long) = %q", got)
	}
}
