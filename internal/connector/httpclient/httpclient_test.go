package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/crimson-sun/ideastream/internal/model"
)

func TestPostStream_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Write([]byte("{\"step\":\"init\",\"content\":\"ok\"}\n"))
	}))
	defer srv.Close()

	body, err := New(srv.URL, "").PostStream(context.Background(), "/analyze", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer body.Close()
	got, _ := io.ReadAll(body)
	if string(got) != "{\"step\":\"init\",\"content\":\"ok\"}\n" {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestPostStream_QueryAndForm(t *testing.T) {
	var gotQuery url.Values
	var gotFile, gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		gotFile, gotName = string(b), hdr.Filename
	}))
	defer srv.Close()

	q := url.Values{"prompt": {"café on wheels"}, "actions": {"trends", "competitors"}}
	body, err := New(srv.URL, "").PostStream(context.Background(), "/", q,
		File{Field: "file", Name: "plan.pdf", Data: []byte("%PDF-1.4")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body.Close()

	if diff := cmp.Diff(q, gotQuery); diff != "" {
		t.Errorf("query (-want +got):\n%s", diff)
	}
	if gotFile != "%PDF-1.4" || gotName != "plan.pdf" {
		t.Errorf("file part = %q (%q)", gotFile, gotName)
	}
}

func TestPostStream_EmptyFormStillMultipart(t *testing.T) {
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
	}))
	defer srv.Close()

	body, err := New(srv.URL, "").PostStream(context.Background(), "/", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body.Close()
	if !strings.HasPrefix(gotType, "multipart/form-data; boundary=") {
		t.Fatalf("Content-Type = %q", gotType)
	}
}

func TestPostStream_BearerAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	for _, tc := range []struct{ token, want string }{
		{"secret-token-123", "Bearer secret-token-123"},
		{"", ""},
	} {
		body, err := New(srv.URL, tc.token).PostStream(context.Background(), "/", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		body.Close()
		if gotAuth != tc.want {
			t.Errorf("token %q: Authorization = %q, want %q", tc.token, gotAuth, tc.want)
		}
	}
}

func TestPostStream_APIErrorBodyVerbatim(t *testing.T) {
	long := strings.Repeat("x", 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(long))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").PostStream(context.Background(), "/", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", apiErr.StatusCode)
	}
	if apiErr.Body != long {
		t.Fatalf("body truncated to %d bytes", len(apiErr.Body))
	}
}

func TestPostStream_NoRetryOn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").PostStream(context.Background(), "/", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Error() != "API error 503: Service Unavailable" {
		t.Fatalf("Error() = %q", apiErr.Error())
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 call, got %d", calls.Load())
	}
}

func TestPostStream_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := New(addr, "").PostStream(context.Background(), "/", nil)
	var te *model.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *model.TransportError, got %T: %v", err, err)
	}
	if te.Op != "open" {
		t.Fatalf("Op = %q, want open", te.Op)
	}
}

func TestPostStream_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL, "").PostStream(ctx, "/", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
