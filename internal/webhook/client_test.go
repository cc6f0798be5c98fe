package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/mmeshcher/reintegro-form/internal/model"
)

func testPayload() model.Payload {
	return model.Payload{
		FirstName:         "Ana",
		LastName:          "Diaz",
		NationalID:        "12345678",
		ReimbursementType: "Estudios",
		Attachment: model.AttachmentPayload{
			Name:      "a.pdf",
			MediaType: "application/pdf",
			Size:      3,
			Content:   "YWJj",
		},
		SubmittedAt: "2026-01-02T03:04:05.000Z",
		Channel:     model.ChannelTag,
	}
}

func TestTargetURL(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "no secret",
			opts: Options{EndpointURL: "https://flow.example/hook"},
			want: "https://flow.example/hook",
		},
		{
			name: "blank secret is ignored",
			opts: Options{EndpointURL: "https://flow.example/hook", SecretKey: "   "},
			want: "https://flow.example/hook",
		},
		{
			name: "default param name",
			opts: Options{EndpointURL: "https://flow.example/hook", SecretKey: "s3cr3t"},
			want: "https://flow.example/hook?code=s3cr3t",
		},
		{
			name: "param k appended to existing query",
			opts: Options{EndpointURL: "https://flow.example/hook?api-version=1", SecretKey: "a b&c", QueryParamName: "k"},
			want: "https://flow.example/hook?api-version=1&k=a+b%26c",
		},
		{
			name: "header delivery leaves url untouched",
			opts: Options{EndpointURL: "https://flow.example/hook", SecretKey: "s3cr3t", SecretDelivery: DeliveryHeader},
			want: "https://flow.example/hook",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewClient(tt.opts, nil).TargetURL()
			if got != tt.want {
				t.Fatalf("TargetURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSend_OK(t *testing.T) {
	var received model.Payload
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q, want application/json", ct)
		}
		if got := r.URL.Query().Get("code"); got != "s3cr3t" {
			t.Errorf("code = %q, want s3cr3t", got)
		}
		if h := r.Header.Get("x-api-key"); h != "" {
			t.Errorf("unexpected secret header %q", h)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	client := NewClient(Options{EndpointURL: ts.URL, SecretKey: "s3cr3t"}, ts.Client())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := client.Send(ctx, testPayload()); err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if received.Channel != model.ChannelTag || received.Attachment.Content != "YWJj" {
		t.Fatalf("unexpected payload: %+v", received)
	}
}

func TestSend_WireFormat(t *testing.T) {
	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	p := testPayload()
	p.Comments = "factura"

	if err := NewClient(Options{EndpointURL: ts.URL}, ts.Client()).Send(context.Background(), p); err != nil {
		t.Fatalf("Send error: %v", err)
	}

	want := map[string]any{
		"nombre":        "Ana",
		"apellido":      "Diaz",
		"dni":           "12345678",
		"tipoReintegro": "Estudios",
		"comentarios":   "factura",
		"archivo": map[string]any{
			"nombre":    "a.pdf",
			"tipo":      "application/pdf",
			"tamano":    float64(3),
			"contenido": "YWJj",
		},
		"submittedAt": "2026-01-02T03:04:05.000Z",
		"canal":       model.ChannelTag,
	}

	if !reflect.DeepEqual(body, want) {
		t.Fatalf("request body = %#v, want %#v", body, want)
	}
}

func TestSend_HeaderDelivery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Flow-Key"); got != "s3cr3t" {
			t.Errorf("header = %q, want s3cr3t", got)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("query = %q, want empty", r.URL.RawQuery)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewClient(Options{
		EndpointURL:    ts.URL,
		SecretKey:      "s3cr3t",
		SecretDelivery: DeliveryHeader,
		SecretHeader:   "X-Flow-Key",
	}, ts.Client())

	if err := client.Send(context.Background(), testPayload()); err != nil {
		t.Fatalf("Send error: %v", err)
	}
}

func TestSend_StatusErrorDetails(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantMsg     string
	}{
		{
			name:        "json body",
			contentType: "application/json; charset=utf-8",
			body:        "{ \"error\": \"bad\" }\n",
			wantMsg:     `HTTP 500 - {"error":"bad"}`,
		},
		{
			name:        "text body",
			contentType: "text/plain",
			body:        "upstream down",
			wantMsg:     "HTTP 500 - upstream down",
		},
		{
			name:        "broken json body",
			contentType: "application/json",
			body:        "{not json",
			wantMsg:     "HTTP 500",
		},
		{
			name:        "empty body",
			contentType: "text/plain",
			body:        "",
			wantMsg:     "HTTP 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.Copy(io.Discard, r.Body)
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer ts.Close()

			err := NewClient(Options{EndpointURL: ts.URL}, ts.Client()).Send(context.Background(), testPayload())

			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected *StatusError, got %v", err)
			}
			if statusErr.StatusCode != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", statusErr.StatusCode)
			}
			if err.Error() != tt.wantMsg {
				t.Fatalf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestSend_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := ts.URL
	ts.Close()

	err := NewClient(Options{EndpointURL: addr}, nil).Send(context.Background(), testPayload())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Fatalf("transport failure must not be a StatusError: %v", err)
	}
}

func TestSend_MalformedURL(t *testing.T) {
	err := NewClient(Options{EndpointURL: ""}, nil).Send(context.Background(), testPayload())
	if err == nil {
		t.Fatalf("expected error for empty endpoint")
	}
}
