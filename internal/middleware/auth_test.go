package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/pennypool/internal/auth"
	"github.com/mmynk/pennypool/internal/models"
)

type ping struct{}

func echoUser(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
	return connect.NewResponse(&struct{ UserID string }{GetUserID(ctx)}), nil
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	handler := RequireAuth(jwtManager)(echoUser)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid token", "Bearer " + token, "user-1"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic " + token, ""},
		{"bad token", "Bearer nope", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := connect.NewRequest(&ping{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}

			resp, err := handler(context.Background(), req)
			if tt.want == "" {
				if connect.CodeOf(err) != connect.CodeUnauthenticated {
					t.Fatalf("expected Unauthenticated, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := resp.Any().(*struct{ UserID string }).UserID
			if got != tt.want {
				t.Errorf("user id = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoggingInterceptorPassesThrough(t *testing.T) {
	wantErr := connect.NewError(connect.CodeNotFound, errors.New("missing"))
	handler := LoggingInterceptor()(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, wantErr
	})

	_, err := handler(WithUserID(context.Background(), "user-1"), connect.NewRequest(&ping{}))
	if !errors.Is(err, wantErr) {
		t.Errorf("expected the handler error back, got %v", err)
	}
}
