package middleware_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dayboard/dayboard-api/internal/middleware"
)

// resolverFunc adapts a function to the middleware.UserResolver interface.
type resolverFunc func(ctx context.Context, cognitoSub string) (string, error)

func (f resolverFunc) ResolveUserID(ctx context.Context, cognitoSub string) (string, error) {
	return f(ctx, cognitoSub)
}

func signedToken(t *testing.T, privKey *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(privKey)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func jwksServer(t *testing.T, kid string, privKey *rsa.PrivateKey) *httptest.Server {
	t.Helper()
	jwks := map[string]any{
		"keys": []map[string]any{
			{
				"kty": "RSA",
				"kid": kid,
				"use": "sig",
				"alg": "RS256",
				"n":   base64.RawURLEncoding.EncodeToString(privKey.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(privKey.E)).Bytes()),
			},
		},
	}
	data, _ := json.Marshal(jwks)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newJWTAuth(t *testing.T, srvURL string, resolver middleware.UserResolver) *middleware.Auth {
	t.Helper()
	auth, err := middleware.NewAuth(middleware.AuthConfig{
		DevMode:      false,
		JWKSClient:   middleware.NewJWKSClient(srvURL),
		Issuer:       "https://cognito-idp.ap-northeast-1.amazonaws.com/pool-1",
		AppClientID:  "client-1",
		UserResolver: resolver,
	})
	if err != nil {
		t.Fatalf("failed to create auth middleware: %v", err)
	}
	return auth
}

func passthroughResolver(userID string) middleware.UserResolver {
	return resolverFunc(func(ctx context.Context, cognitoSub string) (string, error) {
		return userID, nil
	})
}

func TestAuth_DevMode(t *testing.T) {
	auth, err := middleware.NewAuth(middleware.AuthConfig{DevMode: true})
	if err != nil {
		t.Fatalf("failed to create auth middleware: %v", err)
	}

	var capturedUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserID = middleware.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		userIDHdr  string
		wantStatus int
		wantUserID string
	}{
		{"with X-User-ID", "dev-user-1", http.StatusOK, "dev-user-1"},
		{"without X-User-ID", "", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capturedUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/dayview", nil)
			if tt.userIDHdr != "" {
				req.Header.Set("X-User-ID", tt.userIDHdr)
			}
			w := httptest.NewRecorder()

			auth.Middleware(inner).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusOK && capturedUserID != tt.wantUserID {
				t.Errorf("expected userID=%q, got %q", tt.wantUserID, capturedUserID)
			}
		})
	}
}

func TestAuth_DevMode_SkipsHealthCheck(t *testing.T) {
	auth, err := middleware.NewAuth(middleware.AuthConfig{DevMode: true})
	if err != nil {
		t.Fatalf("failed to create auth middleware: %v", err)
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	auth.Middleware(inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for /health, got %d", w.Code)
	}
}

func TestAuth_SkipsAuthEndpoints(t *testing.T) {
	privKey, _ := rsa.GenerateKey(rand.Reader, 2048)
	srv := jwksServer(t, "kid-1", privKey)

	tests := []struct {
		name string
		auth func(t *testing.T) *middleware.Auth
	}{
		{
			"dev mode",
			func(t *testing.T) *middleware.Auth {
				auth, err := middleware.NewAuth(middleware.AuthConfig{DevMode: true})
				if err != nil {
					t.Fatalf("failed to create auth middleware: %v", err)
				}
				return auth
			},
		},
		{
			"jwt mode",
			func(t *testing.T) *middleware.Auth {
				return newJWTAuth(t, srv.URL, passthroughResolver("user-1"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := tt.auth(t)

			var called bool
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			paths := []string{
				"/api/v1/auth/signup",
				"/api/v1/auth/login",
				"/api/v1/auth/confirm-signup",
				"/api/v1/auth/refresh",
				"/api/v1/auth/forgot-password",
			}

			for _, path := range paths {
				called = false
				req := httptest.NewRequest(http.MethodPost, path, nil)
				w := httptest.NewRecorder()

				auth.Middleware(inner).ServeHTTP(w, req)

				if w.Code != http.StatusOK {
					t.Errorf("%s: expected 200, got %d", path, w.Code)
				}
				if !called {
					t.Errorf("%s: inner handler was not called", path)
				}
			}
		})
	}
}

func TestAuth_JWT_Valid(t *testing.T) {
	privKey, _ := rsa.GenerateKey(rand.Reader, 2048)
	kid := "jwt-test-kid"
	srv := jwksServer(t, kid, privKey)

	resolver := resolverFunc(func(ctx context.Context, cognitoSub string) (string, error) {
		if cognitoSub != "cognito-sub-123" {
			t.Errorf("expected sub cognito-sub-123, got %q", cognitoSub)
		}
		return "user-1", nil
	})
	auth := newJWTAuth(t, srv.URL, resolver)

	var capturedUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserID = middleware.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	token := signedToken(t, privKey, kid, jwt.MapClaims{
		"sub":       "cognito-sub-123",
		"iss":       "https://cognito-idp.ap-northeast-1.amazonaws.com/pool-1",
		"aud":       "client-1",
		"exp":       time.Now().Add(time.Hour).Unix(),
		"token_use": "id",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dayview", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	auth.Middleware(inner).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	if capturedUserID != "user-1" {
		t.Errorf("expected userID=user-1, got %q", capturedUserID)
	}
}

func TestAuth_JWT_UserNotFound(t *testing.T) {
	privKey, _ := rsa.GenerateKey(rand.Reader, 2048)
	kid := "jwt-test-kid"
	srv := jwksServer(t, kid, privKey)

	resolver := resolverFunc(func(ctx context.Context, cognitoSub string) (string, error) {
		return "", middleware.ErrUserNotFound
	})
	auth := newJWTAuth(t, srv.URL, resolver)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	token := signedToken(t, privKey, kid, jwt.MapClaims{
		"sub": "cognito-sub-123",
		"iss": "https://cognito-idp.ap-northeast-1.amazonaws.com/pool-1",
		"aud": "client-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dayview", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	auth.Middleware(inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_JWT_ResolverFailure(t *testing.T) {
	privKey, _ := rsa.GenerateKey(rand.Reader, 2048)
	kid := "jwt-test-kid"
	srv := jwksServer(t, kid, privKey)

	resolver := resolverFunc(func(ctx context.Context, cognitoSub string) (string, error) {
		return "", errors.New("db down")
	})
	auth := newJWTAuth(t, srv.URL, resolver)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	token := signedToken(t, privKey, kid, jwt.MapClaims{
		"sub": "cognito-sub-123",
		"iss": "https://cognito-idp.ap-northeast-1.amazonaws.com/pool-1",
		"aud": "client-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dayview", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	auth.Middleware(inner).ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestAuth_JWT_MissingHeader(t *testing.T) {
	privKey, _ := rsa.GenerateKey(rand.Reader, 2048)
	srv := jwksServer(t, "kid-1", privKey)
	auth := newJWTAuth(t, srv.URL, passthroughResolver("user-1"))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dayview", nil)
	w := httptest.NewRecorder()

	auth.Middleware(inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_JWT_ExpiredToken(t *testing.T) {
	privKey, _ := rsa.GenerateKey(rand.Reader, 2048)
	kid := "jwt-test-kid"
	srv := jwksServer(t, kid, privKey)
	auth := newJWTAuth(t, srv.URL, passthroughResolver("user-1"))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	token := signedToken(t, privKey, kid, jwt.MapClaims{
		"sub": "cognito-sub-123",
		"iss": "https://cognito-idp.ap-northeast-1.amazonaws.com/pool-1",
		"aud": "client-1",
		"exp": time.Now().Add(-time.Hour).Unix(), // expired
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dayview", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	auth.Middleware(inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_JWT_WrongIssuer(t *testing.T) {
	privKey, _ := rsa.GenerateKey(rand.Reader, 2048)
	kid := "jwt-test-kid"
	srv := jwksServer(t, kid, privKey)
	auth := newJWTAuth(t, srv.URL, passthroughResolver("user-1"))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	token := signedToken(t, privKey, kid, jwt.MapClaims{
		"sub": "cognito-sub-123",
		"iss": "https://wrong-issuer.example.com",
		"aud": "client-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dayview", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	auth.Middleware(inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_JWT_InvalidBearerFormat(t *testing.T) {
	privKey, _ := rsa.GenerateKey(rand.Reader, 2048)
	srv := jwksServer(t, "kid-1", privKey)
	auth := newJWTAuth(t, srv.URL, passthroughResolver("user-1"))

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dayview", nil)
	req.Header.Set("Authorization", "NotBearer token")
	w := httptest.NewRecorder()

	auth.Middleware(inner).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestNewAuth_RequiresResolverInJWTMode(t *testing.T) {
	_, err := middleware.NewAuth(middleware.AuthConfig{DevMode: false})
	if err == nil {
		t.Fatal("expected error when JWT mode lacks a resolver, got nil")
	}
}
