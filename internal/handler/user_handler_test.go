package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatbot-go/internal/model"
	"chatbot-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fakeUserService 是 service.UserService 的可编程替身。
type fakeUserService struct {
	registerErr error
	loginUser   *model.User
	loginErr    error
}

func (s *fakeUserService) Register(ctx context.Context, fullName, username, password string) error {
	return s.registerErr
}

func (s *fakeUserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginUser, nil
}

func newUserRouter(svc service.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUserHandler(svc)
	r.POST("/api/v1/users/register", h.Register)
	r.POST("/api/v1/users/login", h.Login)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegisterEndpoint_Success(t *testing.T) {
	r := newUserRouter(&fakeUserService{})

	w := postJSON(t, r, "/api/v1/users/register", map[string]string{
		"fullName": "A B", "username": "ab", "password": "pw1",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	require.Equal(t, true, resp["success"])
	require.Equal(t, "User registered successfully", resp["message"])
}

func TestRegisterEndpoint_MissingField(t *testing.T) {
	r := newUserRouter(&fakeUserService{})

	cases := []map[string]string{
		{"username": "ab", "password": "pw1"},
		{"fullName": "A B", "password": "pw1"},
		{"fullName": "A B", "username": "ab"},
		{},
	}
	for _, payload := range cases {
		w := postJSON(t, r, "/api/v1/users/register", payload)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, false, decodeBody(t, w)["success"])
	}
}

func TestRegisterEndpoint_Duplicate(t *testing.T) {
	r := newUserRouter(&fakeUserService{registerErr: service.ErrUserExists})

	w := postJSON(t, r, "/api/v1/users/register", map[string]string{
		"fullName": "A B", "username": "ab", "password": "pw1",
	})

	require.Equal(t, http.StatusConflict, w.Code)
	resp := decodeBody(t, w)
	require.Equal(t, false, resp["success"])
	require.Equal(t, "User already exists", resp["message"])
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("success echoes username", func(t *testing.T) {
		r := newUserRouter(&fakeUserService{loginUser: &model.User{Username: "ab"}})
		w := postJSON(t, r, "/api/v1/users/login", map[string]string{
			"username": "ab", "password": "pw1",
		})

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody(t, w)
		require.Equal(t, true, resp["success"])
		require.Equal(t, "Login successful", resp["message"])
		require.Equal(t, "ab", resp["username"])
	})

	t.Run("incorrect password", func(t *testing.T) {
		r := newUserRouter(&fakeUserService{loginErr: service.ErrInvalidPassword})
		w := postJSON(t, r, "/api/v1/users/login", map[string]string{
			"username": "ab", "password": "wrong",
		})

		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "Incorrect password", decodeBody(t, w)["message"])
	})

	t.Run("unknown user", func(t *testing.T) {
		r := newUserRouter(&fakeUserService{loginErr: service.ErrUserNotFound})
		w := postJSON(t, r, "/api/v1/users/login", map[string]string{
			"username": "nobody", "password": "pw1",
		})

		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "User not found", decodeBody(t, w)["message"])
	})

	t.Run("missing fields", func(t *testing.T) {
		r := newUserRouter(&fakeUserService{})
		w := postJSON(t, r, "/api/v1/users/login", map[string]string{"username": "ab"})

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
