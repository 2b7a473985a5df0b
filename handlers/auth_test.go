package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupBody(username string) map[string]string {
	return map[string]string{
		"email":    username + "@example.com",
		"username": username,
		"password": "hunter42",
	}
}

func TestSignupIssuesWorkingToken(t *testing.T) {
	e := newEnv()

	rec := e.do(t, http.MethodPost, "/auth/signup/", "", signupBody("leo"))
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeJSON(t, rec)
	token, ok := resp["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	assert.Equal(t, "leo", resp["username"])

	rec = e.do(t, http.MethodGet, "/create/", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignupDuplicate(t *testing.T) {
	e := newEnv()

	rec := e.do(t, http.MethodPost, "/auth/signup/", "", signupBody("leo"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPost, "/auth/signup/", "", signupBody("leo"))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignupRejectsBadPayload(t *testing.T) {
	e := newEnv()

	rec := e.do(t, http.MethodPost, "/auth/signup/", "", map[string]string{
		"email":    "not-an-email",
		"username": "leo",
		"password": "hunter42",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	e := newEnv()

	rec := e.do(t, http.MethodPost, "/auth/signup/", "", signupBody("leo"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPost, "/auth/login/", "", map[string]string{
		"email":    "leo@example.com",
		"password": "hunter42",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeJSON(t, rec)["token"])

	rec = e.do(t, http.MethodPost, "/auth/login/", "", map[string]string{
		"email":    "leo@example.com",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginFormEchoesNext(t *testing.T) {
	e := newEnv()

	rec := e.do(t, http.MethodGet, "/auth/login/?next=%2Fcreate%2F", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/create/", decodeJSON(t, rec)["next"])
}
