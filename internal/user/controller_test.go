package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *fakeRepository) {
	t.Helper()
	repository := newFakeRepository()
	router := mux.NewRouter()
	AttachController(router, NewService(repository))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, repository
}

func postJson(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	marshaled, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(marshaled))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("given valid request should return 201 with userId", func(t *testing.T) {
		server, _ := newTestServer(t)

		resp := postJson(t, server.URL+"/register", registerRequest)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["userId"])
	})

	t.Run("given taken email should return 400 with message", func(t *testing.T) {
		server, _ := newTestServer(t)
		first := postJson(t, server.URL+"/register", registerRequest)
		require.Equal(t, http.StatusCreated, first.StatusCode)

		resp := postJson(t, server.URL+"/register", registerRequest)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "email already in use", body["message"])
	})

	t.Run("given mismatched passwords should return 400", func(t *testing.T) {
		server, _ := newTestServer(t)
		request := registerRequest
		request.ConfirmPassword = "something else!"

		resp := postJson(t, server.URL+"/register", request)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("given unknown field should return 400", func(t *testing.T) {
		server, _ := newTestServer(t)

		resp := postJson(t, server.URL+"/register", map[string]string{
			"email":     "asha@example.com",
			"password":  "hunter2!hunter2!",
			"surprise":  "field",
			"firstName": "Asha",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("given valid credentials should return 200 with profile", func(t *testing.T) {
		server, _ := newTestServer(t)
		created := postJson(t, server.URL+"/register", registerRequest)
		require.Equal(t, http.StatusCreated, created.StatusCode)

		resp := postJson(t, server.URL+"/login", map[string]string{
			"email":    registerRequest.Email,
			"password": registerRequest.Password,
		})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		user, ok := body["user"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, registerRequest.Email, user["email"])
		assert.NotContains(t, user, "password")
	})

	t.Run("given wrong password should return 401", func(t *testing.T) {
		server, _ := newTestServer(t)
		created := postJson(t, server.URL+"/register", registerRequest)
		require.Equal(t, http.StatusCreated, created.StatusCode)

		resp := postJson(t, server.URL+"/login", map[string]string{
			"email":    registerRequest.Email,
			"password": "wrong password",
		})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "invalid email or password", body["message"])
	})

	t.Run("given unknown email should return the same 401 message", func(t *testing.T) {
		server, _ := newTestServer(t)

		resp := postJson(t, server.URL+"/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "hunter2!hunter2!",
		})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "invalid email or password", body["message"])
	})
}

func TestUpdateCartEndpoint(t *testing.T) {
	t.Run("given valid cart should mirror it on the user document", func(t *testing.T) {
		server, repository := newTestServer(t)
		created := postJson(t, server.URL+"/register", registerRequest)
		require.Equal(t, http.StatusCreated, created.StatusCode)
		userId := decodeBody(t, created)["userId"].(string)

		payload, err := json.Marshal(map[string]interface{}{
			"cart": []map[string]interface{}{
				{"itemId": "item-1", "title": "Chicken Zinger Burger", "unitPrice": 100, "quantity": 2},
			},
		})
		require.NoError(t, err)
		req, err := http.NewRequest(
			http.MethodPut,
			server.URL+"/users/"+userId+"/cart",
			bytes.NewBuffer(payload),
		)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["success"])

		stored, err := repository.FindByEmail(testContext(), registerRequest.Email)
		require.NoError(t, err)
		require.Len(t, stored.Cart, 1)
		assert.Equal(t, 2, stored.Cart[0].Quantity)
	})
}
