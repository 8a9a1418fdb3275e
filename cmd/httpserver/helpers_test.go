//go:build integration

package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/go-petr/pet-wallet/cmd/httpserver"
	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/integrationtest"
	"github.com/go-petr/pet-wallet/internal/middleware"
	"github.com/go-petr/pet-wallet/pkg/web"
)

func setupServer(t *testing.T) *httpserver.Server {
	t.Helper()

	config := integrationtest.Config(t)
	config.UploadDir = "/uploads"

	db := integrationtest.SetupDB(t)

	gin.SetMode(gin.ReleaseMode)

	server, err := httpserver.New(db, nil, afero.NewMemMapFs(), zerolog.Nop(), config)
	if err != nil {
		t.Fatalf("httpserver.New returned error: %v", err)
	}

	return server
}

// do sends a request with an optional JSON body, authorized as u when u is not nil,
// and decodes the response envelope with data into data.
func do(t *testing.T, server *httpserver.Server, method, url string, body any, u *domain.User, data any) (int, web.Response) {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			t.Fatalf("Encoding request body error: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &reqBody)
	if err != nil {
		t.Fatalf("Creating request error: %v", err)
	}

	if u != nil {
		err = middleware.AddAuthorization(req, server.TokenMaker, middleware.AuthTypeBearer, u.ID, u.Email, time.Minute)
		if err != nil {
			t.Fatalf("middleware.AddAuthorization returned error: %v", err)
		}
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	res := web.Response{Data: data}
	if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	if res.Status != recorder.Code {
		t.Errorf("res.Status=%v, recorder.Code=%v, want equal", res.Status, recorder.Code)
	}

	return recorder.Code, res
}
