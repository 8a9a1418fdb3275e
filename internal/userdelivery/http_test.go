package userdelivery

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/middleware"
	"github.com/go-petr/pet-wallet/internal/userservice"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
	"github.com/go-petr/pet-wallet/pkg/randompkg"
	"github.com/go-petr/pet-wallet/pkg/tokenpkg"
	"github.com/go-petr/pet-wallet/pkg/web"
	"github.com/golang/mock/gomock"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func randomProfile() domain.Profile {
	return domain.Profile{
		Email:     randompkg.Email(),
		FirstName: randompkg.Name(),
		LastName:  randompkg.Name(),
	}
}

func newTokenMaker(t *testing.T) tokenpkg.Maker {
	t.Helper()

	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	return tokenMaker
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder, data any) web.Response {
	t.Helper()

	res := web.Response{Data: data}
	if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	return res
}

func TestRegister(t *testing.T) {
	profile := randomProfile()
	password := randompkg.Password()

	type requestBody struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Password  string `json:"password"`
	}

	validBody := requestBody{
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Password:  password,
	}

	wantParams := userservice.RegisterParams{
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Password:  password,
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(userService *MockService)
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:        "OK",
			requestBody: validBody,
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					Register(gomock.Any(), gomock.Eq(wantParams)).
					Times(1).
					Return(profile, nil)
			},
			wantStatusCode: http.StatusOK,
			wantMessage:    "Registration succeeded, please log in",
		},
		{
			name: "InvalidEmail",
			requestBody: requestBody{
				Email:     "user%email.com",
				FirstName: profile.FirstName,
				LastName:  profile.LastName,
				Password:  password,
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Email must be a valid email",
		},
		{
			name: "ShortPassword",
			requestBody: requestBody{
				Email:     profile.Email,
				FirstName: profile.FirstName,
				LastName:  profile.LastName,
				Password:  "xyz",
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Password must be at least 8 characters long",
		},
		{
			name: "MissingFirstName",
			requestBody: requestBody{
				Email:    profile.Email,
				LastName: profile.LastName,
				Password: password,
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "FirstName field is required",
		},
		{
			name:        "EmailAlreadyExists",
			requestBody: validBody,
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					Register(gomock.Any(), gomock.Eq(wantParams)).
					Times(1).
					Return(domain.Profile{}, domain.ErrEmailAlreadyExists)
			},
			wantStatusCode: http.StatusConflict,
			wantMessage:    domain.ErrEmailAlreadyExists.Error(),
		},
		{
			name:        "InternalError",
			requestBody: validBody,
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					Register(gomock.Any(), gomock.Eq(wantParams)).
					Times(1).
					Return(domain.Profile{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantMessage:    errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			userService := NewMockService(ctrl)
			userHandler := NewHandler(userService)

			server := gin.New()
			server.POST("/registration", userHandler.Register)

			tc.buildStubs(userService)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/registration", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := decodeResponse(t, recorder, nil)

			if res.Status != tc.wantStatusCode {
				t.Errorf("res.Status=%v, want %v", res.Status, tc.wantStatusCode)
			}

			if res.Message != tc.wantMessage {
				t.Errorf("res.Message=%q, want %q", res.Message, tc.wantMessage)
			}

			if res.Data != nil {
				t.Errorf("res.Data=%v, want nil", res.Data)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	email := randompkg.Email()
	password := randompkg.Password()
	token := randompkg.String(40)

	type requestBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		buildStubs     func(userService *MockService)
		wantStatusCode int
		wantMessage    string
		wantToken      string
	}{
		{
			name:        "OK",
			requestBody: requestBody{Email: email, Password: password},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					Login(gomock.Any(), gomock.Eq(email), gomock.Eq(password)).
					Times(1).
					Return(token, nil)
			},
			wantStatusCode: http.StatusOK,
			wantMessage:    "Login succeeded",
			wantToken:      token,
		},
		{
			name:        "MissingPassword",
			requestBody: requestBody{Email: email},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "Password field is required",
		},
		{
			name:        "WrongCredentials",
			requestBody: requestBody{Email: email, Password: password},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					Login(gomock.Any(), gomock.Eq(email), gomock.Eq(password)).
					Times(1).
					Return("", domain.ErrWrongCredentials)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    domain.ErrWrongCredentials.Error(),
		},
		{
			name:        "InternalError",
			requestBody: requestBody{Email: email, Password: password},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					Login(gomock.Any(), gomock.Eq(email), gomock.Eq(password)).
					Times(1).
					Return("", errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantMessage:    errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			userService := NewMockService(ctrl)
			userHandler := NewHandler(userService)

			server := gin.New()
			server.POST("/login", userHandler.Login)

			tc.buildStubs(userService)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			data := &loginResponse{}
			res := decodeResponse(t, recorder, data)

			if res.Message != tc.wantMessage {
				t.Errorf("res.Message=%q, want %q", res.Message, tc.wantMessage)
			}

			if tc.wantStatusCode == http.StatusOK && data.Token != tc.wantToken {
				t.Errorf("data.Token=%q, want %q", data.Token, tc.wantToken)
			}
		})
	}
}

func TestGetProfile(t *testing.T) {
	tokenMaker := newTokenMaker(t)
	profile := randomProfile()
	userID := randompkg.IntBetween(1, 1000)

	testCases := []struct {
		name           string
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(userService *MockService)
		wantStatusCode int
		wantMessage    string
	}{
		{
			name: "OK",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, middleware.AuthTypeBearer, userID, profile.Email, time.Minute)
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					GetProfile(gomock.Any(), gomock.Eq(userID)).
					Times(1).
					Return(profile, nil)
			},
			wantStatusCode: http.StatusOK,
			wantMessage:    "Success",
		},
		{
			name: "NoAuthorization",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					GetProfile(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name: "UserNotFound",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, middleware.AuthTypeBearer, userID, profile.Email, time.Minute)
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					GetProfile(gomock.Any(), gomock.Eq(userID)).
					Times(1).
					Return(domain.Profile{}, domain.ErrUserNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantMessage:    domain.ErrUserNotFound.Error(),
		},
		{
			name: "InternalError",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, middleware.AuthTypeBearer, userID, profile.Email, time.Minute)
			},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					GetProfile(gomock.Any(), gomock.Eq(userID)).
					Times(1).
					Return(domain.Profile{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantMessage:    errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			userService := NewMockService(ctrl)
			userHandler := NewHandler(userService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.GET("/profile", userHandler.GetProfile)

			tc.buildStubs(userService)

			req, err := http.NewRequest(http.MethodGet, "/profile", nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err = tc.setupAuth(t, req); err != nil {
				t.Fatalf("tc.setupAuth(t, %+v) returned error: %v", req, err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			got := &domain.Profile{}
			res := decodeResponse(t, recorder, got)

			if res.Message != tc.wantMessage {
				t.Errorf("res.Message=%q, want %q", res.Message, tc.wantMessage)
			}

			if tc.wantStatusCode == http.StatusOK {
				if diff := cmp.Diff(profile, *got); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	tokenMaker := newTokenMaker(t)
	profile := randomProfile()
	userID := randompkg.IntBetween(1, 1000)

	testCases := []struct {
		name           string
		requestBody    gin.H
		buildStubs     func(userService *MockService)
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:        "OK",
			requestBody: gin.H{"first_name": profile.FirstName, "last_name": profile.LastName},
			buildStubs: func(userService *MockService) {
				arg := domain.UpdateUserParams{
					ID:        userID,
					FirstName: profile.FirstName,
					LastName:  profile.LastName,
				}

				userService.EXPECT().
					UpdateProfile(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(profile, nil)
			},
			wantStatusCode: http.StatusOK,
			wantMessage:    "Profile updated",
		},
		{
			name:        "OnlyLastName",
			requestBody: gin.H{"last_name": profile.LastName},
			buildStubs: func(userService *MockService) {
				arg := domain.UpdateUserParams{
					ID:       userID,
					LastName: profile.LastName,
				}

				userService.EXPECT().
					UpdateProfile(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(profile, nil)
			},
			wantStatusCode: http.StatusOK,
			wantMessage:    "Profile updated",
		},
		{
			name:        "ShortFirstName",
			requestBody: gin.H{"first_name": "a"},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					UpdateProfile(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "FirstName must be at least 2 characters long",
		},
		{
			name:        "UserNotFound",
			requestBody: gin.H{"first_name": profile.FirstName},
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					UpdateProfile(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Profile{}, domain.ErrUserNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantMessage:    domain.ErrUserNotFound.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			userService := NewMockService(ctrl)
			userHandler := NewHandler(userService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.PUT("/profile/update", userHandler.UpdateProfile)

			tc.buildStubs(userService)

			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPut, "/profile/update", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, userID, profile.Email, time.Minute)
			if err != nil {
				t.Fatalf("middleware.AddAuthorization returned error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := decodeResponse(t, recorder, &domain.Profile{})

			if res.Message != tc.wantMessage {
				t.Errorf("res.Message=%q, want %q", res.Message, tc.wantMessage)
			}
		})
	}
}

func TestUpdateProfileImage(t *testing.T) {
	tokenMaker := newTokenMaker(t)
	profile := randomProfile()
	profile.ProfileImage = "http://localhost:8080/uploads/profiles/x.png"
	userID := randompkg.IntBetween(1, 1000)
	image := []byte("\x89PNG\r\n\x1a\n" + randompkg.String(64))

	multipartBody := func(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
		t.Helper()

		body := &bytes.Buffer{}
		w := multipart.NewWriter(body)

		part, err := w.CreateFormFile(field, "avatar.png")
		if err != nil {
			t.Fatalf("w.CreateFormFile returned error: %v", err)
		}

		if _, err := part.Write(content); err != nil {
			t.Fatalf("part.Write returned error: %v", err)
		}

		if err := w.Close(); err != nil {
			t.Fatalf("w.Close returned error: %v", err)
		}

		return body, w.FormDataContentType()
	}

	testCases := []struct {
		name           string
		field          string
		content        []byte
		buildStubs     func(userService *MockService)
		wantStatusCode int
		wantMessage    string
	}{
		{
			name:    "OK",
			field:   ImageFormField,
			content: image,
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					UpdateProfileImage(gomock.Any(), gomock.Eq(userID), gomock.Eq(image)).
					Times(1).
					Return(profile, nil)
			},
			wantStatusCode: http.StatusOK,
			wantMessage:    "Profile image updated",
		},
		{
			name:    "MissingFile",
			field:   "avatar",
			content: image,
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					UpdateProfileImage(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    "file is required",
		},
		{
			name:    "TooLarge",
			field:   ImageFormField,
			content: bytes.Repeat([]byte{'a'}, userservice.MaxImageSize+1),
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					UpdateProfileImage(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    domain.ErrInvalidImage.Error(),
		},
		{
			name:    "InvalidImage",
			field:   ImageFormField,
			content: []byte("plain text"),
			buildStubs: func(userService *MockService) {
				userService.EXPECT().
					UpdateProfileImage(gomock.Any(), gomock.Eq(userID), gomock.Any()).
					Times(1).
					Return(domain.Profile{}, domain.ErrInvalidImage)
			},
			wantStatusCode: http.StatusBadRequest,
			wantMessage:    domain.ErrInvalidImage.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			userService := NewMockService(ctrl)
			userHandler := NewHandler(userService)

			server := gin.New()
			server.Use(middleware.AuthMiddleware(tokenMaker))
			server.PUT("/profile/image", userHandler.UpdateProfileImage)

			tc.buildStubs(userService)

			body, contentType := multipartBody(t, tc.field, tc.content)

			req, err := http.NewRequest(http.MethodPut, "/profile/image", body)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			req.Header.Set("Content-Type", contentType)

			err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, userID, profile.Email, time.Minute)
			if err != nil {
				t.Fatalf("middleware.AddAuthorization returned error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			got := &domain.Profile{}
			res := decodeResponse(t, recorder, got)

			if res.Message != tc.wantMessage {
				t.Errorf("res.Message=%q, want %q", res.Message, tc.wantMessage)
			}

			if tc.wantStatusCode == http.StatusOK {
				if diff := cmp.Diff(profile, *got); diff != "" {
					t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}
