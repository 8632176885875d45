package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"tasktracker/internal/adapter/database/sqlite/repository"
	"tasktracker/internal/core/model/response"
	"tasktracker/internal/core/port"
	"tasktracker/internal/core/service"
	"tasktracker/pkg/apierrors"
	. "tasktracker/pkg/test"
)

type AuthHandlerSuite struct {
	suite.Suite
	UserRepo port.UserRepository
	Router   *gin.Engine
}

func (s *AuthHandlerSuite) SetupSuite() {
	os.Setenv("JWT_SECRET", "handler-test-secret")
}

func (s *AuthHandlerSuite) SetupTest() {
	db := InitTestDatabase()

	s.UserRepo = repository.NewUserRepository(db)

	authUseCase := service.NewAuthService(s.UserRepo)
	authHandler := NewAuthHandler(authUseCase)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	s.Router = router
}

func TestAuthHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) postJSON(path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(body))
	rr := httptest.NewRecorder()

	s.Router.ServeHTTP(rr, req)

	return rr
}

func (s *AuthHandlerSuite) TestRegister() {
	rr := s.postJSON("/register", `{"login": "user@example.com", "password": "secret99"}`)

	Expect(rr.Code).To(Equal(http.StatusCreated))

	body, _ := io.ReadAll(rr.Body)

	resp := struct {
		Data response.UserResponse `json:"data"`
	}{}
	json.Unmarshal(body, &resp)

	Expect(resp.Data.Login).To(Equal("user@example.com"))
	Expect(resp.Data.UUID).To(Not(BeEmpty()))
}

func (s *AuthHandlerSuite) TestRegisterDuplicateLogin() {
	payload := `{"login": "user@example.com", "password": "secret99"}`

	rr := s.postJSON("/register", payload)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	rr = s.postJSON("/register", payload)

	Expect(rr.Code).To(Equal(http.StatusConflict))

	body, _ := io.ReadAll(rr.Body)

	var envelope apierrors.Envelope
	json.Unmarshal(body, &envelope)

	Expect(envelope.Error).To(Equal("CONFLICT"))
	Expect(envelope.Message).To(Equal("Login already registered"))
	Expect(envelope.FieldErrors).To(BeEmpty())
}

func (s *AuthHandlerSuite) TestRegisterInvalidPayload() {
	rr := s.postJSON("/register", `{"login": "not-an-email", "password": "123"}`)

	Expect(rr.Code).To(Equal(http.StatusUnprocessableEntity))

	body, _ := io.ReadAll(rr.Body)

	var envelope apierrors.Envelope
	json.Unmarshal(body, &envelope)

	Expect(len(envelope.FieldErrors)).To(Equal(2))
	Expect(envelope.FieldErrors[0].Field).To(Equal("login"))
	Expect(string(envelope.FieldErrors[0].Code)).To(Equal("INVALID_EMAIL"))
	Expect(envelope.FieldErrors[1].Field).To(Equal("password"))
	Expect(string(envelope.FieldErrors[1].Code)).To(Equal("TOO_SHORT"))
}

func (s *AuthHandlerSuite) TestRegisterPasswordConfirmationMismatch() {
	rr := s.postJSON("/register", `{"login": "user@example.com", "password": "secret99", "password_confirmation": "secret98"}`)

	Expect(rr.Code).To(Equal(http.StatusUnprocessableEntity))

	body, _ := io.ReadAll(rr.Body)

	var envelope apierrors.Envelope
	json.Unmarshal(body, &envelope)

	Expect(len(envelope.FieldErrors)).To(Equal(1))
	Expect(envelope.FieldErrors[0].Field).To(Equal("password_confirmation"))
	Expect(string(envelope.FieldErrors[0].Code)).To(Equal("MISMATCH"))
}

func (s *AuthHandlerSuite) TestLogin() {
	s.postJSON("/register", `{"login": "user@example.com", "password": "secret99"}`)

	rr := s.postJSON("/login", `{"login": "user@example.com", "password": "secret99"}`)

	Expect(rr.Code).To(Equal(http.StatusOK))

	body, _ := io.ReadAll(rr.Body)

	resp := struct {
		RefreshToken string `json:"refresh_token"`
	}{}
	json.Unmarshal(body, &resp)

	Expect(resp.RefreshToken).To(Not(BeEmpty()))
}

func (s *AuthHandlerSuite) TestLoginWrongPassword() {
	s.postJSON("/register", `{"login": "user@example.com", "password": "secret99"}`)

	rr := s.postJSON("/login", `{"login": "user@example.com", "password": "wrong-password"}`)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))

	body, _ := io.ReadAll(rr.Body)

	var envelope apierrors.Envelope
	json.Unmarshal(body, &envelope)

	Expect(envelope.Error).To(Equal("UNAUTHORIZED"))
	Expect(envelope.Message).To(Equal("Invalid login or password"))
}

func (s *AuthHandlerSuite) TestLoginUnknownUser() {
	rr := s.postJSON("/login", `{"login": "ghost@example.com", "password": "secret99"}`)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *AuthHandlerSuite) TestLoginMalformedBody() {
	rr := s.postJSON("/login", `{"login": `)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	body, _ := io.ReadAll(rr.Body)

	var envelope apierrors.Envelope
	json.Unmarshal(body, &envelope)

	Expect(envelope.Error).To(Equal("BAD_REQUEST"))
	Expect(envelope.FieldErrors).To(BeEmpty())
}
