package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Manav-gyani/Bank-Management-System/internal/core/domain"
	portssvc "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
	"github.com/Manav-gyani/Bank-Management-System/internal/handlers"
	"github.com/Manav-gyani/Bank-Management-System/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

type AuthHandlerTestSuite struct {
	suite.Suite
	mockAuth *MockAuthService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockAuth = new(MockAuthService)
}

// newRouter builds a router with the given login rate limit spec.
func (suite *AuthHandlerTestSuite) newRouter(rateLimitSpec string) *gin.Engine {
	router := gin.New()
	cfg := &config.Config{
		JWTSecret:     "test-secret-key-that-is-long-enough",
		IsProduction:  true,
		RateLimitSpec: rateLimitSpec,
	}
	handlers.RegisterRoutes(router, cfg, &portssvc.ServiceProvider{
		Auth: suite.mockAuth,
	})
	return router
}

func (suite *AuthHandlerTestSuite) postLogin(router *gin.Engine) *httptest.ResponseRecorder {
	payload, err := json.Marshal(dto.LoginRequest{Username: "asha", Password: "secret-pass"})
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.10:51000"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestLogin_HonorsConfiguredRateLimit pins the login limiter to the
// RATE_LIMIT config value: with "2-M" the third attempt from one IP inside
// the window is rejected before it reaches the auth service.
func (suite *AuthHandlerTestSuite) TestLogin_HonorsConfiguredRateLimit() {
	router := suite.newRouter("2-M")

	resp := &dto.LoginResponse{
		AccessToken: "token",
		TokenType:   "Bearer",
		ExpiresIn:   3600,
		CustomerID:  uuid.NewString(),
	}
	suite.mockAuth.On("Login", mock.Anything, mock.Anything).Return(resp, nil).Twice()

	suite.Equal(http.StatusOK, suite.postLogin(router).Code)
	suite.Equal(http.StatusOK, suite.postLogin(router).Code)
	suite.Equal(http.StatusTooManyRequests, suite.postLogin(router).Code)

	suite.mockAuth.AssertExpectations(suite.T())
}

// A malformed spec falls back to the default limit instead of locking the
// route shut.
func (suite *AuthHandlerTestSuite) TestLogin_MalformedRateLimitFallsBack() {
	router := suite.newRouter("not-a-rate")

	resp := &dto.LoginResponse{
		AccessToken: "token",
		TokenType:   "Bearer",
		ExpiresIn:   3600,
		CustomerID:  uuid.NewString(),
	}
	suite.mockAuth.On("Login", mock.Anything, mock.Anything).Return(resp, nil).Once()

	suite.Equal(http.StatusOK, suite.postLogin(router).Code)
	suite.mockAuth.AssertExpectations(suite.T())
}

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
