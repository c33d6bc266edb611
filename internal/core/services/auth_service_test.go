package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Manav-gyani/Bank-Management-System/internal/apperrors"
	portsrepo "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/repositories"
	portssvc "github.com/Manav-gyani/Bank-Management-System/internal/core/ports/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/core/services"
	"github.com/Manav-gyani/Bank-Management-System/internal/dto"
	"github.com/Manav-gyani/Bank-Management-System/internal/repositories/memory"
	"github.com/Manav-gyani/Bank-Management-System/internal/utils"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	repos   *portsrepo.RepositoryProvider
	service portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.repos = memory.NewRepositoryProvider()
	suite.service = services.NewAuthService(suite.repos.User, suite.repos.Customer, services.AuthConfig{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
		JWTIssuer: "bank-management-system-test",
	})
}

func registration() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "9000000001",
		Username: "asharao",
		Password: "correct-horse-battery",
	}
}

func (suite *AuthServiceTestSuite) TestRegister_CreatesCustomerAndLogin() {
	ctx := context.Background()

	customer, err := suite.service.Register(ctx, registration())

	suite.Require().NoError(err)
	suite.NotEmpty(customer.CustomerID)
	suite.Equal("asha@example.com", customer.Email)

	user, err := suite.repos.User.FindUserByUsername(ctx, "asharao")
	suite.Require().NoError(err)
	suite.Equal(customer.CustomerID, user.CustomerID)
	suite.NotEqual("correct-horse-battery", user.PasswordHash, "passwords must never be stored in the clear")
}

func (suite *AuthServiceTestSuite) TestRegister_RejectsDuplicateEmail() {
	ctx := context.Background()

	_, err := suite.service.Register(ctx, registration())
	suite.Require().NoError(err)

	dup := registration()
	dup.Username = "someoneelse"
	_, err = suite.service.Register(ctx, dup)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AuthServiceTestSuite) TestRegister_RejectsDuplicateUsername() {
	ctx := context.Background()

	_, err := suite.service.Register(ctx, registration())
	suite.Require().NoError(err)

	dup := registration()
	dup.Email = "other@example.com"
	_, err = suite.service.Register(ctx, dup)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AuthServiceTestSuite) TestLogin_IssuesTokenWithCustomerClaims() {
	ctx := context.Background()

	customer, err := suite.service.Register(ctx, registration())
	suite.Require().NoError(err)

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "asharao", Password: "correct-horse-battery"})

	suite.Require().NoError(err)
	suite.Equal("Bearer", resp.TokenType)
	suite.Equal(customer.CustomerID, resp.CustomerID)

	claims, err := utils.ParseAndValidateJWT(resp.AccessToken, "test-secret")
	suite.Require().NoError(err)
	suite.Equal(customer.CustomerID, claims.CustomerID)
	suite.Equal("CUSTOMER", claims.Role)
}

func (suite *AuthServiceTestSuite) TestLogin_RejectsBadPassword() {
	ctx := context.Background()

	_, err := suite.service.Register(ctx, registration())
	suite.Require().NoError(err)

	_, err = suite.service.Login(ctx, dto.LoginRequest{Username: "asharao", Password: "wrong"})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogin_RejectsUnknownUser() {
	_, err := suite.service.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "whatever"})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
