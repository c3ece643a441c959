package service_test

import (
	"errors"
	"testing"

	"github.com/calltrack/dnc-registry/internal/apperr"
	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/calltrack/dnc-registry/internal/repository"
	"github.com/calltrack/dnc-registry/internal/service"
	"github.com/calltrack/dnc-registry/internal/testutil"
	"github.com/calltrack/dnc-registry/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// UserServiceIntegrationTestSuite defines test suite
type UserServiceIntegrationTestSuite struct {
	suite.Suite
	testDB      *testutil.TestDatabase
	userRepo    *repository.UserRepository
	userService *service.UserService
}

// SetupSuite runs before all tests
func (s *UserServiceIntegrationTestSuite) SetupSuite() {
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())
	s.userRepo = repository.NewUserRepository(s.testDB.DB)
	s.userService = service.NewUserService(s.userRepo)
}

// TearDownSuite runs after all tests
func (s *UserServiceIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

// SetupTest runs before each test (clean database)
func (s *UserServiceIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *UserServiceIntegrationTestSuite) kindOf(err error) apperr.Kind {
	var appErr *apperr.Error
	s.Require().True(errors.As(err, &appErr), "expected *apperr.Error, got %v", err)
	return appErr.Kind
}

func (s *UserServiceIntegrationTestSuite) TestCreateDefaultsToUserRole() {
	user, err := s.userService.Create("seller.one", "secret123", "")
	s.Require().NoError(err)
	assert.Equal(s.T(), models.RoleUser, user.Role)
	assert.NotEqual(s.T(), "secret123", user.PasswordHash)
}

func (s *UserServiceIntegrationTestSuite) TestCreateAdmin() {
	user, err := s.userService.Create("second-admin", "secret123", models.RoleAdmin)
	s.Require().NoError(err)
	assert.Equal(s.T(), models.RoleAdmin, user.Role)
}

func (s *UserServiceIntegrationTestSuite) TestCreateRejectsUnknownRole() {
	_, err := s.userService.Create("someone", "secret123", models.Role("SUPERUSER"))
	assert.Equal(s.T(), apperr.KindValidationFailed, s.kindOf(err))
}

func (s *UserServiceIntegrationTestSuite) TestCreateValidatesUsername() {
	for _, username := range []string{"ab", "has space", "bad$char", "ñandú"} {
		_, err := s.userService.Create(username, "secret123", models.RoleUser)
		s.Require().Error(err, username)
		assert.Equal(s.T(), apperr.KindValidationFailed, s.kindOf(err), username)
	}

	// The allowed charset covers dots, hyphens and underscores
	_, err := s.userService.Create("jefe.admin_2-b", "secret123", models.RoleUser)
	assert.NoError(s.T(), err)
}

func (s *UserServiceIntegrationTestSuite) TestCreateValidatesPassword() {
	_, err := s.userService.Create("valid.name", "short", models.RoleUser)
	s.Require().Error(err)

	var appErr *apperr.Error
	s.Require().True(errors.As(err, &appErr))
	assert.Equal(s.T(), apperr.KindValidationFailed, appErr.Kind)
	s.Require().Len(appErr.Fields, 1)
	assert.Equal(s.T(), "password", appErr.Fields[0].Field)
}

func (s *UserServiceIntegrationTestSuite) TestCreateDuplicateUsername() {
	_, err := s.userService.Create("seller.one", "secret123", models.RoleUser)
	s.Require().NoError(err)

	_, err = s.userService.Create("seller.one", "other-secret", models.RoleUser)
	assert.Equal(s.T(), apperr.KindDuplicateConflict, s.kindOf(err))
}

func (s *UserServiceIntegrationTestSuite) TestListNeverExposesHash() {
	_, err := s.userService.Create("seller.one", "secret123", models.RoleUser)
	s.Require().NoError(err)

	users, err := s.userService.List()
	s.Require().NoError(err)
	s.Require().Len(users, 1)

	// The hash column stays out of the serialized form via the json:"-" tag;
	// the model still carries it internally for login.
	assert.NotEmpty(s.T(), users[0].PasswordHash)
}

func (s *UserServiceIntegrationTestSuite) TestSelfDeleteForbidden() {
	admin, err := s.userService.Create("the-admin", "secret123", models.RoleAdmin)
	s.Require().NoError(err)

	err = s.userService.Delete(admin.ID.String(), admin.ID)
	assert.Equal(s.T(), apperr.KindForbidden, s.kindOf(err))

	// The account remains
	remaining, err := s.userRepo.GetUserByID(admin.ID)
	s.Require().NoError(err)
	assert.NotNil(s.T(), remaining)
}

func (s *UserServiceIntegrationTestSuite) TestDeleteOtherAccount() {
	admin, err := s.userService.Create("the-admin", "secret123", models.RoleAdmin)
	s.Require().NoError(err)
	seller, err := s.userService.Create("seller.one", "secret123", models.RoleUser)
	s.Require().NoError(err)

	s.Require().NoError(s.userService.Delete(seller.ID.String(), admin.ID))

	gone, err := s.userRepo.GetUserByID(seller.ID)
	s.Require().NoError(err)
	assert.Nil(s.T(), gone)
}

func (s *UserServiceIntegrationTestSuite) TestDeleteUnknown() {
	admin, err := s.userService.Create("the-admin", "secret123", models.RoleAdmin)
	s.Require().NoError(err)

	err = s.userService.Delete(uuid.New().String(), admin.ID)
	assert.Equal(s.T(), apperr.KindNotFound, s.kindOf(err))
}

func TestUserServiceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceIntegrationTestSuite))
}
