package service_test

import (
	"testing"
	"time"

	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/calltrack/dnc-registry/internal/repository"
	"github.com/calltrack/dnc-registry/internal/service"
	"github.com/calltrack/dnc-registry/internal/testutil"
	"github.com/calltrack/dnc-registry/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// ReportServiceIntegrationTestSuite defines test suite
type ReportServiceIntegrationTestSuite struct {
	suite.Suite
	testDB        *testutil.TestDatabase
	reportService *service.ReportService
}

// SetupSuite runs before all tests
func (s *ReportServiceIntegrationTestSuite) SetupSuite() {
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())
	dncRepo := repository.NewDNCRepository(s.testDB.DB)
	reasonRepo := repository.NewReasonRepository(s.testDB.DB)
	userRepo := repository.NewUserRepository(s.testDB.DB)
	s.reportService = service.NewReportService(dncRepo, reasonRepo, userRepo)
}

// TearDownSuite runs after all tests
func (s *ReportServiceIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

// SetupTest runs before each test (clean database)
func (s *ReportServiceIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
}

func (s *ReportServiceIntegrationTestSuite) TestStatsRecentWindow() {
	reason := testutil.CreateTestReason("MOVISTAR")
	s.Require().NoError(s.testDB.DB.Create(reason).Error)

	admin, err := testutil.DefaultAdminUser()
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(admin).Error)

	now := time.Now()
	// Two entries inside the trailing 7-day window, one well outside it
	s.Require().NoError(s.testDB.DB.Create(testutil.CreateTestEntryAt("5551111111", reason.ID, now.Add(-time.Hour))).Error)
	s.Require().NoError(s.testDB.DB.Create(testutil.CreateTestEntryAt("5552222222", reason.ID, now.Add(-6*24*time.Hour))).Error)
	s.Require().NoError(s.testDB.DB.Create(testutil.CreateTestEntryAt("5553333333", reason.ID, now.Add(-10*24*time.Hour))).Error)

	stats, err := s.reportService.Stats()
	s.Require().NoError(err)

	assert.Equal(s.T(), int64(3), stats.TotalDNC)
	assert.Equal(s.T(), int64(1), stats.TotalReasons)
	assert.Equal(s.T(), int64(1), stats.TotalUsers)
	assert.Equal(s.T(), int64(2), stats.RecentEntries)
}

func (s *ReportServiceIntegrationTestSuite) TestStatsEmpty() {
	stats, err := s.reportService.Stats()
	s.Require().NoError(err)

	assert.Equal(s.T(), int64(0), stats.TotalDNC)
	assert.Equal(s.T(), int64(0), stats.RecentEntries)
}

func (s *ReportServiceIntegrationTestSuite) TestReportPerReasonBreakdown() {
	movistar := testutil.CreateTestReason("MOVISTAR")
	moroso := testutil.CreateTestReason("MOROSO")
	quitar := testutil.CreateTestReason("QUITAR")
	for _, reason := range []*models.Reason{movistar, moroso, quitar} {
		s.Require().NoError(s.testDB.DB.Create(reason).Error)
	}

	s.Require().NoError(s.testDB.DB.Create(testutil.CreateTestEntry("5551111111", moroso.ID, nil)).Error)
	s.Require().NoError(s.testDB.DB.Create(testutil.CreateTestEntry("5552222222", moroso.ID, nil)).Error)
	s.Require().NoError(s.testDB.DB.Create(testutil.CreateTestEntry("5553333333", movistar.ID, nil)).Error)

	report, err := s.reportService.BuildReport()
	s.Require().NoError(err)

	s.Require().Len(report.DNCByReason, 3)
	// Ordered by count descending
	assert.Equal(s.T(), "MOROSO", report.DNCByReason[0].Name)
	assert.Equal(s.T(), int64(2), report.DNCByReason[0].Count)
	assert.Equal(s.T(), "MOVISTAR", report.DNCByReason[1].Name)
	assert.Equal(s.T(), int64(1), report.DNCByReason[1].Count)
	assert.Equal(s.T(), int64(0), report.DNCByReason[2].Count)

	assert.Equal(s.T(), int64(3), report.TotalDNC)
	assert.NotEmpty(s.T(), report.RecentActivity)
	assert.Empty(s.T(), report.DNCByDate)
}

func TestReportServiceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceIntegrationTestSuite))
}
