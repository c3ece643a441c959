package service

import (
	"fmt"
	"time"

	"github.com/calltrack/dnc-registry/internal/apperr"
	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/calltrack/dnc-registry/internal/repository"
	"github.com/calltrack/dnc-registry/pkg/logger"
	"go.uber.org/zap"
)

// recentWindow is the trailing wall-clock window for "recent" counts, not
// calendar-aligned.
const recentWindow = 7 * 24 * time.Hour

type DashboardStats struct {
	TotalDNC      int64 `json:"totalDNC"`
	TotalReasons  int64 `json:"totalReasons"`
	TotalUsers    int64 `json:"totalUsers"`
	RecentEntries int64 `json:"recentEntries"`
}

type ActivityItem struct {
	Action string `json:"action"`
	Date   string `json:"date"`
	User   string `json:"user"`
}

type Report struct {
	DashboardStats
	DNCByReason    []models.ReasonCount `json:"dncByReason"`
	DNCByDate      []models.ReasonCount `json:"dncByDate"`
	RecentActivity []ActivityItem       `json:"recentActivity"`
}

// ReportService computes read-only rollups over current state on every
// call; nothing is cached or maintained incrementally.
type ReportService struct {
	dncRepo    *repository.DNCRepository
	reasonRepo *repository.ReasonRepository
	userRepo   *repository.UserRepository
}

func NewReportService(
	dncRepo *repository.DNCRepository,
	reasonRepo *repository.ReasonRepository,
	userRepo *repository.UserRepository,
) *ReportService {
	return &ReportService{
		dncRepo:    dncRepo,
		reasonRepo: reasonRepo,
		userRepo:   userRepo,
	}
}

// Stats returns the dashboard counters.
func (s *ReportService) Stats() (*DashboardStats, error) {
	totalDNC, err := s.dncRepo.CountEntries()
	if err != nil {
		return nil, s.statsError("dnc entries", err)
	}

	totalReasons, err := s.reasonRepo.CountReasons()
	if err != nil {
		return nil, s.statsError("reasons", err)
	}

	totalUsers, err := s.userRepo.CountUsers()
	if err != nil {
		return nil, s.statsError("users", err)
	}

	recentEntries, err := s.dncRepo.CountEntriesSince(time.Now().Add(-recentWindow))
	if err != nil {
		return nil, s.statsError("recent dnc entries", err)
	}

	return &DashboardStats{
		TotalDNC:      totalDNC,
		TotalReasons:  totalReasons,
		TotalUsers:    totalUsers,
		RecentEntries: recentEntries,
	}, nil
}

// BuildReport returns the stats plus a per-reason breakdown ordered by count
// descending and a synthesized activity feed. There is no audit table; the
// feed is derived from current state at read time.
func (s *ReportService) BuildReport() (*Report, error) {
	stats, err := s.Stats()
	if err != nil {
		return nil, err
	}

	byReason, err := s.reasonRepo.CountsByReason()
	if err != nil {
		logger.Log.Error("Failed to compute per-reason counts", zap.Error(err))
		return nil, apperr.Internal(err)
	}

	today := time.Now().Format("02/01/2006")
	activity := []ActivityItem{
		{Action: "System running", Date: today, User: "System"},
		{Action: "Database connected", Date: today, User: "System"},
		{
			Action: fmt.Sprintf("%d numbers added (last 7 days)", stats.RecentEntries),
			Date:   today,
			User:   "Multiple users",
		},
	}

	return &Report{
		DashboardStats: *stats,
		DNCByReason:    byReason,
		DNCByDate:      []models.ReasonCount{},
		RecentActivity: activity,
	}, nil
}

func (s *ReportService) statsError(what string, err error) error {
	logger.Log.Error("Failed to count "+what, zap.Error(err))
	return apperr.Internal(err)
}
