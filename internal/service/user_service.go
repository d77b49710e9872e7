package service

import (
	"errors"
	"time"

	"lingua_backend/internal/model"
	"lingua_backend/internal/repository"
	"lingua_backend/internal/util"

	"gorm.io/gorm"
)

// UserService covers the admin side of account management: listing users,
// gating login and granting course access.
type UserService struct {
	UserRepo   *repository.UserRepository
	CourseRepo *repository.CourseRepository
}

func NewUserService(userRepo *repository.UserRepository, courseRepo *repository.CourseRepository) *UserService {
	return &UserService{
		UserRepo:   userRepo,
		CourseRepo: courseRepo,
	}
}

func (s *UserService) ListUsers(page, pageSize int, filter repository.UserFilter) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.UserRepo.List(page, pageSize, filter)
}

func (s *UserService) GetUser(userID string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetLoginEnabled(userID string, enabled bool) error {
	if _, err := s.GetUser(userID); err != nil {
		return err
	}
	return s.UserRepo.SetLoginEnabled(userID, enabled)
}

// GrantCourseAccess gives a user entry to a course, optionally expiring.
// Granting twice refreshes the existing grant instead of failing.
func (s *UserService) GrantCourseAccess(adminID, userID, courseID string, expiresAt *time.Time) (*model.CourseAccess, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	access := &model.CourseAccess{
		UserID:    userID,
		CourseID:  courseID,
		GrantedBy: adminID,
		GrantedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	if err := s.CourseRepo.GrantAccess(access); err != nil {
		return nil, err
	}
	return access, nil
}

func (s *UserService) RevokeCourseAccess(userID, courseID string) error {
	return s.CourseRepo.RevokeAccess(userID, courseID)
}

func (s *UserService) ListCourseAccess(userID string) ([]model.CourseAccess, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}
	return s.CourseRepo.ListAccessByUser(userID)
}

// ExpireTrials downgrades lapsed trial accounts to unpaid. Runs from the
// background scheduler alongside the streak sweep.
func (s *UserService) ExpireTrials(now time.Time) error {
	return s.UserRepo.TouchTrialExpiry(now)
}
