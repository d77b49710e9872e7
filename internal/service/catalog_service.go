package service

import (
	"errors"
	"time"

	"lingua_backend/internal/model"
	"lingua_backend/internal/repository"
	"lingua_backend/internal/util"

	"gorm.io/gorm"
)

// CatalogService serves the published course/unit/lesson tree and enforces
// course access grants on lesson content.
type CatalogService struct {
	CourseRepo   *repository.CourseRepository
	LessonRepo   *repository.LessonRepository
	QuestionRepo *repository.QuestionRepository
}

func NewCatalogService(
	courseRepo *repository.CourseRepository,
	lessonRepo *repository.LessonRepository,
	questionRepo *repository.QuestionRepository,
) *CatalogService {
	return &CatalogService{
		CourseRepo:   courseRepo,
		LessonRepo:   lessonRepo,
		QuestionRepo: questionRepo,
	}
}

func (s *CatalogService) ListCourses() ([]model.Course, error) {
	return s.CourseRepo.ListPublished()
}

func (s *CatalogService) GetCourse(id string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *CatalogService) ListUnits(courseID string) ([]model.Unit, error) {
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}
	return s.CourseRepo.ListUnits(courseID)
}

func (s *CatalogService) ListLessons(unitID string) ([]model.Lesson, error) {
	if _, err := s.CourseRepo.FindUnitByID(unitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return s.LessonRepo.ListPublishedByUnit(unitID)
}

// GetLesson loads a published lesson the user may open. Admins bypass the
// access check; students need an unexpired grant to the owning course.
func (s *CatalogService) GetLesson(userID string, role model.UserRole, lessonID string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	if !lesson.IsPublished && role != model.Admin {
		return nil, util.ErrLessonNotPublished
	}

	if err := s.AuthorizeLesson(userID, role, lesson.ID); err != nil {
		return nil, err
	}

	return lesson, nil
}

// AuthorizeLesson checks the caller's grant on the lesson's course.
func (s *CatalogService) AuthorizeLesson(userID string, role model.UserRole, lessonID string) error {
	if role == model.Admin {
		return nil
	}

	courseID, err := s.LessonRepo.CourseIDForLesson(lessonID)
	if err != nil {
		return err
	}
	if courseID == "" {
		return util.ErrLessonNotFound
	}

	ok, err := s.CourseRepo.HasAccess(userID, courseID, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrCourseAccessDenied
	}
	return nil
}

// ListQuestions returns a lesson's question set in authored order.
func (s *CatalogService) ListQuestions(lessonID string) ([]model.Question, error) {
	return s.QuestionRepo.ListByLesson(lessonID)
}
