package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrLoginDisabled       = errors.New("login disabled for this account")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrCourseNotFound      = errors.New("course not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrLessonNotPublished  = errors.New("lesson not published")
	ErrCourseAccessDenied  = errors.New("no access to this course")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrEmptyQuiz           = errors.New("quiz has no questions")
	ErrNotAQuiz            = errors.New("lesson is not a quiz")
	ErrUnknownQuestionType = errors.New("unknown question type")
	ErrMalformedAnswerKey  = errors.New("malformed correct answer for question type")
	ErrProgressRegression  = errors.New("progress status cannot move backwards")
)
