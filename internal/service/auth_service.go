package service

import (
	"errors"
	"time"

	"lingua_backend/internal/config"
	"lingua_backend/internal/model"
	"lingua_backend/internal/repository"
	"lingua_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// RegisterInput carries the register request body.
// swagger:model RegisterInput
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
}

// Register creates a student account on a time-limited trial. Login stays
// enabled until an admin turns it off or the trial lapses unpaid.
func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	_, err := s.UserRepo.FindByEmail(input.Email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	trialEnd := time.Now().AddDate(0, 0, s.Cfg.Registration.TrialDays)
	user := &model.User{
		Email:         input.Email,
		Password:      string(hashedPassword),
		FullName:      input.FullName,
		Role:          model.Student,
		PaymentStatus: model.PaymentTrial,
		TrialEndDate:  &trialEnd,
		LoginEnabled:  true,
		Level:         1,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed token. Accounts with login
// disabled are rejected after the password check so the two failure modes
// are distinguishable only to a caller who knows the password.
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if !user.LoginEnabled {
		return "", nil, util.ErrLoginDisabled
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetProfile loads the caller's own profile.
func (s *AuthService) GetProfile(userID string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput carries the editable profile fields; nil leaves a
// field unchanged.
// swagger:model UpdateProfileInput
type UpdateProfileInput struct {
	FullName  *string `json:"fullName"`
	AvatarURL *string `json:"avatarUrl"`
}

func (s *AuthService) UpdateProfile(userID string, input UpdateProfileInput) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
