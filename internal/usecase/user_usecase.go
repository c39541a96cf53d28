package usecase

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/eunwoo0701/cafe-delight/internal/auth"
	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

var _ domain.UserUseCase = (*userUseCase)(nil)

type userUseCase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenManager
	log      *logrus.Logger
}

func NewUserUseCase(repo domain.UserRepository, tokens *auth.TokenManager, logger *logrus.Logger) domain.UserUseCase {
	return &userUseCase{
		userRepo: repo,
		tokens:   tokens,
		log:      logger,
	}
}

func (uc *userUseCase) RegisterUser(name, email, password string) (*domain.User, error) {
	uc.log.Infof("Use Case: Attempting registration for email: %s", email)

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		uc.log.Warn("Use Case: Registration failed - empty name")
		return nil, errors.New("user name cannot be empty")
	}
	if !isValidEmail(email) {
		uc.log.Warnf("Use Case: Registration failed - invalid email format: %s", email)
		return nil, errors.New("invalid email format")
	}
	if err := validatePassword(password); err != nil {
		uc.log.Warnf("Use Case: Registration failed - password validation error: %v", err)
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for %s: %v", email, err)
		return nil, fmt.Errorf("internal error processing password: %w", err)
	}

	newUser := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleCustomer,
	}

	createdUser, err := uc.userRepo.CreateUser(newUser)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create user %s: %v", email, err)
		return nil, err
	}

	uc.log.Infof("Use Case: User registered successfully. ID: %d, Email: %s", createdUser.ID, createdUser.Email)
	return createdUser, nil
}

func (uc *userUseCase) AuthenticateUser(email, password string) (*domain.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	uc.log.Infof("Use Case: Attempting authentication for email: %s", email)

	if !isValidEmail(email) || password == "" {
		uc.log.Warnf("Use Case: Auth failed - invalid email or empty password for %s", email)
		return &domain.AuthResponse{Authenticated: false, ErrorMessage: domain.ErrInvalidCredentials.Error()}, nil
	}

	user, err := uc.userRepo.GetUserByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			uc.log.Warnf("Use Case: Auth failed - user not found: %s", email)
			return &domain.AuthResponse{Authenticated: false, ErrorMessage: domain.ErrInvalidCredentials.Error()}, nil
		}
		uc.log.Errorf("Use Case: Error retrieving user %s during auth: %v", email, err)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warnf("Use Case: Auth failed - incorrect password for user %s (ID: %d)", email, user.ID)
			return &domain.AuthResponse{Authenticated: false, ErrorMessage: domain.ErrInvalidCredentials.Error()}, nil
		}
		uc.log.Errorf("Use Case: Error comparing password hash for user %s: %v", email, err)
		return nil, fmt.Errorf("internal error during authentication: %w", err)
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to issue token for user %s: %v", email, err)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.log.Infof("Use Case: Authentication successful for user %s (ID: %d)", email, user.ID)
	return &domain.AuthResponse{
		Authenticated: true,
		Token:         token,
		User:          user.Profile(),
	}, nil
}

func (uc *userUseCase) GetUserProfile(id int64) (*domain.UserProfile, error) {
	if id <= 0 {
		return nil, errors.New("invalid user ID")
	}

	user, err := uc.userRepo.GetUserByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get user profile for ID %d: %v", id, err)
		return nil, err
	}

	profile := user.Profile()
	return &profile, nil
}

func (uc *userUseCase) UpdateProfile(id int64, name, email string) (*domain.UserProfile, error) {
	if id <= 0 {
		return nil, errors.New("invalid user ID")
	}

	user, err := uc.userRepo.GetUserByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Could not get user %d for profile update: %v", id, err)
		return nil, err
	}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name != "" {
		user.Name = name
	}
	if email != "" && email != user.Email {
		if !isValidEmail(email) {
			return nil, errors.New("invalid email format")
		}
		if _, lookupErr := uc.userRepo.GetUserByEmail(email); lookupErr == nil {
			uc.log.Warnf("Use Case: Profile update failed - email already in use: %s", email)
			return nil, fmt.Errorf("%w: %s", domain.ErrEmailTaken, email)
		} else if !domain.IsNotFound(lookupErr) {
			return nil, fmt.Errorf("failed to check email availability: %w", lookupErr)
		}
		user.Email = email
	}

	updated, err := uc.userRepo.UpdateUser(user)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update profile for user %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Profile updated for user %d", id)
	profile := updated.Profile()
	return &profile, nil
}

func (uc *userUseCase) ChangePassword(id int64, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return errors.New("current and new passwords are required")
	}

	user, err := uc.userRepo.GetUserByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Could not get user %d for password change: %v", id, err)
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		uc.log.Warnf("Use Case: Password change failed - current password mismatch for user %d", id)
		return errors.New("current password is incorrect")
	}

	if err := validatePassword(newPassword); err != nil {
		uc.log.Warnf("Use Case: Password change failed - new password validation for user %d: %v", id, err)
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash new password for user %d: %v", id, err)
		return fmt.Errorf("internal error processing password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)

	if _, err := uc.userRepo.UpdateUser(user); err != nil {
		uc.log.Errorf("Use Case: Repository failed to update password for user %d: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Password updated for user %d", id)
	return nil
}

// isValidEmail provides a basic check for email format.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	domainParts := strings.Split(parts[1], ".")
	return len(domainParts) >= 2 && domainParts[0] != "" && domainParts[len(domainParts)-1] != ""
}

// validatePassword enforces basic password complexity rules.
func validatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if !hasUpper {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return errors.New("password must contain at least one digit")
	}
	return nil
}
