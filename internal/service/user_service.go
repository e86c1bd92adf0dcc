package service

import (
	"context"
	"strings"
	"time"

	"aptilab/internal/domain"
	"aptilab/internal/dto"
	"aptilab/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService registers and authenticates test takers.
type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type userServiceImpl struct {
	users domain.UserRepository
	// auth is optional; without it login succeeds but issues no token.
	auth       AuthService
	bcryptCost int
}

func NewUserService(users domain.UserRepository, auth AuthService) UserService {
	return &userServiceImpl{users: users, auth: auth, bcryptCost: bcrypt.DefaultCost}
}

func (s *userServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := domain.NormalizeEmail(req.Email)

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewStorageError("get_user_by_email", err)
	}
	if existing != nil {
		return nil, domain.NewDuplicateUserError(email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, domain.NewInternalError("Failed to hash password", err)
	}

	id, err := s.users.CreateUser(ctx, &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	})
	if err != nil {
		// The unique key wins races between the lookup above and the insert.
		if domain.IsCode(err, domain.CodeDuplicateUser) {
			return nil, err
		}
		return nil, domain.NewStorageError("create_user", err)
	}

	logger.Get().Info("User registered", zap.Int64("user_id", id), zap.String("email", email))
	return &dto.RegisterResponse{Success: true, Message: "User registered successfully", UserID: id}, nil
}

func (s *userServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := domain.NormalizeEmail(req.Email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewStorageError("get_user_by_email", err)
	}
	if user == nil {
		return nil, domain.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Get().Debug("Password mismatch", zap.String("email", email))
		return nil, domain.NewInvalidCredentialsError()
	}

	resp := &dto.LoginResponse{
		Success: true,
		Message: "Login successful",
		User:    dto.UserDTO{ID: user.ID, Name: user.Name, Email: user.Email},
	}
	if s.auth != nil {
		token, err := s.auth.CreateAccessToken(ctx, user)
		if err != nil {
			return nil, domain.NewInternalError("Failed to issue access token", err)
		}
		resp.Token = token
	}
	return resp, nil
}
