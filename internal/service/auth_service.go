package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ecotrade/marketplace/internal/auth"
	"github.com/ecotrade/marketplace/internal/model"
	"github.com/ecotrade/marketplace/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already exists")
var ErrBadCredentials = errors.New("invalid credentials")

const bcryptCost = 12

type AuthService interface {
	Signup(ctx context.Context, name, email, password, phone, address string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	userRepo repository.UserRepository
	secret   string
}

func NewAuthService(userRepo repository.UserRepository, secret string) AuthService {
	return &authService{userRepo: userRepo, secret: secret}
}

func (s *authService) Signup(ctx context.Context, name, email, password, phone, address string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return nil, "", errors.New("name, email and password are required")
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        phone,
		Address:      address,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// the unique index closes the check-then-insert race
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := auth.Issue(s.secret, user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrBadCredentials
	}
	token, err := auth.Issue(s.secret, user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
