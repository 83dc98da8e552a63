package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthConfig JWT 签发配置
type AuthConfig struct {
	Secret string
	TTL    time.Duration
}

// UserService 注册 / 登录 / 用户查询
type UserService interface {
	Register(ctx context.Context, name, email, password, role, location string) (*model.User, error)

	// Login 校验密码并签发 JWT，返回 token 与用户
	Login(ctx context.Context, email, password string) (string, *model.User, error)

	List(ctx context.Context) ([]*model.User, error)
	ListHomecooks(ctx context.Context) ([]repository.UserBrief, error)
}

type userService struct {
	users repository.UserRepository
	auth  AuthConfig
}

// NewUserService 创建用户服务
func NewUserService(users repository.UserRepository, auth AuthConfig) UserService {
	if auth.TTL <= 0 {
		auth.TTL = time.Hour
	}
	return &userService{users: users, auth: auth}
}

func (s *userService) Register(ctx context.Context, name, email, password, role, location string) (*model.User, error) {
	email = strings.ToLower(email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
		Location: location,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = strings.ToLower(email)

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.auth.TTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.auth.Secret))
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	return s.users.List(ctx)
}

func (s *userService) ListHomecooks(ctx context.Context) ([]repository.UserBrief, error) {
	return s.users.ListByRole(ctx, model.RoleHomecook)
}
