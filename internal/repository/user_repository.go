package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/homecook/internal/model"
)

// UserBrief 聊天联系人等轻量场景只需要 id + name
type UserBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserRepository 用户仓储接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	ListByRole(ctx context.Context, role string) ([]UserBrief, error)

	// UpdateLocation 地址保存时同步 users.location（best-effort 由上层决定）
	UpdateLocation(ctx context.Context, userID int64, city string) error
}

type gormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *gormUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) List(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *gormUserRepository) ListByRole(ctx context.Context, role string) ([]UserBrief, error) {
	var briefs []UserBrief
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("id, name").
		Where("role = ?", role).
		Scan(&briefs).Error
	if err != nil {
		return nil, err
	}
	return briefs, nil
}

func (r *gormUserRepository) UpdateLocation(ctx context.Context, userID int64, city string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("location", city).Error
}
