package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/abosaleg/enrollment-service/internal/auth"
	"github.com/abosaleg/enrollment-service/internal/models"
	"github.com/abosaleg/enrollment-service/internal/repositories"
)

type userRepository struct {
	db     *gorm.DB
	hasher auth.PasswordHasher
}

func NewUserRepository(db *gorm.DB, hasher auth.PasswordHasher) repositories.UserRepository {
	return &userRepository{db: db, hasher: hasher}
}

func (r *userRepository) Create(ctx context.Context, user *models.User, password string) error {
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translateError(err, "create user", repositories.ErrUserNotFound)
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translateError(err, "get user by email", repositories.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, translateError(err, "get user by id", repositories.ErrUserNotFound)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	var users []*models.User

	query := r.db.WithContext(ctx).Model(&models.User{})
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}

	if err := byRecency(query).Find(&users).Error; err != nil {
		return nil, translateError(err, "list users", repositories.ErrUserNotFound)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id uint, name, email, phone string, avatarPath *string) error {
	updates := map[string]any{
		"name":  name,
		"email": email,
		"phone": phone,
	}
	// Partial update: a nil avatar keeps whatever is stored.
	if avatarPath != nil {
		updates["avatar_path"] = *avatarPath
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return translateError(result.Error, "update user", repositories.ErrUserNotFound)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, password string) error {
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash)
	if result.Error != nil {
		return translateError(result.Error, "update password", repositories.ErrUserNotFound)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	// Enrollment rows are removed by ON DELETE CASCADE, so both deletes are
	// one atomic unit at the storage layer.
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return translateError(result.Error, "delete user", repositories.ErrUserNotFound)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) PhoneExists(ctx context.Context, phone string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("phone = ?", phone)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check phone exists: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) CountStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleStudent).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}
