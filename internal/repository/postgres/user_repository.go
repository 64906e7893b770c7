package postgres

import (
	"context"
	"time"

	"ecommerceBackend/domain"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	if err := conn(ctx, r.DB).Create(user).Error; err != nil {
		return translate(err, "failed to create user", "user not found", "Username or email already exists")
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	var user domain.User

	err := conn(ctx, r.DB).First(&user, "id = ?", id).Error
	if err != nil {
		return domain.User{}, translate(err, "failed to find user", "User not found", "")
	}

	return user, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	var users []domain.User
	if len(ids) == 0 {
		return users, nil
	}

	if err := conn(ctx, r.DB).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find users")
	}

	return users, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User

	err := conn(ctx, r.DB).Where("email = ?", email).First(&user).Error
	if err != nil {
		return domain.User{}, translate(err, "failed to find user by email", "User not found", "")
	}

	return user, nil
}

// ExistsByUsernameOrEmail reports whether another user already holds username or email.
// exclude is ignored when it is uuid.Nil.
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string, exclude uuid.UUID) (bool, error) {
	q := conn(ctx, r.DB).Model(&domain.User{}).Where("(username = ? OR email = ?)", username, email)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check user uniqueness")
	}

	return count > 0, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User

	if err := conn(ctx, r.DB).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find users")
	}

	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, r.DB).Model(&domain.User{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}

	return count, nil
}

func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(conn(ctx, r.DB), &domain.User{}, "id = ?", id)
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	result := conn(ctx, r.DB).Model(&domain.User{}).Where("id = ?", user.ID).
		Select("username", "email", "password_hash", "first_name", "last_name", "sex",
			"role", "profile_photo", "phone_number", "address_id", "updated_at").
		Updates(user)
	if result.Error != nil {
		return translate(result.Error, "failed to update user", "User not found", "Username or email already exists")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("User not found")
	}

	return nil
}

func (r *UserRepository) SetAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	result := conn(ctx, r.DB).Model(&domain.User{}).Where("id = ?", userID).
		Updates(map[string]any{"address_id": addressID, "updated_at": time.Now()})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set user address")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("User not found")
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.DB).Delete(&domain.User{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete user")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("User not found")
	}

	return nil
}

func (r *UserRepository) UpdateEmailVerification(ctx context.Context, email string, isVerified bool) error {
	result := conn(ctx, r.DB).Model(&domain.User{}).Where("email = ?", email).
		Updates(map[string]any{"is_verified": isVerified, "updated_at": time.Now()})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update email verification")
	}

	if result.RowsAffected == 0 {
		return domain.NotFoundError("User not found")
	}

	return nil
}
