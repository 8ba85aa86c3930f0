package user

import (
	"context"

	infrarepo "github.com/TeamSorcerers/app-financeiro-sub000/infra"
	"github.com/TeamSorcerers/app-financeiro-sub000/pkg/dto"
	userrepo "github.com/TeamSorcerers/app-financeiro-sub000/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a user repository bound to the provided *gorm.DB.
func New(db *gorm.DB) userrepo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	create *dto.UserCreate,
) error {
	u := &User{
		ID:       create.ID,
		Username: create.Username,
		Email:    create.Email,
		Password: create.Password,
		Name:     create.Name,
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Create(u).Error,
	)
}

func (r *repository) Update(
	ctx context.Context,
	id uuid.UUID,
	update *dto.UserUpdate,
) error {
	updates := make(map[string]interface{})
	if update.Username != nil {
		updates["username"] = *update.Username
	}
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.Password != nil {
		updates["password"] = *update.Password
	}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if len(updates) == 0 {
		return nil
	}
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Model(&User{}).
			Where("id = ?", id).
			Updates(updates).Error,
	)
}

func (r *repository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).First(&u).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) GetByUsername(
	ctx context.Context,
	username string,
) (*dto.UserRead, error) {
	var u User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).First(&u).Error; err != nil {
		return nil, infrarepo.MapGormErrorToDomain(err)
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return infrarepo.MapGormErrorToDomain(
		r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error,
	)
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, infrarepo.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func (r *repository) ExistsByUsername(
	ctx context.Context,
	username string,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("username = ?", username).Count(&count).Error
	if err != nil {
		return false, infrarepo.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func mapModelToDTO(u *User) *dto.UserRead {
	return &dto.UserRead{
		ID:             u.ID,
		Username:       u.Username,
		HashedPassword: u.Password,
		Email:          u.Email,
		Name:           u.Name,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

var _ userrepo.Repository = (*repository)(nil)
