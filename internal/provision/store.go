package provision

import (
	"context"

	"hospital-services/internal/models"

	"gorm.io/gorm"
)

// GormAccountStore implements AccountStore on the accounts service's database.
type GormAccountStore struct {
	DB *gorm.DB
}

var _ AccountStore = (*GormAccountStore)(nil)

// Create inserts the account and fills in its assigned ID.
func (s *GormAccountStore) Create(ctx context.Context, account *models.Account) error {
	return s.DB.WithContext(ctx).Create(account).Error
}

// Delete removes the account. Used only as the coordinator's compensating
// action or by explicit admin request.
func (s *GormAccountStore) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Delete(&models.Account{}, id).Error
}

// Promote sets the elevated privilege flags on an admin account.
func (s *GormAccountStore) Promote(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_staff": true, "is_superuser": true}).Error
}
