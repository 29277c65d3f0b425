package postgres

import (
	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Image{},
		&domain.User{},
		&domain.RefreshToken{},
		&domain.SpaceType{},
		&domain.SpaceAccessMethod{},
		&domain.SpaceAccessOption{},
		&domain.StorageCondition{},
		&domain.UnloadingMoving{},
		&domain.SpaceSecurity{},
		&domain.SpaceSchedule{},
		&domain.SpaceForRent{},
		&domain.SpaceReview{},
		&domain.SpaceBooking{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:    NewUserRepository(db),
		Token:   NewTokenRepository(db),
		Space:   NewSpaceRepository(db),
		Review:  NewReviewRepository(db),
		Booking: NewRepo[domain.SpaceBooking](db),
		Image:   NewRepo[domain.Image](db),

		SpaceType:         NewRepo[domain.SpaceType](db),
		SpaceAccessMethod: NewRepo[domain.SpaceAccessMethod](db),
		SpaceAccessOption: NewRepo[domain.SpaceAccessOption](db),
		StorageCondition:  NewRepo[domain.StorageCondition](db),
		UnloadingMoving:   NewRepo[domain.UnloadingMoving](db),
		SpaceSecurity:     NewRepo[domain.SpaceSecurity](db),
		SpaceSchedule:     NewRepo[domain.SpaceSchedule](db),
	}
}
