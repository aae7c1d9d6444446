package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"pousada/internal/domain/promotions"
	"pousada/internal/domain/rooms"
	"pousada/internal/infra/fixtures"
)

// SeedCatalog writes catalog entries. Rooms and discount codes already stored are
// left alone so admin edits survive restarts; packages and extras are replaced.
func SeedCatalog(ctx context.Context, db *mongo.Database, cat fixtures.Catalog) error {
	roomsRepo := NewRoomRepository(db)
	for _, room := range cat.Rooms {
		_, err := roomsRepo.ByID(ctx, room.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, rooms.ErrRoomNotFound) {
			return err
		}
		if err := roomsRepo.Save(ctx, room.Clone()); err != nil && !errors.Is(err, ErrConcurrentUpdate) {
			return err
		}
	}
	discounts := NewDiscountRepository(db)
	for _, code := range cat.Discounts {
		_, err := discounts.ByCode(ctx, code.Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, promotions.ErrDiscountNotFound) {
			return err
		}
		if err := discounts.Save(ctx, code); err != nil {
			return err
		}
	}
	packages := NewPackageRepository(db)
	for _, pkg := range cat.Packages {
		if err := packages.Save(ctx, pkg); err != nil {
			return err
		}
	}
	services := NewExtraRepository(db)
	for _, svc := range cat.Extras {
		if err := services.Save(ctx, svc); err != nil {
			return err
		}
	}
	return nil
}
