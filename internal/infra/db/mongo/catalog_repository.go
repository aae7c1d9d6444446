package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pousada/internal/domain/extras"
	"pousada/internal/domain/promotions"
)

var byID = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

type PackageRepository struct {
	col *mongo.Collection
}

func NewPackageRepository(db *mongo.Database) *PackageRepository {
	return &PackageRepository{col: db.Collection("packages")}
}

func (r *PackageRepository) ByID(ctx context.Context, id promotions.PackageID) (*promotions.Package, error) {
	var doc packageDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, promotions.ErrPackageNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *PackageRepository) List(ctx context.Context) ([]*promotions.Package, error) {
	var docs []packageDocument
	if err := findAll(ctx, r.col, &docs); err != nil {
		return nil, err
	}
	out := make([]*promotions.Package, 0, len(docs))
	for _, doc := range docs {
		pkg, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		out = append(out, pkg)
	}
	return out, nil
}

func (r *PackageRepository) Save(ctx context.Context, pkg *promotions.Package) error {
	doc := newPackageDocument(pkg)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

type DiscountRepository struct {
	col *mongo.Collection
}

func NewDiscountRepository(db *mongo.Database) *DiscountRepository {
	return &DiscountRepository{col: db.Collection("discount_codes")}
}

func (r *DiscountRepository) ByCode(ctx context.Context, code string) (*promotions.DiscountCode, error) {
	var doc discountDocument
	err := r.col.FindOne(ctx, bson.M{"_id": promotions.NormalizeCode(code)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, promotions.ErrDiscountNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *DiscountRepository) List(ctx context.Context) ([]*promotions.DiscountCode, error) {
	var docs []discountDocument
	if err := findAll(ctx, r.col, &docs); err != nil {
		return nil, err
	}
	out := make([]*promotions.DiscountCode, 0, len(docs))
	for _, doc := range docs {
		code, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		out = append(out, code)
	}
	return out, nil
}

func (r *DiscountRepository) Save(ctx context.Context, code *promotions.DiscountCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	doc := newDiscountDocument(code)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.Code}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *DiscountRepository) Delete(ctx context.Context, code string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": promotions.NormalizeCode(code)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return promotions.ErrDiscountNotFound
	}
	return nil
}

type ExtraRepository struct {
	col *mongo.Collection
}

func NewExtraRepository(db *mongo.Database) *ExtraRepository {
	return &ExtraRepository{col: db.Collection("extra_services")}
}

func (r *ExtraRepository) ByID(ctx context.Context, id extras.ServiceID) (*extras.Service, error) {
	var doc extraDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, extras.ErrServiceNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ExtraRepository) List(ctx context.Context) ([]*extras.Service, error) {
	var docs []extraDocument
	if err := findAll(ctx, r.col, &docs); err != nil {
		return nil, err
	}
	out := make([]*extras.Service, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toAggregate())
	}
	return out, nil
}

func (r *ExtraRepository) Save(ctx context.Context, svc *extras.Service) error {
	doc := newExtraDocument(svc)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func findAll(ctx context.Context, col *mongo.Collection, out any) error {
	cur, err := col.Find(ctx, bson.M{}, byID)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}
