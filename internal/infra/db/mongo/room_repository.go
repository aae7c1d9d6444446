package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pousada/internal/domain/rooms"
)

// ErrConcurrentUpdate is returned when a versioned save loses against another writer.
var ErrConcurrentUpdate = errors.New("mongo: concurrent update")

type RoomRepository struct {
	col *mongo.Collection
}

func NewRoomRepository(db *mongo.Database) *RoomRepository {
	return &RoomRepository{col: db.Collection("rooms")}
}

func (r *RoomRepository) ByID(ctx context.Context, id rooms.RoomID) (*rooms.Room, error) {
	var doc roomDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, rooms.ErrRoomNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *RoomRepository) List(ctx context.Context) ([]*rooms.Room, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []roomDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*rooms.Room, 0, len(docs))
	for _, doc := range docs {
		room, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, nil
}

// Save writes the room only if its stored version still matches room.Version.
func (r *RoomRepository) Save(ctx context.Context, room *rooms.Room) error {
	doc := newRoomDocument(room)
	doc.Version = room.Version + 1
	if err := versionedUpsert(ctx, r.col, doc.ID, room.Version, doc); err != nil {
		return err
	}
	room.Version = doc.Version
	return nil
}

// versionedUpsert replaces the document matching {_id, version}. A stale version
// misses the filter and the upsert then collides on _id.
func versionedUpsert(ctx context.Context, col *mongo.Collection, id string, expected int64, doc any) error {
	filter := bson.M{"_id": id, "version": expected}
	_, err := col.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return ErrConcurrentUpdate
	}
	return err
}
