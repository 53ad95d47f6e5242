package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/pradyumyelame/EasyToStay/internal/model"
)

type mongoPlaceRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoPlaceRepository builds a document-store place repository.
func NewMongoPlaceRepository(db *mongo.Database) PlaceRepository {
	return &mongoPlaceRepository{coll: db.Collection(PlacesCollection), now: time.Now}
}

func (r *mongoPlaceRepository) Create(ctx context.Context, place *model.Place) error {
	now := r.now().UTC()
	place.CreatedAt, place.UpdatedAt = now, now
	doc, err := placeToDoc(place)
	if err != nil {
		return err
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		place.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPlaceRepository) FindByID(ctx context.Context, id string) (*model.Place, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var doc placeDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, translateMongoError(err)
	}
	return doc.toModel(), nil
}

// FindByIDWithOwner joins the owner document. The password hash is never
// serialised, so the populated owner is safe to return.
func (r *mongoPlaceRepository) FindByIDWithOwner(ctx context.Context, id string) (*model.Place, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: oid}}}},
		{{Key: "$limit", Value: 1}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: UsersCollection},
			{Key: "localField", Value: "owner"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "ownerDocs"},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var docs []placeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return docs[0].toModel(), nil
}

func (r *mongoPlaceRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Place, error) {
	oid, ok := parseObjectID(ownerID)
	if !ok {
		return []model.Place{}, nil
	}
	return r.find(ctx, bson.D{{Key: "owner", Value: oid}})
}

func (r *mongoPlaceRepository) ListAll(ctx context.Context) ([]model.Place, error) {
	return r.find(ctx, bson.D{})
}

func (r *mongoPlaceRepository) find(ctx context.Context, filter bson.D) ([]model.Place, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []placeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	places := make([]model.Place, 0, len(docs))
	for _, d := range docs {
		places = append(places, *d.toModel())
	}
	return places, nil
}

func (r *mongoPlaceRepository) Update(ctx context.Context, place *model.Place) error {
	oid, ok := parseObjectID(place.ID)
	if !ok {
		return ErrNotFound
	}
	place.UpdatedAt = r.now().UTC()
	doc, err := placeToDoc(place)
	if err != nil {
		return err
	}
	set := bson.D{
		{Key: "title", Value: doc.Title},
		{Key: "address", Value: doc.Address},
		{Key: "photos", Value: doc.Photos},
		{Key: "description", Value: doc.Description},
		{Key: "perks", Value: doc.Perks},
		{Key: "extraInfo", Value: doc.ExtraInfo},
		{Key: "checkIn", Value: doc.CheckIn},
		{Key: "checkOut", Value: doc.CheckOut},
		{Key: "maxGuests", Value: doc.MaxGuests},
		{Key: "price", Value: doc.Price},
		{Key: "updatedAt", Value: doc.UpdatedAt},
	}
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoPlaceRepository) Delete(ctx context.Context, id string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
