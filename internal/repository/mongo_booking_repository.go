package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/pradyumyelame/EasyToStay/internal/model"
)

type mongoBookingRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoBookingRepository builds a document-store booking repository.
func NewMongoBookingRepository(db *mongo.Database) BookingRepository {
	return &mongoBookingRepository{coll: db.Collection(BookingsCollection), now: time.Now}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	booking.CreatedAt = r.now().UTC()
	doc, err := bookingToDoc(booking)
	if err != nil {
		return err
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var doc bookingDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, translateMongoError(err)
	}
	return doc.toModel(), nil
}

func (r *mongoBookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	oid, ok := parseObjectID(userID)
	if !ok {
		return []model.Booking{}, nil
	}
	cur, err := r.coll.Aggregate(ctx, bookingsWithPlacePipeline(oid))
	if err != nil {
		return nil, err
	}
	var docs []bookingDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	bookings := make([]model.Booking, 0, len(docs))
	for _, d := range docs {
		bookings = append(bookings, *d.toModel())
	}
	return bookings, nil
}

func bookingsWithPlacePipeline(userID bson.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user", Value: userID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "checkIn", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: PlacesCollection},
			{Key: "localField", Value: "place"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "placeDocs"},
		}}},
	}
}

// NewMongoStores returns the repositories backed by the document store.
func NewMongoStores(db *mongo.Database) Stores {
	return Stores{
		Users:    NewMongoUserRepository(db),
		Places:   NewMongoPlaceRepository(db),
		Bookings: NewMongoBookingRepository(db),
	}
}
