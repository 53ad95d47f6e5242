package repository

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pradyumyelame/EasyToStay/internal/model"
)

// Collection names of the document store.
const (
	UsersCollection    = "users"
	PlacesCollection   = "places"
	BookingsCollection = "bookings"
)

type userDoc struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	Name       string        `bson:"name"`
	Email      string        `bson:"email"`
	Password   string        `bson:"password"`
	ProfilePic string        `bson:"profilePic,omitempty"`
	CreatedAt  time.Time     `bson:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt"`
}

type placeDoc struct {
	ID          bson.ObjectID   `bson:"_id,omitempty"`
	Owner       bson.ObjectID   `bson:"owner"`
	Title       string          `bson:"title"`
	Address     string          `bson:"address"`
	Photos      []string        `bson:"photos"`
	Description string          `bson:"description"`
	Perks       []string        `bson:"perks"`
	ExtraInfo   string          `bson:"extraInfo"`
	CheckIn     string          `bson:"checkIn"`
	CheckOut    string          `bson:"checkOut"`
	MaxGuests   int             `bson:"maxGuests"`
	Price       bson.Decimal128 `bson:"price"`
	CreatedAt   time.Time       `bson:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt"`
	OwnerDocs   []userDoc       `bson:"ownerDocs,omitempty"`
}

type bookingDoc struct {
	ID        bson.ObjectID   `bson:"_id,omitempty"`
	Place     bson.ObjectID   `bson:"place"`
	User      bson.ObjectID   `bson:"user"`
	CheckIn   time.Time       `bson:"checkIn"`
	CheckOut  time.Time       `bson:"checkOut"`
	Guests    int             `bson:"guests"`
	Name      string          `bson:"name"`
	Mobile    string          `bson:"mobile"`
	Price     bson.Decimal128 `bson:"price"`
	CreatedAt time.Time       `bson:"createdAt"`
	PlaceDocs []placeDoc      `bson:"placeDocs,omitempty"`
}

// parseObjectID accepts the hex form of an ObjectID in any case.
func parseObjectID(id string) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(strings.ToLower(strings.TrimSpace(id)))
	if err != nil {
		return bson.NilObjectID, false
	}
	return oid, true
}

func hexOrEmpty(oid bson.ObjectID) string {
	if oid.IsZero() {
		return ""
	}
	return oid.Hex()
}

func toDecimal128(d decimal.Decimal) (bson.Decimal128, error) {
	return bson.ParseDecimal128(d.String())
}

func fromDecimal128(d bson.Decimal128) decimal.Decimal {
	v, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return v
}

func userToDoc(u *model.User) (userDoc, error) {
	doc := userDoc{
		Name:       u.Name,
		Email:      u.Email,
		Password:   u.PasswordHash,
		ProfilePic: u.ProfilePic,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if u.ID != "" {
		oid, ok := parseObjectID(u.ID)
		if !ok {
			return userDoc{}, ErrNotFound
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d userDoc) toModel() *model.User {
	return &model.User{
		ID:           hexOrEmpty(d.ID),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		ProfilePic:   d.ProfilePic,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func placeToDoc(p *model.Place) (placeDoc, error) {
	owner, ok := parseObjectID(p.OwnerID)
	if !ok {
		return placeDoc{}, ErrNotFound
	}
	price, err := toDecimal128(p.Price)
	if err != nil {
		return placeDoc{}, err
	}
	doc := placeDoc{
		Owner:       owner,
		Title:       p.Title,
		Address:     p.Address,
		Photos:      nonNil(p.Photos),
		Description: p.Description,
		Perks:       nonNil(p.Perks),
		ExtraInfo:   p.ExtraInfo,
		CheckIn:     p.CheckIn,
		CheckOut:    p.CheckOut,
		MaxGuests:   p.MaxGuests,
		Price:       price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.ID != "" {
		oid, ok := parseObjectID(p.ID)
		if !ok {
			return placeDoc{}, ErrNotFound
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d placeDoc) toModel() *model.Place {
	p := &model.Place{
		ID:          hexOrEmpty(d.ID),
		OwnerID:     hexOrEmpty(d.Owner),
		Title:       d.Title,
		Address:     d.Address,
		Photos:      nonNil(d.Photos),
		Description: d.Description,
		Perks:       nonNil(d.Perks),
		ExtraInfo:   d.ExtraInfo,
		CheckIn:     d.CheckIn,
		CheckOut:    d.CheckOut,
		MaxGuests:   d.MaxGuests,
		Price:       fromDecimal128(d.Price),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if len(d.OwnerDocs) > 0 {
		p.Owner = d.OwnerDocs[0].toModel()
	}
	return p
}

func bookingToDoc(b *model.Booking) (bookingDoc, error) {
	place, ok := parseObjectID(b.PlaceID)
	if !ok {
		return bookingDoc{}, ErrNotFound
	}
	user, ok := parseObjectID(b.UserID)
	if !ok {
		return bookingDoc{}, ErrNotFound
	}
	price, err := toDecimal128(b.Price)
	if err != nil {
		return bookingDoc{}, err
	}
	return bookingDoc{
		Place:     place,
		User:      user,
		CheckIn:   b.CheckIn,
		CheckOut:  b.CheckOut,
		Guests:    b.Guests,
		Name:      b.Name,
		Mobile:    b.Mobile,
		Price:     price,
		CreatedAt: b.CreatedAt,
	}, nil
}

func (d bookingDoc) toModel() *model.Booking {
	b := &model.Booking{
		ID:        hexOrEmpty(d.ID),
		PlaceID:   hexOrEmpty(d.Place),
		UserID:    hexOrEmpty(d.User),
		CheckIn:   d.CheckIn,
		CheckOut:  d.CheckOut,
		Guests:    d.Guests,
		Name:      d.Name,
		Mobile:    d.Mobile,
		Price:     fromDecimal128(d.Price),
		CreatedAt: d.CreatedAt,
	}
	if len(d.PlaceDocs) > 0 {
		b.Place = d.PlaceDocs[0].toModel()
	}
	return b
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
