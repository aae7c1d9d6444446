package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"pousada/internal/domain/extras"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/reservation"
	"pousada/internal/domain/rooms"
	"pousada/internal/domain/shared/daterange"
	"pousada/internal/domain/shared/money"
)

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("reservations")}
}

func (r *ReservationRepository) ByID(ctx context.Context, id reservation.ID) (*reservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	doc := newReservationDocument(res)
	doc.Version = res.Version + 1
	if err := versionedUpsert(ctx, r.col, doc.ID, res.Version, doc); err != nil {
		return err
	}
	res.Version = doc.Version
	return nil
}

type reservationRoomDocument struct {
	RoomID    string `bson:"room_id"`
	RoomName  string `bson:"room_name"`
	PackageID string `bson:"package_id,omitempty"`
	Total     int64  `bson:"total"`
}

type reservationExtraDocument struct {
	ServiceID string `bson:"service_id"`
	Name      string `bson:"name"`
	Quantity  int    `bson:"quantity"`
	UnitPrice int64  `bson:"unit_price"`
	Total     int64  `bson:"total"`
}

type reservationDocument struct {
	ID                    string                     `bson:"_id"`
	GuestName             string                     `bson:"guest_name"`
	GuestEmail            string                     `bson:"guest_email"`
	GuestPhone            string                     `bson:"guest_phone,omitempty"`
	CheckIn               string                     `bson:"check_in"`
	CheckOut              string                     `bson:"check_out"`
	Rooms                 []reservationRoomDocument  `bson:"rooms"`
	Extras                []reservationExtraDocument `bson:"extras"`
	DiscountCode          string                     `bson:"discount_code,omitempty"`
	Currency              string                     `bson:"currency"`
	AccommodationSubtotal int64                      `bson:"accommodation_subtotal"`
	Discount              int64                      `bson:"discount"`
	ExtrasTotal           int64                      `bson:"extras_total"`
	Total                 int64                      `bson:"total"`
	State                 string                     `bson:"state"`
	CancelReason          string                     `bson:"cancel_reason,omitempty"`
	CreatedAt             time.Time                  `bson:"created_at"`
	UpdatedAt             time.Time                  `bson:"updated_at"`
	Version               int64                      `bson:"version"`
}

func newReservationDocument(r *reservation.Reservation) reservationDocument {
	doc := reservationDocument{
		ID:                    string(r.ID),
		GuestName:             r.Guest.Name,
		GuestEmail:            r.Guest.Email,
		GuestPhone:            r.Guest.Phone,
		CheckIn:               dateString(r.Stay.CheckIn),
		CheckOut:              dateString(r.Stay.CheckOut),
		DiscountCode:          r.DiscountCode,
		Currency:              r.Total.Currency,
		AccommodationSubtotal: r.AccommodationSubtotal.Amount,
		Discount:              r.Discount.Amount,
		ExtrasTotal:           r.ExtrasTotal.Amount,
		Total:                 r.Total.Amount,
		State:                 string(r.State),
		CancelReason:          r.CancelReason,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
		Version:               r.Version,
	}
	for _, line := range r.Rooms {
		doc.Rooms = append(doc.Rooms, reservationRoomDocument{
			RoomID:    string(line.RoomID),
			RoomName:  line.RoomName,
			PackageID: string(line.PackageID),
			Total:     line.Total,
		})
	}
	for _, line := range r.Extras {
		doc.Extras = append(doc.Extras, reservationExtraDocument{
			ServiceID: string(line.ServiceID),
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.Total,
		})
	}
	return doc
}

func (d reservationDocument) toAggregate() (*reservation.Reservation, error) {
	checkIn, err := parseDate(d.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseDate(d.CheckOut)
	if err != nil {
		return nil, err
	}
	amount := func(v int64) money.Money { return money.Money{Amount: v, Currency: d.Currency} }
	res := &reservation.Reservation{
		ID:                    reservation.ID(d.ID),
		Guest:                 reservation.Guest{Name: d.GuestName, Email: d.GuestEmail, Phone: d.GuestPhone},
		Stay:                  daterange.DateRange{CheckIn: checkIn, CheckOut: checkOut},
		DiscountCode:          d.DiscountCode,
		AccommodationSubtotal: amount(d.AccommodationSubtotal),
		Discount:              amount(d.Discount),
		ExtrasTotal:           amount(d.ExtrasTotal),
		Total:                 amount(d.Total),
		State:                 reservation.State(d.State),
		CancelReason:          d.CancelReason,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
		Version:               d.Version,
	}
	for _, line := range d.Rooms {
		res.Rooms = append(res.Rooms, reservation.RoomLine{
			RoomID:    rooms.RoomID(line.RoomID),
			RoomName:  line.RoomName,
			PackageID: promotions.PackageID(line.PackageID),
			Total:     line.Total,
		})
	}
	for _, line := range d.Extras {
		res.Extras = append(res.Extras, reservation.ExtraLine{
			ServiceID: extras.ServiceID(line.ServiceID),
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.Total,
		})
	}
	return res, nil
}
