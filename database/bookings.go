package database

import (
	"context"
	"errors"
	"fmt"

	"tickets-webapp/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoBookingStore struct {
	collection *mongo.Collection
}

func NewMongoBookingStore(collection *mongo.Collection) *MongoBookingStore {
	return &MongoBookingStore{collection: collection}
}

func (s *MongoBookingStore) Insert(ctx context.Context, booking model.Booking) (model.Booking, error) {
	if field := booking.MissingField(); field != "" {
		return model.Booking{}, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	if booking.Id.IsZero() {
		booking.Id = primitive.NewObjectID()
	}

	if _, err := s.collection.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Booking{}, fmt.Errorf("%w: booking for payment %s", ErrDuplicate, booking.PaymentId)
		}
		return model.Booking{}, fmt.Errorf("insert booking: %w", err)
	}

	return booking, nil
}

func (s *MongoBookingStore) FindByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	return s.find(ctx, bson.D{primitive.E{Key: "email", Value: email}})
}

func (s *MongoBookingStore) FindByUserID(ctx context.Context, userID string) ([]model.Booking, error) {
	return s.find(ctx, bson.D{primitive.E{Key: "userId", Value: userID}})
}

func (s *MongoBookingStore) ListAll(ctx context.Context) ([]model.Booking, error) {
	return s.find(ctx, bson.D{})
}

func (s *MongoBookingStore) FindByPaymentID(ctx context.Context, paymentID string) (model.Booking, error) {
	var booking model.Booking
	err := s.collection.FindOne(ctx, bson.D{primitive.E{Key: "paymentId", Value: paymentID}}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Booking{}, ErrNotFound
	}
	if err != nil {
		return model.Booking{}, fmt.Errorf("find booking by payment: %w", err)
	}
	return booking, nil
}

func (s *MongoBookingStore) find(ctx context.Context, filter bson.D) ([]model.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer cur.Close(ctx)

	bookings := []model.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}

	return bookings, nil
}
