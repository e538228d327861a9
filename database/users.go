package database

import (
	"context"
	"errors"
	"fmt"

	"tickets-webapp/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoUserStore struct {
	collection *mongo.Collection
}

func NewMongoUserStore(collection *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{collection: collection}
}

func (s *MongoUserStore) Insert(ctx context.Context, user model.UserData) (model.UserData, error) {
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}

	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.UserData{}, fmt.Errorf("%w: user %s", ErrDuplicate, user.Email)
		}
		return model.UserData{}, fmt.Errorf("server side problem occured while writing user data: %w", err)
	}

	return user, nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (model.UserData, error) {
	var user model.UserData
	err := s.collection.FindOne(ctx, bson.D{primitive.E{Key: "email", Value: email}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.UserData{}, ErrNotFound
	}
	if err != nil {
		return model.UserData{}, fmt.Errorf("server side problem occured while reading user data from database: %w", err)
	}
	return user, nil
}
