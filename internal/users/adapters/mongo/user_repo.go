// Package mongo содержит реализацию репозитория пользователей поверх MongoDB.
package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"userdirectory/internal/users/domain/entities"
	"userdirectory/internal/users/ports/repositories"
	"userdirectory/pkg/logger"
)

// CollectionName - коллекция с записями пользователей.
const CollectionName = "users"

const (
	opFindAll        = "find all users"
	opFindByID       = "find user by id"
	opFindByUsername = "find user by username"
	opFindByEmail    = "find user by email"
	opCreate         = "create user"
)

// ObjectID растет монотонно внутри процесса, сортировка по нему дает порядок вставки.
var naturalOrder = bson.D{{Key: "_id", Value: 1}}

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Followers []string           `bson:"followers"`
}

func (d *userDocument) toEntity() *entities.User {
	followers := d.Followers
	if followers == nil {
		followers = []string{}
	}
	return &entities.User{
		ID:        d.ID.Hex(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Username:  d.Username,
		Email:     d.Email,
		Followers: followers,
	}
}

// UserRepository реализует repositories.UserRepository для MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository создает репозиторий над коллекцией пользователей.
func NewUserRepository(coll *mongo.Collection) repositories.UserRepository {
	return &UserRepository{coll: coll}
}

// FindAll возвращает все документы в порядке вставки.
func (r *UserRepository) FindAll(ctx context.Context) ([]*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindAll"))

	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(naturalOrder))
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, entities.NewStoreError(opFindAll, err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Warn(ctx, "error closing cursor", zap.Error(err))
		}
	}()

	users := make([]*entities.User, 0)
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Error(ctx, "error decoding user document", zap.Error(err))
			return nil, entities.NewStoreError(opFindAll, err)
		}
		users = append(users, doc.toEntity())
	}

	if err := cursor.Err(); err != nil {
		log.Error(ctx, "error iterating users", zap.Error(err))
		return nil, entities.NewStoreError(opFindAll, err)
	}

	log.Debug(ctx, "users listed", zap.Int("count", len(users)))
	return users, nil
}

// FindByID находит документ по шестнадцатеричному ObjectID.
// Строка, которая не является ObjectID, ни с чем не совпадает.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log(ctx).Debug(ctx, "reference is not an object id", zap.String("id", id))
		return nil, entities.ErrUserNotFound
	}
	return r.findOne(ctx, "FindByID", opFindByID, bson.D{{Key: "_id", Value: oid}}, zap.String("id", id))
}

// FindByUsername возвращает первый по порядку вставки документ с таким username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, "FindByUsername", opFindByUsername,
		bson.D{{Key: "username", Value: username}}, zap.String("username", username))
}

// FindByEmail возвращает первый по порядку вставки документ с таким email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "FindByEmail", opFindByEmail,
		bson.D{{Key: "email", Value: email}}, zap.String("email", email))
}

func (r *UserRepository) findOne(ctx context.Context, method, op string, filter bson.D, key zap.Field) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	var doc userDocument
	err := r.coll.FindOne(ctx, filter, options.FindOne().SetSort(naturalOrder)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug(ctx, "user not found", key)
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user", key, zap.Error(err))
		return nil, entities.NewStoreError(op, err)
	}

	return doc.toEntity(), nil
}

// Create вставляет документ с новым ObjectID.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	doc := userDocument{
		ID:        primitive.NewObjectID(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Email:     user.Email,
		Followers: append([]string{}, user.Followers...),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, entities.NewStoreError(opCreate, err)
	}

	log.Info(ctx, "user created", zap.String("id", doc.ID.Hex()))
	return doc.toEntity(), nil
}
