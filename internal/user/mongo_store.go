package user

import (
	"context"
	"net/http"
	"strings"

	"github.com/Abraxas-365/craftable/errx"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "users"

// MongoStore persists identity records in the users collection.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(collectionName)}
}

// EnsureIndexes creates the uniqueness guardians. Mobile and google_id
// are sparse unique. The email index is partial over password accounts
// only: a Google-created record may share an email with an existing
// password account (see DESIGN.md, open question), so Google records
// stay outside the unique index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("users_email_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{
					{Key: "email", Value: bson.D{{Key: "$exists", Value: true}}},
					{Key: "password_hash", Value: bson.D{{Key: "$exists", Value: true}}},
				}),
		},
		{
			Keys: bson.D{{Key: "mobile", Value: 1}},
			Options: options.Index().
				SetName("users_mobile_unique").
				SetUnique(true).
				SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "google_id", Value: 1}},
			Options: options.Index().
				SetName("users_google_id_unique").
				SetUnique(true).
				SetSparse(true),
		},
	})
	return err
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoStore) FindByMobile(ctx context.Context, mobile string) (*User, error) {
	return s.findOne(ctx, bson.M{"mobile": mobile})
}

func (s *MongoStore) FindByGoogleID(ctx context.Context, googleID string) (*User, error) {
	return s.findOne(ctx, bson.M{"google_id": googleID})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var u User
	err := s.col.FindOne(ctx, filter).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errx.Wrap(err, "user lookup failed", errx.TypeInternal)
	}
	return &u, nil
}

func (s *MongoStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, bson.M{"email": email})
}

func (s *MongoStore) ExistsByMobile(ctx context.Context, mobile string) (bool, error) {
	return s.exists(ctx, bson.M{"mobile": mobile})
}

func (s *MongoStore) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := s.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, errx.Wrap(err, "user existence check failed", errx.TypeInternal)
	}
	return n > 0, nil
}

// Save inserts or replaces the record. A new record gets a uuid id. A
// unique index violation comes back as the matching conflict error so
// callers never see a raw driver error for a stale pre-check.
func (s *MongoStore) Save(ctx context.Context, u *User) (*User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	_, err := s.col.ReplaceOne(
		ctx,
		bson.M{"_id": u.ID},
		u,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyConflict(err)
		}
		return nil, errx.Wrap(err, "user save failed", errx.TypeInternal)
	}

	return u, nil
}

// duplicateKeyConflict maps a duplicate key error to the conflict for
// the violated index. The index name travels in the error message; the
// driver exposes no structured field for it.
func duplicateKeyConflict(err error) *errx.Error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "users_email_unique"):
		return userErrors.NewWithCause(ErrEmailExists, err)
	case strings.Contains(msg, "users_mobile_unique"):
		return userErrors.NewWithCause(ErrMobileExists, err)
	case strings.Contains(msg, "users_google_id_unique"):
		return userErrors.NewWithCause(ErrGoogleIDExists, err)
	default:
		e := errx.Wrap(err, "duplicate key on user save", errx.TypeConflict)
		e.HTTPStatus = http.StatusConflict
		return e
	}
}
