package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"supportbot/internal/models"
	"supportbot/internal/storage"
)

const (
	databaseName           = "supportbot"
	usersCollectionName    = "users"
	chatsCollectionName    = "chats"
	messagesCollectionName = "messages"
	countersCollectionName = "counters"

	chatsCounterName = "chats"
)

type Mongo struct {
	client *mongo.Client
}

func New(ctx context.Context, uri string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))

	if err != nil {
		return nil, err
	}

	err = client.Ping(ctx, nil)

	if err != nil {
		return nil, err
	}

	return &Mongo{
		client: client,
	}, nil
}

func Init(ctx context.Context, db *Mongo) error {
	_, err := db.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	if err != nil {
		return err
	}

	_, err = db.chats().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}},
	})

	if err != nil {
		return err
	}

	_, err = db.messages().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "chat_id", Value: 1}},
	})

	return err
}

func (db *Mongo) Disconnect(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *Mongo) GetUserById(ctx context.Context, userId int64) (models.User, error) {
	var result models.User

	err := db.users().FindOne(ctx, bson.M{"id": userId}).Decode(&result)

	return result, mapErr(err)
}

func (db *Mongo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var result models.User

	err := db.users().FindOne(ctx, bson.M{"username": username}).Decode(&result)

	return result, mapErr(err)
}

// GetOrCreateUser upserts the directory record for userId. Concurrent upserts
// of the same identity converge on a single document and never error.
func (db *Mongo) GetOrCreateUser(ctx context.Context, userId int64, username string) (models.User, error) {
	var result models.User

	update := bson.M{
		"$set": bson.M{"username": username},
		"$setOnInsert": bson.M{
			"id":         userId,
			"is_admin":   false,
			"is_banned":  false,
			"created_at": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	err := db.users().FindOneAndUpdate(ctx, bson.M{"id": userId}, update, opts).Decode(&result)

	return result, err
}

func (db *Mongo) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := db.users().ReplaceOne(ctx, bson.M{"id": user.Id}, user)

	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (db *Mongo) ListUsers(ctx context.Context) ([]models.User, error) {
	return db.findUsers(ctx, bson.M{}, nil)
}

func (db *Mongo) ListAdmins(ctx context.Context) ([]models.User, error) {
	return db.findUsers(ctx, bson.M{"is_admin": true}, nil)
}

func (db *Mongo) ListUsersPage(ctx context.Context, filter storage.UserFilter) (storage.UserPage, error) {
	query := bson.M{}

	if filter.Username != "" {
		query["username"] = primitive.Regex{Pattern: filter.Username, Options: "i"}
	}

	total, err := db.users().CountDocuments(ctx, query)

	if err != nil {
		return storage.UserPage{}, err
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip((filter.Page - 1) * filter.Limit).
		SetLimit(filter.Limit)

	users, err := db.findUsers(ctx, query, opts)

	if err != nil {
		return storage.UserPage{}, err
	}

	return storage.UserPage{Users: users, Total: total}, nil
}

func (db *Mongo) CreateChat(ctx context.Context, userId int64, kind models.ChatType) (models.Chat, error) {
	id, err := db.nextSequence(ctx, chatsCounterName)

	if err != nil {
		return models.Chat{}, err
	}

	chat := models.Chat{
		Id:        id,
		UserId:    userId,
		Type:      kind,
		Status:    models.ChatActive,
		CreatedAt: time.Now().UTC(),
	}

	_, err = db.chats().InsertOne(ctx, chat)

	return chat, err
}

func (db *Mongo) GetChatById(ctx context.Context, chatId int64) (models.Chat, error) {
	var result models.Chat

	err := db.chats().FindOne(ctx, bson.M{"id": chatId}).Decode(&result)

	return result, mapErr(err)
}

func (db *Mongo) UpdateChatStatus(ctx context.Context, chatId int64, status models.ChatStatus) error {
	res, err := db.chats().UpdateOne(ctx, bson.M{"id": chatId}, bson.M{"$set": bson.M{"status": status}})

	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (db *Mongo) ListActiveChats(ctx context.Context) ([]models.Chat, error) {
	return db.findChats(ctx, bson.M{"status": models.ChatActive})
}

func (db *Mongo) ListActiveChatsByUser(ctx context.Context, userId int64) ([]models.Chat, error) {
	return db.findChats(ctx, bson.M{"status": models.ChatActive, "user_id": userId})
}

func (db *Mongo) InsertMessage(ctx context.Context, message models.Message) error {
	_, err := db.messages().InsertOne(ctx, message)

	return err
}

func (db *Mongo) LatestChatMessage(ctx context.Context, chatId int64) (models.Message, error) {
	var result models.Message

	opts := options.FindOne().SetSort(bson.M{"_id": -1})
	err := db.messages().FindOne(ctx, bson.M{"chat_id": chatId}, opts).Decode(&result)

	return result, mapErr(err)
}

// nextSequence increments and returns the named counter, creating it on first
// use. Backs the numeric chat ids that callback tokens carry.
func (db *Mongo) nextSequence(ctx context.Context, name string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := db.collection(countersCollectionName).FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)

	return counter.Seq, err
}

func (db *Mongo) findUsers(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.User, error) {
	var cur *mongo.Cursor
	var err error

	if opts != nil {
		cur, err = db.users().Find(ctx, query, opts)
	} else {
		cur, err = db.users().Find(ctx, query)
	}

	if err != nil {
		return nil, err
	}

	defer cur.Close(ctx)

	items := make([]models.User, 0)
	err = cur.All(ctx, &items)

	return items, err
}

func (db *Mongo) findChats(ctx context.Context, query bson.M) ([]models.Chat, error) {
	cur, err := db.chats().Find(ctx, query, options.Find().SetSort(bson.M{"id": -1}))

	if err != nil {
		return nil, err
	}

	defer cur.Close(ctx)

	items := make([]models.Chat, 0)
	err = cur.All(ctx, &items)

	return items, err
}

func (db *Mongo) users() *mongo.Collection {
	return db.collection(usersCollectionName)
}

func (db *Mongo) chats() *mongo.Collection {
	return db.collection(chatsCollectionName)
}

func (db *Mongo) messages() *mongo.Collection {
	return db.collection(messagesCollectionName)
}

func (db *Mongo) collection(name string) *mongo.Collection {
	return db.client.Database(databaseName).Collection(name)
}

func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}

	return err
}
