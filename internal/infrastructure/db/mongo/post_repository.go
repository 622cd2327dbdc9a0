package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blogworks/blog-api/internal/core/domain"
)

const postsCollection = "posts"

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

type mongoPost struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	Title      string               `bson:"title"`
	Text       string               `bson:"text"`
	AuthorID   primitive.ObjectID   `bson:"author"`
	Status     string               `bson:"status"`
	CreatedAt  time.Time            `bson:"created_at"`
	CommentIDs []primitive.ObjectID `bson:"comments"`
}

func (p mongoPost) toDomain() *domain.Post {
	ids := make([]string, len(p.CommentIDs))
	for i, oid := range p.CommentIDs {
		ids[i] = oid.Hex()
	}
	return &domain.Post{
		ID:         p.ID.Hex(),
		Title:      p.Title,
		Text:       p.Text,
		AuthorID:   p.AuthorID.Hex(),
		Status:     domain.PostStatus(p.Status),
		CreatedAt:  p.CreatedAt.UTC(),
		CommentIDs: ids,
	}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	authorID, err := primitive.ObjectIDFromHex(post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author id: %w", err)
	}

	doc := mongoPost{
		ID:         primitive.NewObjectID(),
		Title:      post.Title,
		Text:       post.Text,
		AuthorID:   authorID,
		Status:     string(post.Status),
		CreatedAt:  post.CreatedAt,
		CommentIDs: []primitive.ObjectID{},
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	var mp mongoPost
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PostRepository) List(ctx context.Context, status *domain.PostStatus) ([]*domain.Post, error) {
	filter := bson.M{}
	if status != nil {
		filter["status"] = string(*status)
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []*domain.Post
	for cur.Next(ctx) {
		var mp mongoPost
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, mp.toDomain())
	}
	return posts, cur.Err()
}

// Update replaces title, text and status. The author field is never
// part of an update.
func (r *PostRepository) Update(ctx context.Context, id, title, text string, status domain.PostStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"title":  title,
		"text":   text,
		"status": string(status),
	}})
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// AppendComment pushes commentID onto the post's comment list.
func (r *PostRepository) AppendComment(ctx context.Context, postID, commentID string) error {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return domain.ErrPostNotFound
	}
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return domain.ErrCommentNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$push": bson.M{"comments": cid}})
	if err != nil {
		return fmt.Errorf("append comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// EnsureIndexes creates the query indexes for listing.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
