// Package mongo provides MongoDB implementations of repositories.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"smartnotes/internal/notes/domain/entities"
	"smartnotes/internal/notes/ports/repositories"
	"smartnotes/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrCreateNote    = "failed to create note"
	ErrListNotes     = "failed to list notes"
	ErrDecodeNotes   = "failed to decode notes"
	ErrCreateIndexes = "failed to create indexes"
)

// noteDocument - представление заметки в коллекции notes.
type noteDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	OriginalText  string             `bson:"originalText"`
	Summary       string             `bson:"summary"`
	Keywords      []string           `bson:"keywords"`
	CreatedAt     time.Time          `bson:"createdAt"`
	SchemaVersion int                `bson:"schemaVersion"`
}

func toDocument(note *entities.Note) noteDocument {
	return noteDocument{
		ID:            primitive.NewObjectID(),
		OriginalText:  note.OriginalText,
		Summary:       note.Summary,
		Keywords:      entities.NormalizeKeywords(note.Keywords),
		CreatedAt:     note.CreatedAt.UTC().Truncate(time.Millisecond),
		SchemaVersion: note.SchemaVersion,
	}
}

func (d noteDocument) toEntity() *entities.Note {
	version := d.SchemaVersion
	if version == 0 {
		// документы без поля созданы до появления версии схемы
		version = entities.CurrentSchemaVersion
	}
	return &entities.Note{
		ID:            d.ID.Hex(),
		OriginalText:  d.OriginalText,
		Summary:       d.Summary,
		Keywords:      entities.NormalizeKeywords(d.Keywords),
		CreatedAt:     d.CreatedAt.UTC(),
		SchemaVersion: version,
	}
}

// NoteRepository реализует repositories.NoteRepository поверх коллекции MongoDB.
type NoteRepository struct {
	coll *mongo.Collection
}

// NewNoteRepository создает репозиторий заметок для коллекции.
func NewNoteRepository(coll *mongo.Collection) repositories.NoteRepository {
	return &NoteRepository{coll: coll}
}

// EnsureIndexes создает индекс для сортировки истории.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrCreateIndexes, err)
	}
	return nil
}

// Create вставляет заметку и заполняет ее ID и CreatedAt.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "mongo.NoteRepository.Create"))
	log.Debug(ctx, "creating new note")

	doc := toDocument(note)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		log.Error(ctx, ErrCreateNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateNote, err)
	}

	note.ID = doc.ID.Hex()
	note.CreatedAt = doc.CreatedAt
	note.Keywords = doc.Keywords

	log.Debug(ctx, "note created", zap.String("noteID", note.ID))
	return nil
}

// ListAll возвращает все заметки, новые первыми.
func (r *NoteRepository) ListAll(ctx context.Context) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "mongo.NoteRepository.ListAll"))
	log.Debug(ctx, "listing notes")

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		log.Error(ctx, ErrListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListNotes, err)
	}

	var docs []noteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		log.Error(ctx, ErrDecodeNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrDecodeNotes, err)
	}

	notes := make([]*entities.Note, 0, len(docs))
	for _, doc := range docs {
		notes = append(notes, doc.toEntity())
	}

	log.Debug(ctx, "notes listed", zap.Int("count", len(notes)))
	return notes, nil
}
