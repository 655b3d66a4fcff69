package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// EmbeddingDimensions is the length of vectors produced for saved recipes.
const EmbeddingDimensions = 64

func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// StringArray is a text[] column on postgres and a text column holding the
// same array literal elsewhere.
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	return pq.StringArray(a).Value()
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*a = StringArray(arr)
	return nil
}

// GormDataType is the dialect-neutral type gorm uses while parsing the schema.
func (StringArray) GormDataType() string {
	return "text"
}

// GormDBDataType picks the column type for the active dialect.
func (StringArray) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if isPostgres(db) {
		return "text[]"
	}
	return "text"
}

// Embedding wraps a pgvector value so sqlite stores it as text.
type Embedding struct {
	pgvector.Vector
}

// NewEmbedding builds an Embedding from raw components.
func NewEmbedding(v []float32) Embedding {
	return Embedding{pgvector.NewVector(v)}
}

func (Embedding) GormDataType() string {
	return "text"
}

// GormDBDataType picks the column type for the active dialect.
func (Embedding) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if isPostgres(db) {
		return fmt.Sprintf("vector(%d)", EmbeddingDimensions)
	}
	return "text"
}

// JSON stores any value as a JSON document: jsonb on postgres, text elsewhere.
type JSON[T any] struct {
	Data T
}

// Value implements the driver.Valuer interface
func (j JSON[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.Data)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (j *JSON[T]) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSON column", value)
	}
	return json.Unmarshal(bytes, &j.Data)
}

func (JSON[T]) GormDataType() string {
	return "text"
}

// GormDBDataType picks the column type for the active dialect.
func (JSON[T]) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if isPostgres(db) {
		return "jsonb"
	}
	return "text"
}

// MarshalJSON exposes the wrapped value directly.
func (j JSON[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.Data)
}

// UnmarshalJSON fills the wrapped value.
func (j *JSON[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &j.Data)
}
