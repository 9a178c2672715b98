package dbschema

import (
	"tileworld.ai/sprite-gateway/app/domain/genlog"
	"tileworld.ai/sprite-gateway/app/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(GenerationRecord{})
}

// GenerationRecord represents the generation_records table in the database.
type GenerationRecord struct {
	BaseModel
	Kind        string `gorm:"size:16;not null;index"`
	ObjectKey   string `gorm:"size:512;index"`
	Orientation string `gorm:"size:8"`
	Prompt      string `gorm:"type:text;not null"`
	Backend     string `gorm:"size:32;not null"`
	ImageURL    string `gorm:"size:512"`
	DurationMs  int64  `gorm:"not null"`
	Success     bool   `gorm:"not null;index"`
	ErrorText   string `gorm:"type:text"`
}

// TableName enforces snake_case table naming.
func (GenerationRecord) TableName() string {
	return "generation_records"
}

// NewSchemaGenerationRecord converts a domain record into its database
// representation.
func NewSchemaGenerationRecord(r *genlog.Record) *GenerationRecord {
	return &GenerationRecord{
		BaseModel: BaseModel{
			ID:        r.ID,
			CreatedAt: r.CreatedAt,
		},
		Kind:        string(r.Kind),
		ObjectKey:   r.ObjectKey,
		Orientation: r.Orientation,
		Prompt:      r.Prompt,
		Backend:     r.Backend,
		ImageURL:    r.ImageURL,
		DurationMs:  r.DurationMs,
		Success:     r.Success,
		ErrorText:   r.ErrorText,
	}
}

// EtoD converts a database record into its domain representation.
func (r *GenerationRecord) EtoD() *genlog.Record {
	return &genlog.Record{
		ID:          r.ID,
		Kind:        genlog.Kind(r.Kind),
		ObjectKey:   r.ObjectKey,
		Orientation: r.Orientation,
		Prompt:      r.Prompt,
		Backend:     r.Backend,
		ImageURL:    r.ImageURL,
		DurationMs:  r.DurationMs,
		Success:     r.Success,
		ErrorText:   r.ErrorText,
		CreatedAt:   r.CreatedAt,
	}
}
