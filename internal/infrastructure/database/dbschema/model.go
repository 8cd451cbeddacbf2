package dbschema

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"freemodels-server/services/catalog-api/internal/domain/catalog"
	"freemodels-server/services/catalog-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&Model{})
}

// Model is one free-model catalog row.
type Model struct {
	BaseModel
	PublicID            string         `gorm:"size:128;not null;uniqueIndex"`
	Name                string         `gorm:"size:256;not null"`
	Description         string         `gorm:"type:text"`
	ContextLength       int            `gorm:"not null;default:0;index"`
	MaxCompletionTokens int            `gorm:"not null;default:0"`
	Modality            string         `gorm:"size:64"`
	InputModalities     datatypes.JSON `gorm:"type:jsonb"`
	OutputModalities    datatypes.JSON `gorm:"type:jsonb"`
	SupportedParameters datatypes.JSON `gorm:"type:jsonb"`
	PromptPrice         string         `gorm:"size:32"`
	CompletionPrice     string         `gorm:"size:32"`
	IsActive            bool           `gorm:"not null;default:true;index"`
	Priority            int            `gorm:"not null;default:0"`
	UpstreamCreatedAt   *time.Time
	LastSeenAt          time.Time `gorm:"not null;index"`
}

// EtoD converts the schema row to its domain representation.
func (m *Model) EtoD() *catalog.Model {
	if m == nil {
		return nil
	}
	return &catalog.Model{
		PublicID:            m.PublicID,
		Name:                m.Name,
		Description:         m.Description,
		ContextLength:       m.ContextLength,
		MaxCompletionTokens: m.MaxCompletionTokens,
		Modality:            m.Modality,
		InputModalities:     decodeStringSlice(m.InputModalities),
		OutputModalities:    decodeStringSlice(m.OutputModalities),
		SupportedParameters: decodeStringSlice(m.SupportedParameters),
		PromptPrice:         m.PromptPrice,
		CompletionPrice:     m.CompletionPrice,
		IsActive:            m.IsActive,
		Priority:            m.Priority,
		UpstreamCreatedAt:   m.UpstreamCreatedAt,
		LastSeenAt:          m.LastSeenAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// NewSchemaModel converts a domain model to its schema representation.
func NewSchemaModel(m *catalog.Model) (*Model, error) {
	if m == nil {
		return nil, nil
	}
	inputs, err := encodeStringSlice(m.InputModalities)
	if err != nil {
		return nil, err
	}
	outputs, err := encodeStringSlice(m.OutputModalities)
	if err != nil {
		return nil, err
	}
	params, err := encodeStringSlice(m.SupportedParameters)
	if err != nil {
		return nil, err
	}
	return &Model{
		PublicID:            m.PublicID,
		Name:                m.Name,
		Description:         m.Description,
		ContextLength:       m.ContextLength,
		MaxCompletionTokens: m.MaxCompletionTokens,
		Modality:            m.Modality,
		InputModalities:     inputs,
		OutputModalities:    outputs,
		SupportedParameters: params,
		PromptPrice:         m.PromptPrice,
		CompletionPrice:     m.CompletionPrice,
		IsActive:            m.IsActive,
		Priority:            m.Priority,
		UpstreamCreatedAt:   m.UpstreamCreatedAt,
		LastSeenAt:          m.LastSeenAt,
	}, nil
}

func encodeStringSlice(values []string) (datatypes.JSON, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}

func decodeStringSlice(data datatypes.JSON) []string {
	if len(data) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil
	}
	return values
}
