package postgres

import (
	"encoding/json"
	"errors"

	"uxpilot/internal/domain"
	"uxpilot/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Compile-time check to ensure ResultRepository implements the output port
var _ output.ResultRepository = (*ResultRepository)(nil)

// ResultRepository struct - Secondary/Driven adapter persisting completed
// UX test results in PostgreSQL. Results are append-only; there is no
// update or delete path.
type ResultRepository struct {
	dbGorm *gorm.DB
}

// NewResultRepository func - Creates new PostgreSQL result repository
func NewResultRepository(dbGorm *gorm.DB) *ResultRepository {
	domain.MigrateDatabase(dbGorm)
	return &ResultRepository{dbGorm: dbGorm}
}

// AppendResult appends one completed result.
func (p *ResultRepository) AppendResult(result domain.UXTestResult) error {
	media, err := json.Marshal(result.Media)
	if err != nil {
		return err
	}
	responses, err := json.Marshal(result.Responses)
	if err != nil {
		return err
	}

	record := domain.ResultRecord{
		ID:             result.ID,
		ScriptID:       result.ScriptID,
		ScriptName:     result.ScriptName,
		MediaID:        result.MediaID,
		AssistantID:    result.AssistantID,
		TimestampStart: result.TimestampStart,
		TimestampEnd:   result.TimestampEnd,
		Media:          string(media),
		Responses:      string(responses),
	}
	if err := p.dbGorm.Create(&record).Error; err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// ListResults returns all results in append order.
func (p *ResultRepository) ListResults() ([]domain.UXTestResult, error) {
	var records []domain.ResultRecord
	if err := p.dbGorm.Order("created_at").Find(&records).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	results := make([]domain.UXTestResult, 0, len(records))
	for i := range records {
		result, err := recordToResult(&records[i])
		if err != nil {
			logrus.Errorln(err)
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// GetResult returns one result or domain.ErrResultNotFound.
func (p *ResultRepository) GetResult(id string) (*domain.UXTestResult, error) {
	var record domain.ResultRecord
	err := p.dbGorm.First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrResultNotFound
	}
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return recordToResult(&record)
}

func recordToResult(record *domain.ResultRecord) (*domain.UXTestResult, error) {
	var media []string
	if err := json.Unmarshal([]byte(record.Media), &media); err != nil {
		return nil, err
	}
	var responses []domain.Response
	if err := json.Unmarshal([]byte(record.Responses), &responses); err != nil {
		return nil, err
	}
	return &domain.UXTestResult{
		ID:             record.ID,
		ScriptID:       record.ScriptID,
		ScriptName:     record.ScriptName,
		MediaID:        record.MediaID,
		AssistantID:    record.AssistantID,
		TimestampStart: record.TimestampStart,
		TimestampEnd:   record.TimestampEnd,
		Media:          media,
		Responses:      responses,
	}, nil
}
