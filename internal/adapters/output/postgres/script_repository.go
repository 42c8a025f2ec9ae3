package postgres

import (
	"encoding/json"
	"errors"

	"uxpilot/internal/domain"
	"uxpilot/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Compile-time check to ensure ScriptRepository implements the output port
var _ output.ScriptRepository = (*ScriptRepository)(nil)

// ScriptRepository struct - Secondary/Driven adapter persisting the script
// library in PostgreSQL. Questions are stored as a JSON text column.
type ScriptRepository struct {
	dbGorm *gorm.DB
}

// NewScriptRepository func - Creates new PostgreSQL script repository.
// Runs schema migration and seeds the base templates when the table is empty.
func NewScriptRepository(dbGorm *gorm.DB) *ScriptRepository {
	logrus.Info("Migrate database ...")
	domain.MigrateDatabase(dbGorm)

	repo := &ScriptRepository{dbGorm: dbGorm}
	if err := repo.seedTemplates(); err != nil {
		logrus.Errorf("Failed to seed script templates: %v", err)
	}
	return repo
}

// seedTemplates inserts the built-in templates when the library is empty.
func (p *ScriptRepository) seedTemplates() error {
	var count int64
	if err := p.dbGorm.Model(&domain.ScriptRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logrus.Info("Seeding script library with base templates")
	for _, tpl := range domain.BaseTemplates() {
		if err := p.SaveScript(tpl); err != nil {
			return err
		}
	}
	return nil
}

// ListScripts returns all scripts.
func (p *ScriptRepository) ListScripts() ([]domain.Script, error) {
	var records []domain.ScriptRecord
	if err := p.dbGorm.Order("created_at").Find(&records).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	scripts := make([]domain.Script, 0, len(records))
	for i := range records {
		script, err := recordToScript(&records[i])
		if err != nil {
			logrus.Errorln(err)
			return nil, err
		}
		scripts = append(scripts, *script)
	}
	return scripts, nil
}

// GetScript returns one script or domain.ErrScriptNotFound.
func (p *ScriptRepository) GetScript(id string) (*domain.Script, error) {
	var record domain.ScriptRecord
	err := p.dbGorm.First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrScriptNotFound
	}
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return recordToScript(&record)
}

// SaveScript creates or overwrites a script.
func (p *ScriptRepository) SaveScript(script domain.Script) error {
	questions, err := json.Marshal(script.Questions)
	if err != nil {
		return err
	}

	record := domain.ScriptRecord{
		ID:        script.ID,
		Name:      script.Name,
		Questions: string(questions),
	}
	if err := p.dbGorm.Save(&record).Error; err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

// DeleteScript removes a script. Deleting an unknown id is not an error.
func (p *ScriptRepository) DeleteScript(id string) error {
	if err := p.dbGorm.Delete(&domain.ScriptRecord{}, "id = ?", id).Error; err != nil {
		logrus.Errorln(err)
		return err
	}
	return nil
}

func recordToScript(record *domain.ScriptRecord) (*domain.Script, error) {
	var questions []domain.Question
	if err := json.Unmarshal([]byte(record.Questions), &questions); err != nil {
		return nil, err
	}
	return &domain.Script{
		ID:        record.ID,
		Name:      record.Name,
		Questions: questions,
	}, nil
}
