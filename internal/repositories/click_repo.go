package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cvadnais/qr-tracker/internal/entities"
)

// ClickRepo owns the append-only click ledger. It does not check that the
// code exists; callers insert only after confirming the link.
type ClickRepo struct {
	db *gorm.DB
}

func NewClickRepo(db *gorm.DB) *ClickRepo {
	return &ClickRepo{db: db}
}

func (r *ClickRepo) Create(code, userAgent, clientAddr string) (*entities.ClickEvent, error) {
	const op = "repositories.click.Create"

	evt := entities.ClickEvent{
		Code:       code,
		CreatedAt:  time.Now().UTC(),
		UserAgent:  userAgent,
		ClientAddr: clientAddr,
	}

	if err := r.db.Create(&evt).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &evt, nil
}

func (r *ClickRepo) ListForCode(code string) ([]entities.ClickEvent, error) {
	const op = "repositories.click.ListForCode"

	var events []entities.ClickEvent
	err := r.db.Where("code = ?", code).
		Order("created_at ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

func (r *ClickRepo) CountForCode(code string) (int64, error) {
	const op = "repositories.click.CountForCode"

	var count int64
	err := r.db.Model(&entities.ClickEvent{}).
		Where("code = ?", code).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}
