package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cvadnais/qr-tracker/internal/entities"
	"github.com/cvadnais/qr-tracker/internal/utils"
)

// LinkRepo owns the links table. Codes are unique and immutable; rows are
// never deleted.
type LinkRepo struct {
	db *gorm.DB
}

func NewLinkRepo(db *gorm.DB) *LinkRepo {
	return &LinkRepo{db: db}
}

func (r *LinkRepo) Create(code, destination string) (*entities.Link, error) {
	const op = "repositories.link.Create"

	link := entities.Link{
		Code:        code,
		Destination: destination,
		CreatedAt:   time.Now().UTC(),
	}

	if err := r.db.Create(&link).Error; err != nil {
		if utils.IsUniqueConstraint(err) {
			return nil, ErrCodeTaken
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &link, nil
}

func (r *LinkRepo) GetByCode(code string) (*entities.Link, error) {
	const op = "repositories.link.GetByCode"

	var link entities.Link
	err := r.db.Where("code = ?", code).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &link, nil
}

// IncrementClicks bumps the counter in a single UPDATE so concurrent
// resolves of the same code never lose an increment.
func (r *LinkRepo) IncrementClicks(code string) (*entities.Link, error) {
	const op = "repositories.link.IncrementClicks"

	res := r.db.Model(&entities.Link{}).
		Where("code = ?", code).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
	if res.Error != nil {
		return nil, fmt.Errorf("%s: %w", op, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrLinkNotFound
	}

	return r.GetByCode(code)
}

// List returns a snapshot of all links ordered by click count descending,
// ties broken by insertion order.
func (r *LinkRepo) List() ([]entities.Link, error) {
	const op = "repositories.link.List"

	var links []entities.Link
	if err := r.db.Order("clicks DESC, id ASC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return links, nil
}
