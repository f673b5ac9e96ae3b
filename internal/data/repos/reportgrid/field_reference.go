package reportgrid

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	"github.com/yungbote/waltz-backend/internal/platform/dbctx"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

type EntityFieldReferenceRepo interface {
	ListAll(dbc dbctx.Context) ([]*rg.EntityFieldReference, error)
	GetByIDs(dbc dbctx.Context, ids []int64) ([]*rg.EntityFieldReference, error)
	// Upsert inserts or refreshes references keyed by (entity kind, field name).
	Upsert(dbc dbctx.Context, refs []*rg.EntityFieldReference) error
}

type entityFieldReferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEntityFieldReferenceRepo(db *gorm.DB, baseLog *logger.Logger) EntityFieldReferenceRepo {
	return &entityFieldReferenceRepo{
		db:  db,
		log: baseLog.With("repo", "EntityFieldReferenceRepo"),
	}
}

func (r *entityFieldReferenceRepo) ListAll(dbc dbctx.Context) ([]*rg.EntityFieldReference, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*rg.EntityFieldReference
	if err := transaction.WithContext(dbc.Ctx).
		Order("entity_kind ASC, display_name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *entityFieldReferenceRepo) GetByIDs(dbc dbctx.Context, ids []int64) ([]*rg.EntityFieldReference, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*rg.EntityFieldReference
	if len(ids) == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *entityFieldReferenceRepo) Upsert(dbc dbctx.Context, refs []*rg.EntityFieldReference) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(refs) == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entity_kind"}, {Name: "field_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "description"}),
		}).
		Create(&refs).Error
}
