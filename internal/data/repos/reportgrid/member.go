package reportgrid

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	"github.com/yungbote/waltz-backend/internal/platform/dbctx"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

type ReportGridMemberRepo interface {
	Upsert(dbc dbctx.Context, members []*rg.ReportGridMember) error
	ListByGrid(dbc dbctx.Context, gridID int64) ([]*rg.ReportGridMember, error)
	GetRole(dbc dbctx.Context, gridID int64, userID string) (rg.MemberRole, bool, error)
	Remove(dbc dbctx.Context, gridID int64, userID string) error
}

type reportGridMemberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReportGridMemberRepo(db *gorm.DB, baseLog *logger.Logger) ReportGridMemberRepo {
	return &reportGridMemberRepo{
		db:  db,
		log: baseLog.With("repo", "ReportGridMemberRepo"),
	}
}

func (r *reportGridMemberRepo) Upsert(dbc dbctx.Context, members []*rg.ReportGridMember) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(members) == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "grid_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role"}),
		}).
		Create(&members).Error
}

func (r *reportGridMemberRepo) ListByGrid(dbc dbctx.Context, gridID int64) ([]*rg.ReportGridMember, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*rg.ReportGridMember
	if gridID <= 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("grid_id = ?", gridID).
		Order("user_id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reportGridMemberRepo) GetRole(dbc dbctx.Context, gridID int64, userID string) (rg.MemberRole, bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if gridID <= 0 || userID == "" {
		return "", false, nil
	}
	var out []*rg.ReportGridMember
	if err := transaction.WithContext(dbc.Ctx).
		Where("grid_id = ? AND user_id = ?", gridID, userID).
		Limit(1).
		Find(&out).Error; err != nil {
		return "", false, err
	}
	if len(out) == 0 {
		return "", false, nil
	}
	return out[0].Role, true, nil
}

func (r *reportGridMemberRepo) Remove(dbc dbctx.Context, gridID int64, userID string) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if gridID <= 0 || userID == "" {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("grid_id = ? AND user_id = ?", gridID, userID).
		Delete(&rg.ReportGridMember{}).Error
}
