package reportgrid

import (
	"errors"
	"time"

	"gorm.io/gorm"

	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	"github.com/yungbote/waltz-backend/internal/platform/dbctx"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

type ReportGridRepo interface {
	Create(dbc dbctx.Context, grid *rg.ReportGrid) (*rg.ReportGrid, error)
	GetByRef(dbc dbctx.Context, ref rg.GridRef) (*rg.ReportGrid, error)
	GetByIDs(dbc dbctx.Context, ids []int64) ([]*rg.ReportGrid, error)
	ListAll(dbc dbctx.Context) ([]*rg.ReportGrid, error)
	ListForUser(dbc dbctx.Context, userID string) ([]*rg.ReportGrid, error)
	ListForOwner(dbc dbctx.Context, userID string) ([]*rg.ReportGrid, error)
	UpdateFields(dbc dbctx.Context, id int64, updates map[string]interface{}) error
	Touch(dbc dbctx.Context, id int64, username string, at time.Time) error
	Delete(dbc dbctx.Context, id int64) error
}

type reportGridRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReportGridRepo(db *gorm.DB, baseLog *logger.Logger) ReportGridRepo {
	return &reportGridRepo{
		db:  db,
		log: baseLog.With("repo", "ReportGridRepo"),
	}
}

func (r *reportGridRepo) tx(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *reportGridRepo) Create(dbc dbctx.Context, grid *rg.ReportGrid) (*rg.ReportGrid, error) {
	if grid == nil {
		return nil, errors.New("nil report grid")
	}
	if grid.Provenance == "" {
		grid.Provenance = rg.DefaultProvenance
	}
	if grid.Kind == "" {
		grid.Kind = rg.KindPublic
	}
	if err := r.tx(dbc).Create(grid).Error; err != nil {
		return nil, err
	}
	return grid, nil
}

// GetByRef returns nil, nil when no grid matches.
func (r *reportGridRepo) GetByRef(dbc dbctx.Context, ref rg.GridRef) (*rg.ReportGrid, error) {
	if !ref.Valid() {
		return nil, nil
	}
	q := r.tx(dbc)
	if ref.ID > 0 {
		q = q.Where("id = ?", ref.ID)
	} else {
		q = q.Where("external_id = ?", ref.ExternalID)
	}
	var out []*rg.ReportGrid
	if err := q.Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *reportGridRepo) GetByIDs(dbc dbctx.Context, ids []int64) ([]*rg.ReportGrid, error) {
	var out []*rg.ReportGrid
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.tx(dbc).
		Where("id IN ?", ids).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reportGridRepo) ListAll(dbc dbctx.Context) ([]*rg.ReportGrid, error) {
	var out []*rg.ReportGrid
	if err := r.tx(dbc).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListForUser returns public grids plus private grids the user is a member of.
func (r *reportGridRepo) ListForUser(dbc dbctx.Context, userID string) ([]*rg.ReportGrid, error) {
	var out []*rg.ReportGrid
	q := r.tx(dbc).Table("report_grid AS g").Select("g.*")
	if userID == "" {
		q = q.Where("g.kind = ?", rg.KindPublic)
	} else {
		q = q.Where("g.kind = ? OR g.id IN (?)", rg.KindPublic,
			r.tx(dbc).Table("report_grid_member").Select("grid_id").Where("user_id = ?", userID))
	}
	if err := q.Order("g.name ASC").Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reportGridRepo) ListForOwner(dbc dbctx.Context, userID string) ([]*rg.ReportGrid, error) {
	var out []*rg.ReportGrid
	if userID == "" {
		return out, nil
	}
	if err := r.tx(dbc).
		Table("report_grid AS g").
		Select("g.*").
		Joins("JOIN report_grid_member m ON m.grid_id = g.id").
		Where("m.user_id = ? AND m.role = ?", userID, rg.RoleOwner).
		Order("g.name ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reportGridRepo) UpdateFields(dbc dbctx.Context, id int64, updates map[string]interface{}) error {
	if id <= 0 || len(updates) == 0 {
		return nil
	}
	res := r.tx(dbc).Model(&rg.ReportGrid{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reportGridRepo) Touch(dbc dbctx.Context, id int64, username string, at time.Time) error {
	return r.UpdateFields(dbc, id, map[string]interface{}{
		"last_updated_at": at,
		"last_updated_by": username,
	})
}

// Delete removes the grid with its members and column definitions. Callers
// run it inside a transaction.
func (r *reportGridRepo) Delete(dbc dbctx.Context, id int64) error {
	if id <= 0 {
		return nil
	}
	columnIDs := r.tx(dbc).Model(&rg.ColumnDefinition{}).Select("id").Where("report_grid_id = ?", id)
	if err := r.tx(dbc).Where("grid_column_id IN (?)", columnIDs).Delete(&rg.DerivedColumnDefinition{}).Error; err != nil {
		return err
	}
	if err := r.tx(dbc).Where("grid_column_id IN (?)", columnIDs).Delete(&rg.FixedColumnDefinition{}).Error; err != nil {
		return err
	}
	if err := r.tx(dbc).Where("report_grid_id = ?", id).Delete(&rg.ColumnDefinition{}).Error; err != nil {
		return err
	}
	if err := r.tx(dbc).Where("grid_id = ?", id).Delete(&rg.ReportGridMember{}).Error; err != nil {
		return err
	}
	res := r.tx(dbc).Where("id = ?", id).Delete(&rg.ReportGrid{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
