package reportgrid

import (
	"fmt"

	"gorm.io/gorm"

	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	pkgerrors "github.com/yungbote/waltz-backend/internal/pkg/errors"
	"github.com/yungbote/waltz-backend/internal/platform/dbctx"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

type ColumnDefinitionRepo interface {
	// ListByGrid returns the assembled fixed and derived columns ordered by
	// position.
	ListByGrid(dbc dbctx.Context, gridID int64) ([]rg.FixedColumn, []rg.DerivedColumn, error)
	// Replace swaps every column of the grid for the given ones. It must run
	// inside a transaction; positions must be unique across both slices.
	Replace(dbc dbctx.Context, gridID int64, fixed []rg.FixedColumn, derived []rg.DerivedColumn) error
}

type columnDefinitionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewColumnDefinitionRepo(db *gorm.DB, baseLog *logger.Logger) ColumnDefinitionRepo {
	return &columnDefinitionRepo{
		db:  db,
		log: baseLog.With("repo", "ColumnDefinitionRepo"),
	}
}

func (r *columnDefinitionRepo) tx(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *columnDefinitionRepo) ListByGrid(dbc dbctx.Context, gridID int64) ([]rg.FixedColumn, []rg.DerivedColumn, error) {
	fixedOut := []rg.FixedColumn{}
	derivedOut := []rg.DerivedColumn{}
	if gridID <= 0 {
		return fixedOut, derivedOut, nil
	}
	var cols []rg.ColumnDefinition
	if err := r.tx(dbc).
		Where("report_grid_id = ?", gridID).
		Order("position ASC, id ASC").
		Find(&cols).Error; err != nil {
		return nil, nil, err
	}
	if len(cols) == 0 {
		return fixedOut, derivedOut, nil
	}
	ids := make([]int64, len(cols))
	for i, c := range cols {
		ids[i] = c.ID
	}

	var fixedRows []rg.FixedColumnDefinition
	if err := r.tx(dbc).Where("grid_column_id IN ?", ids).Find(&fixedRows).Error; err != nil {
		return nil, nil, err
	}
	var derivedRows []rg.DerivedColumnDefinition
	if err := r.tx(dbc).Where("grid_column_id IN ?", ids).Find(&derivedRows).Error; err != nil {
		return nil, nil, err
	}
	fixedByID := make(map[int64]rg.FixedColumnDefinition, len(fixedRows))
	var refIDs []int64
	for _, f := range fixedRows {
		fixedByID[f.GridColumnID] = f
		if f.EntityFieldReferenceID != nil {
			refIDs = append(refIDs, *f.EntityFieldReferenceID)
		}
	}
	derivedByID := make(map[int64]rg.DerivedColumnDefinition, len(derivedRows))
	for _, d := range derivedRows {
		derivedByID[d.GridColumnID] = d
	}
	refs := map[int64]*rg.EntityFieldReference{}
	if len(refIDs) > 0 {
		var refRows []*rg.EntityFieldReference
		if err := r.tx(dbc).Where("id IN ?", refIDs).Find(&refRows).Error; err != nil {
			return nil, nil, err
		}
		for _, ref := range refRows {
			refs[ref.ID] = ref
		}
	}

	for _, c := range cols {
		if f, ok := fixedByID[c.ID]; ok {
			fc := rg.FixedColumn{
				GridColumnID:            c.ID,
				Position:                c.Position,
				DisplayName:             c.DisplayName,
				ExternalID:              c.ExternalID,
				ColumnDescription:       c.ColumnDescription,
				ColumnEntityKind:        f.ColumnEntityKind,
				ColumnEntityID:          f.ColumnEntityID,
				ColumnQualifierKind:     f.ColumnQualifierKind,
				ColumnQualifierID:       f.ColumnQualifierID,
				AdditionalColumnOptions: f.AdditionalColumnOptions.Normalize(),
			}
			if f.EntityFieldReferenceID != nil {
				fc.EntityFieldReference = refs[*f.EntityFieldReferenceID]
			}
			fixedOut = append(fixedOut, fc)
			continue
		}
		if d, ok := derivedByID[c.ID]; ok {
			derivedOut = append(derivedOut, rg.DerivedColumn{
				GridColumnID:      c.ID,
				Position:          c.Position,
				DisplayName:       c.DisplayName,
				ExternalID:        c.ExternalID,
				ColumnDescription: c.ColumnDescription,
				DerivationScript:  d.DerivationScript,
			})
			continue
		}
		r.log.Warn("column definition without fixed or derived row", "grid_id", gridID, "column_id", c.ID)
	}
	return fixedOut, derivedOut, nil
}

func (r *columnDefinitionRepo) Replace(dbc dbctx.Context, gridID int64, fixed []rg.FixedColumn, derived []rg.DerivedColumn) error {
	if gridID <= 0 {
		return fmt.Errorf("replace columns: invalid grid id %d: %w", gridID, pkgerrors.ErrInvalidArgument)
	}
	seen := make(map[int]bool, len(fixed)+len(derived))
	positions := make([]int, 0, len(fixed)+len(derived))
	for _, f := range fixed {
		positions = append(positions, f.Position)
	}
	for _, d := range derived {
		positions = append(positions, d.Position)
	}
	for _, p := range positions {
		if seen[p] {
			return fmt.Errorf("replace columns: duplicate position %d: %w", p, pkgerrors.ErrAlreadyExists)
		}
		seen[p] = true
	}

	existing := r.tx(dbc).Model(&rg.ColumnDefinition{}).Select("id").Where("report_grid_id = ?", gridID)
	if err := r.tx(dbc).Where("grid_column_id IN (?)", existing).Delete(&rg.DerivedColumnDefinition{}).Error; err != nil {
		return err
	}
	if err := r.tx(dbc).Where("grid_column_id IN (?)", existing).Delete(&rg.FixedColumnDefinition{}).Error; err != nil {
		return err
	}
	if err := r.tx(dbc).Where("report_grid_id = ?", gridID).Delete(&rg.ColumnDefinition{}).Error; err != nil {
		return err
	}
	if len(positions) == 0 {
		return nil
	}

	rows := make([]*rg.ColumnDefinition, 0, len(positions))
	for _, f := range fixed {
		rows = append(rows, &rg.ColumnDefinition{
			GridID:            gridID,
			Position:          f.Position,
			DisplayName:       f.DisplayName,
			ExternalID:        f.ExternalID,
			ColumnDescription: f.ColumnDescription,
		})
	}
	for _, d := range derived {
		rows = append(rows, &rg.ColumnDefinition{
			GridID:            gridID,
			Position:          d.Position,
			DisplayName:       d.DisplayName,
			ExternalID:        d.ExternalID,
			ColumnDescription: d.ColumnDescription,
		})
	}
	if err := r.tx(dbc).Create(&rows).Error; err != nil {
		return err
	}

	var inserted []rg.ColumnDefinition
	if err := r.tx(dbc).
		Where("report_grid_id = ?", gridID).
		Find(&inserted).Error; err != nil {
		return err
	}
	idByPosition := make(map[int]int64, len(inserted))
	for _, c := range inserted {
		idByPosition[c.Position] = c.ID
	}

	if len(fixed) > 0 {
		fixedRows := make([]*rg.FixedColumnDefinition, 0, len(fixed))
		for _, f := range fixed {
			row := &rg.FixedColumnDefinition{
				GridColumnID:            idByPosition[f.Position],
				ColumnEntityKind:        f.ColumnEntityKind,
				ColumnEntityID:          f.ColumnEntityID,
				ColumnQualifierKind:     f.ColumnQualifierKind,
				ColumnQualifierID:       f.ColumnQualifierID,
				AdditionalColumnOptions: f.AdditionalColumnOptions.Normalize(),
			}
			if f.EntityFieldReference != nil && f.EntityFieldReference.ID > 0 {
				refID := f.EntityFieldReference.ID
				row.EntityFieldReferenceID = &refID
			}
			fixedRows = append(fixedRows, row)
		}
		if err := r.tx(dbc).Create(&fixedRows).Error; err != nil {
			return err
		}
	}
	if len(derived) > 0 {
		derivedRows := make([]*rg.DerivedColumnDefinition, 0, len(derived))
		for _, d := range derived {
			derivedRows = append(derivedRows, &rg.DerivedColumnDefinition{
				GridColumnID:     idByPosition[d.Position],
				DerivationScript: d.DerivationScript,
			})
		}
		if err := r.tx(dbc).Create(&derivedRows).Error; err != nil {
			return err
		}
	}
	return nil
}
