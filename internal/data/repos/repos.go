package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/waltz-backend/internal/data/repos/catalog"
	"github.com/yungbote/waltz-backend/internal/data/repos/gridsource"
	"github.com/yungbote/waltz-backend/internal/data/repos/reportgrid"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

type ReportGridRepo = reportgrid.ReportGridRepo
type ReportGridMemberRepo = reportgrid.ReportGridMemberRepo
type ColumnDefinitionRepo = reportgrid.ColumnDefinitionRepo
type EntityFieldReferenceRepo = reportgrid.EntityFieldReferenceRepo

type CellSourceRepo = gridsource.CellSourceRepo

type EntityNameRepo = catalog.EntityNameRepo
type SelectorRepo = catalog.SelectorRepo

func NewReportGridRepo(db *gorm.DB, baseLog *logger.Logger) ReportGridRepo {
	return reportgrid.NewReportGridRepo(db, baseLog)
}
func NewReportGridMemberRepo(db *gorm.DB, baseLog *logger.Logger) ReportGridMemberRepo {
	return reportgrid.NewReportGridMemberRepo(db, baseLog)
}
func NewColumnDefinitionRepo(db *gorm.DB, baseLog *logger.Logger) ColumnDefinitionRepo {
	return reportgrid.NewColumnDefinitionRepo(db, baseLog)
}
func NewEntityFieldReferenceRepo(db *gorm.DB, baseLog *logger.Logger) EntityFieldReferenceRepo {
	return reportgrid.NewEntityFieldReferenceRepo(db, baseLog)
}

func NewCellSourceRepo(db *gorm.DB, baseLog *logger.Logger) CellSourceRepo {
	return gridsource.NewCellSourceRepo(db, baseLog)
}

func NewEntityNameRepo(db *gorm.DB, baseLog *logger.Logger) EntityNameRepo {
	return catalog.NewEntityNameRepo(db, baseLog)
}
func NewSelectorRepo(db *gorm.DB, baseLog *logger.Logger) SelectorRepo {
	return catalog.NewSelectorRepo(db, baseLog)
}
