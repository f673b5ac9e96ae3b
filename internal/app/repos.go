package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/waltz-backend/internal/data/aggregates"
	"github.com/yungbote/waltz-backend/internal/data/repos"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

type Repos struct {
	Tx         aggregates.TxRunner
	Grid       repos.ReportGridRepo
	GridMember repos.ReportGridMemberRepo
	Column     repos.ColumnDefinitionRepo
	FieldRef   repos.EntityFieldReferenceRepo
	CellSource repos.CellSourceRepo
	EntityName repos.EntityNameRepo
	Selector   repos.SelectorRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Tx:         aggregates.NewGormTxRunner(db),
		Grid:       repos.NewReportGridRepo(db, log),
		GridMember: repos.NewReportGridMemberRepo(db, log),
		Column:     repos.NewColumnDefinitionRepo(db, log),
		FieldRef:   repos.NewEntityFieldReferenceRepo(db, log),
		CellSource: repos.NewCellSourceRepo(db, log),
		EntityName: repos.NewEntityNameRepo(db, log),
		Selector:   repos.NewSelectorRepo(db, log),
	}
}
