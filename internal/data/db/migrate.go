package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/waltz-backend/internal/domain/catalog"
	"github.com/yungbote/waltz-backend/internal/domain/indicator"
	"github.com/yungbote/waltz-backend/internal/domain/measurable"
	"github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	"github.com/yungbote/waltz-backend/internal/domain/survey"
)

// Models lists every table the service reads or writes, in migration order.
func Models() []interface{} {
	return []interface{}{
		// =========================
		// Report grid definitions
		// =========================
		&reportgrid.ReportGrid{},
		&reportgrid.ReportGridMember{},
		&reportgrid.ColumnDefinition{},
		&reportgrid.FixedColumnDefinition{},
		&reportgrid.DerivedColumnDefinition{},
		&reportgrid.EntityFieldReference{},

		// =========================
		// Catalog + hierarchy
		// =========================
		&catalog.Application{},
		&catalog.ChangeInitiative{},
		&catalog.OrgUnit{},
		&catalog.Person{},
		&catalog.EntityHierarchy{},
		&catalog.EntityRelationship{},
		&catalog.EntityAlias{},
		&catalog.Tag{},
		&catalog.TagUsage{},
		&catalog.AppGroup{},
		&catalog.AppGroupEntry{},
		&catalog.AppGroupOrgUnitEntry{},
		&catalog.DataType{},
		&catalog.DataTypeUsage{},

		// =========================
		// Measurables
		// =========================
		&measurable.Category{},
		&measurable.Measurable{},
		&measurable.Rating{},
		&measurable.RatingSchemeItem{},

		// =========================
		// Indicators
		// =========================
		&indicator.AssessmentDefinition{},
		&indicator.AssessmentRating{},
		&indicator.CostKind{},
		&indicator.Cost{},
		&indicator.ComplexityKind{},
		&indicator.Complexity{},
		&indicator.InvolvementKind{},
		&indicator.Involvement{},
		&indicator.EntityStatisticDefinition{},
		&indicator.EntityStatisticValue{},
		&indicator.AttestationRun{},
		&indicator.AttestationInstance{},

		// =========================
		// Surveys
		// =========================
		&survey.Template{},
		&survey.Run{},
		&survey.Instance{},
		&survey.Question{},
		&survey.QuestionResponse{},
		&survey.QuestionListResponse{},
	}
}

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
