package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	"github.com/yungbote/waltz-backend/internal/platform/logger"
)

type nameSource struct {
	table  string
	column string
}

var nameSources = map[entity.Kind]nameSource{
	entity.Application:          {"application", "name"},
	entity.ChangeInitiative:     {"change_initiative", "name"},
	entity.OrgUnit:              {"organisational_unit", "name"},
	entity.Person:               {"person", "display_name"},
	entity.Measurable:           {"measurable", "name"},
	entity.MeasurableCategory:   {"measurable_category", "name"},
	entity.DataType:             {"data_type", "name"},
	entity.AppGroup:             {"application_group", "name"},
	entity.AssessmentDefinition: {"assessment_definition", "name"},
	entity.InvolvementKind:      {"involvement_kind", "name"},
	entity.CostKind:             {"cost_kind", "name"},
	entity.ComplexityKind:       {"complexity_kind", "name"},
	entity.SurveyQuestion:       {"survey_question", "question_text"},
	entity.SurveyTemplate:       {"survey_template", "name"},
	entity.EntityStatistic:      {"entity_statistic_definition", "name"},
}

// EntityNameRepo resolves display names for any named entity kind.
type EntityNameRepo interface {
	// Names returns id -> name for the ids that exist. Kinds without a name
	// table yield an empty map.
	Names(ctx context.Context, kind entity.Kind, ids []int64) (map[int64]string, error)
	Refs(ctx context.Context, kind entity.Kind, ids []int64) ([]entity.Ref, error)
}

type entityNameRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEntityNameRepo(db *gorm.DB, baseLog *logger.Logger) EntityNameRepo {
	return &entityNameRepo{
		db:  db,
		log: baseLog.With("repo", "EntityNameRepo"),
	}
}

func (r *entityNameRepo) Names(ctx context.Context, kind entity.Kind, ids []int64) (map[int64]string, error) {
	out := map[int64]string{}
	src, ok := nameSources[kind]
	if !ok || len(ids) == 0 {
		return out, nil
	}
	type row struct {
		ID   int64
		Name string
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Table(src.table).
		Select("id, "+src.column+" AS name").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, rw := range rows {
		out[rw.ID] = rw.Name
	}
	return out, nil
}

// Refs returns a ref for every id in input order; unknown ids keep an empty
// name.
func (r *entityNameRepo) Refs(ctx context.Context, kind entity.Kind, ids []int64) ([]entity.Ref, error) {
	names, err := r.Names(ctx, kind, ids)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Ref, 0, len(ids))
	for _, id := range ids {
		out = append(out, entity.Ref{Kind: kind, ID: id, Name: names[id]})
	}
	return out, nil
}
