package reportgrid

import (
	"testing"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

func TestKeyFor(t *testing.T) {
	withOpt := func(c rg.FixedColumn, o rg.AdditionalColumnOptions) rg.FixedColumn {
		c.AdditionalColumnOptions = o
		return c
	}
	field := col(9, entity.Application, 0)
	field.EntityFieldReference = &rg.EntityFieldReference{EntityKind: entity.SurveyInstance, FieldName: "status"}

	cases := []struct {
		name string
		col  rg.FixedColumn
		want StrategyKey
	}{
		{"measurable highest", withOpt(col(1, entity.Measurable, 5), rg.OptionPickHighest), KeyMeasurableHighest},
		{"measurable lowest", withOpt(col(2, entity.Measurable, 5), rg.OptionPickLowest), KeyMeasurableLowest},
		{"measurable exact", withOpt(col(3, entity.Measurable, 5), rg.OptionNone), KeyMeasurableExact},
		{"measurable empty option", col(4, entity.Measurable, 5), KeyMeasurableExact},
		{"data type exact", col(5, entity.DataType, 7), KeyDataTypeExact},
		{"data type rollup", withOpt(col(6, entity.DataType, 7), rg.OptionPickLowest), KeyDataTypeRollup},
		{"cost", col(7, entity.CostKind, 1), KeyCost},
		{"unknown kind passes through", col(8, entity.Kind("WIBBLE"), 1), StrategyKey("WIBBLE")},
		{"complex", field, KeySurveyField},
	}
	for _, tc := range cases {
		if got := KeyFor(tc.col); got != tc.want {
			t.Fatalf("%s: KeyFor=%q want=%q", tc.name, got, tc.want)
		}
	}
}

func TestClassifyPartitionsEveryColumn(t *testing.T) {
	cols := []rg.FixedColumn{
		col(1, entity.CostKind, 1),
		col(2, entity.Tag, 0),
		col(3, entity.CostKind, 2),
		col(4, entity.Measurable, 9),
	}
	plan := Classify(cols)
	total := 0
	for _, k := range plan.Keys() {
		total += len(plan[k])
	}
	if total != len(cols) {
		t.Fatalf("columns lost in classification: got=%d want=%d", total, len(cols))
	}
	costs := plan[KeyCost]
	if len(costs) != 2 || costs[0].GridColumnID != 1 || costs[1].GridColumnID != 3 {
		t.Fatalf("cost group order: %+v", costs)
	}
	keys := plan.Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
}
