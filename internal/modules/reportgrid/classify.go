package reportgrid

import (
	"sort"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

// Plan groups the fixed columns of a grid by the strategy that serves them.
type Plan map[StrategyKey][]rg.FixedColumn

// Classify assigns every fixed column to exactly one strategy key. Column
// order inside each group follows the input order.
func Classify(cols []rg.FixedColumn) Plan {
	plan := Plan{}
	for _, c := range cols {
		key := KeyFor(c)
		plan[key] = append(plan[key], c)
	}
	return plan
}

// KeyFor returns the strategy key of a single column.
func KeyFor(c rg.FixedColumn) StrategyKey {
	if c.Complex() {
		return StrategyKey("FIELD:" + string(c.EntityFieldReference.EntityKind))
	}
	switch c.ColumnEntityKind {
	case entity.Measurable:
		switch c.AdditionalColumnOptions.Normalize() {
		case rg.OptionPickHighest:
			return KeyMeasurableHighest
		case rg.OptionPickLowest:
			return KeyMeasurableLowest
		default:
			return KeyMeasurableExact
		}
	case entity.DataType:
		if c.AdditionalColumnOptions.Normalize() == rg.OptionNone {
			return KeyDataTypeExact
		}
		return KeyDataTypeRollup
	default:
		return StrategyKey(c.ColumnEntityKind)
	}
}

// Keys returns the plan's keys in a stable order.
func (p Plan) Keys() []StrategyKey {
	keys := make([]StrategyKey, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
