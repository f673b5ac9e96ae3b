package reportgrid

import (
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
)

// CellOption is the enumerated code/text pair a cell may carry, used by
// clients for filtering and colouring.
type CellOption struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

// Cell is one populated (subject, column) coordinate. Exactly one of the value
// fields is set.
type Cell struct {
	SubjectID          int64       `json:"subject_id"`
	ColumnDefinitionID int64       `json:"column_definition_id"`
	TextValue          *string     `json:"text_value,omitempty"`
	NumberValue        *float64    `json:"number_value,omitempty"`
	RatingIDValue      *int64      `json:"rating_id_value,omitempty"`
	DateTimeValue      *time.Time  `json:"date_time_value,omitempty"`
	Comment            *string     `json:"comment,omitempty"`
	Option             *CellOption `json:"option,omitempty"`
}

type CellKey struct {
	SubjectID          int64
	ColumnDefinitionID int64
}

func (c Cell) Key() CellKey {
	return CellKey{SubjectID: c.SubjectID, ColumnDefinitionID: c.ColumnDefinitionID}
}

func TextCell(subjectID, columnID int64, text string) Cell {
	return Cell{SubjectID: subjectID, ColumnDefinitionID: columnID, TextValue: &text}
}

func NumberCell(subjectID, columnID int64, n float64) Cell {
	return Cell{SubjectID: subjectID, ColumnDefinitionID: columnID, NumberValue: &n}
}

func RatingCell(subjectID, columnID, ratingID int64) Cell {
	return Cell{SubjectID: subjectID, ColumnDefinitionID: columnID, RatingIDValue: &ratingID}
}

func DateTimeCell(subjectID, columnID int64, at time.Time) Cell {
	return Cell{SubjectID: subjectID, ColumnDefinitionID: columnID, DateTimeValue: &at}
}

func (c Cell) WithComment(comment *string) Cell {
	if comment != nil {
		v := *comment
		c.Comment = &v
	}
	return c
}

func (c Cell) WithCommentText(comment string) Cell {
	c.Comment = &comment
	return c
}

func (c Cell) WithOption(code, text string) Cell {
	c.Option = &CellOption{Code: code, Text: text}
	return c
}

// Text returns the text value or "".
func (c Cell) Text() string {
	if c.TextValue == nil {
		return ""
	}
	return *c.TextValue
}

// Instance is a resolved grid: its definition, the subjects it was evaluated
// over and the cell matrix.
type Instance struct {
	Definition *Definition  `json:"definition"`
	Subjects   []entity.Ref `json:"subjects"`
	Cells      []Cell       `json:"cells"`
}
