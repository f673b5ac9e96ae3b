package reportgrid

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/catalog"
	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

func TestStrategiesSkipSourceOnEmptyColumns(t *testing.T) {
	src := &fakeSource{}
	f := newTestFetcher(src)
	for key, strategy := range f.strategies() {
		cells, err := strategy(context.Background(), appSel(1, 2), nil)
		if err != nil || cells != nil {
			t.Fatalf("%s: expected nil, nil got cells=%v err=%v", key, cells, err)
		}
	}
	if src.callCount() != 0 {
		t.Fatalf("source called %d times for empty column sets", src.callCount())
	}
}

func TestCostsPickLatestYearPerKind(t *testing.T) {
	src := &fakeSource{costs: []rg.CostRow{
		{EntityID: 1, CostKindID: 7, Year: 2022, Amount: 100},
		{EntityID: 1, CostKindID: 7, Year: 2023, Amount: 150},
		{EntityID: 1, CostKindID: 8, Year: 2021, Amount: 9},
		{EntityID: 2, CostKindID: 7, Year: 2021, Amount: 5},
	}}
	cells, err := newTestFetcher(src).costs(context.Background(), appSel(1, 2), []rg.FixedColumn{
		col(10, entity.CostKind, 7),
		col(11, entity.CostKind, 8),
	})
	if err != nil {
		t.Fatalf("costs: %v", err)
	}
	if len(cells) != 3 {
		t.Fatalf("costs: got %d cells want 3: %+v", len(cells), cells)
	}
	c, ok := cellFor(cells, 1, 10)
	if !ok || c.NumberValue == nil || *c.NumberValue != 150 {
		t.Fatalf("subject 1 kind 7 should be 150 (2023): %+v", c)
	}
	c, _ = cellFor(cells, 1, 11)
	if *c.NumberValue != 9 {
		t.Fatalf("subject 1 kind 8: %+v", c)
	}
}

func TestTagsUseFirstColumnOnly(t *testing.T) {
	src := &fakeSource{tags: []rg.TagRow{
		{EntityID: 1, Name: "critical"},
		{EntityID: 1, Name: "legacy"},
		{EntityID: 2, Name: "critical"},
	}}
	cells, err := newTestFetcher(src).tags(context.Background(), appSel(1, 2), []rg.FixedColumn{
		col(20, entity.Tag, 0),
		col(21, entity.Tag, 0),
	})
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	merged := Merge(cells)
	if len(merged) != 2 {
		t.Fatalf("tags: got %d merged cells want 2", len(merged))
	}
	for _, c := range merged {
		if c.ColumnDefinitionID != 20 {
			t.Fatalf("tag cell on column %d, want 20", c.ColumnDefinitionID)
		}
	}
	c, _ := cellFor(merged, 1, 20)
	if strings.Join(tokens(c.Text()), ",") != "critical,legacy" {
		t.Fatalf("subject 1 tags: %q", c.Text())
	}
}

func TestInvolvementsDeduplicateEmails(t *testing.T) {
	src := &fakeSource{involvements: []rg.InvolvementRow{
		{EntityID: 1, KindID: 3, Email: "a@x.com"},
		{EntityID: 1, KindID: 3, Email: "a@x.com"},
		{EntityID: 1, KindID: 3, Email: "b@x.com"},
	}}
	cells, err := newTestFetcher(src).involvements(context.Background(), appSel(1), []rg.FixedColumn{col(30, entity.InvolvementKind, 3)})
	if err != nil {
		t.Fatalf("involvements: %v", err)
	}
	merged := Merge(cells)
	if len(merged) != 1 || strings.Join(tokens(merged[0].Text()), ",") != "a@x.com,b@x.com" {
		t.Fatalf("involvement merge: %+v", merged)
	}
}

func TestAssessmentCarriesRatingAndComment(t *testing.T) {
	src := &fakeSource{assessments: []rg.AssessmentRow{
		{EntityID: 1, DefinitionID: 4, RatingID: 77, RatingName: "Green", Description: ptr("fine")},
	}}
	cells, err := newTestFetcher(src).assessments(context.Background(), appSel(1), []rg.FixedColumn{col(40, entity.AssessmentDefinition, 4)})
	if err != nil || len(cells) != 1 {
		t.Fatalf("assessments: cells=%v err=%v", cells, err)
	}
	c := cells[0]
	if c.RatingIDValue == nil || *c.RatingIDValue != 77 || *c.Comment != "fine" || c.Option.Code != "77" || c.Option.Text != "Green" {
		t.Fatalf("assessment cell: %+v", c)
	}
}

func TestMeasurableSummaryPicksByPosition(t *testing.T) {
	rows := []rg.RollupRatingRow{
		{EntityID: 1, AncestorID: 50, MeasurableID: 51, RatingItemID: 2, RatingName: "Amber", Position: 2},
		{EntityID: 1, AncestorID: 50, MeasurableID: 52, RatingItemID: 1, RatingName: "Green", Position: 1},
		{EntityID: 1, AncestorID: 50, MeasurableID: 53, RatingItemID: 3, RatingName: "Red", Position: 3},
		{EntityID: 2, AncestorID: 50, MeasurableID: 51, RatingItemID: 5, RatingName: "Beta", Position: 1},
		{EntityID: 2, AncestorID: 50, MeasurableID: 52, RatingItemID: 4, RatingName: "Alpha", Position: 1},
		{EntityID: 3, AncestorID: 50, MeasurableID: 51, RatingItemID: 1, RatingName: "Green", Position: 1},
		{EntityID: 3, AncestorID: 50, MeasurableID: 52, RatingItemID: 8, RatingName: "Zulu", Position: 3},
		{EntityID: 3, AncestorID: 50, MeasurableID: 53, RatingItemID: 9, RatingName: "Delta", Position: 3},
	}
	ctx := context.Background()
	f := newTestFetcher(&fakeSource{rollups: rows})
	highest, err := f.measurableSummary(true)(ctx, appSel(1, 2), []rg.FixedColumn{col(60, entity.Measurable, 50)})
	if err != nil {
		t.Fatalf("highest: %v", err)
	}
	if c, _ := cellFor(highest, 1, 60); *c.RatingIDValue != 1 {
		t.Fatalf("highest for subject 1 should be Green: %+v", c)
	}
	if c, _ := cellFor(highest, 2, 60); *c.RatingIDValue != 4 {
		t.Fatalf("tie should go to Alpha: %+v", c)
	}
	lowest, err := f.measurableSummary(false)(ctx, appSel(1, 2, 3), []rg.FixedColumn{col(61, entity.Measurable, 50)})
	if err != nil {
		t.Fatalf("lowest: %v", err)
	}
	if c, _ := cellFor(lowest, 1, 61); *c.RatingIDValue != 3 || c.Option.Text != "Red" {
		t.Fatalf("lowest for subject 1 should be Red: %+v", c)
	}
	if c, _ := cellFor(lowest, 2, 61); *c.RatingIDValue != 4 || c.Option.Text != "Alpha" {
		t.Fatalf("lowest tie should go to Alpha: %+v", c)
	}
	if c, _ := cellFor(lowest, 3, 61); *c.RatingIDValue != 9 || c.Option.Text != "Delta" {
		t.Fatalf("lowest tie at position 3 should go to Delta: %+v", c)
	}
}

func TestMeasurableSummaryHonoursQualifierSubtree(t *testing.T) {
	src := &fakeSource{
		rollups: []rg.RollupRatingRow{
			{EntityID: 1, AncestorID: 50, MeasurableID: 51, RatingItemID: 1, RatingName: "Green", Position: 1},
			{EntityID: 1, AncestorID: 50, MeasurableID: 52, RatingItemID: 3, RatingName: "Red", Position: 3},
		},
		descendants: []rg.HierarchyEdge{{AncestorID: 52, DescendantID: 52}},
	}
	c := col(60, entity.Measurable, 50)
	c.ColumnQualifierKind = ptr(entity.Measurable)
	c.ColumnQualifierID = ptr(int64(52))
	cells, err := newTestFetcher(src).measurableSummary(true)(context.Background(), appSel(1), []rg.FixedColumn{c})
	if err != nil || len(cells) != 1 || *cells[0].RatingIDValue != 3 {
		t.Fatalf("qualified summary: cells=%+v err=%v", cells, err)
	}
}

func TestMeasurableHierarchy(t *testing.T) {
	src := &fakeSource{
		rated: []rg.RatedMeasurableRow{
			{EntityID: 1, CategoryID: 9, MeasurableID: 3, Name: "Clearing"},
			{EntityID: 1, CategoryID: 9, MeasurableID: 4, Name: "Billing"},
		},
		ancestry: []rg.MeasurableNode{
			{ID: 1, Name: "Root"},
			{ID: 3, ParentID: ptr(int64(1)), Name: "Clearing"},
			{ID: 4, ParentID: ptr(int64(1)), Name: "Billing"},
		},
	}
	cells, err := newTestFetcher(src).measurableHierarchy(context.Background(), appSel(1), []rg.FixedColumn{col(70, entity.MeasurableCategory, 9)})
	if err != nil || len(cells) != 1 {
		t.Fatalf("hierarchy: cells=%v err=%v", cells, err)
	}
	if cells[0].Text() != "Billing; Clearing" {
		t.Fatalf("hierarchy text: %q", cells[0].Text())
	}
	if cells[0].Comment == nil || *cells[0].Comment != "- Root\n  - Billing\n  - Clearing" {
		t.Fatalf("hierarchy comment: %v", cells[0].Comment)
	}
}

func TestDataTypesDeriveUsage(t *testing.T) {
	src := &fakeSource{usages: []rg.DataTypeUsageRow{
		{EntityID: 1, ColumnTypeID: 5, DataTypeID: 6, UsageKind: "CONSUMER"},
		{EntityID: 1, ColumnTypeID: 5, DataTypeID: 7, UsageKind: "ORIGINATOR"},
		{EntityID: 2, ColumnTypeID: 5, DataTypeID: 5, UsageKind: "CONSUMER"},
	}}
	f := newTestFetcher(src)
	cells, err := f.dataTypes(true)(context.Background(), appSel(1, 2), []rg.FixedColumn{col(80, entity.DataType, 5)})
	if err != nil || len(cells) != 2 {
		t.Fatalf("data types: cells=%v err=%v", cells, err)
	}
	if c, _ := cellFor(cells, 1, 80); c.Text() != "Distributor" || c.Option.Code != "DISTRIBUTOR" {
		t.Fatalf("subject 1 usage: %+v", c)
	}
	ciSel := entity.NewSelector(entity.ChangeInitiative, []int64{1})
	if cells, _ := f.dataTypes(false)(context.Background(), ciSel, []rg.FixedColumn{col(80, entity.DataType, 5)}); cells != nil {
		t.Fatalf("non application subjects should yield no data type cells")
	}
}

func TestAppGroupsEarliestMembership(t *testing.T) {
	src := &fakeSource{memberships: []rg.AppGroupMembershipRow{
		{SubjectID: 1, GroupID: 3, CreatedAt: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)},
		{SubjectID: 1, GroupID: 3, CreatedAt: time.Date(2021, 2, 3, 0, 0, 0, 0, time.UTC)},
	}}
	cells, err := newTestFetcher(src).appGroups(context.Background(), appSel(1), []rg.FixedColumn{col(90, entity.AppGroup, 3)})
	if err != nil || len(cells) != 1 {
		t.Fatalf("app groups: cells=%v err=%v", cells, err)
	}
	if cells[0].Text() != "Y" || *cells[0].Comment != "Created at: 2021-02-03" {
		t.Fatalf("app group cell: %+v", cells[0])
	}
}

func TestAttestationsLatestPerParent(t *testing.T) {
	now := fixedNow()
	src := &fakeSource{attestations: []rg.AttestationRow{
		{ParentID: 1, AttestedKind: entity.LogicalDataFlow, AttestedAt: now.AddDate(0, -8, 0), AttestedBy: "old@x.com"},
		{ParentID: 1, AttestedKind: entity.LogicalDataFlow, AttestedAt: now.AddDate(0, 0, -2), AttestedBy: "new@x.com"},
		{ParentID: 1, AttestedKind: entity.MeasurableCategory, AttestedID: 4, AttestedAt: now.AddDate(-2, 0, 0), AttestedBy: "cat@x.com"},
		{ParentID: 1, AttestedKind: entity.MeasurableCategory, AttestedID: 5, AttestedAt: now, AttestedBy: "other@x.com"},
	}}
	flows := col(100, entity.Attestation, 0)
	flows.ColumnQualifierKind = ptr(entity.LogicalDataFlow)
	category := col(101, entity.Attestation, 0)
	category.ColumnQualifierKind = ptr(entity.MeasurableCategory)
	category.ColumnQualifierID = ptr(int64(4))

	cells, err := newTestFetcher(src).attestations(context.Background(), appSel(1), []rg.FixedColumn{flows, category})
	if err != nil || len(cells) != 2 {
		t.Fatalf("attestations: cells=%v err=%v", cells, err)
	}
	c, _ := cellFor(cells, 1, 100)
	if c.Option.Code != "<1M" || *c.Comment != "Attested by: new@x.com" || c.DateTimeValue == nil {
		t.Fatalf("flow attestation: %+v", c)
	}
	c, _ = cellFor(cells, 1, 101)
	if c.Option.Code != ">1Y" || c.Option.Text != ">1 Year" {
		t.Fatalf("category attestation: %+v", c)
	}
}

func TestSurveyQuestionsLatestResponse(t *testing.T) {
	older := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{responses: []rg.SurveyResponseRow{
		{EntityID: 1, QuestionID: 2, FieldType: "TEXT", SubmittedAt: &older, InstanceID: 10, StringResponse: ptr("old")},
		{EntityID: 1, QuestionID: 2, FieldType: "TEXT", SubmittedAt: nil, InstanceID: 12, StringResponse: ptr("draft")},
		{EntityID: 1, QuestionID: 2, FieldType: "TEXT", SubmittedAt: &newer, InstanceID: 11, StringResponse: ptr("new"), Comment: ptr("why")},
		{EntityID: 1, QuestionID: 3, FieldType: "BOOLEAN", SubmittedAt: &newer, InstanceID: 11, BooleanResponse: ptr(true)},
		{EntityID: 1, QuestionID: 4, FieldType: "PERSON", SubmittedAt: &newer, InstanceID: 11, EntityResponseKind: ptr(entity.Person), EntityResponseID: ptr(int64(8))},
		{EntityID: 1, QuestionID: 5, FieldType: "MEASURABLE_MULTI_SELECT", SubmittedAt: &newer, InstanceID: 11, ListResponses: []string{"x", "y"}},
	}}
	f := newTestFetcher(src)
	f.names = fakeNames{entity.Person: {8: "Jo Bloggs"}}
	cols := []rg.FixedColumn{
		col(110, entity.SurveyQuestion, 2),
		col(111, entity.SurveyQuestion, 3),
		col(112, entity.SurveyQuestion, 4),
		col(113, entity.SurveyQuestion, 5),
	}
	cells, err := f.surveyQuestions(context.Background(), appSel(1), cols)
	if err != nil {
		t.Fatalf("survey questions: %v", err)
	}
	want := map[int64]string{110: "new", 111: "true", 112: "Jo Bloggs", 113: "x; y"}
	for colID, text := range want {
		c, ok := cellFor(cells, 1, colID)
		if !ok || c.Text() != text {
			t.Fatalf("column %d: got %+v want %q", colID, c, text)
		}
	}
	if c, _ := cellFor(cells, 1, 110); c.Comment == nil || *c.Comment != "why" {
		t.Fatalf("response comment missing")
	}
}

func TestSurveyInstanceFieldsIgnoreIneligibleStatus(t *testing.T) {
	older := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{instances: []rg.SurveyInstanceRow{
		{EntityID: 1, InstanceID: 1, TemplateID: 7, Status: "APPROVED", SubmittedAt: &older, RunName: "2023 run"},
		{EntityID: 1, InstanceID: 2, TemplateID: 7, Status: "IN_PROGRESS", SubmittedAt: &newer, RunName: "2024 run"},
	}}
	status := col(120, entity.Application, 7)
	status.EntityFieldReference = &rg.EntityFieldReference{EntityKind: entity.SurveyInstance, FieldName: "run_name"}
	submitted := col(121, entity.Application, 7)
	submitted.EntityFieldReference = &rg.EntityFieldReference{EntityKind: entity.SurveyInstance, FieldName: "submitted_at"}
	cells, err := newTestFetcher(src).surveyInstanceFields(context.Background(), appSel(1), []rg.FixedColumn{status, submitted})
	if err != nil || len(cells) != 2 {
		t.Fatalf("survey fields: cells=%v err=%v", cells, err)
	}
	if c, _ := cellFor(cells, 1, 120); c.Text() != "2023 run" {
		t.Fatalf("run name: %+v", c)
	}
	if c, _ := cellFor(cells, 1, 121); c.Text() != "2023-01-01" {
		t.Fatalf("submitted at: %+v", c)
	}
}

func TestApplicationFieldsSkipNulls(t *testing.T) {
	src := &fakeSource{applications: []catalog.Application{
		{ID: 1, Name: "Ledger", AssetCode: ptr("A-1"), CreatedAt: time.Date(2020, 4, 2, 10, 0, 0, 0, time.UTC)},
	}}
	mk := func(id int64, field string) rg.FixedColumn {
		c := col(id, entity.Application, 0)
		c.EntityFieldReference = &rg.EntityFieldReference{EntityKind: entity.Application, FieldName: field}
		return c
	}
	cols := []rg.FixedColumn{mk(130, "name"), mk(131, "asset_code"), mk(132, "description"), mk(133, "created_at")}
	f := newTestFetcher(src)
	cells, err := f.applicationFields(context.Background(), appSel(1), cols)
	if err != nil || len(cells) != 3 {
		t.Fatalf("application fields: cells=%+v err=%v", cells, err)
	}
	if c, _ := cellFor(cells, 1, 133); c.Text() != "2020-04-02" {
		t.Fatalf("created_at: %+v", c)
	}
	ciSel := entity.NewSelector(entity.ChangeInitiative, []int64{1})
	if cells, _ := f.applicationFields(context.Background(), ciSel, cols); cells != nil {
		t.Fatalf("application fields should not project onto change initiatives")
	}
}
