package reportgrid

import (
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/catalog"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
)

// Field projections. Each returns false when the field is unknown or null so
// that no cell is emitted.

func fmtStr(v string) (string, bool) { return v, true }

func fmtStrPtr(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	return *v, true
}

func fmtDate(v time.Time) (string, bool) {
	if v.IsZero() {
		return "", false
	}
	return v.Format(dateLayout), true
}

func fmtDatePtr(v *time.Time) (string, bool) {
	if v == nil {
		return "", false
	}
	return fmtDate(*v)
}

func fmtID(v int64) (string, bool) { return strconv.FormatInt(v, 10), true }

func fmtIDPtr(v *int64) (string, bool) {
	if v == nil {
		return "", false
	}
	return fmtID(*v)
}

func normField(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

func applicationField(a catalog.Application, field string) (string, bool) {
	switch normField(field) {
	case "id":
		return fmtID(a.ID)
	case "name":
		return fmtStr(a.Name)
	case "asset_code":
		return fmtStrPtr(a.AssetCode)
	case "description":
		return fmtStrPtr(a.Description)
	case "overall_rating":
		return fmtStrPtr(a.OverallRating)
	case "lifecycle_phase":
		return fmtStr(a.LifecyclePhase)
	case "kind":
		return fmtStr(a.Kind)
	case "business_criticality":
		return fmtStrPtr(a.BusinessCriticality)
	case "provenance":
		return fmtStr(a.Provenance)
	case "entity_lifecycle_status":
		return fmtStr(a.EntityLifecycleStatus)
	case "planned_retirement_date":
		return fmtDatePtr(a.PlannedRetirementDate)
	case "actual_retirement_date":
		return fmtDatePtr(a.ActualRetirementDate)
	case "commission_date":
		return fmtDatePtr(a.CommissionDate)
	case "created_at":
		return fmtDate(a.CreatedAt)
	case "updated_at":
		return fmtDate(a.UpdatedAt)
	case "organisational_unit_id":
		return fmtID(a.OrganisationalUnitID)
	case "is_removed":
		return strconv.FormatBool(a.IsRemoved), true
	}
	return "", false
}

func changeInitiativeField(ci rg.ChangeInitiativeRow, field string) (string, bool) {
	switch normField(field) {
	case "id":
		return fmtID(ci.ID)
	case "name":
		return fmtStr(ci.Name)
	case "external_id":
		return fmtStrPtr(ci.ExternalID)
	case "description":
		return fmtStrPtr(ci.Description)
	case "kind":
		return fmtStr(ci.Kind)
	case "lifecycle_phase":
		return fmtStr(ci.LifecyclePhase)
	case "provenance":
		return fmtStr(ci.Provenance)
	case "start_date":
		return fmtDatePtr(ci.StartDate)
	case "end_date":
		return fmtDatePtr(ci.EndDate)
	case "last_update":
		return fmtDatePtr(ci.LastUpdate)
	case "organisational_unit_id":
		return fmtID(ci.OrganisationalUnitID)
	case "parent_id":
		return fmtIDPtr(ci.ParentID)
	case "parent_external_id":
		return fmtStrPtr(ci.ParentExternalID)
	}
	return "", false
}

func orgUnitField(ou catalog.OrgUnit, field string) (string, bool) {
	switch normField(field) {
	case "id":
		return fmtID(ou.ID)
	case "name":
		return fmtStr(ou.Name)
	case "description":
		return fmtStrPtr(ou.Description)
	case "external_id":
		return fmtStrPtr(ou.ExternalID)
	case "parent_id":
		return fmtIDPtr(ou.ParentID)
	case "provenance":
		return fmtStr(ou.Provenance)
	case "created_at":
		return fmtDatePtr(ou.CreatedAt)
	case "last_updated_at":
		return fmtDatePtr(ou.LastUpdatedAt)
	}
	return "", false
}

func surveyInstanceField(si rg.SurveyInstanceRow, field string) (string, bool) {
	switch normField(field) {
	case "status":
		return fmtStr(si.Status)
	case "approved_at":
		return fmtDatePtr(si.ApprovedAt)
	case "approved_by":
		return fmtStrPtr(si.ApprovedBy)
	case "submitted_at":
		return fmtDatePtr(si.SubmittedAt)
	case "submitted_by":
		return fmtStrPtr(si.SubmittedBy)
	case "due_date":
		return fmtDatePtr(si.DueDate)
	case "approval_due_date":
		return fmtDatePtr(si.ApprovalDueDate)
	case "issued_on":
		return fmtDatePtr(si.IssuedOn)
	case "instance_name", "name":
		return fmtStrPtr(si.InstanceName)
	case "run_name":
		return fmtStr(si.RunName)
	}
	return "", false
}
