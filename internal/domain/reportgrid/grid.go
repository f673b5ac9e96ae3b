package reportgrid

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/waltz-backend/internal/domain/entity"
)

type GridKind string

const (
	KindPublic  GridKind = "PUBLIC"
	KindPrivate GridKind = "PRIVATE"
)

type MemberRole string

const (
	RoleOwner  MemberRole = "OWNER"
	RoleViewer MemberRole = "VIEWER"
)

const DefaultProvenance = "waltz"

type ReportGrid struct {
	ID            int64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name          string      `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description   string      `gorm:"column:description;not null;default:''" json:"description"`
	ExternalID    *string     `gorm:"column:external_id;uniqueIndex" json:"external_id,omitempty"`
	Provenance    string      `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
	LastUpdatedAt time.Time   `gorm:"column:last_updated_at;not null" json:"last_updated_at"`
	LastUpdatedBy string      `gorm:"column:last_updated_by;not null" json:"last_updated_by"`
	SubjectKind   entity.Kind `gorm:"column:subject_kind;not null" json:"subject_kind"`
	Kind          GridKind    `gorm:"column:kind;not null;default:'PUBLIC'" json:"kind"`
}

func (ReportGrid) TableName() string { return "report_grid" }

type ReportGridMember struct {
	GridID int64      `gorm:"column:grid_id;primaryKey;autoIncrement:false" json:"grid_id"`
	UserID string     `gorm:"column:user_id;primaryKey;size:255;index" json:"user_id"`
	Role   MemberRole `gorm:"column:role;not null" json:"role"`
}

func (ReportGridMember) TableName() string { return "report_grid_member" }

// GridRef selects a grid by internal id or by external id. Exactly one is set.
type GridRef struct {
	ID         int64  `json:"id,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
}

func ByID(id int64) GridRef { return GridRef{ID: id} }

func ByExternalID(externalID string) GridRef {
	return GridRef{ExternalID: strings.TrimSpace(externalID)}
}

func (r GridRef) Valid() bool {
	return (r.ID > 0) != (r.ExternalID != "")
}

func (r GridRef) String() string {
	if r.ExternalID != "" {
		return "ext:" + r.ExternalID
	}
	return fmt.Sprintf("id:%d", r.ID)
}
