package catalog

import "time"

type Application struct {
	ID                    int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name                  string     `gorm:"column:name;not null;index" json:"name"`
	AssetCode             *string    `gorm:"column:asset_code;index" json:"asset_code,omitempty"`
	Description           *string    `gorm:"column:description" json:"description,omitempty"`
	OrganisationalUnitID  int64      `gorm:"column:organisational_unit_id;not null;index" json:"organisational_unit_id"`
	Kind                  string     `gorm:"column:kind;not null;default:'IN_HOUSE'" json:"kind"`
	LifecyclePhase        string     `gorm:"column:lifecycle_phase;not null;default:'PRODUCTION'" json:"lifecycle_phase"`
	OverallRating         *string    `gorm:"column:overall_rating" json:"overall_rating,omitempty"`
	BusinessCriticality   *string    `gorm:"column:business_criticality" json:"business_criticality,omitempty"`
	Provenance            string     `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
	EntityLifecycleStatus string     `gorm:"column:entity_lifecycle_status;not null;default:'ACTIVE'" json:"entity_lifecycle_status"`
	IsRemoved             bool       `gorm:"column:is_removed;not null;default:false" json:"is_removed"`
	PlannedRetirementDate *time.Time `gorm:"column:planned_retirement_date" json:"planned_retirement_date,omitempty"`
	ActualRetirementDate  *time.Time `gorm:"column:actual_retirement_date" json:"actual_retirement_date,omitempty"`
	CommissionDate        *time.Time `gorm:"column:commission_date" json:"commission_date,omitempty"`
	CreatedAt             time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Application) TableName() string { return "application" }

type ChangeInitiative struct {
	ID                   int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ParentID             *int64     `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	Name                 string     `gorm:"column:name;not null" json:"name"`
	ExternalID           *string    `gorm:"column:external_id;index" json:"external_id,omitempty"`
	Description          *string    `gorm:"column:description" json:"description,omitempty"`
	Kind                 string     `gorm:"column:kind;not null;default:'PROJECT'" json:"kind"`
	LifecyclePhase       string     `gorm:"column:lifecycle_phase;not null;default:'PRODUCTION'" json:"lifecycle_phase"`
	OrganisationalUnitID int64      `gorm:"column:organisational_unit_id;not null;index" json:"organisational_unit_id"`
	Provenance           string     `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
	StartDate            *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate              *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	LastUpdate           *time.Time `gorm:"column:last_update" json:"last_update,omitempty"`
}

func (ChangeInitiative) TableName() string { return "change_initiative" }

type OrgUnit struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name          string     `gorm:"column:name;not null" json:"name"`
	Description   *string    `gorm:"column:description" json:"description,omitempty"`
	ParentID      *int64     `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	ExternalID    *string    `gorm:"column:external_id;index" json:"external_id,omitempty"`
	Provenance    string     `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
	CreatedAt     *time.Time `gorm:"column:created_at" json:"created_at,omitempty"`
	LastUpdatedAt *time.Time `gorm:"column:last_updated_at" json:"last_updated_at,omitempty"`
}

func (OrgUnit) TableName() string { return "organisational_unit" }

type Person struct {
	ID                   int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EmployeeID           string  `gorm:"column:employee_id;not null;uniqueIndex" json:"employee_id"`
	DisplayName          string  `gorm:"column:display_name;not null" json:"display_name"`
	Email                string  `gorm:"column:email;not null;index" json:"email"`
	Title                *string `gorm:"column:title" json:"title,omitempty"`
	Kind                 string  `gorm:"column:kind;not null;default:'EMPLOYEE'" json:"kind"`
	DepartmentName       *string `gorm:"column:department_name" json:"department_name,omitempty"`
	OrganisationalUnitID *int64  `gorm:"column:organisational_unit_id" json:"organisational_unit_id,omitempty"`
	IsRemoved            bool    `gorm:"column:is_removed;not null;default:false" json:"is_removed"`
}

func (Person) TableName() string { return "person" }
