package catalog

import "time"

type AppGroup struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"column:name;not null" json:"name"`
	Kind        string  `gorm:"column:kind;not null;default:'PUBLIC'" json:"kind"`
	Description *string `gorm:"column:description" json:"description,omitempty"`
	ExternalID  *string `gorm:"column:external_id;index" json:"external_id,omitempty"`
	IsRemoved   bool    `gorm:"column:is_removed;not null;default:false" json:"is_removed"`
}

func (AppGroup) TableName() string { return "application_group" }

type AppGroupEntry struct {
	GroupID       int64     `gorm:"column:group_id;primaryKey;autoIncrement:false" json:"group_id"`
	ApplicationID int64     `gorm:"column:application_id;primaryKey;autoIncrement:false;index" json:"application_id"`
	IsReadonly    bool      `gorm:"column:is_readonly;not null;default:false" json:"is_readonly"`
	Provenance    string    `gorm:"column:provenance;not null;default:'waltz'" json:"provenance"`
	CreatedAt     time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (AppGroupEntry) TableName() string { return "application_group_entry" }

// AppGroupOrgUnitEntry links a group to an org unit; every application in the
// org unit's subtree is an indirect member.
type AppGroupOrgUnitEntry struct {
	GroupID   int64     `gorm:"column:group_id;primaryKey;autoIncrement:false" json:"group_id"`
	OrgUnitID int64     `gorm:"column:org_unit_id;primaryKey;autoIncrement:false;index" json:"org_unit_id"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (AppGroupOrgUnitEntry) TableName() string { return "application_group_ou_entry" }
