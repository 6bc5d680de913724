package models

// ProjectResource is the join row between a project and a member resource.
type ProjectResource struct {
	ProjectID  uint64 `gorm:"primarykey" json:"project_id"`
	ResourceID uint64 `gorm:"primarykey;index" json:"resource_id"`
}
