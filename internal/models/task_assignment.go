package models

type TaskAssignment struct {
	TaskID     uint64 `gorm:"primarykey;autoIncrement:false" json:"task_id"`
	AssignedTo string `gorm:"primarykey;type:varchar(255);index" json:"assigned_to"`
	Position   int    `gorm:"not null;default:0" json:"-"`
}
