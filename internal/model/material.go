package model

type Material struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"material_id"`
	Name     string `gorm:"column:material_name;size:120;index:idx_name_category,unique;not null" json:"material_name"`
	Category string `gorm:"column:material_category;size:120;index:idx_name_category,unique;not null" json:"material_category"`
}

func (Material) TableName() string {
	return "materials"
}
