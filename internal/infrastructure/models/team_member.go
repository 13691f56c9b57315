package models

// TeamMember maps one team_members row. List columns hold JSON array text and
// IsActive holds 0 or 1.
type TeamMember struct {
	ID           string `gorm:"column:id;primaryKey"`
	Name         string `gorm:"column:name;not null"`
	Position     string `gorm:"column:position"`
	Department   string `gorm:"column:department"`
	Bio          string `gorm:"column:bio"`
	Email        string `gorm:"column:email"`
	Phone        string `gorm:"column:phone"`
	LinkedIn     string `gorm:"column:linkedin"`
	Image        string `gorm:"column:image"`
	Experience   string `gorm:"column:experience"`
	Specialty    string `gorm:"column:specialty"`
	Achievements string `gorm:"column:achievements"`
	Skills       string `gorm:"column:skills"`
	IsActive     int    `gorm:"column:isActive"`
	Order        int    `gorm:"column:order"`
	JoinDate     string `gorm:"column:joinDate"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
