package entities

// TeamMember is one profile row of the team_members table. JSON keys follow
// the data files the site admin maintains.
type TeamMember struct {
	ID           string   `json:"id" validate:"required"`
	Name         string   `json:"name" validate:"required,notblank"`
	Position     string   `json:"position"`
	Department   string   `json:"department"`
	Bio          string   `json:"bio"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	LinkedIn     string   `json:"linkedin"`
	Image        string   `json:"image"`
	Experience   string   `json:"experience"`
	Specialty    string   `json:"specialty"`
	Achievements []string `json:"achievements"`
	Skills       []string `json:"skills"`
	IsActive     bool     `json:"isActive"`
	Order        int      `json:"order"`
	JoinDate     string   `json:"joinDate"`
}
