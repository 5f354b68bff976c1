package dto

type HierarchySalesman struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Customers []string `json:"customers"`
}

type HierarchyTeamLeader struct {
	ID       uint                `json:"id"`
	Name     string              `json:"name"`
	Salesmen []HierarchySalesman `json:"salesmen"`
}

type HierarchyResponse struct {
	TeamLeaders []HierarchyTeamLeader `json:"team_leaders"`
}
