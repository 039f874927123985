package memory

import "github.com/riskibarqy/pickem-league/internal/domain/team"

// SeedTeams returns a small NFL slice for local runs and tests.
func SeedTeams() []team.Team {
	return []team.Team{
		{ID: 1, City: "Kansas City", Name: "Chiefs", Abbreviation: "KC", PrimaryColor: "#E31837", SecondaryColor: "#FFB81C"},
		{ID: 2, City: "Buffalo", Name: "Bills", Abbreviation: "BUF", PrimaryColor: "#00338D", SecondaryColor: "#C60C30"},
		{ID: 3, City: "Philadelphia", Name: "Eagles", Abbreviation: "PHI", PrimaryColor: "#004C54", SecondaryColor: "#A5ACAF"},
		{ID: 4, City: "Dallas", Name: "Cowboys", Abbreviation: "DAL", PrimaryColor: "#003594", SecondaryColor: "#869397"},
		{ID: 5, City: "San Francisco", Name: "49ers", Abbreviation: "SF", PrimaryColor: "#AA0000", SecondaryColor: "#B3995D"},
		{ID: 6, City: "Detroit", Name: "Lions", Abbreviation: "DET", PrimaryColor: "#0076B6", SecondaryColor: "#B0B7BC"},
		{ID: 7, City: "Baltimore", Name: "Ravens", Abbreviation: "BAL", PrimaryColor: "#241773", SecondaryColor: "#9E7C0C"},
		{ID: 8, City: "Green Bay", Name: "Packers", Abbreviation: "GB", PrimaryColor: "#203731", SecondaryColor: "#FFB612"},
	}
}
