package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/team"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type matchupRowModel struct {
	GameID     int64     `db:"game_id"`
	WeekNumber int       `db:"week_number"`
	StartDate  time.Time `db:"start_date"`
	StartTime  string    `db:"start_time"`

	HomeTeamID        int64  `db:"ht_id"`
	HomeName          string `db:"ht_name"`
	HomeCity          string `db:"ht_city"`
	HomeAbbreviation  string `db:"ht_abbreviation"`
	HomeThumbnail     string `db:"ht_thumbnail"`
	HomePrimaryColor  string `db:"ht_primary_color"`
	HomeSecondary     string `db:"ht_secondary_color"`
	AwayTeamID        int64  `db:"at_id"`
	AwayName          string `db:"at_name"`
	AwayCity          string `db:"at_city"`
	AwayAbbreviation  string `db:"at_abbreviation"`
	AwayThumbnail     string `db:"at_thumbnail"`
	AwayPrimaryColor  string `db:"at_primary_color"`
	AwaySecondary     string `db:"at_secondary_color"`

	HomeSpread float64 `db:"home_spread"`
	AwaySpread float64 `db:"away_spread"`
	HomeScore  *int    `db:"home_score"`
	AwayScore  *int    `db:"away_score"`
}

type MatchupRepository struct {
	db *sqlx.DB
}

func NewMatchupRepository(db *sqlx.DB) *MatchupRepository {
	return &MatchupRepository{db: db}
}

// ListMatchups joins games with both teams and a single bookmaker's
// spread. Games without a line from that bookmaker are dropped by the
// inner joins.
func (r *MatchupRepository) ListMatchups(ctx context.Context, weekID int64, bookmaker string) ([]game.MatchupRow, error) {
	query, args, err := qb.Select(
		"g.id AS game_id",
		"w.week_number AS week_number",
		"g.start_date AS start_date",
		"g.start_time AS start_time",
		"ht.id AS ht_id",
		"ht.name AS ht_name",
		"ht.city AS ht_city",
		"ht.abbreviation AS ht_abbreviation",
		"ht.thumbnail AS ht_thumbnail",
		"ht.primary_color AS ht_primary_color",
		"ht.secondary_color AS ht_secondary_color",
		"at.id AS at_id",
		"at.name AS at_name",
		"at.city AS at_city",
		"at.abbreviation AS at_abbreviation",
		"at.thumbnail AS at_thumbnail",
		"at.primary_color AS at_primary_color",
		"at.secondary_color AS at_secondary_color",
		"hs.value AS home_spread",
		"aws.value AS away_spread",
		"gr.home_score AS home_score",
		"gr.away_score AS away_score",
	).
		From("games g").
		Join("weeks w", "w.id = g.week_id").
		Join("teams ht", "ht.id = g.home_team_id").
		Join("teams at", "at.id = g.away_team_id").
		Join("spreads hs", "hs.game_id = g.id AND hs.team_id = g.home_team_id").
		Join("spreads aws", "aws.game_id = g.id AND aws.team_id = g.away_team_id").
		LeftJoin("game_results gr", "gr.game_id = g.id").
		Where(
			qb.Eq("g.week_id", weekID),
			qb.Expr("LOWER(hs.bookmaker) = LOWER(?)", bookmaker),
			qb.Expr("LOWER(aws.bookmaker) = LOWER(?)", bookmaker),
		).
		OrderBy("g.start_date", "g.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matchups query: %w", err)
	}

	var rows []matchupRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matchups: %w", err)
	}

	out := make([]game.MatchupRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, game.MatchupRow{
			GameID:     row.GameID,
			WeekNumber: row.WeekNumber,
			StartDate:  row.StartDate,
			StartTime:  row.StartTime,
			Home: team.Team{
				ID:             row.HomeTeamID,
				Name:           row.HomeName,
				City:           row.HomeCity,
				Abbreviation:   row.HomeAbbreviation,
				Thumbnail:      row.HomeThumbnail,
				PrimaryColor:   row.HomePrimaryColor,
				SecondaryColor: row.HomeSecondary,
			},
			Away: team.Team{
				ID:             row.AwayTeamID,
				Name:           row.AwayName,
				City:           row.AwayCity,
				Abbreviation:   row.AwayAbbreviation,
				Thumbnail:      row.AwayThumbnail,
				PrimaryColor:   row.AwayPrimaryColor,
				SecondaryColor: row.AwaySecondary,
			},
			HomeSpread: row.HomeSpread,
			AwaySpread: row.AwaySpread,
			HomeScore:  row.HomeScore,
			AwayScore:  row.AwayScore,
		})
	}

	return out, nil
}
