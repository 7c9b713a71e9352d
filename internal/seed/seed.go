package seed

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// DDL creates the milestones source schema. Statements run in dependency
// order so foreign keys resolve on a fresh database.
var DDL = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id INTEGER PRIMARY KEY,
		abbreviation TEXT NOT NULL,
		city TEXT NOT NULL,
		name TEXT NOT NULL,
		conference TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS seasons (
		id INTEGER PRIMARY KEY,
		label TEXT NOT NULL,
		start_year INTEGER NOT NULL,
		end_year INTEGER NOT NULL,
		games_scheduled INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS players (
		id INTEGER PRIMARY KEY,
		full_name TEXT NOT NULL,
		team_id INTEGER NOT NULL REFERENCES teams(id),
		position TEXT NOT NULL,
		height_in INTEGER NOT NULL,
		weight_lb INTEGER NOT NULL,
		draft_year INTEGER NOT NULL,
		active INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS player_season_stats (
		player_id INTEGER NOT NULL REFERENCES players(id),
		season_id INTEGER NOT NULL REFERENCES seasons(id),
		games_played INTEGER NOT NULL,
		minutes INTEGER NOT NULL,
		points INTEGER NOT NULL,
		rebounds INTEGER NOT NULL,
		assists INTEGER NOT NULL,
		steals INTEGER NOT NULL,
		blocks INTEGER NOT NULL,
		fg_pct REAL NOT NULL,
		ft_pct REAL NOT NULL,
		three_pct REAL NOT NULL,
		PRIMARY KEY (player_id, season_id)
	)`,
	`CREATE TABLE IF NOT EXISTS player_career_totals (
		player_id INTEGER PRIMARY KEY REFERENCES players(id),
		games_played INTEGER NOT NULL,
		points INTEGER NOT NULL,
		rebounds INTEGER NOT NULL,
		assists INTEGER NOT NULL,
		steals INTEGER NOT NULL,
		blocks INTEGER NOT NULL,
		seasons_played INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS milestones (
		id INTEGER PRIMARY KEY,
		player_id INTEGER NOT NULL REFERENCES players(id),
		category TEXT NOT NULL,
		threshold INTEGER NOT NULL,
		current_value INTEGER NOT NULL,
		games_remaining_est INTEGER,
		reached_at TEXT
	)`,
}

var (
	positions   = []string{"PG", "SG", "SF", "PF", "C"}
	conferences = []string{"East", "West"}
	categories  = []string{"points", "rebounds", "assists", "steals", "blocks", "games_played"}
)

// Options controls the generated dataset size. Zero values fall back to a
// small but dependency-complete dataset.
type Options struct {
	Teams   int
	Seasons int
	Players int
	Seed    int64 // 0 = nondeterministic
}

func (o *Options) defaults() {
	if o.Teams <= 0 {
		o.Teams = 30
	}
	if o.Seasons <= 0 {
		o.Seasons = 10
	}
	if o.Players <= 0 {
		o.Players = 150
	}
}

// Run creates the schema and fills it with a generated dataset whose
// foreign keys and career totals are internally consistent. Existing rows
// are removed first so reseeding produces a clean dataset.
func Run(ctx context.Context, db *sql.DB, opts Options) error {
	opts.defaults()
	f := gofakeit.New(opts.Seed)

	for _, stmt := range DDL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create source schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"milestones", "player_career_totals", "player_season_stats", "players", "seasons", "teams"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}

	if err := seedTeams(ctx, tx, f, opts.Teams); err != nil {
		return err
	}
	if err := seedSeasons(ctx, tx, opts.Seasons); err != nil {
		return err
	}
	if err := seedPlayers(ctx, tx, f, opts); err != nil {
		return err
	}
	return tx.Commit()
}

func seedTeams(ctx context.Context, tx *sql.Tx, f *gofakeit.Faker, n int) error {
	for id := 1; id <= n; id++ {
		city := f.City()
		name := f.PetName() + "s"
		_, err := tx.ExecContext(ctx,
			"INSERT INTO teams (id, abbreviation, city, name, conference) VALUES (?, ?, ?, ?, ?)",
			id, abbrev(city), city, name, conferences[id%2])
		if err != nil {
			return fmt.Errorf("failed to seed teams: %w", err)
		}
	}
	return nil
}

func seedSeasons(ctx context.Context, tx *sql.Tx, n int) error {
	firstYear := time.Now().Year() - n
	for i := 0; i < n; i++ {
		start := firstYear + i
		label := fmt.Sprintf("%d-%02d", start, (start+1)%100)
		_, err := tx.ExecContext(ctx,
			"INSERT INTO seasons (id, label, start_year, end_year, games_scheduled) VALUES (?, ?, ?, ?, ?)",
			i+1, label, start, start+1, 82)
		if err != nil {
			return fmt.Errorf("failed to seed seasons: %w", err)
		}
	}
	return nil
}

func seedPlayers(ctx context.Context, tx *sql.Tx, f *gofakeit.Faker, opts Options) error {
	milestoneID := 0
	for id := 1; id <= opts.Players; id++ {
		teamID := f.Number(1, opts.Teams)
		firstSeason := f.Number(1, opts.Seasons)
		draftYear := time.Now().Year() - opts.Seasons + firstSeason - 1
		active := 1
		if f.Number(1, 10) == 1 {
			active = 0
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO players (id, full_name, team_id, position, height_in, weight_lb, draft_year, active) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			id, f.Name(), teamID, positions[f.Number(0, len(positions)-1)],
			f.Number(70, 88), f.Number(160, 300), draftYear, active)
		if err != nil {
			return fmt.Errorf("failed to seed players: %w", err)
		}

		// Per-season lines from the rookie season onward; career totals
		// aggregate them so the two tables always agree.
		var games, points, rebounds, assists, steals, blocks, seasonsPlayed int
		for sid := firstSeason; sid <= opts.Seasons; sid++ {
			g := f.Number(20, 82)
			p := g * f.Number(4, 32)
			r := g * f.Number(1, 12)
			a := g * f.Number(0, 11)
			s := g * f.Number(0, 2)
			b := g * f.Number(0, 2)
			_, err := tx.ExecContext(ctx,
				`INSERT INTO player_season_stats
				 (player_id, season_id, games_played, minutes, points, rebounds, assists, steals, blocks, fg_pct, ft_pct, three_pct)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				id, sid, g, g*f.Number(12, 38), p, r, a, s, b,
				f.Float64Range(0.38, 0.62), f.Float64Range(0.55, 0.95), f.Float64Range(0.25, 0.45))
			if err != nil {
				return fmt.Errorf("failed to seed player_season_stats: %w", err)
			}
			games += g
			points += p
			rebounds += r
			assists += a
			steals += s
			blocks += b
			seasonsPlayed++
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO player_career_totals (player_id, games_played, points, rebounds, assists, steals, blocks, seasons_played) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			id, games, points, rebounds, assists, steals, blocks, seasonsPlayed)
		if err != nil {
			return fmt.Errorf("failed to seed player_career_totals: %w", err)
		}

		if id%3 != 0 {
			continue
		}
		milestoneID++
		category := categories[f.Number(0, len(categories)-1)]
		current := currentFor(category, games, points, rebounds, assists, steals, blocks)
		threshold := ((current / 1000) + 1) * 1000
		if f.Bool() && current >= 1000 {
			// Roughly half the milestones are already reached.
			threshold = (current / 1000) * 1000
		}
		if threshold < 100 {
			threshold = 100
		}
		var reachedAt any
		remaining := any(f.Number(1, 200))
		if current >= threshold {
			reachedAt = f.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()).Format(time.RFC3339)
			remaining = nil
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO milestones (id, player_id, category, threshold, current_value, games_remaining_est, reached_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			milestoneID, id, category, threshold, current, remaining, reachedAt)
		if err != nil {
			return fmt.Errorf("failed to seed milestones: %w", err)
		}
	}
	return nil
}

func currentFor(category string, games, points, rebounds, assists, steals, blocks int) int {
	switch category {
	case "points":
		return points
	case "rebounds":
		return rebounds
	case "assists":
		return assists
	case "steals":
		return steals
	case "blocks":
		return blocks
	default:
		return games
	}
}

func abbrev(city string) string {
	r := []rune(strings.ToUpper(strings.ReplaceAll(city, " ", "")))
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}
