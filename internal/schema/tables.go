package schema

// Defaults returns the descriptor set for the milestones dataset.
// Chunk sizes are tuned per table: wide stat tables move in bigger pages
// than the small reference tables.
func Defaults() []*Table {
	return []*Table{
		{
			Name:      "teams",
			Columns:   []string{"id", "abbreviation", "city", "name", "conference"},
			OrderBy:   "id",
			ChunkSize: 100,
		},
		{
			Name:      "seasons",
			Columns:   []string{"id", "label", "start_year", "end_year", "games_scheduled"},
			OrderBy:   "id",
			ChunkSize: 100,
		},
		{
			Name:      "players",
			Columns:   []string{"id", "full_name", "team_id", "position", "height_in", "weight_lb", "draft_year", "active"},
			OrderBy:   "id",
			ChunkSize: 500,
			DependsOn: []string{"teams"},
		},
		{
			Name:      "player_season_stats",
			Columns:   []string{"player_id", "season_id", "games_played", "minutes", "points", "rebounds", "assists", "steals", "blocks", "fg_pct", "ft_pct", "three_pct"},
			OrderBy:   "player_id, season_id",
			ChunkSize: 1000,
			DependsOn: []string{"players", "seasons"},
		},
		{
			Name:      "player_career_totals",
			Columns:   []string{"player_id", "games_played", "points", "rebounds", "assists", "steals", "blocks", "seasons_played"},
			OrderBy:   "player_id",
			ChunkSize: 500,
			DependsOn: []string{"players"},
		},
		{
			Name:      "milestones",
			Columns:   []string{"id", "player_id", "category", "threshold", "current_value", "games_remaining_est", "reached_at"},
			OrderBy:   "id",
			ChunkSize: 250,
			DependsOn: []string{"players"},
		},
	}
}
