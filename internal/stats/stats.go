// Package stats reads player statistics from CRCON's own Postgres database.
// The schema belongs to CRCON; everything here is read-only.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	pool *pgxpool.Pool
}

// Open connects to the stats database and verifies the connection.
func Open(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse stats db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect stats db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping stats db: %w", err)
	}

	return &DB{pool: pool}, nil
}

func (d *DB) Close() {
	d.pool.Close()
}

// Player is one search hit from the player name index.
type Player struct {
	SteamID int64
	Name    string
}

// FindPlayers returns recently seen players whose name starts with prefix.
func (d *DB) FindPlayers(ctx context.Context, prefix string) ([]Player, error) {
	rows, err := d.pool.Query(ctx, `
SELECT playersteamid_id, name
  FROM (
    SELECT DISTINCT ON (pn.playersteamid_id)
           pn.playersteamid_id,
           pn.name,
           pn.last_seen
      FROM player_names pn
     WHERE pn.name ILIKE $1 || '%'
     ORDER BY pn.playersteamid_id, pn.last_seen DESC
  ) sub
 ORDER BY sub.last_seen DESC
 LIMIT 10
`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.SteamID, &p.Name); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// Summary holds a player's all-time aggregates.
type Summary struct {
	Matches    int
	Kills      int
	Deaths     int
	BestStreak int
	TimePlayed time.Duration
}

// KDR is kills per death; deaths of zero count as a ratio of the kill total.
func (s Summary) KDR() float64 {
	if s.Deaths == 0 {
		return float64(s.Kills)
	}
	return float64(s.Kills) / float64(s.Deaths)
}

// PlayerSummary aggregates all recorded matches for one player.
func (d *DB) PlayerSummary(ctx context.Context, steamID int64) (Summary, error) {
	var s Summary
	var seconds int64
	err := d.pool.QueryRow(ctx, `
SELECT COUNT(*),
       COALESCE(SUM(kills), 0),
       COALESCE(SUM(deaths), 0),
       COALESCE(MAX(kills_streak), 0),
       COALESCE(SUM(time_seconds), 0)
  FROM player_stats
 WHERE playersteamid_id = $1
`, steamID).Scan(&s.Matches, &s.Kills, &s.Deaths, &s.BestStreak, &seconds)
	if err != nil {
		return Summary{}, err
	}
	s.TimePlayed = time.Duration(seconds) * time.Second
	return s, nil
}
