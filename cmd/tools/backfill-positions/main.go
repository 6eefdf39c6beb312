// cmd/tools/backfill-positions/main.go
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"crew-pipeline/internal/common/config"
	"crew-pipeline/internal/common/database"
	"crew-pipeline/internal/models"
	"crew-pipeline/internal/taxonomy"
)

// backfill-positions re-normalizes stored candidate positions against
// the current position table. Run it after taxonomy updates so older
// profiles pick up new mappings.
func main() {
	dryRun := flag.Bool("dry-run", false, "Report changes without writing them")
	limit := flag.Int("limit", 0, "Maximum number of candidates to process (0 = all)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		fmt.Printf("Error connecting to PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pg.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	processed, changed, err := backfill(ctx, pg.DB, *limit, *dryRun)
	if err != nil {
		fmt.Printf("Backfill failed: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		fmt.Printf("Dry run complete. %d candidates scanned, %d would change.\n", processed, changed)
	} else {
		fmt.Printf("Backfill complete. %d candidates scanned, %d updated.\n", processed, changed)
	}
}

func backfill(ctx context.Context, db *sql.DB, limit int, dryRun bool) (int, int, error) {
	query := `SELECT id, positions FROM candidates WHERE positions IS NOT NULL ORDER BY id`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	type pending struct {
		id        string
		positions []models.Position
	}
	var updates []pending
	processed := 0

	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return processed, len(updates), fmt.Errorf("failed to scan candidate row: %w", err)
		}
		processed++

		var positions []models.Position
		if err := json.Unmarshal(raw, &positions); err != nil {
			fmt.Printf("Skipping candidate %s: malformed positions JSON\n", id)
			continue
		}

		if renormalize(positions) {
			updates = append(updates, pending{id: id, positions: positions})
		}
	}
	if err := rows.Err(); err != nil {
		return processed, len(updates), fmt.Errorf("candidate iteration failed: %w", err)
	}

	if dryRun {
		for _, u := range updates {
			fmt.Printf("Would update candidate %s\n", u.id)
		}
		return processed, len(updates), nil
	}

	for _, u := range updates {
		encoded, err := json.Marshal(u.positions)
		if err != nil {
			return processed, len(updates), fmt.Errorf("failed to encode positions for %s: %w", u.id, err)
		}
		if _, err := db.ExecContext(ctx,
			`UPDATE candidates SET positions = $1, updated_at = $2 WHERE id = $3`,
			encoded, time.Now().UTC(), u.id,
		); err != nil {
			return processed, len(updates), fmt.Errorf("failed to update candidate %s: %w", u.id, err)
		}
	}

	return processed, len(updates), nil
}

// renormalize rewrites each position's normalized title and category
// from the current table. Returns true when anything changed.
func renormalize(positions []models.Position) bool {
	changed := false
	for i := range positions {
		mapping := taxonomy.NormalizeOrOther(positions[i].RawTitle)
		if positions[i].NormalizedTitle != mapping.Standard {
			positions[i].NormalizedTitle = mapping.Standard
			changed = true
		}
		if positions[i].Category != string(mapping.Category) {
			positions[i].Category = string(mapping.Category)
			changed = true
		}
	}
	return changed
}
