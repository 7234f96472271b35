package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/cartolamix/mixserver/internal/domain"
	"github.com/cartolamix/mixserver/internal/storage"
)

type Storage struct {
	db *sql.DB
}

var _ storage.TeamStorage = (*Storage)(nil)

// New opens the sqlite file behind the persistence port. Migrations are
// the caller's concern.
func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?cache=shared")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// DB exposes the handle for migrations.
func (s *Storage) DB() *sql.DB { return s.db }

func (s *Storage) Close() error { return s.db.Close() }

func (s *Storage) Load() (domain.SavedTeam, bool, error) {
	var team domain.SavedTeam
	err := s.db.QueryRow(`SELECT patrimony FROM saved_team WHERE id = 1`).Scan(&team.Patrimony)
	if err == sql.ErrNoRows {
		return domain.SavedTeam{}, false, nil
	}
	if err != nil {
		return domain.SavedTeam{}, false, fmt.Errorf("load saved team: %w", err)
	}

	rows, err := s.db.Query(`SELECT player_id, price FROM saved_player ORDER BY position`)
	if err != nil {
		return domain.SavedTeam{}, false, fmt.Errorf("load saved players: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			rawID string
			price float64
		)
		if err := rows.Scan(&rawID, &price); err != nil {
			return domain.SavedTeam{}, false, err
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return domain.SavedTeam{}, false, fmt.Errorf("saved player id: %w", err)
		}
		team.Players = append(team.Players, domain.SavedPlayer{ID: id, Price: price})
	}
	if err := rows.Err(); err != nil {
		return domain.SavedTeam{}, false, err
	}
	return team, true, nil
}

func (s *Storage) Save(team domain.SavedTeam) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`INSERT INTO saved_team (id, patrimony) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET patrimony = excluded.patrimony`, team.Patrimony); err != nil {
		return fmt.Errorf("save patrimony: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM saved_player`); err != nil {
		return err
	}
	for i, p := range team.Players {
		if _, err := tx.Exec(`INSERT INTO saved_player (player_id, price, position) VALUES (?, ?, ?)`,
			p.ID.String(), p.Price, i); err != nil {
			return fmt.Errorf("save player: %w", err)
		}
	}
	return tx.Commit()
}
