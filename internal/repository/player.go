package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fichaje/roster/internal/domain"
)

type playerRepo struct{}

// NewPlayerRepository returns a pgx-backed PlayerRepository.
func NewPlayerRepository() PlayerRepository {
	return &playerRepo{}
}

const playerColumns = `
	id, first_name, last_name, alias, birth_date, country, gender, position, image, salary,
	team_records, dorsal_records, price_records, media_records, season_records,
	social_media, nation_stats, version, created_at, updated_at`

func (r *playerRepo) Create(ctx context.Context, db DBTX, player *domain.Player) error {
	cols, err := marshalHistories(player)
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, `
		INSERT INTO players (`+playerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		player.ID, player.FirstName, player.LastName, player.Alias, player.BirthDate,
		player.Country, string(player.Gender), string(player.Position), player.Image, player.Salary,
		cols.teams, cols.dorsals, cols.prices, cols.media, cols.seasons,
		cols.social, cols.nation, player.Version, player.CreatedAt, player.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *playerRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Player, error) {
	row := db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	return scanPlayer(row)
}

// Update rewrites every mutable column guarded by the version stamp. Zero
// rows affected means a writer got there first.
func (r *playerRepo) Update(ctx context.Context, db DBTX, player *domain.Player) error {
	cols, err := marshalHistories(player)
	if err != nil {
		return err
	}
	tag, err := db.Exec(ctx, `
		UPDATE players SET
			team_records = $1, dorsal_records = $2, price_records = $3,
			media_records = $4, season_records = $5, social_media = $6,
			nation_stats = $7, salary = $8, alias = $9, image = $10,
			version = version + 1, updated_at = now()
		WHERE id = $11 AND version = $12`,
		cols.teams, cols.dorsals, cols.prices, cols.media, cols.seasons,
		cols.social, cols.nation, player.Salary, player.Alias, player.Image,
		player.ID, player.Version,
	)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentModification("player", player.ID.String())
	}
	player.Version++
	return nil
}

func (r *playerRepo) FindFree(ctx context.Context, db DBTX) ([]domain.Player, error) {
	rows, err := db.Query(ctx, `
		SELECT `+playerColumns+`
		FROM players
		WHERE NOT jsonb_path_exists(team_records, '$[*] ? (@.year_finish == null)')
		ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("query free players: %w", err)
	}
	return scanPlayers(rows)
}

func (r *playerRepo) FindByCurrentTeam(ctx context.Context, db DBTX, teamID uuid.UUID) ([]domain.Player, error) {
	// The jsonb filter narrows to players that ever belonged to the team;
	// "current" (greatest year_start) is a derived attribute, decided in Go.
	rows, err := db.Query(ctx, `
		SELECT `+playerColumns+`
		FROM players
		WHERE jsonb_path_exists(team_records, '$[*] ? (@.team_id == $tid)',
			jsonb_build_object('tid', $1::text))
		ORDER BY last_name, first_name`, teamID.String())
	if err != nil {
		return nil, fmt.Errorf("query team players: %w", err)
	}
	players, err := scanPlayers(rows)
	if err != nil {
		return nil, err
	}
	own := players[:0]
	for _, p := range players {
		if current := p.CurrentTeam(); current != nil && *current == teamID {
			own = append(own, p)
		}
	}
	return own, nil
}

func (r *playerRepo) Delete(ctx context.Context, db DBTX, id uuid.UUID) error {
	tag, err := db.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("player", id.String())
	}
	return nil
}

type historyColumns struct {
	teams, dorsals, prices, media, seasons, social, nation []byte
}

func marshalHistories(p *domain.Player) (historyColumns, error) {
	var cols historyColumns
	var err error
	if cols.teams, err = marshalSeq(p.TeamRecords); err != nil {
		return cols, err
	}
	if cols.dorsals, err = marshalSeq(p.DorsalRecords); err != nil {
		return cols, err
	}
	if cols.prices, err = marshalSeq(p.PriceRecords); err != nil {
		return cols, err
	}
	if cols.media, err = marshalSeq(p.MediaRecords); err != nil {
		return cols, err
	}
	if cols.seasons, err = marshalSeq(p.SeasonRecords); err != nil {
		return cols, err
	}
	social := p.SocialMedia
	if social == nil {
		social = map[string]string{}
	}
	if cols.social, err = json.Marshal(social); err != nil {
		return cols, fmt.Errorf("marshal social media: %w", err)
	}
	cols.nation = p.NationStats
	if len(cols.nation) == 0 {
		cols.nation = []byte(`{}`)
	}
	return cols, nil
}

func marshalSeq[T any](seq []T) ([]byte, error) {
	if seq == nil {
		seq = []T{}
	}
	data, err := json.Marshal(seq)
	if err != nil {
		return nil, fmt.Errorf("marshal history: %w", err)
	}
	return data, nil
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	var gender, position string
	var teams, dorsals, prices, media, seasons, social, nation []byte

	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Alias, &p.BirthDate,
		&p.Country, &gender, &position, &p.Image, &p.Salary,
		&teams, &dorsals, &prices, &media, &seasons,
		&social, &nation, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}

	p.Gender = domain.Gender(gender)
	p.Position = domain.Position(position)
	if err := json.Unmarshal(teams, &p.TeamRecords); err != nil {
		return nil, fmt.Errorf("unmarshal team records: %w", err)
	}
	if err := json.Unmarshal(dorsals, &p.DorsalRecords); err != nil {
		return nil, fmt.Errorf("unmarshal dorsal records: %w", err)
	}
	if err := json.Unmarshal(prices, &p.PriceRecords); err != nil {
		return nil, fmt.Errorf("unmarshal price records: %w", err)
	}
	if err := json.Unmarshal(media, &p.MediaRecords); err != nil {
		return nil, fmt.Errorf("unmarshal media records: %w", err)
	}
	if err := json.Unmarshal(seasons, &p.SeasonRecords); err != nil {
		return nil, fmt.Errorf("unmarshal season records: %w", err)
	}
	if err := json.Unmarshal(social, &p.SocialMedia); err != nil {
		return nil, fmt.Errorf("unmarshal social media: %w", err)
	}
	p.NationStats = nation

	return &p, nil
}

func scanPlayers(rows pgx.Rows) ([]domain.Player, error) {
	defer rows.Close()
	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}
