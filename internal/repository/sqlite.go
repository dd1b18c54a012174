package repository

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tbeaumont/livesched/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	// Run migrations
	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS divisions (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			event_version INTEGER NOT NULL DEFAULT 0,
			loaded_match_id TEXT,
			active_match_id TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS teams (
			id TEXT PRIMARY KEY,
			division_id TEXT NOT NULL,
			number INTEGER NOT NULL,
			name TEXT NOT NULL,
			affiliation TEXT,
			city TEXT,
			registered BOOLEAN NOT NULL DEFAULT 0,
			arrived BOOLEAN NOT NULL DEFAULT 0,
			disqualified BOOLEAN NOT NULL DEFAULT 0,
			FOREIGN KEY (division_id) REFERENCES divisions(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			id TEXT PRIMARY KEY,
			division_id TEXT NOT NULL,
			name TEXT NOT NULL,
			FOREIGN KEY (division_id) REFERENCES divisions(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS game_tables (
			id TEXT PRIMARY KEY,
			division_id TEXT NOT NULL,
			name TEXT NOT NULL,
			FOREIGN KEY (division_id) REFERENCES divisions(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			division_id TEXT NOT NULL,
			number INTEGER NOT NULL,
			stage TEXT NOT NULL,
			round INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'not-started',
			scheduled_time DATETIME NOT NULL,
			start_time DATETIME,
			start_delta INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (division_id) REFERENCES divisions(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS participants (
			id TEXT PRIMARY KEY,
			match_id TEXT NOT NULL,
			table_id TEXT NOT NULL,
			team_id TEXT,
			FOREIGN KEY (match_id) REFERENCES matches(id) ON DELETE CASCADE,
			FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS judging_sessions (
			id TEXT PRIMARY KEY,
			division_id TEXT NOT NULL,
			number INTEGER NOT NULL,
			room_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'not-started',
			scheduled_time DATETIME NOT NULL,
			start_time DATETIME,
			start_delta INTEGER NOT NULL DEFAULT 0,
			team_id TEXT,
			FOREIGN KEY (division_id) REFERENCES divisions(id) ON DELETE CASCADE,
			FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS rubrics (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			category TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'empty',
			FOREIGN KEY (session_id) REFERENCES judging_sessions(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS deliberations (
			id TEXT PRIMARY KEY,
			division_id TEXT NOT NULL,
			category TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'not-started',
			FOREIGN KEY (division_id) REFERENCES divisions(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_teams_division ON teams(division_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_division ON matches(division_id)`,
		`CREATE INDEX IF NOT EXISTS idx_participants_match ON participants(match_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_division ON judging_sessions(division_id)`,
		`CREATE INDEX IF NOT EXISTS idx_rubrics_session ON rubrics(session_id)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// ==================== Division Methods ====================

// ListDivisions returns all divisions
func (r *Repository) ListDivisions(ctx context.Context) ([]models.Division, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM divisions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var divisions []models.Division
	for rows.Next() {
		var d models.Division
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		divisions = append(divisions, d)
	}
	return divisions, rows.Err()
}

// GetDivision retrieves a division by id
func (r *Repository) GetDivision(ctx context.Context, id string) (*models.Division, error) {
	var d models.Division
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM divisions WHERE id = ?`, id).Scan(&d.ID, &d.Name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDivision inserts a division
func (r *Repository) CreateDivision(ctx context.Context, div models.Division) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO divisions (id, name) VALUES (?, ?)`, div.ID, div.Name)
	return err
}

// GetDivisionState reads the loaded and active match ids of a division
func (r *Repository) GetDivisionState(ctx context.Context, divisionID string) (models.DivisionState, error) {
	var state models.DivisionState
	var loaded, active sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT loaded_match_id, active_match_id FROM divisions WHERE id = ?`, divisionID).
		Scan(&loaded, &active)
	if err == sql.ErrNoRows {
		return state, ErrNotFound
	}
	if err != nil {
		return state, err
	}
	if loaded.Valid {
		state.LoadedMatchID = &loaded.String
	}
	if active.Valid {
		state.ActiveMatchID = &active.String
	}
	return state, nil
}

// SetLoadedMatch records the match staged at the field, or clears it
func (r *Repository) SetLoadedMatch(ctx context.Context, divisionID string, matchID *string) error {
	return r.setStateColumn(ctx, "loaded_match_id", divisionID, matchID)
}

// SetActiveMatch records the match running at the field, or clears it
func (r *Repository) SetActiveMatch(ctx context.Context, divisionID string, matchID *string) error {
	return r.setStateColumn(ctx, "active_match_id", divisionID, matchID)
}

func (r *Repository) setStateColumn(ctx context.Context, column, divisionID string, matchID *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE divisions SET `+column+` = ? WHERE id = ?`, matchID, divisionID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// NextEventVersion increments and returns the division's event sequence
// number. Every persisted mutation takes a version before broadcasting.
func (r *Repository) NextEventVersion(ctx context.Context, divisionID string) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE divisions SET event_version = event_version + 1 WHERE id = ?`, divisionID)
	if err != nil {
		return 0, err
	}
	if err := requireRow(result); err != nil {
		return 0, err
	}

	var version uint64
	if err := tx.QueryRowContext(ctx,
		`SELECT event_version FROM divisions WHERE id = ?`, divisionID).Scan(&version); err != nil {
		return 0, err
	}
	return version, tx.Commit()
}

// ListRooms returns the judging rooms of a division
func (r *Repository) ListRooms(ctx context.Context, divisionID string) ([]models.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM rooms WHERE division_id = ? ORDER BY name`, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Name); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// CreateRoom inserts a judging room
func (r *Repository) CreateRoom(ctx context.Context, divisionID string, room models.Room) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (id, division_id, name) VALUES (?, ?, ?)`, room.ID, divisionID, room.Name)
	return err
}

// ListTables returns the robot-game tables of a division
func (r *Repository) ListTables(ctx context.Context, divisionID string) ([]models.Table, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM game_tables WHERE division_id = ? ORDER BY name`, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []models.Table
	for rows.Next() {
		var tbl models.Table
		if err := rows.Scan(&tbl.ID, &tbl.Name); err != nil {
			return nil, err
		}
		tables = append(tables, tbl)
	}
	return tables, rows.Err()
}

// CreateTable inserts a robot-game table
func (r *Repository) CreateTable(ctx context.Context, divisionID string, table models.Table) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO game_tables (id, division_id, name) VALUES (?, ?, ?)`, table.ID, divisionID, table.Name)
	return err
}

// ==================== Team Methods ====================

// ListTeams returns the teams of a division in number order
func (r *Repository) ListTeams(ctx context.Context, divisionID string) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, number, name, COALESCE(affiliation, ''), COALESCE(city, ''),
		       registered, arrived, disqualified
		FROM teams WHERE division_id = ? ORDER BY number`, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Number, &t.Name, &t.Affiliation, &t.City,
			&t.Registered, &t.Arrived, &t.Disqualified); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// GetTeam retrieves one team of a division
func (r *Repository) GetTeam(ctx context.Context, divisionID, id string) (*models.Team, error) {
	var t models.Team
	err := r.db.QueryRowContext(ctx, `
		SELECT id, number, name, COALESCE(affiliation, ''), COALESCE(city, ''),
		       registered, arrived, disqualified
		FROM teams WHERE division_id = ? AND id = ?`, divisionID, id).
		Scan(&t.ID, &t.Number, &t.Name, &t.Affiliation, &t.City,
			&t.Registered, &t.Arrived, &t.Disqualified)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTeam inserts a team
func (r *Repository) CreateTeam(ctx context.Context, divisionID string, team models.Team) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO teams (id, division_id, number, name, affiliation, city, registered, arrived, disqualified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		team.ID, divisionID, team.Number, team.Name, team.Affiliation, team.City,
		team.Registered, team.Arrived, team.Disqualified)
	return err
}

// SetTeamRegistered marks a team registered
func (r *Repository) SetTeamRegistered(ctx context.Context, divisionID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET registered = 1 WHERE division_id = ? AND id = ?`, divisionID, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SetTeamArrived records a team's arrival flag
func (r *Repository) SetTeamArrived(ctx context.Context, divisionID, id string, arrived bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET arrived = ? WHERE division_id = ? AND id = ?`, arrived, divisionID, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SetTeamDisqualified marks a team disqualified
func (r *Repository) SetTeamDisqualified(ctx context.Context, divisionID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET disqualified = 1 WHERE division_id = ? AND id = ?`, divisionID, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ==================== Match Methods ====================

// ListMatches returns the matches of a division with their participants,
// in schedule order
func (r *Repository) ListMatches(ctx context.Context, divisionID string) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, number, stage, round, status, scheduled_time, start_time, start_delta
		FROM matches WHERE division_id = ? ORDER BY scheduled_time, number`, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []models.Match
	index := make(map[string]int)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		index[m.ID] = len(matches)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.match_id, p.table_id, p.team_id
		FROM participants p
		JOIN matches m ON m.id = p.match_id
		WHERE m.division_id = ?
		ORDER BY p.table_id`, divisionID)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	for prows.Next() {
		var p models.Participant
		var matchID string
		var teamID sql.NullString
		if err := prows.Scan(&p.ID, &matchID, &p.TableID, &teamID); err != nil {
			return nil, err
		}
		if teamID.Valid {
			p.TeamID = &teamID.String
		}
		if i, ok := index[matchID]; ok {
			matches[i].Participants = append(matches[i].Participants, p)
		}
	}
	return matches, prows.Err()
}

// GetMatch retrieves one match of a division with its participants
func (r *Repository) GetMatch(ctx context.Context, divisionID, id string) (*models.Match, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, number, stage, round, status, scheduled_time, start_time, start_delta
		FROM matches WHERE division_id = ? AND id = ?`, divisionID, id)
	m, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, table_id, team_id FROM participants WHERE match_id = ? ORDER BY table_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Participant
		var teamID sql.NullString
		if err := rows.Scan(&p.ID, &p.TableID, &teamID); err != nil {
			return nil, err
		}
		if teamID.Valid {
			p.TeamID = &teamID.String
		}
		m.Participants = append(m.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMatch inserts a match and its participants
func (r *Repository) CreateMatch(ctx context.Context, divisionID string, match models.Match) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO matches (id, division_id, number, stage, round, status, scheduled_time, start_time, start_delta)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		match.ID, divisionID, match.Number, match.Stage, match.Round,
		match.Status, match.ScheduledTime, match.StartTime, match.StartDelta)
	if err != nil {
		return err
	}
	for _, p := range match.Participants {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO participants (id, match_id, table_id, team_id) VALUES (?, ?, ?, ?)`,
			p.ID, match.ID, p.TableID, p.TeamID)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SetMatchStatus writes the match lifecycle fields
func (r *Repository) SetMatchStatus(ctx context.Context, divisionID, matchID string, status models.Status, startTime *time.Time, startDelta int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE matches SET status = ?, start_time = ?, start_delta = ?
		WHERE division_id = ? AND id = ?`,
		status, startTime, startDelta, divisionID, matchID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SetMatchScheduledTime moves a match in the schedule
func (r *Repository) SetMatchScheduledTime(ctx context.Context, divisionID, matchID string, scheduledTime time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE matches SET scheduled_time = ? WHERE division_id = ? AND id = ?`,
		scheduledTime, divisionID, matchID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SetParticipantTeam assigns a team (or NULL) to one match seat
func (r *Repository) SetParticipantTeam(ctx context.Context, divisionID, matchID, participantID string, teamID *string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE participants SET team_id = ?
		WHERE id = ? AND match_id IN (SELECT id FROM matches WHERE division_id = ? AND id = ?)`,
		teamID, participantID, divisionID, matchID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SwapParticipantTeams exchanges the teams of two seats of one match in a
// single transaction
func (r *Repository) SwapParticipantTeams(ctx context.Context, divisionID, matchID, participantA, participantB string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	teamA, err := participantTeam(ctx, tx, divisionID, matchID, participantA)
	if err != nil {
		return err
	}
	teamB, err := participantTeam(ctx, tx, divisionID, matchID, participantB)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE participants SET team_id = ? WHERE id = ?`, teamB, participantA); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE participants SET team_id = ? WHERE id = ?`, teamA, participantB); err != nil {
		return err
	}
	return tx.Commit()
}

func participantTeam(ctx context.Context, tx *sql.Tx, divisionID, matchID, participantID string) (sql.NullString, error) {
	var teamID sql.NullString
	err := tx.QueryRowContext(ctx, `
		SELECT p.team_id FROM participants p
		JOIN matches m ON m.id = p.match_id
		WHERE p.id = ? AND m.id = ? AND m.division_id = ?`,
		participantID, matchID, divisionID).Scan(&teamID)
	if err == sql.ErrNoRows {
		return teamID, ErrNotFound
	}
	return teamID, err
}

// ==================== Judging Methods ====================

// ListSessions returns the judging sessions of a division with their
// rubrics, in schedule order
func (r *Repository) ListSessions(ctx context.Context, divisionID string) ([]models.JudgingSession, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, number, room_id, status, scheduled_time, start_time, start_delta, team_id
		FROM judging_sessions WHERE division_id = ? ORDER BY scheduled_time, number`, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.JudgingSession
	index := make(map[string]int)
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		index[sess.ID] = len(sessions)
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rrows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.session_id, r.category, r.status
		FROM rubrics r
		JOIN judging_sessions s ON s.id = r.session_id
		WHERE s.division_id = ?
		ORDER BY r.category`, divisionID)
	if err != nil {
		return nil, err
	}
	defer rrows.Close()

	for rrows.Next() {
		var rub models.Rubric
		var sessionID string
		if err := rrows.Scan(&rub.ID, &sessionID, &rub.Category, &rub.Status); err != nil {
			return nil, err
		}
		if i, ok := index[sessionID]; ok {
			sessions[i].Rubrics = append(sessions[i].Rubrics, rub)
		}
	}
	return sessions, rrows.Err()
}

// GetSession retrieves one judging session of a division with its rubrics
func (r *Repository) GetSession(ctx context.Context, divisionID, id string) (*models.JudgingSession, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, number, room_id, status, scheduled_time, start_time, start_delta, team_id
		FROM judging_sessions WHERE division_id = ? AND id = ?`, divisionID, id)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, status FROM rubrics WHERE session_id = ? ORDER BY category`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rub models.Rubric
		if err := rows.Scan(&rub.ID, &rub.Category, &rub.Status); err != nil {
			return nil, err
		}
		sess.Rubrics = append(sess.Rubrics, rub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &sess, nil
}

// CreateSession inserts a judging session and its rubrics
func (r *Repository) CreateSession(ctx context.Context, divisionID string, session models.JudgingSession) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO judging_sessions (id, division_id, number, room_id, status, scheduled_time, start_time, start_delta, team_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, divisionID, session.Number, session.RoomID, session.Status,
		session.ScheduledTime, session.StartTime, session.StartDelta, session.TeamID)
	if err != nil {
		return err
	}
	for _, rub := range session.Rubrics {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO rubrics (id, session_id, category, status) VALUES (?, ?, ?, ?)`,
			rub.ID, session.ID, rub.Category, rub.Status)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SetSessionStatus writes the session lifecycle fields
func (r *Repository) SetSessionStatus(ctx context.Context, divisionID, sessionID string, status models.Status, startTime *time.Time, startDelta int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE judging_sessions SET status = ?, start_time = ?, start_delta = ?
		WHERE division_id = ? AND id = ?`,
		status, startTime, startDelta, divisionID, sessionID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SetSessionScheduledTime moves a judging session to a new schedule time
func (r *Repository) SetSessionScheduledTime(ctx context.Context, divisionID, sessionID string, scheduledTime time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE judging_sessions SET scheduled_time = ? WHERE division_id = ? AND id = ?`,
		scheduledTime, divisionID, sessionID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SetSessionTeam assigns a team (or NULL) to a judging session
func (r *Repository) SetSessionTeam(ctx context.Context, divisionID, sessionID string, teamID *string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE judging_sessions SET team_id = ? WHERE division_id = ? AND id = ?`,
		teamID, divisionID, sessionID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// SwapSessionTeams exchanges the teams of two judging sessions in a single
// transaction
func (r *Repository) SwapSessionTeams(ctx context.Context, divisionID, sessionA, sessionB string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	teamA, err := sessionTeam(ctx, tx, divisionID, sessionA)
	if err != nil {
		return err
	}
	teamB, err := sessionTeam(ctx, tx, divisionID, sessionB)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE judging_sessions SET team_id = ? WHERE id = ?`, teamB, sessionA); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE judging_sessions SET team_id = ? WHERE id = ?`, teamA, sessionB); err != nil {
		return err
	}
	return tx.Commit()
}

func sessionTeam(ctx context.Context, tx *sql.Tx, divisionID, sessionID string) (sql.NullString, error) {
	var teamID sql.NullString
	err := tx.QueryRowContext(ctx,
		`SELECT team_id FROM judging_sessions WHERE division_id = ? AND id = ?`,
		divisionID, sessionID).Scan(&teamID)
	if err == sql.ErrNoRows {
		return teamID, ErrNotFound
	}
	return teamID, err
}

// SetRubricStatus writes a rubric's editing status
func (r *Repository) SetRubricStatus(ctx context.Context, divisionID, rubricID string, status models.RubricStatus) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE rubrics SET status = ?
		WHERE id = ? AND session_id IN (SELECT id FROM judging_sessions WHERE division_id = ?)`,
		status, rubricID, divisionID)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ListDeliberations returns the award deliberations of a division
func (r *Repository) ListDeliberations(ctx context.Context, divisionID string) ([]models.Deliberation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, status FROM deliberations WHERE division_id = ? ORDER BY category`, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliberations []models.Deliberation
	for rows.Next() {
		var d models.Deliberation
		if err := rows.Scan(&d.ID, &d.Category, &d.Status); err != nil {
			return nil, err
		}
		deliberations = append(deliberations, d)
	}
	return deliberations, rows.Err()
}

// CreateDeliberation inserts an award deliberation
func (r *Repository) CreateDeliberation(ctx context.Context, divisionID string, d models.Deliberation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO deliberations (id, division_id, category, status) VALUES (?, ?, ?, ?)`,
		d.ID, divisionID, d.Category, d.Status)
	return err
}

// SetDeliberationStatus writes a deliberation's status
func (r *Repository) SetDeliberationStatus(ctx context.Context, divisionID, id string, status models.Status) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE deliberations SET status = ? WHERE division_id = ? AND id = ?`,
		status, divisionID, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ==================== Helpers ====================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (models.Match, error) {
	var m models.Match
	var startTime sql.NullTime
	err := row.Scan(&m.ID, &m.Number, &m.Stage, &m.Round, &m.Status,
		&m.ScheduledTime, &startTime, &m.StartDelta)
	if err != nil {
		return m, err
	}
	if startTime.Valid {
		t := startTime.Time
		m.StartTime = &t
	}
	return m, nil
}

func scanSession(row rowScanner) (models.JudgingSession, error) {
	var sess models.JudgingSession
	var startTime sql.NullTime
	var teamID sql.NullString
	err := row.Scan(&sess.ID, &sess.Number, &sess.RoomID, &sess.Status,
		&sess.ScheduledTime, &startTime, &sess.StartDelta, &teamID)
	if err != nil {
		return sess, err
	}
	if startTime.Valid {
		t := startTime.Time
		sess.StartTime = &t
	}
	if teamID.Valid {
		sess.TeamID = &teamID.String
	}
	return sess, nil
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
