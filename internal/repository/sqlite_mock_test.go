package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// TestListTeams_ScanError tests row scanning error
func TestListTeams_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	// number should be an int, not a string
	rows := sqlmock.NewRows([]string{"id", "number", "name", "affiliation", "city", "registered", "arrived", "disqualified"}).
		AddRow("t1", "not-a-number", "Gear Giants", "", "", false, false, false)

	mock.ExpectQuery("SELECT (.+) FROM teams").WillReturnRows(rows)

	if _, err := repo.ListTeams(ctx, "div1"); err == nil {
		t.Error("expected error from scan failure, got nil")
	}
}

// TestListMatches_QueryError tests query failure propagation
func TestListMatches_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	wantErr := errors.New("disk I/O error")
	mock.ExpectQuery("SELECT (.+) FROM matches").WillReturnError(wantErr)

	if _, err := repo.ListMatches(ctx, "div1"); !errors.Is(err, wantErr) {
		t.Errorf("ListMatches error = %v, want %v", err, wantErr)
	}
}

// TestListMatches_ParticipantQueryError tests failure of the second query
func TestListMatches_ParticipantQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "number", "stage", "round", "status", "scheduled_time", "start_time", "start_delta"})
	mock.ExpectQuery("SELECT (.+) FROM matches").WillReturnRows(rows)

	wantErr := errors.New("disk I/O error")
	mock.ExpectQuery("SELECT (.+) FROM participants").WillReturnError(wantErr)

	if _, err := repo.ListMatches(ctx, "div1"); !errors.Is(err, wantErr) {
		t.Errorf("ListMatches error = %v, want %v", err, wantErr)
	}
}

// TestSetParticipantTeam_ExecError tests exec failure propagation
func TestSetParticipantTeam_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	wantErr := errors.New("database is locked")
	mock.ExpectExec("UPDATE participants").WillReturnError(wantErr)

	if err := repo.SetParticipantTeam(ctx, "div1", "m1", "p1", nil); !errors.Is(err, wantErr) {
		t.Errorf("SetParticipantTeam error = %v, want %v", err, wantErr)
	}
}

// TestSwapParticipantTeams_RollsBackOnFailure tests transaction rollback
func TestSwapParticipantTeams_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	wantErr := errors.New("database is locked")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM participants").
		WillReturnRows(sqlmock.NewRows([]string{"team_id"}).AddRow("t1"))
	mock.ExpectQuery("SELECT (.+) FROM participants").
		WillReturnRows(sqlmock.NewRows([]string{"team_id"}).AddRow("t2"))
	mock.ExpectExec("UPDATE participants").WillReturnError(wantErr)
	mock.ExpectRollback()

	if err := repo.SwapParticipantTeams(ctx, "div1", "m1", "p1", "p2"); !errors.Is(err, wantErr) {
		t.Errorf("SwapParticipantTeams error = %v, want %v", err, wantErr)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// TestNextEventVersion_CommitError tests commit failure propagation
func TestNextEventVersion_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	wantErr := errors.New("disk full")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE divisions").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT event_version FROM divisions").
		WillReturnRows(sqlmock.NewRows([]string{"event_version"}).AddRow(5))
	mock.ExpectCommit().WillReturnError(wantErr)

	if _, err := repo.NextEventVersion(ctx, "div1"); !errors.Is(err, wantErr) {
		t.Errorf("NextEventVersion error = %v, want %v", err, wantErr)
	}
}
