package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/pkg/database"
)

// Postgres unique_violation; raised by the (staff_name, date) index when
// two sign-ins race.
const uniqueViolationCode = "23505"

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	if newAttendance.ID == "" {
		newAttendance.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendances (
			id, staff_name, date, check_in, check_out, arrival_status, departure_status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.StaffName,
		newAttendance.Date,
		newAttendance.CheckIn,
		newAttendance.CheckOut,
		newAttendance.ArrivalStatus,
		newAttendance.DepartureStatus,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return attendance.Attendance{}, attendance.ErrDuplicateSignIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByNameAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByNameAndDate(ctx context.Context, staffName string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, staff_name, date, check_in, check_out,
			   arrival_status, departure_status, created_at, updated_at
		FROM attendances
		WHERE staff_name = $1
		  AND date = $2
		LIMIT 1
	`
	// Inside a transaction, lock the row: a concurrent sign-out then
	// blocks here and re-reads the committed check_out instead of
	// overwriting it.
	if inTransaction(ctx) {
		query += " FOR UPDATE"
	}

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, staffName, dateOnly(date)).Scan(
		&att.ID, &att.StaffName, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.ArrivalStatus, &att.DepartureStatus, &att.CreatedAt, &att.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by name and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = $1,
			arrival_status = $2,
			departure_status = $3,
			updated_at = $4
		WHERE id = $5
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		att.CheckOut,
		att.ArrivalStatus,
		att.DepartureStatus,
		time.Now(),
		att.ID,
	).Scan(&updatedID)

	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}

	return nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, staff_name, date, check_in, check_out,
			   arrival_status, departure_status, created_at, updated_at
		FROM attendances
		WHERE date = $1
		ORDER BY check_in ASC
	`

	rows, err := q.Query(ctx, query, dateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.StaffName, &att.Date, &att.CheckIn, &att.CheckOut,
			&att.ArrivalStatus, &att.DepartureStatus, &att.CreatedAt, &att.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendances: %w", err)
	}

	return attendances, nil
}

// WithinTransaction implements attendance.AttendanceRepository. Repository
// calls made with the ctx passed to fn run on the same transaction.
func (a *attendanceRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		return fn(ContextWithTx(ctx, tx))
	})
}

// dateOnly truncates a timestamp to its calendar day for the DATE column.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
