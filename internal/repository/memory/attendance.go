// Package memory provides an in-process attendance store with the same
// contract as the PostgreSQL repository. It backs the service and
// scheduler tests and local runs without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
)

type recordKey struct {
	name string
	date string
}

type attendanceRepository struct {
	mu      sync.RWMutex
	txMu    sync.Mutex
	records map[recordKey]attendance.Attendance
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepository{
		records: make(map[recordKey]attendance.Attendance),
	}
}

func keyFor(name string, date time.Time) recordKey {
	return recordKey{name: name, date: date.Format("2006-01-02")}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyFor(att.StaffName, att.Date)
	if _, exists := r.records[key]; exists {
		return attendance.Attendance{}, attendance.ErrDuplicateSignIn
	}

	if att.ID == "" {
		att.ID = uuid.NewString()
	}
	now := time.Now()
	att.CreatedAt = now
	att.UpdatedAt = now

	r.records[key] = att
	return att, nil
}

// GetByNameAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByNameAndDate(ctx context.Context, staffName string, date time.Time) (*attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	att, ok := r.records[keyFor(staffName, date)]
	if !ok {
		return nil, nil
	}
	copied := att
	return &copied, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyFor(att.StaffName, att.Date)
	existing, ok := r.records[key]
	if !ok || existing.ID != att.ID {
		return attendance.ErrRecordNotFound
	}

	att.CreatedAt = existing.CreatedAt
	att.UpdatedAt = time.Now()
	r.records[key] = att
	return nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := date.Format("2006-01-02")
	var result []attendance.Attendance
	for key, att := range r.records {
		if key.date == day {
			result = append(result, att)
		}
	}

	// Same ordering contract as the SQL repository: check-in ascending.
	sort.Slice(result, func(i, j int) bool {
		left, right := result[i].CheckIn, result[j].CheckIn
		switch {
		case left == nil:
			return right != nil
		case right == nil:
			return false
		default:
			return left.Before(*right)
		}
	})

	return result, nil
}

// WithinTransaction implements attendance.AttendanceRepository. txMu is
// held for the whole of fn so concurrent read-check-update sequences
// cannot interleave; without it two racing sign-outs would both observe
// CheckOut == nil and both write. Individual calls stay guarded by mu.
func (r *attendanceRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(ctx)
}
