package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	in := time.Date(2024, 3, 7, 6, 10, 0, 0, time.UTC)
	created, err := repo.Create(ctx, attendance.Attendance{
		StaffName:     "Jane Doe",
		Date:          day(2024, 3, 7),
		CheckIn:       &in,
		ArrivalStatus: attendance.StatusOnTime,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByNameAndDate(ctx, "Jane Doe", day(2024, 3, 7))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	missing, err := repo.GetByNameAndDate(ctx, "Jane Doe", day(2024, 3, 8))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	rec := attendance.Attendance{StaffName: "Bob", Date: day(2024, 3, 7), ArrivalStatus: attendance.StatusLate}
	_, err := repo.Create(ctx, rec)
	require.NoError(t, err)

	_, err = repo.Create(ctx, rec)
	assert.ErrorIs(t, err, attendance.ErrDuplicateSignIn)
}

func TestUpdateUnknownRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	err := repo.Update(ctx, attendance.Attendance{
		ID:        "nope",
		StaffName: "Ghost",
		Date:      day(2024, 3, 7),
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestListByDateOrderedByCheckIn(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	times := []time.Time{
		time.Date(2024, 3, 7, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 7, 6, 5, 0, 0, time.UTC),
		time.Date(2024, 3, 7, 7, 30, 0, 0, time.UTC),
	}
	names := []string{"Carol", "Alice", "Bob"}
	for i := range times {
		checkIn := times[i]
		_, err := repo.Create(ctx, attendance.Attendance{
			StaffName:     names[i],
			Date:          day(2024, 3, 7),
			CheckIn:       &checkIn,
			ArrivalStatus: attendance.StatusOnTime,
		})
		require.NoError(t, err)
	}

	listed, err := repo.ListByDate(ctx, day(2024, 3, 7))
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "Alice", listed[0].StaffName)
	assert.Equal(t, "Bob", listed[1].StaffName)
	assert.Equal(t, "Carol", listed[2].StaffName)
}

func TestConcurrentDuplicateSignIn(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, attendance.Attendance{
				StaffName:     "Jane Doe",
				Date:          day(2024, 3, 7),
				ArrivalStatus: attendance.StatusOnTime,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, attendance.ErrDuplicateSignIn)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestWithinTransactionSerializesReadModifyWrite(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	in := time.Date(2024, 3, 7, 6, 10, 0, 0, time.UTC)
	_, err := repo.Create(ctx, attendance.Attendance{
		StaffName:     "Jane Doe",
		Date:          day(2024, 3, 7),
		CheckIn:       &in,
		ArrivalStatus: attendance.StatusOnTime,
	})
	require.NoError(t, err)

	// Each worker reads, checks, and writes inside one transaction.
	// Serialization means exactly one of them finds check_out unset.
	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out := time.Date(2024, 3, 7, 13, 0, 0, 0, time.UTC)
			errs[i] = repo.WithinTransaction(ctx, func(ctx context.Context) error {
				rec, err := repo.GetByNameAndDate(ctx, "Jane Doe", day(2024, 3, 7))
				if err != nil {
					return err
				}
				if rec.CheckOut != nil {
					return attendance.ErrAlreadySignedOut
				}
				rec.CheckOut = &out
				return repo.Update(ctx, *rec)
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, attendance.ErrAlreadySignedOut)
		}
	}
	assert.Equal(t, 1, succeeded)
}
