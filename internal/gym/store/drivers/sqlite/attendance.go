package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/gymtab/internal/gym/domain"
	"github.com/aussiebroadwan/gymtab/internal/gym/store"
)

const attendanceColumns = `id, member_id, check_in_time, check_in_day, method`

type attendanceRepo struct {
	db dbtx
}

func scanAttendance(row scanner) (domain.AttendanceRecord, error) {
	var (
		rec    domain.AttendanceRecord
		day    string
		method string
	)
	if err := row.Scan(&rec.ID, &rec.MemberID, ts(&rec.CheckInTime), &day, &method); err != nil {
		return domain.AttendanceRecord{}, err
	}
	d, err := time.Parse(dateLayout, day)
	if err != nil {
		return domain.AttendanceRecord{}, err
	}
	rec.Day = d
	rec.Method = domain.CheckInMethod(method)
	return rec, nil
}

func collectAttendance(rows *sql.Rows) ([]domain.AttendanceRecord, error) {
	defer rows.Close()

	var out []domain.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *attendanceRepo) Get(ctx context.Context, id string) (domain.AttendanceRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance_records WHERE id = ?`, id)
	rec, err := scanAttendance(row)
	if err != nil {
		return domain.AttendanceRecord{}, mapNotFound(err)
	}
	return rec, nil
}

func (r *attendanceRepo) Create(ctx context.Context, rec domain.AttendanceRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attendance_records (`+attendanceColumns+`)
		VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.MemberID, timestamp(rec.CheckInTime), formatDate(rec.Day), string(rec.Method),
	)
	return mapWriteErr(err)
}

func (r *attendanceRepo) List(ctx context.Context, opts store.ListOptions) ([]domain.AttendanceRecord, error) {
	after, limit := pageArgs(opts)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance_records
		WHERE id > ?
		ORDER BY id
		LIMIT ?`, after, limit)
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}

func (r *attendanceRepo) ListByMember(
	ctx context.Context,
	memberID string,
	opts store.ListOptions,
) ([]domain.AttendanceRecord, error) {
	after, limit := pageArgs(opts)
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance_records
		WHERE member_id = ? AND id > ?
		ORDER BY id
		LIMIT ?`, memberID, after, limit)
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}
