package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/meliora-health/caregiver-match/pkg/core/model"
)

// GetCaregivers retrieves all caregivers with their locations as WKT
func (d *DB) GetCaregivers(ctx context.Context) ([]*model.Caregiver, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, skills, prefers_nights, prefers_weekends, ST_AsText(location::geometry)
		FROM caregiver
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query caregivers: %w", err)
	}
	defer rows.Close()

	var caregivers []*model.Caregiver
	for rows.Next() {
		var cg model.Caregiver
		var skills []int32
		var wkt string
		if err := rows.Scan(&cg.ID, &cg.Name, &skills, &cg.PrefersNights, &cg.PrefersWeekends, &wkt); err != nil {
			return nil, fmt.Errorf("failed to scan caregiver: %w", err)
		}

		cg.Skills = toIntSlice(skills)
		cg.Location, err = parsePoint(wkt)
		if err != nil {
			return nil, fmt.Errorf("caregiver %d has malformed location: %w", cg.ID, err)
		}

		caregivers = append(caregivers, &cg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating caregivers: %w", err)
	}

	return caregivers, nil
}

// GetOpenShifts retrieves all shifts without an assigned caregiver, joined to
// the patient's location as the work site
func (d *DB) GetOpenShifts(ctx context.Context) ([]*model.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT s.id, s.patient_id, s.starts_at, s.ends_at, s.required_skills, ST_AsText(p.location::geometry)
		FROM shift s
		JOIN patient p ON p.id = s.patient_id
		WHERE s.assigned_caregiver_id IS NULL
		ORDER BY s.starts_at, s.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query open shifts: %w", err)
	}
	defer rows.Close()

	var shifts []*model.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// GetShift retrieves a single shift by ID
func (d *DB) GetShift(ctx context.Context, shiftID int) (*model.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT s.id, s.patient_id, s.starts_at, s.ends_at, s.required_skills, ST_AsText(p.location::geometry)
		FROM shift s
		JOIN patient p ON p.id = s.patient_id
		WHERE s.id = $1
	`, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift %d: %w", shiftID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query shift %d: %w", shiftID, err)
		}
		return nil, fmt.Errorf("shift %d not found", shiftID)
	}

	return scanShift(rows)
}

// SaveAssignments writes the assigned caregiver IDs back to their shifts in a
// single transaction
func (d *DB) SaveAssignments(ctx context.Context, byShift map[int]int) error {
	if len(byShift) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Fixed update order keeps concurrent writers from deadlocking
	shiftIDs := make([]int, 0, len(byShift))
	for shiftID := range byShift {
		shiftIDs = append(shiftIDs, shiftID)
	}
	sort.Ints(shiftIDs)

	for _, shiftID := range shiftIDs {
		_, err := tx.Exec(ctx, `
			UPDATE shift SET assigned_caregiver_id = $1 WHERE id = $2
		`, byShift[shiftID], shiftID)
		if err != nil {
			return fmt.Errorf("failed to assign shift %d: %w", shiftID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShift(row rowScanner) (*model.Shift, error) {
	var shift model.Shift
	var needs []int32
	var wkt string
	if err := row.Scan(&shift.ID, &shift.PatientID, &shift.StartsAt, &shift.EndsAt, &needs, &wkt); err != nil {
		return nil, fmt.Errorf("failed to scan shift: %w", err)
	}

	shift.RequiredSkills = toIntSlice(needs)

	location, err := parsePoint(wkt)
	if err != nil {
		return nil, fmt.Errorf("shift %d has malformed location: %w", shift.ID, err)
	}
	shift.Location = location

	return &shift, nil
}

// parsePoint parses a WKT point, which stores longitude before latitude
func parsePoint(wkt string) (model.Point, error) {
	var lon, lat float64
	if _, err := fmt.Sscanf(wkt, "POINT(%f %f)", &lon, &lat); err != nil {
		return model.Point{}, fmt.Errorf("cannot parse WKT point %q: %w", wkt, err)
	}
	return model.Point{Latitude: lat, Longitude: lon}, nil
}

func toIntSlice(values []int32) []int {
	result := make([]int, len(values))
	for i, v := range values {
		result[i] = int(v)
	}
	return result
}
