package store

import (
	"context"
	"fmt"
	"strconv"
)

// ResultSet is the generic shape of a SQL report: ordered column names and
// stringified rows, ready for console rendering.
type ResultSet struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Bucket CASE expressions shared by the reports. Bounds are lower
// inclusive, upper exclusive, matching the in-memory scales.
const (
	pressureTimingCase = `CASE
        WHEN time_to_pressure < 1.5 THEN 'Immediate (<1.5s)'
        WHEN time_to_pressure < 2.5 THEN 'Quick (1.5-2.5s)'
        WHEN time_to_pressure < 3.5 THEN 'Delayed (2.5-3.5s)'
        ELSE 'Late (>3.5s)'
    END`

	throwTimeCase = `CASE
        WHEN time_to_throw < 2.0 THEN 'Quick (<2.0s)'
        WHEN time_to_throw < 2.5 THEN 'Normal (2.0-2.5s)'
        WHEN time_to_throw < 3.0 THEN 'Extended (2.5-3.0s)'
        ELSE 'Very Long (>3.0s)'
    END`

	distanceCase = `CASE
        WHEN distance < 4 THEN 'Short (<4)'
        WHEN distance < 8 THEN 'Medium (4-8)'
        ELSE 'Long (8+)'
    END`

	scoreDiffCase = `CASE
        WHEN score_diff < -8 THEN 'Trailing big (<-8)'
        WHEN score_diff < 9 THEN 'One score (-8..8)'
        ELSE 'Leading big (9+)'
    END`

	pressureCase = `CASE pressure_applied WHEN 1 THEN 'Pressure' ELSE 'No Pressure' END`
)

// PressureImpact reports completion, yardage and turnover rates with and
// without pressure.
func (s *Store) PressureImpact(ctx context.Context) (*ResultSet, error) {
	return s.query(ctx, "pressure_impact", `
        SELECT `+pressureCase+` AS situation,
               COUNT(*) AS plays,
               ROUND(AVG(completion) * 100, 1) AS completion_pct,
               ROUND(AVG(yards_gained), 1) AS yards_per_attempt,
               ROUND(AVG(sack) * 100, 1) AS sack_pct,
               ROUND(AVG(interception) * 100, 1) AS int_pct
        FROM plays
        GROUP BY pressure_applied
        ORDER BY pressure_applied`)
}

// PressureTimingEffectiveness buckets pressured plays by when the rush
// arrived and measures defensive success per bucket.
func (s *Store) PressureTimingEffectiveness(ctx context.Context) (*ResultSet, error) {
	return s.query(ctx, "pressure_timing", `
        SELECT `+pressureTimingCase+` AS timing,
               COUNT(*) AS pressures,
               ROUND(AVG(1 - completion) * 100, 1) AS success_pct,
               ROUND(AVG(sack) * 100, 1) AS sack_pct,
               ROUND(AVG(yards_gained), 1) AS yards_allowed
        FROM plays
        WHERE pressure_applied = 1
        GROUP BY timing
        ORDER BY MIN(time_to_pressure)`)
}

// AlignmentEffectiveness ranks alignments by sack rate on pressured plays.
func (s *Store) AlignmentEffectiveness(ctx context.Context) (*ResultSet, error) {
	return s.query(ctx, "alignment_effectiveness", `
        SELECT def_alignment,
               COUNT(*) AS pressures,
               ROUND(AVG(sack) * 100, 1) AS sack_pct,
               ROUND(AVG(1 - completion) * 100, 1) AS success_pct,
               ROUND(AVG(interception) * 100, 1) AS int_pct
        FROM plays
        WHERE pressure_applied = 1
        GROUP BY def_alignment
        ORDER BY sack_pct DESC, def_alignment`)
}

// ReleaseTimeCrossTab crosses the release-time bucket with the pressure flag.
func (s *Store) ReleaseTimeCrossTab(ctx context.Context) (*ResultSet, error) {
	return s.query(ctx, "release_time_crosstab", `
        SELECT `+throwTimeCase+` AS release_time,
               `+pressureCase+` AS situation,
               COUNT(*) AS plays,
               ROUND(AVG(completion) * 100, 1) AS completion_pct,
               ROUND(AVG(yards_gained), 1) AS yards_per_attempt
        FROM plays
        GROUP BY release_time, situation
        ORDER BY MIN(time_to_throw), pressure_applied`)
}

// DownDistanceBreakdown summarizes by down and distance bucket.
func (s *Store) DownDistanceBreakdown(ctx context.Context) (*ResultSet, error) {
	return s.query(ctx, "down_distance", `
        SELECT down,
               `+distanceCase+` AS distance_bucket,
               COUNT(*) AS plays,
               ROUND(AVG(completion) * 100, 1) AS completion_pct,
               ROUND(AVG(1 - completion) * 100, 1) AS success_pct,
               ROUND(AVG(yards_gained), 1) AS yards_per_attempt
        FROM plays
        GROUP BY down, distance_bucket
        ORDER BY down, MIN(distance)`)
}

// RushersBreakdown summarizes outcomes by the number of pass rushers.
func (s *Store) RushersBreakdown(ctx context.Context) (*ResultSet, error) {
	return s.query(ctx, "rushers_breakdown", `
        SELECT rushers,
               COUNT(*) AS plays,
               ROUND(AVG(pressure_applied) * 100, 1) AS pressure_pct,
               ROUND(AVG(completion) * 100, 1) AS completion_pct,
               ROUND(AVG(sack) * 100, 1) AS sack_pct,
               ROUND(AVG(yards_gained), 1) AS yards_per_attempt
        FROM plays
        GROUP BY rushers
        ORDER BY rushers`)
}

// YardsPreventedBySituation estimates what pressure takes away per down:
// mean yards without pressure minus mean yards with pressure.
func (s *Store) YardsPreventedBySituation(ctx context.Context) (*ResultSet, error) {
	return s.query(ctx, "yards_prevented", `
        SELECT down,
               COUNT(*) AS plays,
               ROUND(AVG(CASE WHEN pressure_applied = 0 THEN yards_gained END), 1) AS yards_no_pressure,
               ROUND(AVG(CASE WHEN pressure_applied = 1 THEN yards_gained END), 1) AS yards_pressure,
               ROUND(AVG(CASE WHEN pressure_applied = 0 THEN yards_gained END)
                   - AVG(CASE WHEN pressure_applied = 1 THEN yards_gained END), 1) AS yards_prevented
        FROM plays
        GROUP BY down
        ORDER BY down`)
}

// HighValueOpportunities finds quarter/score situations where pressure is
// most disruptive, ignoring cells with 10 plays or fewer.
func (s *Store) HighValueOpportunities(ctx context.Context) (*ResultSet, error) {
	return s.query(ctx, "high_value_opportunities", `
        SELECT quarter,
               `+scoreDiffCase+` AS score_situation,
               COUNT(*) AS pressures,
               ROUND(AVG(1 - completion) * 100, 1) AS success_pct,
               ROUND(AVG(sack) * 100, 1) AS sack_pct,
               ROUND(AVG(yards_gained), 1) AS yards_allowed
        FROM plays
        WHERE pressure_applied = 1
        GROUP BY quarter, score_situation
        HAVING COUNT(*) > 10
        ORDER BY success_pct DESC, quarter`)
}

// Reports runs all eight reports in their canonical order.
func (s *Store) Reports(ctx context.Context) ([]*ResultSet, error) {
	runners := []func(context.Context) (*ResultSet, error){
		s.PressureImpact,
		s.PressureTimingEffectiveness,
		s.AlignmentEffectiveness,
		s.ReleaseTimeCrossTab,
		s.DownDistanceBreakdown,
		s.RushersBreakdown,
		s.YardsPreventedBySituation,
		s.HighValueOpportunities,
	}
	out := make([]*ResultSet, 0, len(runners))
	for _, run := range runners {
		rs, err := run(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, nil
}

func (s *Store) query(ctx context.Context, name, q string) (*ResultSet, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrQuery, name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrQuery, name, err)
	}

	rs := &ResultSet{Name: name, Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrQuery, name, err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = formatValue(v)
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrQuery, name, err)
	}
	return rs, nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "undefined"
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
