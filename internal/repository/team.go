// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"strings"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/vinovest/sqlx"
)

const (
	teamColumns = `t.id, t.unique_id, t.team_name, t.segment, t.institution, t.is_selected,
		t.is_disqualified, t.disqualification_reason, t.standing, t.created_at, t.updated_at`
	memberColumns = `id, team_id, full_name, email, phone, university, tshirt_size, is_team_leader, created_at`
)

// TeamFilter narrows team queries. A nil Segments slice means every segment;
// an empty non-nil slice matches nothing. Limit 0 disables pagination.
type TeamFilter struct {
	Segments   []models.Segment
	IDs        []string
	IsSelected *bool
	Search     string
	Limit      int
	Offset     int
}

func (f TeamFilter) where() (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if f.Segments != nil {
		if len(f.Segments) == 0 {
			return " WHERE 1 = 0", nil
		}
		clauses = append(clauses, "t.segment IN (?)")
		args = append(args, f.Segments)
	}
	if f.IDs != nil {
		if len(f.IDs) == 0 {
			return " WHERE 1 = 0", nil
		}
		clauses = append(clauses, "t.id IN (?)")
		args = append(args, f.IDs)
	}
	if f.IsSelected != nil {
		clauses = append(clauses, "t.is_selected = ?")
		args = append(args, *f.IsSelected)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		clauses = append(clauses, `(LOWER(t.team_name) LIKE ? ESCAPE '\' OR LOWER(t.institution) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// CreateTeam inserts a team and its members atomically.
func (r *Repository) CreateTeam(ctx context.Context, team *models.Team) error {
	if team.ID == "" {
		team.ID = newID()
	}
	if team.UniqueID == "" {
		team.UniqueID = newID()
	}
	if team.Standing == "" {
		team.Standing = models.StandingNone
	}
	now := r.now()
	team.CreatedAt = now
	team.UpdatedAt = now

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO teams (id, unique_id, team_name, segment, institution, is_selected,
				is_disqualified, disqualification_reason, standing, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			team.ID, team.UniqueID, team.TeamName, team.Segment, team.Institution, team.IsSelected,
			team.IsDisqualified, team.DisqualificationReason, team.Standing, team.CreatedAt, team.UpdatedAt,
		)
		if err != nil {
			return wrapError(err)
		}

		for i := range team.Members {
			m := &team.Members[i]
			if m.ID == "" {
				m.ID = newID()
			}
			m.TeamID = team.ID
			m.CreatedAt = now
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO members (`+memberColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				m.ID, m.TeamID, m.FullName, m.Email, m.Phone, m.University, m.TShirtSize, m.IsTeamLeader, m.CreatedAt,
			); err != nil {
				return wrapError(err)
			}
		}
		return nil
	})
}

// ListTeams returns the teams matching f, newest first, each with its
// members and latest payment, together with the unpaginated total.
func (r *Repository) ListTeams(ctx context.Context, f TeamFilter) ([]models.Team, int64, error) {
	where, args := f.where()

	total, err := r.countTeams(ctx, where, args)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + teamColumns + ` FROM teams t` + where + ` ORDER BY t.created_at DESC, t.rowid DESC`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}
	query, args, err = r.expand(query, args)
	if err != nil {
		return nil, 0, err
	}

	teams := []models.Team{}
	if err := r.db.SelectContext(ctx, &teams, query, args...); err != nil {
		return nil, 0, err
	}
	if err := r.loadRelations(ctx, teams, true); err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *Repository) countTeams(ctx context.Context, where string, args []any) (int64, error) {
	query, args, err := r.expand(`SELECT count(*) FROM teams t`+where, args)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, err
	}
	return total, nil
}

// expand rewrites IN (?) placeholders for slice arguments.
func (r *Repository) expand(query string, args []any) (string, []any, error) {
	if len(args) == 0 {
		return query, args, nil
	}
	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, err
	}
	return r.db.Rebind(query), args, nil
}

// loadRelations attaches members and payments to teams. With latestOnly
// each team keeps only its newest payment.
func (r *Repository) loadRelations(ctx context.Context, teams []models.Team, latestOnly bool) error {
	if len(teams) == 0 {
		return nil
	}
	ids := make([]string, len(teams))
	index := make(map[string]int, len(teams))
	for i := range teams {
		ids[i] = teams[i].ID
		index[teams[i].ID] = i
		teams[i].Members = []models.Member{}
		teams[i].Payments = []models.Payment{}
	}

	query, args, err := r.expand(`SELECT `+memberColumns+` FROM members WHERE team_id IN (?) ORDER BY rowid`, []any{ids})
	if err != nil {
		return err
	}
	var members []models.Member
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		return err
	}
	for _, m := range members {
		i := index[m.TeamID]
		teams[i].Members = append(teams[i].Members, m)
	}

	query, args, err = r.expand(`SELECT `+paymentColumns+` FROM payments WHERE team_id IN (?)
		ORDER BY created_at DESC, rowid DESC`, []any{ids})
	if err != nil {
		return err
	}
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return err
	}
	for _, p := range payments {
		i := index[p.TeamID]
		if latestOnly && len(teams[i].Payments) > 0 {
			continue
		}
		teams[i].Payments = append(teams[i].Payments, p)
	}
	return nil
}

// GetTeamByID retrieves a team with its members and all payments.
func (r *Repository) GetTeamByID(ctx context.Context, id string) (*models.Team, error) {
	return r.getTeam(ctx, `SELECT `+teamColumns+` FROM teams t WHERE t.id = ?`, id)
}

// GetTeamByUniqueID retrieves a team by its public identifier.
func (r *Repository) GetTeamByUniqueID(ctx context.Context, uniqueID string) (*models.Team, error) {
	return r.getTeam(ctx, `SELECT `+teamColumns+` FROM teams t WHERE t.unique_id = ?`, uniqueID)
}

func (r *Repository) getTeam(ctx context.Context, query string, arg any) (*models.Team, error) {
	var team models.Team
	if err := r.db.GetContext(ctx, &team, query, arg); err != nil {
		return nil, wrapError(err)
	}
	teams := []models.Team{team}
	if err := r.loadRelations(ctx, teams, false); err != nil {
		return nil, err
	}
	return &teams[0], nil
}

// SetTeamSelection marks a team as selected or not.
func (r *Repository) SetTeamSelection(ctx context.Context, id string, selected bool) (*models.Team, error) {
	return r.updateTeam(ctx, id, `is_selected = ?`, selected)
}

// SetTeamDisqualification sets the disqualification flag. The reason is
// cleared when the team is requalified.
func (r *Repository) SetTeamDisqualification(ctx context.Context, id string, disqualified bool, reason *string) (*models.Team, error) {
	if !disqualified {
		reason = nil
	}
	return r.updateTeam(ctx, id, `is_disqualified = ?, disqualification_reason = ?`, disqualified, reason)
}

// SetTeamStanding records a team's final placement.
func (r *Repository) SetTeamStanding(ctx context.Context, id string, standing models.Standing) (*models.Team, error) {
	return r.updateTeam(ctx, id, `standing = ?`, standing)
}

func (r *Repository) updateTeam(ctx context.Context, id, set string, args ...any) (*models.Team, error) {
	args = append(args, r.now(), id)
	res, err := r.db.ExecContext(ctx, `UPDATE teams SET `+set+`, updated_at = ? WHERE id = ?`, args...)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.GetTeamByID(ctx, id)
}

// DeleteTeam removes a team with its members and payments.
func (r *Repository) DeleteTeam(ctx context.Context, id string) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE team_id = ?`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM members WHERE team_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return requireAffected(res)
	})
}

// GetMemberByID retrieves a single member.
func (r *Repository) GetMemberByID(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	if err := r.db.GetContext(ctx, &member, `SELECT `+memberColumns+` FROM members WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &member, nil
}

// TeamStats aggregates dashboard figures over the given segments.
type TeamStats struct {
	TotalTeams    int64
	SelectedTeams int64
	TotalRevenue  int64
	BySegment     map[models.Segment]int64
}

// GetTeamStats computes dashboard figures. Segments follows TeamFilter rules.
func (r *Repository) GetTeamStats(ctx context.Context, segments []models.Segment) (*TeamStats, error) {
	stats := &TeamStats{BySegment: make(map[models.Segment]int64)}
	for _, s := range models.AllSegments() {
		stats.BySegment[s] = 0
	}
	where, args := TeamFilter{Segments: segments}.where()

	query, qargs, err := r.expand(`SELECT count(*) AS total, COALESCE(SUM(t.is_selected), 0) AS selected
		FROM teams t`+where, args)
	if err != nil {
		return nil, err
	}
	var totals struct {
		Total    int64 `db:"total"`
		Selected int64 `db:"selected"`
	}
	if err := r.db.GetContext(ctx, &totals, query, qargs...); err != nil {
		return nil, err
	}
	stats.TotalTeams = totals.Total
	stats.SelectedTeams = totals.Selected

	query, qargs, err = r.expand(`SELECT t.segment AS segment, count(*) AS count FROM teams t`+where+
		` GROUP BY t.segment`, args)
	if err != nil {
		return nil, err
	}
	var counts []struct {
		Segment models.Segment `db:"segment"`
		Count   int64          `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &counts, query, qargs...); err != nil {
		return nil, err
	}
	for _, c := range counts {
		stats.BySegment[c.Segment] = c.Count
	}

	revenueWhere := " WHERE p.status = ?"
	revenueArgs := []any{models.PaymentSuccess}
	if where != "" {
		revenueWhere += " AND " + strings.TrimPrefix(where, " WHERE ")
		revenueArgs = append(revenueArgs, args...)
	}
	query, qargs, err = r.expand(`SELECT COALESCE(SUM(p.amount), 0) FROM payments p
		JOIN teams t ON t.id = p.team_id`+revenueWhere, revenueArgs)
	if err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &stats.TotalRevenue, query, qargs...); err != nil {
		return nil, err
	}
	return stats, nil
}
