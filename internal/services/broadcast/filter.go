// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package broadcast

import (
	"encoding/json"
	"strings"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/apperr"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
)

// FilterType names a recipient selection.
type FilterType string

const (
	FilterAll        FilterType = "ALL"
	FilterSegment    FilterType = "SEGMENT"
	FilterSelected   FilterType = "SELECTED"
	FilterCustom     FilterType = "CUSTOM"
	FilterTeam       FilterType = "TEAM"
	FilterMember     FilterType = "MEMBER"
	FilterIndividual FilterType = "INDIVIDUAL"
)

// Filter selects the recipients of a bulk email. Implementations are the
// *Filter types of this package.
type Filter interface {
	Type() FilterType
	criteria() map[string]any
}

// AllFilter selects every member of every visible team.
type AllFilter struct{}

// SegmentFilter selects the members of one segment.
type SegmentFilter struct{ Segment models.Segment }

// SelectedFilter selects the members of selected teams.
type SelectedFilter struct{}

// CustomFilter selects the members of the listed teams.
type CustomFilter struct{ TeamIDs []string }

// TeamFilter selects the members of one team.
type TeamFilter struct{ TeamID string }

// MemberFilter selects a single member.
type MemberFilter struct{ MemberID string }

// IndividualFilter selects one address that need not belong to a member.
type IndividualFilter struct{ Email string }

func (AllFilter) Type() FilterType        { return FilterAll }
func (SegmentFilter) Type() FilterType    { return FilterSegment }
func (SelectedFilter) Type() FilterType   { return FilterSelected }
func (CustomFilter) Type() FilterType     { return FilterCustom }
func (TeamFilter) Type() FilterType       { return FilterTeam }
func (MemberFilter) Type() FilterType     { return FilterMember }
func (IndividualFilter) Type() FilterType { return FilterIndividual }

func (AllFilter) criteria() map[string]any { return map[string]any{"type": FilterAll} }
func (f SegmentFilter) criteria() map[string]any {
	return map[string]any{"type": FilterSegment, "segment": f.Segment}
}
func (SelectedFilter) criteria() map[string]any { return map[string]any{"type": FilterSelected} }
func (f CustomFilter) criteria() map[string]any {
	return map[string]any{"type": FilterCustom, "teamIds": f.TeamIDs}
}
func (f TeamFilter) criteria() map[string]any {
	return map[string]any{"type": FilterTeam, "teamIds": []string{f.TeamID}}
}
func (f MemberFilter) criteria() map[string]any {
	return map[string]any{"type": FilterMember, "memberId": f.MemberID}
}
func (f IndividualFilter) criteria() map[string]any {
	return map[string]any{"type": FilterIndividual, "customEmail": f.Email}
}

// Criteria encodes f as the JSON stored in the email log.
func Criteria(f Filter) string {
	b, err := json.Marshal(f.criteria())
	if err != nil {
		return "{}"
	}
	return string(b)
}

// FilterInput is the wire form of a filter.
type FilterInput struct {
	Type        FilterType      `json:"type" validate:"required,oneof=ALL SEGMENT SELECTED CUSTOM TEAM MEMBER INDIVIDUAL"`
	Segment     *models.Segment `json:"segment,omitempty"`
	TeamIDs     []string        `json:"teamIds,omitempty"`
	MemberID    string          `json:"memberId,omitempty"`
	CustomEmail string          `json:"customEmail,omitempty" validate:"omitempty,email"`
}

func missing(field, msg string) error {
	return apperr.Validation(msg, apperr.FieldError{Path: "filter." + field, Message: msg})
}

// ParseFilter checks that in carries the fields its type needs and returns
// the matching Filter.
func ParseFilter(in FilterInput) (Filter, error) {
	switch in.Type {
	case FilterAll:
		return AllFilter{}, nil
	case FilterSegment:
		if in.Segment == nil {
			return nil, missing("segment", "Segment is required for SEGMENT filter")
		}
		if !in.Segment.Valid() {
			return nil, missing("segment", "Invalid segment: "+string(*in.Segment))
		}
		return SegmentFilter{Segment: *in.Segment}, nil
	case FilterSelected:
		return SelectedFilter{}, nil
	case FilterCustom:
		if len(in.TeamIDs) == 0 {
			return nil, missing("teamIds", "Team IDs are required for CUSTOM filter")
		}
		return CustomFilter{TeamIDs: in.TeamIDs}, nil
	case FilterTeam:
		if len(in.TeamIDs) == 0 || in.TeamIDs[0] == "" {
			return nil, missing("teamIds", "Team ID is required for TEAM filter")
		}
		return TeamFilter{TeamID: in.TeamIDs[0]}, nil
	case FilterMember:
		if in.MemberID == "" {
			return nil, missing("memberId", "Member ID is required for MEMBER filter")
		}
		return MemberFilter{MemberID: in.MemberID}, nil
	case FilterIndividual:
		address := strings.TrimSpace(in.CustomEmail)
		if address == "" {
			return nil, missing("customEmail", "Custom email is required for INDIVIDUAL filter")
		}
		return IndividualFilter{Email: address}, nil
	default:
		return nil, missing("type", "Invalid filter type: "+string(in.Type))
	}
}
