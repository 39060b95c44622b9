// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"slices"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
)

// HasScope reports whether p holds segment as a scope.
func (p *Principal) HasScope(segment models.Segment) bool {
	return slices.Contains(p.Scopes, segment)
}

// CanAccess reports whether p may act on data of segment.
// Super-admins may access everything.
func CanAccess(p *Principal, segment models.Segment) bool {
	if p == nil {
		return false
	}
	return p.IsSuperAdmin || p.HasScope(segment)
}

// CanAccessAny reports whether p is a super-admin or shares at least one
// scope with allowed.
func CanAccessAny(p *Principal, allowed []models.Segment) bool {
	if p == nil {
		return false
	}
	if p.IsSuperAdmin {
		return true
	}
	for _, s := range allowed {
		if p.HasScope(s) {
			return true
		}
	}
	return false
}

// AllowedSegments builds the segment filter for a query issued by p.
//
// Super-admins get nil (unrestricted) without a requested segment, or just
// the requested one. Regular admins get their scopes, intersected with the
// requested segment when one is given; the result may be empty, which
// matches nothing.
func AllowedSegments(p *Principal, requested *models.Segment) []models.Segment {
	if p != nil && p.IsSuperAdmin {
		if requested == nil {
			return nil
		}
		return []models.Segment{*requested}
	}

	allowed := []models.Segment{}
	if p == nil {
		return allowed
	}
	for _, s := range p.Scopes {
		if requested != nil && s != *requested {
			continue
		}
		if !slices.Contains(allowed, s) {
			allowed = append(allowed, s)
		}
	}
	return allowed
}
