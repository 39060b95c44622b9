// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth_test

import (
	"context"
	"testing"

	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/auth"
	"github.com/Uday2027/SUST-CSE-Carnival-2026-Backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func segment(s models.Segment) *models.Segment {
	return &s
}

func TestCanAccess(t *testing.T) {
	super := &auth.Principal{IsSuperAdmin: true}
	iupc := &auth.Principal{Scopes: []models.Segment{models.SegmentIUPC}}

	assert.True(t, auth.CanAccess(super, models.SegmentHackathon))
	assert.True(t, auth.CanAccess(iupc, models.SegmentIUPC))
	assert.False(t, auth.CanAccess(iupc, models.SegmentHackathon))
	assert.False(t, auth.CanAccess(nil, models.SegmentIUPC))
}

func TestCanAccessAny(t *testing.T) {
	iupc := &auth.Principal{Scopes: []models.Segment{models.SegmentIUPC}}

	assert.True(t, auth.CanAccessAny(iupc, []models.Segment{models.SegmentHackathon, models.SegmentIUPC}))
	assert.False(t, auth.CanAccessAny(iupc, []models.Segment{models.SegmentHackathon}))
	assert.False(t, auth.CanAccessAny(iupc, nil))
	assert.True(t, auth.CanAccessAny(&auth.Principal{IsSuperAdmin: true}, nil))
}

func TestAllowedSegments(t *testing.T) {
	super := &auth.Principal{IsSuperAdmin: true}
	multi := &auth.Principal{Scopes: []models.Segment{models.SegmentIUPC, models.SegmentHackathon}}

	tests := []struct {
		name      string
		principal *auth.Principal
		requested *models.Segment
		want      []models.Segment
	}{
		{"super unrestricted", super, nil, nil},
		{"super requested", super, segment(models.SegmentDLEnigma2_0), []models.Segment{models.SegmentDLEnigma2_0}},
		{"scoped all", multi, nil, []models.Segment{models.SegmentIUPC, models.SegmentHackathon}},
		{"scoped intersect", multi, segment(models.SegmentHackathon), []models.Segment{models.SegmentHackathon}},
		{"scoped outside", multi, segment(models.SegmentDLEnigma2_0), []models.Segment{}},
		{"no principal", nil, nil, []models.Segment{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.AllowedSegments(tt.principal, tt.requested))
		})
	}
}

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, auth.GetPrincipal(ctx))

	p := &auth.Principal{AdminID: "a1"}
	ctx = auth.WithPrincipal(ctx, p)

	assert.Same(t, p, auth.GetPrincipal(ctx))
}
