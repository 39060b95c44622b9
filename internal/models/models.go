// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package models holds the persisted entities and their enumerations.
package models

// Segment is a competition track. Admin scopes use the same values.
type Segment string

const (
	SegmentIUPC        Segment = "IUPC"
	SegmentHackathon   Segment = "HACKATHON"
	SegmentDLEnigma2_0 Segment = "DL_ENIGMA_2_0"
)

// AllSegments returns every segment in display order.
func AllSegments() []Segment {
	return []Segment{SegmentIUPC, SegmentHackathon, SegmentDLEnigma2_0}
}

// Valid reports whether s is a known segment.
func (s Segment) Valid() bool {
	switch s {
	case SegmentIUPC, SegmentHackathon, SegmentDLEnigma2_0:
		return true
	}
	return false
}

// AdminStatus is the account state of an admin.
type AdminStatus string

const (
	AdminActive    AdminStatus = "ACTIVE"
	AdminSuspended AdminStatus = "SUSPENDED"
)

func (s AdminStatus) Valid() bool {
	return s == AdminActive || s == AdminSuspended
}

// Standing is a team's final placement.
type Standing string

const (
	StandingNone           Standing = "NONE"
	StandingWinner         Standing = "WINNER"
	StandingFirstRunnerUp  Standing = "FIRST_RUNNER_UP"
	StandingSecondRunnerUp Standing = "SECOND_RUNNER_UP"
)

func (s Standing) Valid() bool {
	switch s {
	case StandingNone, StandingWinner, StandingFirstRunnerUp, StandingSecondRunnerUp:
		return true
	}
	return false
}

// TShirtSize is a member's shirt size.
type TShirtSize string

const (
	TShirtS   TShirtSize = "S"
	TShirtM   TShirtSize = "M"
	TShirtL   TShirtSize = "L"
	TShirtXL  TShirtSize = "XL"
	TShirtXXL TShirtSize = "XXL"
)

func (s TShirtSize) Valid() bool {
	switch s {
	case TShirtS, TShirtM, TShirtL, TShirtXL, TShirtXXL:
		return true
	}
	return false
}

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentSuccess   PaymentStatus = "SUCCESS"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)
