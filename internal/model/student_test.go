package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAccessibility(t *testing.T) {
	assert.Equal(t, ProfileBlind, ParseAccessibility("blind"))
	assert.Equal(t, ProfileBlind, ParseAccessibility("Visually Impaired"))
	assert.Equal(t, ProfileDeaf, ParseAccessibility(" Hearing Impaired "))
	assert.Equal(t, ProfileADHD, ParseAccessibility("ADHD"))
	assert.Equal(t, ProfileGeneral, ParseAccessibility("general"))
	assert.Equal(t, ProfileGeneral, ParseAccessibility("something else"))
	assert.Equal(t, ProfileGeneral, ParseAccessibility(""))
}

func TestUintSetAddHas(t *testing.T) {
	var s UintSet
	assert.False(t, s.Has(1))

	s.Add(1)
	s.Add(1)
	assert.True(t, s.Has(1))
	assert.Len(t, s, 1)
}

func TestFailStreakRoundTrip(t *testing.T) {
	track := &SubjectTrack{Subject: SubjectMaths}

	assert.Equal(t, 0, track.FailStreak(5))
	assert.Equal(t, 1, track.RecordFail(5))
	assert.Equal(t, 2, track.RecordFail(5))
	assert.Equal(t, 0, track.FailStreak(6))

	track.ResetFail(5)
	assert.Equal(t, 0, track.FailStreak(5))

	track.RecordFail(5)
	track.RecordFail(6)
	track.ResetAllFails()
	assert.Empty(t, track.FailAttempts)
}

func TestSimplifyForcedScope(t *testing.T) {
	track := &SubjectTrack{Subject: SubjectMaths}
	assert.False(t, track.SimplifyForced())

	track.ActiveIntervention = InterventionSimplify
	track.InterventionSubject = ScopeAll
	assert.True(t, track.SimplifyForced())

	track.InterventionSubject = "maths"
	assert.True(t, track.SimplifyForced())

	track.InterventionSubject = "science"
	assert.False(t, track.SimplifyForced())

	// 重置干预不触发简化
	track.ActiveIntervention = InterventionReset
	track.InterventionSubject = ScopeAll
	assert.False(t, track.SimplifyForced())
}
