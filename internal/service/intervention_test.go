package service

import (
	"inclusive_edu_backend/internal/model"
	"inclusive_edu_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateScope(t *testing.T) {
	assert.NoError(t, validateScope(model.ScopeAll))
	assert.NoError(t, validateScope("maths"))
	assert.NoError(t, validateScope("science"))
	assert.ErrorIs(t, validateScope("history"), util.ErrUnknownScope)
	assert.ErrorIs(t, validateScope(""), util.ErrUnknownScope)
}

func TestScopeCovers(t *testing.T) {
	assert.True(t, model.ScopeCovers(model.ScopeAll, model.SubjectMaths))
	assert.True(t, model.ScopeCovers("maths", model.SubjectMaths))
	assert.False(t, model.ScopeCovers("maths", model.SubjectScience))
}

// 重复下发同一干预不改变状态
func TestSimplifyInterventionIdempotent(t *testing.T) {
	track := freshTrack("Class 1")
	applyIntervention(track, model.InterventionSimplify, model.ScopeAll)

	before := *track
	applyIntervention(track, model.InterventionSimplify, model.ScopeAll)
	assert.Equal(t, before.ActiveIntervention, track.ActiveIntervention)
	assert.Equal(t, before.InterventionSubject, track.InterventionSubject)
	assert.True(t, track.SimplifyForced())
}

func TestResetInterventionClearsFailsIdempotent(t *testing.T) {
	track := freshTrack("Class 1")
	track.RecordFail(7)
	track.RecordFail(7)
	track.RecordFail(9)

	applyIntervention(track, model.InterventionReset, "maths")
	assert.Equal(t, 0, track.FailStreak(7))
	assert.Equal(t, 0, track.FailStreak(9))
	assert.Equal(t, model.InterventionReset, track.ActiveIntervention)
	assert.False(t, track.SimplifyForced())

	// 再下发一次：状态不变
	before := *track
	applyIntervention(track, model.InterventionReset, "maths")
	assert.Equal(t, before.ActiveIntervention, track.ActiveIntervention)
	assert.Equal(t, before.InterventionSubject, track.InterventionSubject)
	assert.Equal(t, 0, track.FailStreak(7))
}

// 作用域外的轨道不被触碰
func TestInterventionSkipsOutOfScopeTrack(t *testing.T) {
	track := freshTrack("Class 1") // maths轨道
	track.RecordFail(7)

	applyIntervention(track, model.InterventionReset, "science")
	assert.Equal(t, 1, track.FailStreak(7))
	assert.Equal(t, model.InterventionKind(""), track.ActiveIntervention)
}
