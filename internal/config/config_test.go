package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ladder() *ProgressionConfig {
	return &ProgressionConfig{
		ClassLevels: []string{"Class 1", "Class 2", "Class 3"},
	}
}

func TestLevelIndex(t *testing.T) {
	cfg := ladder()
	assert.Equal(t, 0, cfg.LevelIndex("Class 1"))
	assert.Equal(t, 2, cfg.LevelIndex("Class 3"))
	assert.Equal(t, -1, cfg.LevelIndex("Class 9"))
}

func TestNextLevel(t *testing.T) {
	cfg := ladder()
	assert.Equal(t, "Class 2", cfg.NextLevel("Class 1"))
	assert.Equal(t, "Class 3", cfg.NextLevel("Class 2"))

	// 封顶不报错，原样返回
	assert.Equal(t, "Class 3", cfg.NextLevel("Class 3"))
	assert.Equal(t, "unknown", cfg.NextLevel("unknown"))
}

func TestLadderEndpoints(t *testing.T) {
	cfg := ladder()
	assert.Equal(t, "Class 1", cfg.LowestLevel())
	assert.Equal(t, "Class 3", cfg.HighestLevel())
}
