package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 角色常量与学生档案结构体同包共存，枚举值与库里的enum一致
func TestUserRoleValues(t *testing.T) {
	assert.Equal(t, UserRole("student"), RoleStudent)
	assert.Equal(t, UserRole("guardian"), RoleGuardian)
	assert.Equal(t, UserRole("admin"), RoleAdmin)

	var _ Student
	var _ = RoleStudent
}
