package controller

import (
	"encoding/json"
	"inclusive_edu_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 公开注册只产出监护人账号，载荷里塞的角色字段被丢弃
func TestPublicRegistrationIsGuardianOnly(t *testing.T) {
	var req RegisterRequest
	payload := `{"name":"Ada","email":"ada@example.com","password":"secret1","role":"admin"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	user := req.user()
	assert.Equal(t, model.RoleGuardian, user.Role)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
}
