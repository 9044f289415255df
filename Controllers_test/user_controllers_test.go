package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smartcanteen/canteen-app/controllers"
	"github.com/smartcanteen/canteen-app/database"
)

func setupUserRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()
	uc := controllers.NewUserController(db)
	r.POST("/login", uc.Login)

	admin := r.Group("/admin", asUser("admin", "admin"))
	admin.POST("/users", uc.CreateUser)
	admin.GET("/users", uc.GetAllUsers)
	admin.PATCH("/users/:username/reset-password", uc.ResetPassword)
	admin.DELETE("/users/:username", uc.DeleteUser)
	return r
}

func TestLoginRoleCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, database.SeedDefaultUsers(db))
	r := setupUserRouter(db)

	// Role arrives capitalized from the login form and still matches
	w := doJSON(t, r, "POST", "/login", map[string]string{
		"username": "admin", "password": "admin123", "role": "Admin",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "admin", data["user_role"])

	// Wrong password fails even with the right role
	w = doJSON(t, r, "POST", "/login", map[string]string{
		"username": "admin", "password": "wrong", "role": "admin",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Right password, wrong role fails
	w = doJSON(t, r, "POST", "/login", map[string]string{
		"username": "admin", "password": "admin123", "role": "student",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, database.SeedDefaultUsers(db))
	r := setupUserRouter(db)

	w := doJSON(t, r, "POST", "/admin/users", map[string]string{
		"username": "student2", "password": "pw12345", "role": "student",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/admin/users", map[string]string{
		"username": "student2", "password": "other", "role": "student",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, "POST", "/admin/users", map[string]string{
		"username": "oddball", "password": "pw", "role": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetPasswordThenLogin(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, database.SeedDefaultUsers(db))
	r := setupUserRouter(db)

	w := doJSON(t, r, "PATCH", "/admin/users/student1/reset-password", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Old password no longer works
	w = doJSON(t, r, "POST", "/login", map[string]string{
		"username": "student1", "password": "stu123", "role": "student",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The well-known reset default does
	w = doJSON(t, r, "POST", "/login", map[string]string{
		"username": "student1", "password": "password123", "role": "student",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteUserProtectsSeededAccounts(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, database.SeedDefaultUsers(db))
	r := setupUserRouter(db)

	for _, name := range []string{"admin", "staff", "student1"} {
		w := doJSON(t, r, "DELETE", "/admin/users/"+name, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, name)
	}

	w := doJSON(t, r, "POST", "/admin/users", map[string]string{
		"username": "temp", "password": "pw12345", "role": "staff",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "DELETE", "/admin/users/temp", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "DELETE", "/admin/users/temp", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
