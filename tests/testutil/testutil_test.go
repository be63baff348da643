package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/medstock/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteDB_Migrated(t *testing.T) {
	db := NewSQLiteDB(t)

	for _, table := range []string{"vendors", "items", "purchase_orders", "deletion_logs", "activity_logs"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
}

func TestNewMockDB(t *testing.T) {
	mockDB := NewMockDB(t)
	mockDB.Mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	var n int
	require.NoError(t, mockDB.DB.Raw("SELECT 1").Scan(&n).Error)
	assert.Equal(t, 1, n)
	mockDB.ExpectationsWereMet(t)
}

func TestAccessToken(t *testing.T) {
	jwtService := NewJWTService()
	token, userID := AccessToken(t, jwtService, "manager")

	claims, err := jwtService.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "manager", claims.Role)
}

func TestNewTestUUID_Deterministic(t *testing.T) {
	assert.Equal(t, NewTestUUID("vendor-a"), NewTestUUID("vendor-a"))
	assert.NotEqual(t, NewTestUUID("vendor-a"), NewTestUUID("vendor-b"))
}

func TestRequireEventually(t *testing.T) {
	start := time.Now()
	RequireEventually(t, func() bool { return time.Since(start) > 20*time.Millisecond },
		time.Second, 5*time.Millisecond)
}

func TestAPIClient(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		require.NoError(t, c.ShouldBindJSON(&body))
		body["auth"] = c.GetHeader("Authorization")
		c.JSON(http.StatusOK, dto.NewSuccessResponse(body))
	})
	engine.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusConflict, dto.NewErrorResponse(dto.ErrCodeConflict, "taken", ""))
	})

	client := NewAPIClient(engine).WithToken("abc")

	w, resp := client.Do(t, http.MethodPost, "/echo", map[string]string{"vendor_code": "ACME"})
	require.Equal(t, http.StatusOK, w.Code)
	data := DataMap(t, resp)
	assert.Equal(t, "ACME", data["vendor_code"])
	assert.Equal(t, "Bearer abc", data["auth"])

	w, resp = client.Do(t, http.MethodGet, "/fail", nil)
	AssertError(t, w, resp, http.StatusConflict, dto.ErrCodeConflict)
}
