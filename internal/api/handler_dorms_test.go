package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Input parsing is rejected before the store is ever touched, so these
// routes run against a nil store.
func setupParseOnlyRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	handler := NewHandler(nil, nil, nil)
	r.POST("/dorm/createDormitory", handler.CreateDormitory)
	r.GET("/dorm/getDorm/:dormId", handler.GetDormByID)
	r.GET("/dorm/getAllRoom/:dormId", handler.GetRoomsByDormID)
	r.PUT("/dorm/updateDorm/:dormId", handler.UpdateDorm)
	r.PUT("/contract/moveOut/:contractId", handler.MoveOut)
	return r
}

func TestNonNumericIDsAreBadRequests(t *testing.T) {
	router := setupParseOnlyRouter()

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/dorm/getDorm/abc"},
		{http.MethodGet, "/dorm/getAllRoom/xyz"},
		{http.MethodPut, "/dorm/updateDorm/1.5"},
		{http.MethodPut, "/contract/moveOut/abc"},
	} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(tc.method, tc.path, nil)
		router.ServeHTTP(w, req)
		assert.Equalf(t, http.StatusBadRequest, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCreateDormitoryRejectsMalformedBody(t *testing.T) {
	router := setupParseOnlyRouter()

	for name, body := range map[string]string{
		"empty body":      "",
		"not json":        "not json at all",
		"missing fields":  `{"dorm_name":"Sunrise"}`,
		"wrong item type": `{"dorm_name":"Sunrise","total_floors":2,"rooms_per_floor":["a","b"]}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/dorm/createDormitory", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
