package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"tablebook/src/types"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
)

type TestSuite struct {
	suite.Suite
}

func (s *TestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("resdate", reservationDateValidatorFunc)
		v.RegisterValidation("restime", reservationTimeValidatorFunc)
		v.RegisterValidation("futuredate", futureDateValidatorFunc)
	}
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Setenv("MAINTENANCE_MODE", "false")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestAuthorizedRoutesRejectMissingToken() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	apiv1.Use(func(ctx *gin.Context) {
		bearerToken := ctx.Request.Header.Get("Authorization")
		if !strings.HasPrefix(bearerToken, "Bearer") {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
	})
	bookingHandlers(apiv1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/bookings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 401, w.Code)
}

func (s *TestSuite) TestBookingRequestValidation() {
	router := setupRouter()
	router.POST("/validate", func(ctx *gin.Context) {
		var body types.CreateBookingRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.Status(http.StatusOK)
	})

	post := func(body map[string]any) *httptest.ResponseRecorder {
		sbody, _ := json.Marshal(&body)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/validate", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)
		return w
	}

	customer := map[string]any{
		"name":  "Jordan Reyes",
		"email": "jordan@example.com",
	}

	s.Run("Should accept a well-formed request", func() {
		w := post(map[string]any{
			"date":     "2026-09-12",
			"time":     "19:00",
			"guests":   2,
			"customer": customer,
		})
		assert.Equal(s.T(), 200, w.Code)
	})

	s.Run("Should reject a malformed date", func() {
		w := post(map[string]any{
			"date":     "12.09.2026",
			"time":     "19:00",
			"guests":   2,
			"customer": customer,
		})
		assert.Equal(s.T(), 400, w.Code)
		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		errMsg := gjson.Get(string(rbytes), "error").String()
		assert.Contains(s.T(), errMsg, "resdate")
	})

	s.Run("Should reject a malformed time", func() {
		w := post(map[string]any{
			"date":     "2026-09-12",
			"time":     "7pm",
			"guests":   2,
			"customer": customer,
		})
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject zero guests", func() {
		w := post(map[string]any{
			"date":     "2026-09-12",
			"time":     "19:00",
			"guests":   0,
			"customer": customer,
		})
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a missing customer email", func() {
		w := post(map[string]any{
			"date":   "2026-09-12",
			"time":   "19:00",
			"guests": 2,
			"customer": map[string]any{
				"name": "Jordan Reyes",
			},
		})
		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestOpeningHoursValidation() {
	router := setupRouter()
	router.PUT("/validate", func(ctx *gin.Context) {
		var body types.SetOpeningHoursRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.Status(http.StatusOK)
	})

	put := func(body map[string]any) *httptest.ResponseRecorder {
		sbody, _ := json.Marshal(&body)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/validate", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)
		return w
	}

	s.Run("Should accept a weekly schedule", func() {
		w := put(map[string]any{
			"hours": []map[string]any{
				{"day_of_week": 0, "opens_at": "10:00", "closes_at": "22:00"},
				{"day_of_week": 5, "opens_at": "10:00", "closes_at": "23:30"},
			},
		})
		assert.Equal(s.T(), 200, w.Code)
	})

	s.Run("Should reject an out-of-range weekday", func() {
		w := put(map[string]any{
			"hours": []map[string]any{
				{"day_of_week": 7, "opens_at": "10:00", "closes_at": "22:00"},
			},
		})
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a bad clock value", func() {
		w := put(map[string]any{
			"hours": []map[string]any{
				{"day_of_week": 1, "opens_at": "25:00", "closes_at": "22:00"},
			},
		})
		assert.Equal(s.T(), 400, w.Code)
	})
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
