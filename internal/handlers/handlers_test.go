package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/resource-dashboard/internal/constants"
	"github.com/yukikurage/resource-dashboard/internal/database"
	"github.com/yukikurage/resource-dashboard/internal/dto"
	apierrors "github.com/yukikurage/resource-dashboard/internal/errors"
	"github.com/yukikurage/resource-dashboard/internal/middleware"
	"github.com/yukikurage/resource-dashboard/internal/models"
	"github.com/yukikurage/resource-dashboard/internal/repository"
	"github.com/yukikurage/resource-dashboard/internal/services"
	"github.com/yukikurage/resource-dashboard/internal/testutil"
	"github.com/yukikurage/resource-dashboard/internal/utils"
	"gorm.io/gorm"
)

type handlerTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func fixedNow() time.Time {
	return time.Date(2025, time.May, 14, 9, 0, 0, 0, time.UTC)
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, utils.RegisterValidators())

	db := testutil.OpenDB(t)
	database.SetDB(db)

	resourceRepo := repository.NewResourceRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	resourceService := services.NewResourceService(resourceRepo)
	projectService := services.NewProjectService(projectRepo, resourceRepo)

	dashboard := NewDashboardHandler(services.NewDashboardService(resourceRepo, projectRepo), fixedNow)
	resources := NewResourceHandler(resourceService)
	projects := NewProjectHandler(projectService)
	trees := NewTreeHandler(services.NewTreeService(resourceRepo, projectRepo))

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	api := r.Group("/api", middleware.PeriodContext(fixedNow))

	api.GET("/dashboard", middleware.SelectPeriod(fixedNow), dashboard.Home)
	api.GET("/attendance", dashboard.Attendance)
	api.GET("/resources", resources.ListResources)
	api.POST("/resources", resources.CreateResource)
	api.GET("/resources/:id", middleware.RequireResource(resourceService), resources.GetResource)
	api.PUT("/resources/:id", middleware.RequireResource(resourceService), resources.UpdateResource)
	api.DELETE("/resources/:id", middleware.RequireResource(resourceService), resources.DeleteResource)
	api.GET("/projects", projects.ListProjects)
	api.POST("/projects", projects.CreateProject)
	api.GET("/projects/:id", middleware.RequireProject(projectService), projects.GetProject)
	api.PUT("/projects/:id", middleware.RequireProject(projectService), projects.UpdateProject)
	api.GET("/tree/projects", trees.ProjectTree)
	api.GET("/tree/resources", trees.ResourceTree)
	api.GET("/options/projects", projects.ProjectOptions)
	api.GET("/options/resources", trees.ResourceOptions)

	return handlerTestEnv{db: db, router: r}
}

func (env handlerTestEnv) do(t *testing.T, method, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeAPIError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func TestResourceHandler_Create(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/resources?year=2025&month=5", map[string]any{
		"name":        "Alice",
		"present_day": 19.5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created dto.ResourceDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, 2025, created.Year)
	assert.Equal(t, 5, created.Month)
	requireDecimal(t, "156", created.PresentHours)
	require.NotNil(t, created.WorkingDays)
	requireDecimal(t, "22", *created.WorkingDays)
}

func TestResourceHandler_CreateDuplicate(t *testing.T) {
	env := setupHandlerTestEnv(t)
	testutil.CreateResource(t, env.db, "Alice", 2025, 5, 20)

	w := env.do(t, http.MethodPost, "/api/resources?year=2025&month=5", map[string]any{"name": "Alice"})
	require.Equal(t, http.StatusConflict, w.Code)

	apiErr := decodeAPIError(t, w)
	assert.Equal(t, apierrors.ErrCodeAlreadyExists, apiErr.Code)
	assert.Equal(t, DuplicateResourceMessage, apiErr.Message)

	var count int64
	env.db.Model(&models.Resource{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestResourceHandler_CreateValidation(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/resources?year=2025&month=5", map[string]any{"present_day": 3})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	apiErr := decodeAPIError(t, w)
	assert.Equal(t, apierrors.ErrCodeValidationFailed, apiErr.Code)
	assert.Equal(t, map[string]any{"Name": "required"}, apiErr.Details)
}

func TestResourceHandler_GetUpdateDelete(t *testing.T) {
	env := setupHandlerTestEnv(t)
	alice := testutil.CreateResource(t, env.db, "Alice", 2025, 5, 20)

	w := env.do(t, http.MethodGet, "/api/resources/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/resources/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPut, "/api/resources/"+itoa(alice.ID), map[string]any{"present_day": "10"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated dto.ResourceDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	requireDecimal(t, "80", updated.PresentHours)

	w = env.do(t, http.MethodDelete, "/api/resources/"+itoa(alice.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/resources/"+itoa(alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched dto.ResourceDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.False(t, fetched.IsActive)

	w = env.do(t, http.MethodGet, "/api/resources", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.ResourceListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Resources)
	assert.Zero(t, list.TotalCount)
}

func TestProjectHandler_CreateAndGet(t *testing.T) {
	env := setupHandlerTestEnv(t)
	alice := testutil.CreateResource(t, env.db, "Alice", 2025, 5, 20)

	w := env.do(t, http.MethodPost, "/api/projects?year=2025&month=5", map[string]any{
		"name":                 "Apollo",
		"type":                 "non_billable",
		"resource_ids":         []uint64{alice.ID},
		"assigned_resource_id": alice.ID,
		"billable_days":        "2.5",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Non-Billable", created.TypeLabel)
	assert.Equal(t, 2025, created.Year)
	requireDecimal(t, "20", created.BillableHours)
	require.NotNil(t, created.AssignedResource)
	assert.Equal(t, "Alice", created.AssignedResource.Name)
	require.Len(t, created.Resources, 1)

	w = env.do(t, http.MethodGet, "/api/projects/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProjectHandler_Validation(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/projects", map[string]any{"name": "Apollo", "type": "research"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	apiErr := decodeAPIError(t, w)
	assert.Equal(t, map[string]any{"Type": "projecttype"}, apiErr.Details)

	w = env.do(t, http.MethodPost, "/api/projects", map[string]any{
		"name":                "Apollo",
		"type":                "billable",
		"point_of_contact_id": 42,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestProjectHandler_ListAndOptions(t *testing.T) {
	env := setupHandlerTestEnv(t)
	testutil.CreateProject(t, env.db, models.Project{Name: "Apollo", Year: 2025, Month: 5})
	testutil.CreateProject(t, env.db, models.Project{Name: "Zeus", Year: 2024, Month: 3, Type: models.ProjectTypeTraining})

	w := env.do(t, http.MethodGet, "/api/projects?year=2024", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.ProjectListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Projects, 1)
	assert.Equal(t, "Zeus", list.Projects[0].Name)
	assert.Equal(t, []int{2024, 2025}, list.Years)
	assert.Equal(t, []int{3, 5}, list.Months)

	w = env.do(t, http.MethodGet, "/api/projects?month=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/options/projects?year=2024&month=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var options struct {
		Projects []dto.ProjectOptionDTO `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &options))
	require.Len(t, options.Projects, 1)
	assert.Equal(t, "Training", options.Projects[0].Label)
}

func TestDashboardHandler_Attendance(t *testing.T) {
	env := setupHandlerTestEnv(t)

	for _, r := range []struct {
		name    string
		present float64
	}{{"Alice", 20}, {"Bob", 18}} {
		resource := testutil.CreateResource(t, env.db, r.name, 2025, 5, r.present)
		require.NoError(t, env.db.Model(&resource).Update("working_days", decimal.NewFromInt(20)).Error)
	}
	testutil.CreateProject(t, env.db, models.Project{
		Name: "Apollo", Year: 2025, Month: 5,
		BillableDays: testutil.Days(30), NonBillableDays: testutil.Days(10),
	})

	w := env.do(t, http.MethodGet, "/api/attendance?year=2025&month=5", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.AttendanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	requireDecimal(t, "40", resp.TotalWorkingDays)
	requireDecimal(t, "95", resp.PresencePercentage)
	requireDecimal(t, "240", resp.ProjectTotals.BillableHours)
	requireDecimal(t, "304", resp.ExpectedHours)
	require.Len(t, resp.ProjectGroups, 1)
	assert.Equal(t, "Billable", resp.ProjectGroups[0].Label)
}

func TestDashboardHandler_Home(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.PeriodDTO{Year: 2025, Month: 5}, resp.Period)
	assert.Len(t, resp.Years, 11)
	assert.Equal(t, "December", resp.Months[11].Name)
}

func TestTreeHandler_ProjectTree(t *testing.T) {
	env := setupHandlerTestEnv(t)
	alice := testutil.CreateResource(t, env.db, "Alice", 2025, 5, 20)
	apollo := testutil.CreateProject(t, env.db, models.Project{
		Name: "Apollo", Year: 2025, Month: 5,
		PointOfContactID: &alice.ID,
	})

	w := env.do(t, http.MethodGet, "/api/tree/projects?year=2025&month=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var nodes []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nodes))
	require.Len(t, nodes, 1)
	assert.Equal(t, "Apollo (Billable)", nodes[0]["text"])

	w = env.do(t, http.MethodGet, "/api/tree/projects?year=2025&month=5&format=text", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "All Projects\n└── Apollo (Billable)\n    └── POC: Alice\n", w.Body.String())

	w = env.do(t, http.MethodGet, "/api/tree/projects?format=text&project_id="+itoa(apollo.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Project: Apollo\n"))

	w = env.do(t, http.MethodGet, "/api/tree/projects?root=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	nodes = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nodes))
	require.Len(t, nodes, 1)
	assert.Equal(t, "All Projects", nodes[0]["text"])

	w = env.do(t, http.MethodGet, "/api/tree/projects?project_id=999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/tree/projects?project_id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTreeHandler_ResourceTree(t *testing.T) {
	env := setupHandlerTestEnv(t)
	alice := testutil.CreateResource(t, env.db, "Alice", 2025, 5, 20)
	testutil.CreateResource(t, env.db, "Bob", 2025, 5, 20)
	testutil.CreateProject(t, env.db, models.Project{
		Name: "Apollo", Year: 2025, Month: 5,
		AssignedResourceID: &alice.ID,
		Resources:          []models.Resource{alice},
	})

	w := env.do(t, http.MethodGet, "/api/tree/resources?year=2025&month=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var nodes []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &nodes))
	require.Len(t, nodes, 2)
	assert.Equal(t, "Alice (1)", nodes[0]["text"])
	assert.Equal(t, "Bob (0)", nodes[1]["text"])
	assert.Equal(t, []any{}, nodes[1]["children"])

	w = env.do(t, http.MethodGet, "/api/tree/resources?resource_id=999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/options/resources", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"responsible_projects":1`)
}

func itoa(id uint64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
