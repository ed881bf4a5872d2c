package app_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/hims-api/internal/app"
	"github.com/jwalitptl/hims-api/internal/config"
	"github.com/jwalitptl/hims-api/internal/listing"
	"github.com/jwalitptl/hims-api/internal/model"
	"github.com/jwalitptl/hims-api/internal/testutil"
	apperrors "github.com/jwalitptl/hims-api/pkg/errors"
	"github.com/jwalitptl/hims-api/pkg/metrics"
)

const (
	appPassword    = "open-sesame"
	editSecret     = "edit-mode-secret"
	clinicalSecret = "clinical-secret"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *client) do(method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func hash(t *testing.T, secret string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newClient(t *testing.T) *client {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, TimeoutSeconds: 30},
		Access: config.AccessConfig{
			AppPasswordHash: hash(t, appPassword),
			EditModeHash:    hash(t, editSecret),
			ClinicalHash:    hash(t, clinicalSecret),
			JWTSecret:       "jwt-test-secret",
			SessionTTL:      time.Hour,
		},
		Confirmation: config.ConfirmationConfig{TTL: time.Minute},
		Redis:        config.RedisConfig{Channel: "hims.test"},
	}

	reg := prometheus.NewRegistry()
	clock := testutil.FixedClock()
	r, err := app.NewRouter(app.Options{
		Config:   cfg,
		Store:    testutil.NewStore(t),
		Metrics:  metrics.NewMetrics(reg, "hims_test"),
		Gatherer: reg,
		Now:      clock.Now,
	})
	require.NoError(t, err)

	return &client{t: t, handler: r.Engine()}
}

func edit() map[string]string     { return map[string]string{"X-Access-Secret": editSecret} }
func clinical() map[string]string { return map[string]string{"X-Access-Secret": clinicalSecret} }

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

func unlock(t *testing.T, c *client) {
	t.Helper()

	w, _ := c.do(http.MethodPost, "/api/v1/auth/session", gin.H{"password": "wrong"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := c.do(http.MethodPost, "/api/v1/auth/session", gin.H{"password": appPassword}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var session model.Session
	decode(t, env.Data, &session)
	require.NotEmpty(t, session.Token)
	c.token = session.Token
}

func departmentBody() gin.H {
	return gin.H{
		"name":             "Cardiology",
		"description":      "Heart care",
		"contact_number_1": "0201234567",
		"address":          "Block A",
		"email_id":         "cardio@hims.test",
	}
}

func doctorBody(departmentID string) gin.H {
	return gin.H{
		"name":                "Dr. Rao",
		"gender":              "Female",
		"date_of_birth":       "1978-08-12",
		"blood_group":         "O+",
		"department_id":       departmentID,
		"contact_number_1":    "9876543210",
		"aadhar_or_voter_id":  "1234-5678-9012",
		"email_id":            "rao@hims.test",
		"qualification":       "MBBS, MD",
		"specialisation":      "Cardiology",
		"years_of_experience": 18,
		"address":             "12 Park Street",
		"city":                "Kolkata",
		"state":               "West Bengal",
		"pin_code":            "700016",
	}
}

func patientBody() gin.H {
	return gin.H{
		"name":                            "Ravi Kumar",
		"gender":                          "Male",
		"date_of_birth":                   "2000-06-15",
		"blood_group":                     "B+",
		"contact_number_1":                "9000000001",
		"aadhar_or_voter_id":              "VOTER-42",
		"weight":                          70,
		"height":                          175,
		"address":                         "4 Lake Road",
		"city":                            "Pune",
		"state":                           "Maharashtra",
		"pin_code":                        "411001",
		"next_of_kin_name":                "Asha",
		"next_of_kin_relation_to_patient": "Mother",
		"next_of_kin_contact_number":      "9000000002",
	}
}

func TestPublicRoutes(t *testing.T) {
	c := newClient(t)

	w, _ := c.do(http.MethodGet, "/api/v1/health/live", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = c.do(http.MethodGet, "/api/v1/health/ready", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = c.do(http.MethodGet, "/api/v1/departments", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = c.do(http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hims_test_http_requests_total")
}

func TestRecordLifecycle(t *testing.T) {
	c := newClient(t)
	unlock(t, c)

	// Empty listing.
	w, env := c.do(http.MethodGet, "/api/v1/departments", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view listing.View
	decode(t, env.Data, &view)
	assert.Equal(t, listing.KindEmpty, view.Kind)
	assert.Equal(t, listing.NoDataNotice, view.Notice)

	// Gates.
	w, _ = c.do(http.MethodPost, "/api/v1/departments", departmentBody(), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = c.do(http.MethodPost, "/api/v1/departments", departmentBody(), clinical())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = c.do(http.MethodPost, "/api/v1/departments", departmentBody(), edit())
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var dept model.Department
	decode(t, env.Data, &dept)
	assert.Regexp(t, `^D-\d{6}-\d{6}$`, dept.ID)

	// Binding rejects a malformed reference before the service runs.
	w, env = c.do(http.MethodPost, "/api/v1/doctors", doctorBody("bogus"), edit())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "department_id")

	w, env = c.do(http.MethodPost, "/api/v1/doctors", doctorBody("D-000000-000000"), edit())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid Department ID", env.Message)

	w, env = c.do(http.MethodPost, "/api/v1/doctors", doctorBody(dept.ID), edit())
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var doc model.Doctor
	decode(t, env.Data, &doc)
	assert.Equal(t, "Cardiology", doc.DepartmentName)

	w, env = c.do(http.MethodGet, "/api/v1/departments/"+dept.ID+"/doctors", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = listing.View{}
	decode(t, env.Data, &view)
	assert.Equal(t, listing.KindTable, view.Kind)
	assert.Equal(t, []string{"Doctor ID", "Name"}, view.Columns)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, doc.ID, *view.Rows[0][0])

	w, env = c.do(http.MethodPost, "/api/v1/patients", patientBody(), edit())
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var p model.Patient
	decode(t, env.Data, &p)
	assert.Equal(t, 23, p.Age)

	rxBody := gin.H{
		"patient_id":                    p.ID,
		"doctor_id":                     doc.ID,
		"diagnosis":                     "Hypertension",
		"medicine_1_name":               "Amlodipine",
		"medicine_1_dosage_description": "5 mg once daily",
	}
	w, _ = c.do(http.MethodPost, "/api/v1/prescriptions", rxBody, edit())
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, env = c.do(http.MethodPost, "/api/v1/prescriptions", rxBody, clinical())
	require.Equal(t, http.StatusCreated, w.Code, env.Message)

	w, env = c.do(http.MethodGet, "/api/v1/patients/"+p.ID+"/prescriptions", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = listing.View{}
	decode(t, env.Data, &view)
	assert.Equal(t, listing.KindRecord, view.Kind)

	// Two-step delete of a department still referenced by a doctor.
	w, env = c.do(http.MethodDelete, "/api/v1/departments/"+dept.ID, nil, edit())
	assert.Equal(t, http.StatusPreconditionFailed, w.Code, env.Message)

	w, env = c.do(http.MethodPost, "/api/v1/departments/"+dept.ID+"/deletion", nil, edit())
	require.Equal(t, http.StatusOK, w.Code)
	var ticket model.DeletionTicket
	decode(t, env.Data, &ticket)
	require.NotEmpty(t, ticket.Token)

	headers := edit()
	headers["X-Confirm-Token"] = ticket.Token
	w, env = c.do(http.MethodDelete, "/api/v1/departments/"+dept.ID, nil, headers)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperrors.InUseMessage, env.Message)

	w, env = c.do(http.MethodGet, "/api/v1/departments/"+dept.ID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var found model.Department
	decode(t, env.Data, &found)
	assert.Equal(t, dept.ID, found.ID)

	w, env = c.do(http.MethodGet, "/api/v1/departments/"+dept.ID+"?view=listing", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view = listing.View{}
	decode(t, env.Data, &view)
	assert.Equal(t, listing.KindRecord, view.Kind)
	require.Len(t, view.Fields, 7)
	assert.Equal(t, "Department ID", view.Fields[0].Title)
	assert.Equal(t, dept.ID, *view.Fields[0].Value)

	w, env = c.do(http.MethodGet, "/api/v1/audit/department/"+dept.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []model.AuditLog
	decode(t, env.Data, &history)
	require.Len(t, history, 1)
	assert.Equal(t, model.AuditActionCreate, history[0].Action)

	w, env = c.do(http.MethodGet, "/api/v1/departments/D-000000-000000", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invalid Department ID", env.Message)
}

func TestExport(t *testing.T) {
	c := newClient(t)
	unlock(t, c)

	w, _ := c.do(http.MethodGet, "/api/v1/departments/export", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "departments.csv")
	assert.Equal(t, "Department ID,Department name,Description,Contact number,Alternate contact number,Address,Email ID\n", w.Body.String())

	w, _ = c.do(http.MethodPost, "/api/v1/departments", departmentBody(), edit())
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = c.do(http.MethodGet, "/api/v1/departments/export", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "D-452310-240301,Cardiology,"))
}

func TestPatientBlankEmailStoredAsNull(t *testing.T) {
	c := newClient(t)
	unlock(t, c)

	body := patientBody()
	body["email_id"] = ""
	w, env := c.do(http.MethodPost, "/api/v1/patients", body, edit())
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var p model.Patient
	decode(t, env.Data, &p)
	assert.Nil(t, p.EmailID)

	w, env = c.do(http.MethodPut, "/api/v1/patients/"+p.ID, gin.H{"email_id": "ravi@hims.test"}, edit())
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	var updated model.Patient
	decode(t, env.Data, &updated)
	require.NotNil(t, updated.EmailID)
	assert.Equal(t, "ravi@hims.test", *updated.EmailID)

	w, env = c.do(http.MethodPut, "/api/v1/patients/"+p.ID, gin.H{"email_id": ""}, edit())
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	var cleared model.Patient
	decode(t, env.Data, &cleared)
	assert.Nil(t, cleared.EmailID)

	w, env = c.do(http.MethodPut, "/api/v1/patients/"+p.ID, gin.H{"email_id": "nope"}, edit())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email ID must be a valid email address", env.Message)
}

func TestMedicalTestRoutes(t *testing.T) {
	c := newClient(t)
	unlock(t, c)

	w, env := c.do(http.MethodPost, "/api/v1/departments", departmentBody(), edit())
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var dept model.Department
	decode(t, env.Data, &dept)

	w, env = c.do(http.MethodPost, "/api/v1/doctors", doctorBody(dept.ID), edit())
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var doc model.Doctor
	decode(t, env.Data, &doc)

	w, env = c.do(http.MethodPost, "/api/v1/patients", patientBody(), edit())
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var p model.Patient
	decode(t, env.Data, &p)

	body := gin.H{
		"test_name":                "Lipid profile",
		"patient_id":               p.ID,
		"doctor_id":                doc.ID,
		"medical_lab_scientist_id": "MLS-7",
		"test_date_time":           "2024-03-01T09:30",
		"result_date_time":         "2024-03-02T11:00",
		"cost":                     850,
	}
	w, _ = c.do(http.MethodPost, "/api/v1/medical-tests", body, edit())
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = c.do(http.MethodPost, "/api/v1/medical-tests", body, clinical())
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	var test model.MedicalTest
	decode(t, env.Data, &test)
	assert.Regexp(t, `^T-\d{6}-\d{6}$`, test.ID)
	assert.Equal(t, model.ResultAwaited, test.ResultAndDiagnosis)
	assert.Equal(t, "01-03-2024 (09:30)", test.TestDateTime)
	assert.Equal(t, "Ravi Kumar", test.PatientName)

	w, env = c.do(http.MethodGet, "/api/v1/medical-tests/"+test.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	var found model.MedicalTest
	decode(t, env.Data, &found)
	assert.Equal(t, test, found)

	w, env = c.do(http.MethodGet, "/api/v1/patients/"+p.ID+"/medical-tests", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view listing.View
	decode(t, env.Data, &view)
	assert.Equal(t, listing.KindRecord, view.Kind)
	assert.Equal(t, "Medical Test ID", view.Fields[0].Title)
}
