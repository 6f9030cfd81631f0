package patient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhq/hms-api/internal/repository/memory"
	"github.com/medhq/hms-api/internal/service/patient"
	"github.com/medhq/hms-api/pkg/validation"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()

	store := memory.NewStore()
	service := patient.NewService(store.Patients(), store.Appointments(), store.Admissions())

	engine := gin.New()
	api := engine.Group("/api")
	NewHandler(service).RegisterRoutes(api)
	return engine
}

func do(engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"mrn":            "MRN-7001",
		"first_name":     "Asha",
		"last_name":      "Rao",
		"date_of_birth":  "1985-04-12",
		"gender":         "FEMALE",
		"contact_number": "555-0101",
		"address":        "14 Hill Road",
	}
}

func TestCreatePatientReturnsEntity(t *testing.T) {
	engine := newTestRouter()

	rec := do(engine, http.MethodPost, "/api/patients", validBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	// The body is the bare entity, no envelope.
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "MRN-7001", created["mrn"])
	assert.NotEmpty(t, created["id"])
	_, hasEnvelope := created["data"]
	assert.False(t, hasEnvelope)
}

func TestCreatePatientValidationErrors(t *testing.T) {
	engine := newTestRouter()

	body := validBody()
	delete(body, "mrn")
	body["gender"] = "X"

	rec := do(engine, http.MethodPost, "/api/patients", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 2)

	fields := map[string]bool{}
	for _, fe := range resp.Errors {
		fields[fe.Field] = true
		assert.NotEmpty(t, fe.Message)
	}
	assert.True(t, fields["mrn"])
	assert.True(t, fields["gender"])
}

func TestGetPatientNotFound(t *testing.T) {
	engine := newTestRouter()

	rec := do(engine, http.MethodGet, "/api/patients/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Error)
	assert.Equal(t, "patient not found", resp.Message)
}

func TestGetPatientInvalidID(t *testing.T) {
	engine := newTestRouter()

	rec := do(engine, http.MethodGet, "/api/patients/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDuplicateMRNConflictBody(t *testing.T) {
	engine := newTestRouter()

	require.Equal(t, http.StatusCreated, do(engine, http.MethodPost, "/api/patients", validBody()).Code)

	rec := do(engine, http.MethodPost, "/api/patients", validBody())
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Error)
	assert.Contains(t, resp.Message, "MRN")
}

func TestDeletePatientConfirmation(t *testing.T) {
	engine := newTestRouter()

	rec := do(engine, http.MethodPost, "/api/patients", validBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(engine, http.MethodDelete, fmt.Sprintf("/api/patients/%s", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Patient deleted successfully", resp.Message)
}

func TestListPatientsReturnsArray(t *testing.T) {
	engine := newTestRouter()

	rec := do(engine, http.MethodGet, "/api/patients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	// An empty listing is [], not null.
	assert.Equal(t, "[]", string(bytes.TrimSpace(rec.Body.Bytes())))
}
