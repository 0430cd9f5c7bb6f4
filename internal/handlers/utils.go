package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/campuslms/RetrievalAPI/internal/adapter"
	"github.com/campuslms/RetrievalAPI/internal/adapter/utils"
	"github.com/campuslms/RetrievalAPI/internal/config"
	"github.com/campuslms/RetrievalAPI/internal/domain/jobModel"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func validateContext(ctx context.Context) bool {
	logRH.With("traceId:", ctx.Value(config.TRACE_ID_KEY).(string))
	if ctx.Err() != nil {
		logRH.Warn("context error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true

	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func getTargetDirectory() (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, "temporary_data")
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}

// ownership columns ride on every segment, so all three IDs are required
// before a job is queued
func parseOwnershipFields(r *http.Request) (materialID, courseID, departmentID int64, errString string) {
	materialID, err := strconv.ParseInt(r.FormValue("material_id"), 10, 64)
	if err != nil || materialID <= 0 {
		return 0, 0, 0, "material_id is required and must be a positive integer"
	}
	courseID, err = strconv.ParseInt(r.FormValue("course_id"), 10, 64)
	if err != nil || courseID <= 0 {
		return 0, 0, 0, "course_id is required and must be a positive integer"
	}
	departmentID, err = strconv.ParseInt(r.FormValue("department_id"), 10, 64)
	if err != nil || departmentID <= 0 {
		return 0, 0, 0, "department_id is required and must be a positive integer"
	}
	return materialID, courseID, departmentID, ""
}

func parseMaterialIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(utils.GetChiURLParam(r, "material_id"), 10, 64)
}
