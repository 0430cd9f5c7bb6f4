package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/campuslms/RetrievalAPI/internal/adapter"
	"github.com/campuslms/RetrievalAPI/internal/adapter/utils"
	"github.com/campuslms/RetrievalAPI/internal/api"
	"github.com/campuslms/RetrievalAPI/internal/config"
	"github.com/campuslms/RetrievalAPI/internal/domain/segmentModel"
	"github.com/campuslms/RetrievalAPI/internal/retrieval"
	"github.com/campuslms/RetrievalAPI/pkg/logger_i"
)

var logRH *logger_i.Logger

// everything a queued ingestion needs, captured at the transport edge so
// jobHandler never touches the http request
type newJobData struct {
	id             string
	traceId        string
	materialID     int64
	courseID       int64
	departmentID   int64
	documentName   string
	documentSource string
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// QueryHandler godoc
// @Summary      Retrieve course material context for a question
// @Description  Embeds the question, ranks stored segments by cosine similarity, and returns the top hits plus a preformatted context block. Failures degrade to an empty result set.
// @Tags         Retrieval
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest   true  "Question text, optional department scope and top_k"
// @Success      200      {object}  api.QueryResponse  "Ranked segments and context block (possibly empty)"
// @Failure      400      {object}  api.JobResponse    "Invalid request data"
// @Router       /query [post]
func QueryHandler(w http.ResponseWriter, request *http.Request) {

	if validateContext(request.Context()) {

		var requestData api.QueryRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Query handler reader :", err)
			}
		}(request.Body)
		if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || requestData.Text == "" {
			logRH.Warn("Bad Query Request: ", "error:", err, "request data:", requestData)
			WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
			return
		}

		ctx, cancel := context.WithTimeout(request.Context(), config.QueryTimeout)
		defer cancel()

		scope := segmentModel.Scope{DepartmentID: requestData.DepartmentID}
		results := handlerInstance.retrievalService.Query(ctx, requestData.Text, scope, requestData.TopK)

		writeJsonResponse(w, http.StatusOK, adapter.ToQueryResponse(results, retrieval.ContextBlock(results)))
		return
	}
	logRH.Warn("Invalid Context by request ", request.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get ingestion job status
// @Description  Retrieves the current status of a specific ingestion job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID "
// @Success      200  {object}  api.JobResponse   "Successful retrieval of job status"
// @Failure      404  {object}  api.JobResponse   "Job not found (returns Error object within JobResponse)"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		//use chi get the url id
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

// PostIngestHandler handles the uploading of PDF, DOCX or TXT course materials.
// @Summary      Upload a course material for ingestion
// @Description  Receives a file via multipart/form-data together with its material, course, and department IDs, saves it to a temporary directory, and queues an ingestion job. Re-ingesting a material ID replaces its previous segments.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        material_id    formData  integer  true  "LMS material identifier"
// @Param        course_id      formData  integer  true  "Owning course identifier"
// @Param        department_id  formData  integer  true  "Owning department identifier"
// @Param        document       formData  file     true  "The PDF, DOCX or TXT file to upload"
// @Success      202  {object}  api.InitJobResponse "Accepted - returns job id and status URL"
// @Failure      400  {object}  api.JobResponse "Bad Request - Missing fields or file too large"
// @Failure      500  {object}  api.JobResponse "Internal Server Error - Storage or Write Error"
// @Router       /ingest [post]
func PostIngestHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		targetDir, errString := getTargetDirectory()

		if errString != "" {
			logRH.Error("Couldn't get target directory :", "err", errString)
			WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
			return
		}

		const maxUploadSize = 32 << 20 //32mb
		err := r.ParseMultipartForm(maxUploadSize)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		//process request
		materialID, courseID, departmentID, errString := parseOwnershipFields(r)
		if errString != "" {
			WriteErrorResponse(w, http.StatusBadRequest, "", errString)
			return
		}

		//get the document the user uploads
		fileReader, fileMetadata, err := r.FormFile("document")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
		tempFilePath := filepath.Join(targetDir, filename)
		destinationFileWriter, err := os.Create(tempFilePath)
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
			return
		}
		defer destinationFileWriter.Close()

		if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Write error")
			return
		}

		newJob := newJobData{
			id:             utils.GetNewUUID(),
			traceId:        r.Context().Value(config.TRACE_ID_KEY).(string),
			materialID:     materialID,
			courseID:       courseID,
			departmentID:   departmentID,
			documentName:   fileMetadata.Filename,
			documentSource: tempFilePath,
		}
		CreateNewJob(newJob)
		writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// PurgeHandler godoc
// @Summary      Remove a material's segments
// @Description  Deletes every stored segment belonging to the given material ID. Purging an unknown material succeeds as a no-op.
// @Tags         Ingestion
// @Produce      json
// @Param        material_id  path      integer  true  "LMS material identifier"
// @Success      200  {object}  api.PurgeResponse "Segments removed"
// @Failure      400  {object}  api.JobResponse   "Invalid material ID"
// @Failure      500  {object}  api.JobResponse   "Store error"
// @Router       /purge/{material_id} [delete]
func PurgeHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		materialID, err := parseMaterialIDParam(r)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Invalid material ID")
			return
		}

		if err := handlerInstance.retrievalService.Purge(r.Context(), materialID); err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Store error")
			return
		}

		writeJsonResponse(w, http.StatusOK, api.PurgeResponse{MaterialID: materialID, Status: "PURGED"})
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}
