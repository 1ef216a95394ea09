package api

import (
	"encoding/json"
	"net/http"

	"hermannm.dev/devlog/log"
	"hermannm.dev/salesdash/loader"
	"hermannm.dev/wrap"
)

func sendJSON(res http.ResponseWriter, value any) {
	body, err := json.Marshal(value)
	if err != nil {
		sendServerError(res, err, "failed to serialize response")
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusOK)
	if _, err := res.Write(body); err != nil {
		log.ErrorCause(err, "failed to write response")
	}
}

func sendClientError(res http.ResponseWriter, err error, message string) {
	sendError(res, err, message, http.StatusBadRequest)
}

func sendServerError(res http.ResponseWriter, err error, message string) {
	sendError(res, err, message, http.StatusInternalServerError)
}

// Load errors block the whole dashboard, so they are reported as the service being
// unavailable until the data source is fixed and reloaded.
func sendLoadError(res http.ResponseWriter, err error) {
	switch {
	case loader.IsNotFound(err):
		sendError(res, err, "data file not found", http.StatusServiceUnavailable)
	case loader.IsParseFailure(err):
		sendError(res, err, "error loading data", http.StatusServiceUnavailable)
	default:
		sendServerError(res, err, "failed to load sales data")
	}
}

func sendError(res http.ResponseWriter, err error, message string, statusCode int) {
	serverError := statusCode >= http.StatusInternalServerError

	switch {
	case err == nil && serverError:
		log.ErrorMessage(message)
	case err == nil:
		log.Warn(message)
	case message == "" && serverError:
		log.Error(err)
	case message == "":
		log.WarnError(err)
	case serverError:
		log.ErrorCause(err, message)
	default:
		log.WarnErrorCause(err, message)
	}

	if err != nil {
		if message == "" {
			message = err.Error()
		} else {
			message = wrap.Error(err, message).Error()
		}
	}
	http.Error(res, message, statusCode)
}

func allowMethod(res http.ResponseWriter, req *http.Request, method string) bool {
	if req.Method == method {
		return true
	}

	res.Header().Set("Allow", method)
	http.Error(res, "method not allowed", http.StatusMethodNotAllowed)
	return false
}
