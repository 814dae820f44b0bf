// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package respond provides a unified JSON response envelope for the admin
API.

There is no paginated-list envelope here, unlike a public comic-catalogue
API: every admin API response is a single resource (a health report, a
run summary) or an error, never a paginated collection.
*/
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/recomendapp/db-sync/internal/platform/ctxutil"
	"github.com/recomendapp/db-sync/internal/platform/syncerr"
)

// SuccessEnvelope is the JSON envelope for a successful response.
type SuccessEnvelope struct {
	Data interface{} `json:"data"`
}

// ErrorEnvelope is the JSON envelope for an error response.
type ErrorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// JSON writes payload as a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Accepted writes a 202 Accepted response with data wrapped in the
// success envelope, used by the manual-trigger endpoint to acknowledge a
// run that continues after the response is sent.
func Accepted(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusAccepted, SuccessEnvelope{Data: data})
}

// Error converts err into a standardized JSON error response, classifying
// it via [syncerr.As] when possible and logging 5xx-class failures.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	if se := syncerr.As(err); se != nil {
		code = string(se.Kind)
		if se.HTTPStatus != 0 {
			status = se.HTTPStatus
		}
	}

	if status >= 500 {
		ctxutil.GetLogger(request.Context()).Error("admin_api_server_error",
			"code", code, "error", err.Error(),
			"request_id", ctxutil.GetRequestID(request.Context()),
		)
	}

	JSON(writer, status, ErrorEnvelope{Error: err.Error(), Code: code})
}
