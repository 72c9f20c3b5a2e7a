// Package http provides the transactions API server and its handlers.
//
// This file implements decoding of request bodies and path parameters.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"finance/internal/core"

	"github.com/gorilla/mux"
)

// errMalformedBody marks a body that is not a JSON object.
var errMalformedBody = errors.New("malformed request body")

// decodeCreateInput reads a create request. An empty body decodes to an
// empty input so validation reports the missing fields.
func decodeCreateInput(w http.ResponseWriter, r *http.Request) (core.CreateInput, error) {
	var in core.CreateInput

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(&in); err != nil {
		switch {
		case errors.Is(err, io.EOF):
			return core.CreateInput{}, nil
		case errors.Is(err, core.ErrValidation):
			return core.CreateInput{}, err
		default:
			return core.CreateInput{}, fmt.Errorf("%w: %v", errMalformedBody, err)
		}
	}
	if dec.More() {
		return core.CreateInput{}, fmt.Errorf("%w: trailing data", errMalformedBody)
	}
	return in, nil
}

// pathVar returns a trimmed mux path variable.
func pathVar(r *http.Request, name string) string {
	return strings.TrimSpace(mux.Vars(r)[name])
}
