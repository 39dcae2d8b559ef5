package interceptor

import (
	"net/http"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is what a Responder produces for one intercepted request. A zero Status is
// written as 200.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Responder computes the canned response for an intercepted request. Most mocks ignore
// the request entirely, but the parameter lets a responder echo headers or body content
// back when a test wants that.
type Responder func(RequestInfo) Response

// StaticResponse returns a Responder that always produces the same response.
func StaticResponse(status int, header http.Header, body []byte) Responder {
	return func(RequestInfo) Response {
		return Response{Status: status, Header: header, Body: body}
	}
}

// JSONResponse returns a Responder that always produces the given JSON value with a
// Content-Type of application/json.
func JSONResponse(status int, value ldvalue.Value) Responder {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	body := []byte(value.JSONString())
	return StaticResponse(status, header, body)
}
