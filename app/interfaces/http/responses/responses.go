package responses

import "encoding/json"

// ErrorResponse is the JSON error body: a human-readable error plus a
// stable code identifying the failure site.
type ErrorResponse struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
	// ErrorInstance, when set, supplies the error text for serialization.
	ErrorInstance error `json:"-"`
}

func (e ErrorResponse) MarshalJSON() ([]byte, error) {
	message := e.Error
	if message == "" && e.ErrorInstance != nil {
		message = e.ErrorInstance.Error()
	}
	type alias struct {
		Code  string `json:"code,omitempty"`
		Error string `json:"error"`
	}
	return json.Marshal(alias{Code: e.Code, Error: message})
}
