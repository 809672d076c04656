package types

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

type SuccessEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type ErrorEnvelope struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Errors  any    `json:"errors"`
}
