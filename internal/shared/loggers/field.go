package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldRunID      = "run_id"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldWorkerID   = "worker_id"
	FieldDirectory  = "directory"
	FieldAgent      = "agent"
	FieldTestCase   = "test_case"
	FieldUserID     = "user_id"
	FieldFile       = "file"
	FieldLineNumber = "line_number"
	FieldRuleID     = "rule_id"
	FieldProvider   = "provider"
)
