package models

import "strconv"

// Type codes of the data records found in timer files.
const (
	TypeCodeRequest        = "R"
	TypeCodeTransaction    = "T"
	TypeCodeAction         = "A"
	TypeCodeEvent          = "E"
	TypeCodeCustomTimer    = "C"
	TypeCodeCustomValue    = "V"
	TypeCodePageLoadTiming = "P"
)

// Record is one parsed data point of a timer file.
type Record interface {
	TypeCode() string
	Base() *BaseRecord
}

// BaseRecord holds the fields every record carries.
// Time is the creation timestamp in epoch milliseconds.
type BaseRecord struct {
	Name            string `json:"name"`
	Time            int64  `json:"time"`
	AgentName       string `json:"agentName"`
	TransactionName string `json:"transactionName"`
}

func (b *BaseRecord) Base() *BaseRecord { return b }

// Timer is implemented by records that measure a runtime.
type Timer interface {
	Record
	RuntimeMillis() int64
	HasFailed() bool
}

// RequestRecord is a single HTTP request measurement. It is the only record
// type the request merge rules rewrite.
type RequestRecord struct {
	BaseRecord
	Runtime       int64  `json:"runtime"`
	Failed        bool   `json:"failed"`
	BytesSent     int64  `json:"bytesSent"`
	BytesReceived int64  `json:"bytesReceived"`
	ResponseCode  int    `json:"responseCode"`
	URL           string `json:"url"`
	ContentType   string `json:"contentType"`
	HTTPMethod    string `json:"httpMethod"`
	ActionName    string `json:"actionName,omitempty"`
}

func (r *RequestRecord) TypeCode() string       { return TypeCodeRequest }
func (r *RequestRecord) RuntimeMillis() int64   { return r.Runtime }
func (r *RequestRecord) HasFailed() bool        { return r.Failed }
func (r *RequestRecord) StatusCodeText() string { return strconv.Itoa(r.ResponseCode) }

type TransactionRecord struct {
	BaseRecord
	Runtime        int64  `json:"runtime"`
	Failed         bool   `json:"failed"`
	FailureMessage string `json:"failureMessage,omitempty"`
}

func (r *TransactionRecord) TypeCode() string     { return TypeCodeTransaction }
func (r *TransactionRecord) RuntimeMillis() int64 { return r.Runtime }
func (r *TransactionRecord) HasFailed() bool      { return r.Failed }

type ActionRecord struct {
	BaseRecord
	Runtime int64 `json:"runtime"`
	Failed  bool  `json:"failed"`
}

func (r *ActionRecord) TypeCode() string     { return TypeCodeAction }
func (r *ActionRecord) RuntimeMillis() int64 { return r.Runtime }
func (r *ActionRecord) HasFailed() bool      { return r.Failed }

type EventRecord struct {
	BaseRecord
	TestCaseName string `json:"testCaseName"`
	Message      string `json:"message"`
}

func (r *EventRecord) TypeCode() string { return TypeCodeEvent }

type CustomTimerRecord struct {
	BaseRecord
	Runtime int64 `json:"runtime"`
	Failed  bool  `json:"failed"`
}

func (r *CustomTimerRecord) TypeCode() string     { return TypeCodeCustomTimer }
func (r *CustomTimerRecord) RuntimeMillis() int64 { return r.Runtime }
func (r *CustomTimerRecord) HasFailed() bool      { return r.Failed }

type CustomValueRecord struct {
	BaseRecord
	Value float64 `json:"value"`
}

func (r *CustomValueRecord) TypeCode() string { return TypeCodeCustomValue }

// PageLoadTimingRecord comes from client-performance timer files and is
// attributed to the action that was running when the page loaded.
type PageLoadTimingRecord struct {
	BaseRecord
	Runtime    int64  `json:"runtime"`
	Failed     bool   `json:"failed"`
	ActionName string `json:"actionName,omitempty"`
}

func (r *PageLoadTimingRecord) TypeCode() string     { return TypeCodePageLoadTiming }
func (r *PageLoadTimingRecord) RuntimeMillis() int64 { return r.Runtime }
func (r *PageLoadTimingRecord) HasFailed() bool      { return r.Failed }
