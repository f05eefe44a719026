package decoders

import (
	"fmt"
	"strconv"
	"strings"

	"loadtest-report/internal/models"
)

// fieldReader converts positional fields and keeps the first conversion error.
type fieldReader struct {
	typeCode string
	fields   []string
	err      error
}

func newFieldReader(fields []string, required int) *fieldReader {
	r := &fieldReader{typeCode: fields[0], fields: fields}
	if len(fields) < required {
		r.err = errMalformedLine(fmt.Sprintf("%s line has %d fields, expected at least %d", r.typeCode, len(fields), required), nil)
	}
	return r
}

func (r *fieldReader) str(i int) string {
	if r.err != nil || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

func (r *fieldReader) int64(i int, name string) int64 {
	if r.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(strings.TrimSpace(r.fields[i]), 10, 64)
	if err != nil {
		r.err = errMalformedLine(fmt.Sprintf("%s line: %s must be an integer", r.typeCode, name), err)
	}
	return v
}

func (r *fieldReader) float64(i int, name string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(r.fields[i]), 64)
	if err != nil {
		r.err = errMalformedLine(fmt.Sprintf("%s line: %s must be a number", r.typeCode, name), err)
	}
	return v
}

func (r *fieldReader) bool(i int, name string) bool {
	if r.err != nil {
		return false
	}
	v, err := strconv.ParseBool(strings.TrimSpace(r.fields[i]))
	if err != nil {
		r.err = errMalformedLine(fmt.Sprintf("%s line: %s must be true or false", r.typeCode, name), err)
	}
	return v
}

func (r *fieldReader) base() models.BaseRecord {
	return models.BaseRecord{
		Name: r.str(1),
		Time: r.int64(2, "time"),
	}
}

// R,name,time,runtime,failed,bytesSent,bytesReceived,responseCode,url,contentType,httpMethod
func decodeRequest(fields []string) (models.Record, error) {
	r := newFieldReader(fields, 11)
	rec := &models.RequestRecord{
		BaseRecord:    r.base(),
		Runtime:       r.int64(3, "runtime"),
		Failed:        r.bool(4, "failed"),
		BytesSent:     r.int64(5, "bytes sent"),
		BytesReceived: r.int64(6, "bytes received"),
		ResponseCode:  int(r.int64(7, "response code")),
		URL:           r.str(8),
		ContentType:   r.str(9),
		HTTPMethod:    r.str(10),
	}
	if r.err != nil {
		return nil, r.err
	}
	return rec, nil
}

// T,name,time,runtime,failed[,failureMessage]
func decodeTransaction(fields []string) (models.Record, error) {
	r := newFieldReader(fields, 5)
	rec := &models.TransactionRecord{
		BaseRecord:     r.base(),
		Runtime:        r.int64(3, "runtime"),
		Failed:         r.bool(4, "failed"),
		FailureMessage: r.str(5),
	}
	if r.err != nil {
		return nil, r.err
	}
	return rec, nil
}

func decodeAction(fields []string) (models.Record, error) {
	r := newFieldReader(fields, 5)
	rec := &models.ActionRecord{
		BaseRecord: r.base(),
		Runtime:    r.int64(3, "runtime"),
		Failed:     r.bool(4, "failed"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return rec, nil
}

// E,name,time,testCaseName,message
func decodeEvent(fields []string) (models.Record, error) {
	r := newFieldReader(fields, 5)
	rec := &models.EventRecord{
		BaseRecord:   r.base(),
		TestCaseName: r.str(3),
		Message:      r.str(4),
	}
	if r.err != nil {
		return nil, r.err
	}
	return rec, nil
}

func decodeCustomTimer(fields []string) (models.Record, error) {
	r := newFieldReader(fields, 5)
	rec := &models.CustomTimerRecord{
		BaseRecord: r.base(),
		Runtime:    r.int64(3, "runtime"),
		Failed:     r.bool(4, "failed"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return rec, nil
}

func decodeCustomValue(fields []string) (models.Record, error) {
	r := newFieldReader(fields, 4)
	rec := &models.CustomValueRecord{
		BaseRecord: r.base(),
		Value:      r.float64(3, "value"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return rec, nil
}

func decodePageLoadTiming(fields []string) (models.Record, error) {
	r := newFieldReader(fields, 5)
	rec := &models.PageLoadTimingRecord{
		BaseRecord: r.base(),
		Runtime:    r.int64(3, "runtime"),
		Failed:     r.bool(4, "failed"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return rec, nil
}
