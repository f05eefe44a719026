package decoders

import (
	"encoding/csv"
	"errors"
	"io"
	"sort"
	"strings"

	"loadtest-report/internal/models"
)

// DecodeFunc builds a record from the comma separated fields of one line.
// fields[0] is the type code.
type DecodeFunc func(fields []string) (models.Record, error)

//go:generate mockgen -source=registry.go -destination=./mocks/registry_mock.go -package=mocks
type Registry interface {
	// Decode parses one timer file line into a typed record.
	Decode(line string) (models.Record, error)
	TypeCodes() []string
}

type registry struct {
	decoders map[string]DecodeFunc
}

// NewRegistry returns a registry dispatching on the given type codes.
func NewRegistry(decoders map[string]DecodeFunc) Registry {
	copied := make(map[string]DecodeFunc, len(decoders))
	for code, fn := range decoders {
		copied[code] = fn
	}
	return &registry{decoders: copied}
}

// NewDefaultRegistry knows every record type a timer file may contain.
func NewDefaultRegistry() Registry {
	return NewRegistry(map[string]DecodeFunc{
		models.TypeCodeRequest:        decodeRequest,
		models.TypeCodeTransaction:    decodeTransaction,
		models.TypeCodeAction:         decodeAction,
		models.TypeCodeEvent:          decodeEvent,
		models.TypeCodeCustomTimer:    decodeCustomTimer,
		models.TypeCodeCustomValue:    decodeCustomValue,
		models.TypeCodePageLoadTiming: decodePageLoadTiming,
	})
}

func (r *registry) Decode(line string) (models.Record, error) {
	typeCode, _, _ := strings.Cut(line, ",")
	typeCode = strings.TrimSpace(typeCode)
	if typeCode == "" {
		return nil, errMalformedLine("missing type code", nil)
	}
	decode, ok := r.decoders[typeCode]
	if !ok {
		return nil, errUnknownTypeCode(typeCode)
	}

	fields, err := splitLine(line)
	if err != nil {
		return nil, errMalformedLine("invalid field quoting", err)
	}
	return decode(fields)
}

func (r *registry) TypeCodes() []string {
	codes := make([]string, 0, len(r.decoders))
	for code := range r.decoders {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func splitLine(line string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	fields, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty line")
	}
	return fields, err
}
