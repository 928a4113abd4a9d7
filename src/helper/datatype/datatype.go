package datatype

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"umsgraph/src/domain/entities"
)

// Sniff de tipo "best effort" usado só para exibição: o valor persistido é
// sempre o byte string cru, sem discriminador.

var (
	booleanPattern  = regexp.MustCompile(`(?i)^(true|false)$`)
	integerPattern  = regexp.MustCompile(`^-?\d+$`)
	longPattern     = regexp.MustCompile(`^-?\d+[lL]$`)
	floatPattern    = regexp.MustCompile(`^-?\d+\.\d+[fF]$`)
	doublePattern   = regexp.MustCompile(`^-?\d+\.\d+[dD]?$`)
	datetimePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|\d{4}/\d{2}/\d{2})\s*(\d{2}:\d{2}:\d{2})?$`)
)

func Infer(data []byte) entities.DataType {
	if len(data) == 0 {
		return entities.DataTypeUnknown
	}
	if isBinary(data) {
		return entities.DataTypeBinary
	}
	return InferFromString(string(data))
}

func InferFromString(value string) entities.DataType {
	value = strings.TrimSpace(value)
	if value == "" {
		return entities.DataTypeUnknown
	}

	switch {
	case booleanPattern.MatchString(value):
		return entities.DataTypeBoolean
	case integerPattern.MatchString(value):
		// Fora do range de int32 vira long.
		if n, err := strconv.ParseInt(value, 10, 64); err != nil || n > math.MaxInt32 || n < math.MinInt32 {
			return entities.DataTypeLong
		}
		return entities.DataTypeInteger
	case longPattern.MatchString(value):
		return entities.DataTypeLong
	case floatPattern.MatchString(value):
		return entities.DataTypeFloat
	case doublePattern.MatchString(value):
		return entities.DataTypeDouble
	case datetimePattern.MatchString(value):
		return entities.DataTypeDatetime
	}

	if json.Valid([]byte(value)) {
		if strings.HasPrefix(value, "{") && strings.HasSuffix(value, "}") {
			return entities.DataTypeJSON
		}
		if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
			return entities.DataTypeArray
		}
	}

	return entities.DataTypeString
}

// isBinary: magic numbers de formatos comuns, qualquer caractere de controle
// (exceto tab/LF/CR) nos primeiros 100 bytes, ou mais de 30% de bytes fora da
// faixa imprimível ASCII.
func isBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if hasKnownMagicNumber(data) {
		return true
	}

	checkLength := len(data)
	if checkLength > 100 {
		checkLength = 100
	}

	nonPrintable := 0
	for _, b := range data[:checkLength] {
		if b < 32 && b != '\t' && b != '\n' && b != '\r' {
			return true
		}
		if b < 32 || b > 126 {
			nonPrintable++
		}
	}

	return float64(nonPrintable)/float64(checkLength) > 0.3
}

var magicNumbers = [][]byte{
	{0xFF, 0xD8, 0xFF},       // JPEG
	{0x89, 0x50, 0x4E, 0x47}, // PNG
	{0x47, 0x49, 0x46},       // GIF
	{0x25, 0x50, 0x44, 0x46}, // PDF
	{0x50, 0x4B},             // ZIP (e office docx/xlsx/pptx)
	{0x52, 0x61, 0x72, 0x21}, // RAR
}

func hasKnownMagicNumber(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, magic := range magicNumbers {
		if bytes.HasPrefix(data, magic) {
			return true
		}
	}
	return false
}
