package datatype_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"umsgraph/src/domain/entities"
	"umsgraph/src/helper/datatype"
)

var _ = Describe("Infer", func() {
	DescribeTable("text values",
		func(value string, expected entities.DataType) {
			Expect(datatype.Infer([]byte(value))).To(Equal(expected))
		},
		Entry("true is boolean", "true", entities.DataTypeBoolean),
		Entry("FALSE is boolean regardless of case", "FALSE", entities.DataTypeBoolean),
		Entry("small number is integer", "42", entities.DataTypeInteger),
		Entry("negative number is integer", "-7", entities.DataTypeInteger),
		Entry("number past int32 range is long", "2147483648", entities.DataTypeLong),
		Entry("number below int32 range is long", "-2147483649", entities.DataTypeLong),
		Entry("L suffix forces long", "42L", entities.DataTypeLong),
		Entry("f suffix is float", "3.14f", entities.DataTypeFloat),
		Entry("plain decimal is double", "3.14", entities.DataTypeDouble),
		Entry("d suffix is double", "3.14d", entities.DataTypeDouble),
		Entry("ISO date is datetime", "2026-08-31", entities.DataTypeDatetime),
		Entry("date with time is datetime", "2026-08-31 10:30:00", entities.DataTypeDatetime),
		Entry("slash date is datetime", "2026/08/31", entities.DataTypeDatetime),
		Entry("JSON object", `{"name":"kim"}`, entities.DataTypeJSON),
		Entry("JSON array", `[1,2,3]`, entities.DataTypeArray),
		Entry("malformed JSON falls back to string", `{"name":`, entities.DataTypeString),
		Entry("free text is string", "hello world", entities.DataTypeString),
		Entry("whitespace only is unknown", "   ", entities.DataTypeUnknown),
	)

	It("should report empty input as unknown", func() {
		Expect(datatype.Infer(nil)).To(Equal(entities.DataTypeUnknown))
	})

	It("should detect a PNG header as binary", func() {
		// ARRANGE
		payload := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

		// ACT / ASSERT
		Expect(datatype.Infer(payload)).To(Equal(entities.DataTypeBinary))
	})

	It("should detect a JPEG header as binary", func() {
		// ARRANGE
		payload := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

		// ACT / ASSERT
		Expect(datatype.Infer(payload)).To(Equal(entities.DataTypeBinary))
	})

	It("should treat control characters as binary", func() {
		// ARRANGE
		payload := []byte("abc\x00def")

		// ACT / ASSERT
		Expect(datatype.Infer(payload)).To(Equal(entities.DataTypeBinary))
	})

	It("should tolerate tabs and newlines in text", func() {
		// ARRANGE
		payload := []byte("line one\nline two\tend\r\n")

		// ACT / ASSERT
		Expect(datatype.Infer(payload)).To(Equal(entities.DataTypeString))
	})

	It("should flag mostly non-printable payloads as binary", func() {
		// ARRANGE
		payload := make([]byte, 10)
		for i := range payload {
			if i < 6 {
				payload[i] = 0xC3 // acima da faixa ASCII imprimível
			} else {
				payload[i] = 'a'
			}
		}

		// ACT / ASSERT
		Expect(datatype.Infer(payload)).To(Equal(entities.DataTypeBinary))
	})
})
