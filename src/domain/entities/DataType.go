package entities

type DataType string

const (
	DataTypeUnknown  DataType = "unknown"
	DataTypeString   DataType = "string"
	DataTypeInteger  DataType = "integer"
	DataTypeLong     DataType = "long"
	DataTypeFloat    DataType = "float"
	DataTypeDouble   DataType = "double"
	DataTypeBoolean  DataType = "boolean"
	DataTypeDatetime DataType = "datetime"
	DataTypeJSON     DataType = "json"
	DataTypeArray    DataType = "array"
	DataTypeBinary   DataType = "binary"
)
