// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Parameter DTO and the enumerations describing it.

package api

// DbType enumerates the database-side type of a command parameter.
type DbType int

const (
	DbTypeUnknown DbType = iota
	DbTypeVarChar
	DbTypeNVarChar
	DbTypeInt
	DbTypeBigInt
	DbTypeBit
	DbTypeDecimal
	DbTypeDateTime
	DbTypeGUID
	DbTypeBinary
	DbTypeStructured
)

func (t DbType) String() string {
	switch t {
	case DbTypeVarChar:
		return "varchar"
	case DbTypeNVarChar:
		return "nvarchar"
	case DbTypeInt:
		return "int"
	case DbTypeBigInt:
		return "bigint"
	case DbTypeBit:
		return "bit"
	case DbTypeDecimal:
		return "decimal"
	case DbTypeDateTime:
		return "datetime"
	case DbTypeGUID:
		return "uniqueidentifier"
	case DbTypeBinary:
		return "varbinary"
	case DbTypeStructured:
		return "structured"
	default:
		return "unknown"
	}
}

// Direction tells the driver which way a parameter value flows.
type Direction int

const (
	DirectionInput Direction = iota
	DirectionOutput
	DirectionInputOutput
	DirectionReturnValue
)

func (d Direction) String() string {
	switch d {
	case DirectionOutput:
		return "output"
	case DirectionInputOutput:
		return "inputoutput"
	case DirectionReturnValue:
		return "returnvalue"
	default:
		return "input"
	}
}

// Parameter is a single named command parameter.
// A nil *Parameter marks an empty slot; Value may itself be nil (SQL NULL).
type Parameter struct {
	Name      string
	Value     any
	DbType    DbType
	Size      int
	Direction Direction
}

// Reset clears all fields so the object can be handed to another borrower.
func (p *Parameter) Reset() {
	*p = Parameter{}
}
