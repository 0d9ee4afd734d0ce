package calc

import "strings"

// Programmer operations understood by the calculation service.
const (
	OpToBase = "to_base"
	OpBitAnd = "bit_and"
	OpBitOr  = "bit_or"
	OpBitXor = "bit_xor"
	OpBitNot = "bit_not"
	OpShl    = "shl"
	OpShr    = "shr"
)

// Date operations understood by the calculation service.
const (
	DateOpDiff = "diff"
	DateOpAdd  = "add"
	DateOpSub  = "sub"
)

// BitwiseOps lists the bitwise operations in selector order.
var BitwiseOps = []string{OpBitAnd, OpBitOr, OpBitXor, OpBitNot, OpShl, OpShr}

// DateOps lists the date operations in selector order.
var DateOps = []string{DateOpDiff, DateOpAdd, DateOpSub}

// Bases lists the radixes accepted by the to_base conversion.
var Bases = []string{"2", "8", "10", "16"}

// DateLayout is the ISO calendar date format used by date fields.
const DateLayout = "2006-01-02"

// CalculationRequest is a payload for the calculate endpoint. The concrete
// shape depends on the mode that built it.
type CalculationRequest interface {
	RequestMode() Mode
}

// ExpressionRequest evaluates a free-form expression in standard or
// scientific mode.
type ExpressionRequest struct {
	Mode       Mode   `json:"mode"`
	Expression string `json:"expression"`
}

// ToBaseRequest converts a number to another radix.
type ToBaseRequest struct {
	Mode   Mode   `json:"mode"`
	Op     string `json:"op"`
	Number Int    `json:"number"`
	Base   Int    `json:"base"`
}

// BitwiseRequest applies a bitwise operation. Other is omitted when there is
// no second operand; the service reads its absence as "unary".
type BitwiseRequest struct {
	Mode   Mode   `json:"mode"`
	Op     string `json:"op"`
	Number Int    `json:"number"`
	Other  *int64 `json:"other,omitempty"`
}

// DateRequest performs date arithmetic. Days is always present and encodes
// as null when the field could not be parsed.
type DateRequest struct {
	Mode   Mode   `json:"mode"`
	DateOp string `json:"date_op"`
	Date1  string `json:"date1"`
	Date2  string `json:"date2"`
	Days   Int    `json:"days"`
}

// GraphRequest samples f(x) over [XMin, XMax] on the graph endpoint.
type GraphRequest struct {
	Expression string `json:"expression"`
	XMin       Float  `json:"x_min"`
	XMax       Float  `json:"x_max"`
	Samples    Int    `json:"samples"`
}

func (r ExpressionRequest) RequestMode() Mode { return r.Mode }
func (r ToBaseRequest) RequestMode() Mode     { return r.Mode }
func (r BitwiseRequest) RequestMode() Mode    { return r.Mode }
func (r DateRequest) RequestMode() Mode       { return r.Mode }

// NewExpressionRequest builds an expression payload. It reports false when
// the trimmed expression is empty, in which case nothing should be sent.
func NewExpressionRequest(mode Mode, expression string) (ExpressionRequest, bool) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return ExpressionRequest{}, false
	}
	return ExpressionRequest{Mode: mode, Expression: expression}, true
}

// NewToBaseRequest builds a radix conversion payload from raw field values.
func NewToBaseRequest(number, base string) ToBaseRequest {
	return ToBaseRequest{
		Mode:   ModeProgrammer,
		Op:     OpToBase,
		Number: ParseInt(number),
		Base:   ParseInt(base),
	}
}

// NewBitwiseRequest builds a bitwise payload. The second operand is included
// only when it parses and the operation is not the unary complement.
func NewBitwiseRequest(op, number, other string) BitwiseRequest {
	req := BitwiseRequest{
		Mode:   ModeProgrammer,
		Op:     op,
		Number: ParseInt(number),
	}
	if operand := ParseInt(other); operand.Valid && op != OpBitNot {
		req.Other = operand.Ptr()
	}
	return req
}

// NewDateRequest builds a date arithmetic payload.
func NewDateRequest(op, date1, date2, days string) DateRequest {
	return DateRequest{
		Mode:   ModeDate,
		DateOp: op,
		Date1:  date1,
		Date2:  date2,
		Days:   ParseInt(days),
	}
}

// NewGraphRequest builds a graph payload. Range and sample values are
// forwarded without validation; only an empty expression is rejected.
func NewGraphRequest(expression, xMin, xMax, samples string) (GraphRequest, bool) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return GraphRequest{}, false
	}
	return GraphRequest{
		Expression: expression,
		XMin:       ParseFloat(xMin),
		XMax:       ParseFloat(xMax),
		Samples:    ParseInt(samples),
	}, true
}
