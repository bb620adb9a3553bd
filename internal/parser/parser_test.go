package parser

import (
	"testing"

	"github.com/nasedkinpv/numr/internal/ast"
)

func TestParseLine_Empty(t *testing.T) {
	stmt, err := ParseLine("")
	if err != nil {
		t.Fatalf("ParseLine(\"\") failed: %v", err)
	}
	if _, ok := stmt.(*ast.EmptyStmt); !ok {
		t.Errorf("ParseLine(\"\") = %T, want *ast.EmptyStmt", stmt)
	}
}

func TestParseLine_CommentOnly(t *testing.T) {
	stmt, err := ParseLine("# a note")
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if _, ok := stmt.(*ast.EmptyStmt); !ok {
		t.Errorf("ParseLine(comment) = %T, want *ast.EmptyStmt", stmt)
	}
}

func TestParseLine_Assignment(t *testing.T) {
	stmt, err := ParseLine("price = 100")
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	assign, ok := stmt.(*ast.Assign)
	if !ok {
		t.Fatalf("ParseLine(\"price = 100\") = %T, want *ast.Assign", stmt)
	}
	if assign.Name != "price" {
		t.Errorf("Assign.Name = %q, want price", assign.Name)
	}
	if _, ok := assign.X.(*ast.NumberLit); !ok {
		t.Errorf("Assign.X = %T, want *ast.NumberLit", assign.X)
	}
}

func TestParseLine_Continuation(t *testing.T) {
	stmt, err := ParseLine("+ 50")
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	cont, ok := stmt.(*ast.Continuation)
	if !ok {
		t.Fatalf("ParseLine(\"+ 50\") = %T, want *ast.Continuation", stmt)
	}
	if cont.Op != "+" {
		t.Errorf("Continuation.Op = %q, want +", cont.Op)
	}
}

func TestParseLine_LeadingMinusIsUnaryNotContinuation(t *testing.T) {
	stmt, err := ParseLine("-5")
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	exprStmt, ok := stmt.(*ast.ExprStmt)
	if !ok {
		t.Fatalf("ParseLine(\"-5\") = %T, want *ast.ExprStmt", stmt)
	}
	if _, ok := exprStmt.X.(*ast.UnaryOp); !ok {
		t.Errorf("ParseLine(\"-5\").X = %T, want *ast.UnaryOp", exprStmt.X)
	}
}

func exprOf(t *testing.T, src string) ast.Expr {
	t.Helper()
	stmt, err := ParseLine(src)
	if err != nil {
		t.Fatalf("ParseLine(%q) failed: %v", src, err)
	}
	es, ok := stmt.(*ast.ExprStmt)
	if !ok {
		t.Fatalf("ParseLine(%q) = %T, want *ast.ExprStmt", src, stmt)
	}
	return es.X
}

func TestParseLine_PercentOf(t *testing.T) {
	x := exprOf(t, "20% of 150")
	po, ok := x.(*ast.PercentOf)
	if !ok {
		t.Fatalf("parse(\"20%% of 150\") = %T, want *ast.PercentOf", x)
	}
	if _, ok := po.Percent.(*ast.PercentSuffix); !ok {
		t.Errorf("PercentOf.Percent = %T, want *ast.PercentSuffix", po.Percent)
	}
}

func TestParseLine_MoneyLit_Prefix(t *testing.T) {
	x := exprOf(t, "$100")
	m, ok := x.(*ast.MoneyLit)
	if !ok {
		t.Fatalf("parse(\"$100\") = %T, want *ast.MoneyLit", x)
	}
	if m.Currency != "USD" || m.Amount != 100 {
		t.Errorf("MoneyLit = %+v, want {USD 100}", m)
	}
}

func TestParseLine_MoneyLit_Suffix(t *testing.T) {
	x := exprOf(t, "100 USD")
	m, ok := x.(*ast.MoneyLit)
	if !ok {
		t.Fatalf("parse(\"100 USD\") = %T, want *ast.MoneyLit", x)
	}
	if m.Currency != "USD" || m.Amount != 100 {
		t.Errorf("MoneyLit = %+v, want {USD 100}", m)
	}
}

func TestParseLine_QuantityLit_CompoundUnit(t *testing.T) {
	x := exprOf(t, "100 km/h")
	q, ok := x.(*ast.QuantityLit)
	if !ok {
		t.Fatalf("parse(\"100 km/h\") = %T, want *ast.QuantityLit", x)
	}
	if q.Unit != "km/h" || q.Magnitude != 100 {
		t.Errorf("QuantityLit = %+v, want {100 km/h}", q)
	}
}

func TestParseLine_Conversion(t *testing.T) {
	x := exprOf(t, "50 km/h in m/s")
	conv, ok := x.(*ast.Conversion)
	if !ok {
		t.Fatalf("parse(\"50 km/h in m/s\") = %T, want *ast.Conversion", x)
	}
	if conv.Target != "m/s" {
		t.Errorf("Conversion.Target = %q, want m/s", conv.Target)
	}
}

func TestParseLine_Call(t *testing.T) {
	x := exprOf(t, "sum(1, 2, 3)")
	call, ok := x.(*ast.Call)
	if !ok {
		t.Fatalf("parse(\"sum(1, 2, 3)\") = %T, want *ast.Call", x)
	}
	if call.Name != "sum" || len(call.Args) != 3 {
		t.Errorf("Call = %+v, want sum with 3 args", call)
	}
}

func TestParseLine_ExponentRightAssociative(t *testing.T) {
	x := exprOf(t, "2^3^2")
	pow, ok := x.(*ast.Power)
	if !ok {
		t.Fatalf("parse(\"2^3^2\") = %T, want *ast.Power", x)
	}
	if _, ok := pow.Y.(*ast.Power); !ok {
		t.Errorf("outer Power.Y = %T, want *ast.Power (right-associative)", pow.Y)
	}
}

func TestParseLine_PreviousResult(t *testing.T) {
	x := exprOf(t, "_")
	id, ok := x.(*ast.Ident)
	if !ok {
		t.Fatalf("parse(\"_\") = %T, want *ast.Ident", x)
	}
	if id.Name != "_" {
		t.Errorf("Ident.Name = %q, want _", id.Name)
	}
}

func TestParseLine_UnterminatedGroup(t *testing.T) {
	_, err := ParseLine("(1 + 2")
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("ParseLine(\"(1 + 2\") error = %v (%T), want *Error", err, err)
	}
	if perr.Kind != UnterminatedGroup {
		t.Errorf("Error.Kind = %v, want UnterminatedGroup", perr.Kind)
	}
}

func TestParseLine_TrailingInputRejected(t *testing.T) {
	_, err := ParseLine("5 5")
	if err == nil {
		t.Fatal("ParseLine(\"5 5\") succeeded, want error")
	}
}
