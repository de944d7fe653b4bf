package repository

import "testing"

func TestLikeOperatorByDialect(t *testing.T) {
	if got := likeOperatorByDialect("postgres"); got != "ILIKE" {
		t.Fatalf("postgres operator want ILIKE got %s", got)
	}
	if got := likeOperatorByDialect(" PostgreSQL "); got != "ILIKE" {
		t.Fatalf("postgresql operator want ILIKE got %s", got)
	}
	if got := likeOperatorByDialect("sqlite"); got != "LIKE" {
		t.Fatalf("sqlite operator want LIKE got %s", got)
	}
	if got := likeOperatorByDialect(""); got != "LIKE" {
		t.Fatalf("empty dialect operator want LIKE got %s", got)
	}
}

func TestBuildKeywordConditionSQLite(t *testing.T) {
	condition, args := buildKeywordConditionByDialect("sqlite", "drill", "name", "sku")
	want := "name LIKE ? OR sku LIKE ?"
	if condition != want {
		t.Fatalf("condition want %q got %q", want, condition)
	}
	if len(args) != 2 {
		t.Fatalf("args len want 2 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%drill%" {
			t.Fatalf("args[%d] want %%drill%% got %v", idx, arg)
		}
	}
}

func TestBuildKeywordConditionPostgres(t *testing.T) {
	condition, _ := buildKeywordConditionByDialect("postgres", "drill", "name", "serial_number")
	want := "name ILIKE ? OR serial_number ILIKE ?"
	if condition != want {
		t.Fatalf("condition want %q got %q", want, condition)
	}
}

func TestBuildKeywordConditionSkipsBlankColumns(t *testing.T) {
	condition, args := buildKeywordConditionByDialect("sqlite", "ok", "email", "  ", "")
	if condition != "email LIKE ?" {
		t.Fatalf("condition want email LIKE ? got %q", condition)
	}
	if len(args) != 1 {
		t.Fatalf("args len want 1 got %d", len(args))
	}
}
