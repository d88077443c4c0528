package config

import (
	"context"
	"strings"

	"github.com/namnm309/evdealer-backend/appctx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DealerGuardPlugin enforces dealer isolation by automatically scoping
// queries/updates/deletes to the request's dealer_id when the model has a dealer_id column.
//
// NOTE:
// - This does NOT apply to Raw SQL queries. Those must include dealer_id manually.
// - Manufacturer-side bypass (ADMIN / EVM_STAFF) is explicit via context flags.
type DealerGuardPlugin struct{}

func NewDealerGuardPlugin() *DealerGuardPlugin { return &DealerGuardPlugin{} }

func (p *DealerGuardPlugin) Name() string { return "dealer_guard" }

func (p *DealerGuardPlugin) Initialize(db *gorm.DB) error {
	// Query
	if err := db.Callback().Query().Before("gorm:query").Register("dealer_guard:query", dealerGuardCallback); err != nil {
		return err
	}
	// Row (First/Take)
	if err := db.Callback().Row().Before("gorm:row").Register("dealer_guard:row", dealerGuardCallback); err != nil {
		return err
	}
	// Update
	if err := db.Callback().Update().Before("gorm:update").Register("dealer_guard:update", dealerGuardWriteCallback); err != nil {
		return err
	}
	// Delete
	if err := db.Callback().Delete().Before("gorm:delete").Register("dealer_guard:delete", dealerGuardWriteCallback); err != nil {
		return err
	}
	return nil
}

func dealerGuardCallback(db *gorm.DB) {
	applyDealerScope(db, true)
}

// dealerGuardWriteCallback never trusts the statement's own dealer_id filter:
// updates and deletes are always pinned to the caller's dealer, so a statement
// aimed at another dealer's rows matches nothing. Cross-dealer writes that are
// legitimate (e.g. crediting a transfer destination) opt out via SkipDealerScope.
func dealerGuardWriteCallback(db *gorm.DB) {
	applyDealerScope(db, false)
}

func applyDealerScope(db *gorm.DB, trustExplicitFilter bool) {
	if db == nil || db.Statement == nil {
		return
	}
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	if shouldBypassDealerScope(ctx) {
		return
	}
	dealerID := dealerIdFromContext(ctx)
	if dealerID <= 0 {
		return
	}

	// Only apply if the current model/table includes a dealer_id column.
	if db.Statement.Schema == nil {
		return
	}
	hasDealerID := false
	for _, f := range db.Statement.Schema.Fields {
		if strings.EqualFold(f.DBName, "dealer_id") {
			hasDealerID = true
			break
		}
	}
	if !hasDealerID {
		return
	}

	// On reads an explicit dealer filter is left alone (handlers resolve the
	// caller's scope before building one). Writes always get pinned.
	if trustExplicitFilter && whereHasDealerID(db.Statement.Clauses["WHERE"]) {
		return
	}

	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: db.Statement.Table, Name: "dealer_id"},
				Value:  dealerID,
			},
		},
	})
}

func dealerIdFromContext(ctx context.Context) int {
	if v, ok := ctx.Value(appctx.ContextKeyDealerId).(int); ok && v > 0 {
		return v
	}
	return 0
}

func shouldBypassDealerScope(ctx context.Context) bool {
	if v, ok := ctx.Value(appctx.ContextKeySkipDealerScope).(bool); ok && v {
		return true
	}
	if v, ok := ctx.Value(appctx.ContextKeyIsManufacturer).(bool); ok && v {
		return true
	}
	return false
}

func whereHasDealerID(c clause.Clause) bool {
	if c.Expression == nil {
		return false
	}
	w, ok := c.Expression.(clause.Where)
	if !ok {
		return false
	}
	for _, e := range w.Exprs {
		if exprHasDealerID(e) {
			return true
		}
	}
	return false
}

func exprHasDealerID(e clause.Expression) bool {
	switch v := e.(type) {
	case clause.Eq:
		return colIsDealerID(v.Column)
	case clause.Neq:
		return colIsDealerID(v.Column)
	case clause.Gt:
		return colIsDealerID(v.Column)
	case clause.Gte:
		return colIsDealerID(v.Column)
	case clause.Lt:
		return colIsDealerID(v.Column)
	case clause.Lte:
		return colIsDealerID(v.Column)
	case clause.IN:
		return colIsDealerID(v.Column)
	case clause.AndConditions:
		for _, x := range v.Exprs {
			if exprHasDealerID(x) {
				return true
			}
		}
		return false
	case clause.OrConditions:
		for _, x := range v.Exprs {
			if exprHasDealerID(x) {
				return true
			}
		}
		return false
	case clause.Expr:
		// Best-effort for raw expressions.
		return strings.Contains(strings.ToLower(v.SQL), "dealer_id")
	default:
		return false
	}
}

func colIsDealerID(col any) bool {
	switch c := col.(type) {
	case string:
		return strings.EqualFold(c, "dealer_id")
	case clause.Column:
		return strings.EqualFold(c.Name, "dealer_id")
	default:
		return false
	}
}
