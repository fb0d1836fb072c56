// Package filter composes optional search predicates into a single SQL condition.
//
// Every criterion is optional. A blank text value, a blank flag or a blank/"0"
// related id contributes nothing; the remaining predicates are joined with AND.
// With no predicate at all the query is left unfiltered.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"xpose-backend/internal/shared/apperror"
	"xpose-backend/internal/shared/utils"

	sq "github.com/Masterminds/squirrel"
)

// Psql is the statement builder shared by every repository.
var Psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type Builder struct {
	preds []sq.Sqlizer
	err   error
}

func New() *Builder {
	return &Builder{}
}

// Contains matches rows whose column contains value, ignoring case and accents.
// Both sides are folded: the column via lower(unaccent(...)), the value in Go.
func (b *Builder) Contains(column, value string) *Builder {
	value = strings.TrimSpace(value)
	if value == "" {
		return b
	}
	pattern := "%" + likeEscaper.Replace(utils.Fold(value)) + "%"
	b.preds = append(b.preds, sq.Expr(fmt.Sprintf("lower(unaccent(%s)) LIKE ?", column), pattern))
	return b
}

// ParseFlag reads an optional boolean criterion. A blank value is unset.
func ParseFlag(raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a boolean", apperror.ErrInvalid, raw)
	}
	return &v, nil
}

// Bool matches rows whose column equals the parsed flag. A blank raw value
// adds nothing.
func (b *Builder) Bool(column, raw string) *Builder {
	value, err := ParseFlag(raw)
	if err != nil {
		if b.err == nil {
			b.err = fmt.Errorf("%s: %w", column, err)
		}
		return b
	}
	if value == nil {
		return b
	}
	b.preds = append(b.preds, sq.Eq{column: *value})
	return b
}

// Related matches rows linked to id through a junction table:
// EXISTS (SELECT 1 FROM joinTable WHERE joinTable.ownerCol = ownerKey AND joinTable.relCol = id).
// A blank id or "0" means no filter; anything else must be a positive integer.
func (b *Builder) Related(joinTable, ownerCol, relCol, ownerKey, id string) *Builder {
	parsed, ok, err := utils.ParseOptionalID(id)
	if err != nil {
		if b.err == nil {
			b.err = fmt.Errorf("%w: %s: %v", apperror.ErrInvalid, relCol, err)
		}
		return b
	}
	if !ok {
		return b
	}
	b.preds = append(b.preds, sq.Expr(
		fmt.Sprintf("EXISTS (SELECT 1 FROM %[1]s WHERE %[1]s.%[2]s = %[3]s AND %[1]s.%[4]s = ?)",
			joinTable, ownerCol, ownerKey, relCol),
		parsed,
	))
	return b
}

// Err returns the first malformed criterion, if any. It wraps apperror.ErrInvalid.
func (b *Builder) Err() error { return b.err }

// Empty reports whether no predicate was added.
func (b *Builder) Empty() bool { return len(b.preds) == 0 }

// Sqlizer returns the conjunction of all predicates.
func (b *Builder) Sqlizer() sq.Sqlizer {
	return sq.And(b.preds)
}

// Apply adds the conjunction to q. An empty builder leaves q untouched.
func (b *Builder) Apply(q sq.SelectBuilder) sq.SelectBuilder {
	if b.Empty() {
		return q
	}
	return q.Where(b.Sqlizer())
}
