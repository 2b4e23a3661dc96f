package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/amonks/klamu/data"
	"gorm.io/gorm"
)

// A cond is one "where" term of a natural key.
type cond struct {
	sql string
	arg any
}

// folded matches a text column case-insensitively.
func folded(column, value string) cond {
	return cond{sql: fmt.Sprintf("fold(%s) = fold(?)", column), arg: value}
}

func equal(column string, value any) cond {
	return cond{sql: column + " = ?", arg: value}
}

// duplicates returns the ids of the rows in table matching every cond.
func duplicates(tx *gorm.DB, table string, conds ...cond) ([]int64, error) {
	q := tx.Table(table)
	for _, c := range conds {
		q = q.Where(c.sql, c.arg)
	}
	var ids []int64
	if err := q.Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("error looking for duplicates in '%s': %w", table, err)
	}
	return ids, nil
}

func exists(tx *gorm.DB, table string, id int64) (bool, error) {
	var count int64
	if err := tx.Table(table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("error looking up %s %d: %w", table, id, err)
	}
	return count > 0, nil
}

// checkUnique decides whether the row with the given id (0 for a new row)
// may be saved under a natural key already held by the rows in dups. If it
// may not, it returns the failing Result and false. Otherwise it returns a
// successful Result carrying the message to report after saving.
func checkUnique(label string, id int64, dups []int64) (data.Result, bool) {
	switch {
	case len(dups) > 1:
		return data.Failure(data.NoID, label+" is niet uniek!"), false
	case id == 0 && len(dups) == 1:
		return data.Failure(dups[0], label+" niet toegevoegd, bestaat al."), false
	case id == 0:
		return data.Success(0, label+" is toegevoegd."), true
	case len(dups) == 1 && dups[0] != id:
		return data.Failure(dups[0], label+" niet aangepast, bestaat al."), false
	case len(dups) == 1:
		return data.Success(id, label+" is niet veranderd."), true
	default:
		return data.Success(id, label+" is aangepast."), true
	}
}

// A ref is a row that the row being saved points to.
type ref struct {
	table string
	label string
	id    int64
}

// missingRef returns the failing Result for the first ref whose row does
// not exist.
func missingRef(tx *gorm.DB, refs ...ref) (data.Result, bool, error) {
	for _, r := range refs {
		found, err := exists(tx, r.table, r.id)
		if err != nil {
			return data.Result{}, false, err
		}
		if !found {
			return data.Failure(data.NoID, fmt.Sprintf("%s (id: %d) is niet gevonden!", r.label, r.id)), true, nil
		}
	}
	return data.Result{}, false, nil
}

// An upsert describes a guarded insert (id 0) or edit of one row.
type upsert struct {
	table string
	label string
	id    int64
	key   []cond
	refs  []ref

	insert func(tx *gorm.DB) (int64, error)
	update func(tx *gorm.DB) error
}

func (db *DB) guardedUpsert(ctx context.Context, up upsert) (data.Result, error) {
	var res data.Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if up.id != 0 {
			found, err := exists(tx, up.table, up.id)
			if err != nil {
				return err
			}
			if !found {
				res = data.Failure(data.NoID, fmt.Sprintf("%s (id: %d) is niet gevonden!", up.label, up.id))
				return nil
			}
		}

		if missing, ok, err := missingRef(tx, up.refs...); err != nil {
			return err
		} else if ok {
			res = missing
			return nil
		}

		dups, err := duplicates(tx, up.table, up.key...)
		if err != nil {
			return err
		}
		var ok bool
		if res, ok = checkUnique(up.label, up.id, dups); !ok {
			return nil
		}

		if up.id == 0 {
			id, err := up.insert(tx)
			if err != nil {
				return fmt.Errorf("error inserting %s: %w", up.label, err)
			}
			res.ID = id
			return nil
		}
		if err := up.update(tx); err != nil {
			return fmt.Errorf("error updating %s (id: %d): %w", up.label, up.id, err)
		}
		return nil
	})
	if err != nil {
		return data.Result{}, err
	}
	db.logResult(up.table, res)
	return res, nil
}

// A dependents rule names the rows that keep a row from being deleted.
type dependents struct {
	table  string
	column string
	noun   string
}

// guardedDelete deletes the row of type T with the given id, unless rows
// matching dep still refer to it. what names the kind of row in messages
// and label describes a found row.
func guardedDelete[T any](ctx context.Context, db *DB, what string, id int64, label func(T) string, dep *dependents) (data.Result, error) {
	var res data.Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row T
		if err := tx.First(&row, id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			res = data.Failure(data.NoID, fmt.Sprintf("%s (id: %d) is niet gevonden!", what, id))
			return nil
		} else if err != nil {
			return fmt.Errorf("error getting %s %d: %w", what, id, err)
		}
		name := label(row)

		if dep != nil {
			var count int64
			if err := tx.
				Table(dep.table).
				Where(dep.column+" = ?", id).
				Count(&count).
				Error; err != nil {
				return fmt.Errorf("error counting %s of %s: %w", dep.noun, name, err)
			}
			if count > 0 {
				res = data.Failure(id, fmt.Sprintf("%s is nog verbonden met %d %s.", name, count, dep.noun))
				return nil
			}
		}

		if err := tx.Delete(&row).Error; err != nil {
			return fmt.Errorf("error deleting %s: %w", name, err)
		}
		res = data.Success(data.NoID, name+" is verwijderd.")
		return nil
	})
	if err != nil {
		return data.Result{}, err
	}
	db.logResult(what, res)
	return res, nil
}

func (db *DB) logResult(what string, res data.Result) {
	entry := db.log.WithField("table", what).WithField("id", res.ID)
	if res.OK() {
		entry.Info(res.Msg)
	} else {
		entry.Warn(res.Msg)
	}
}

func get[T any](ctx context.Context, db *DB, what string, id int64) (*T, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, fmt.Errorf("error getting %s %d: %w", what, id, err)
	}
	return &row, nil
}
