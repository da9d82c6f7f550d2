package stub

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sofmon/backoffice/lib/catalog"
)

var errNoProduct = errors.New("no such product")

// store keeps products as JSON objects next to their id and type, the
// same object-column layout as a regular document table.
type store struct {
	db *sql.DB
}

func openStore() (s *store, err error) {

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return
	}

	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS "products" (
"id" INTEGER PRIMARY KEY AUTOINCREMENT,
"type" TEXT NOT NULL,
"object" BLOB NOT NULL)`)
	if err != nil {
		err = errors.Join(err, db.Close())
		return
	}

	s = &store{db: db}
	return
}

func (s *store) close() error {
	return s.db.Close()
}

func (s *store) insert(p catalog.Product) (id int, err error) {

	bytes, err := json.Marshal(p.WithoutID())
	if err != nil {
		return
	}

	res, err := s.db.Exec(`INSERT INTO "products" ("type","object") VALUES($1,$2)`, string(p.Type), bytes)
	if err != nil {
		return
	}

	lastID, err := res.LastInsertId()
	if err != nil {
		return
	}

	id = int(lastID)
	return
}

func (s *store) update(id int, p catalog.Product) (err error) {

	bytes, err := json.Marshal(p.WithoutID())
	if err != nil {
		return
	}

	res, err := s.db.Exec(`UPDATE "products" SET "type"=$1, "object"=$2 WHERE "id"=$3`, string(p.Type), bytes, id)
	if err != nil {
		return
	}

	n, err := res.RowsAffected()
	if err != nil {
		return
	}
	if n == 0 {
		err = errNoProduct
	}
	return
}

func (s *store) delete(id int) (err error) {

	res, err := s.db.Exec(`DELETE FROM "products" WHERE "id"=$1`, id)
	if err != nil {
		return
	}

	n, err := res.RowsAffected()
	if err != nil {
		return
	}
	if n == 0 {
		err = errNoProduct
	}
	return
}

func (s *store) selectByID(id int) (p catalog.Product, err error) {

	var bytes []byte

	err = s.db.QueryRow(`SELECT "object" FROM "products" WHERE "id"=$1`, id).Scan(&bytes)
	if err == sql.ErrNoRows {
		err = errNoProduct
		return
	}
	if err != nil {
		return
	}

	err = json.Unmarshal(bytes, &p)
	if err != nil {
		return
	}

	p = p.WithID(id)
	return
}

// selectByTypes returns products in id order; no types selects all of them.
func (s *store) selectByTypes(types []string) (products []catalog.Product, err error) {

	query := `SELECT "id", "object" FROM "products"`
	args := make([]any, len(types))

	if len(types) > 0 {
		placeholders := make([]string, len(types))
		for i, t := range types {
			placeholders[i] = "?"
			args[i] = t
		}
		query += ` WHERE "type" IN (` + strings.Join(placeholders, ",") + `)`
	}

	query += ` ORDER BY "id"`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return
	}
	defer rows.Close()

	products = []catalog.Product{}

	for rows.Next() {

		var (
			id    int
			bytes []byte
			p     catalog.Product
		)

		err = rows.Scan(&id, &bytes)
		if err != nil {
			return
		}

		err = json.Unmarshal(bytes, &p)
		if err != nil {
			return
		}

		products = append(products, p.WithID(id))
	}

	err = rows.Err()
	return
}
