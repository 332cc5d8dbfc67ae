package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schneegans/sponsorwall/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// table is a CSV export with a header row, addressed by column name.
type table struct {
	name   string // file name used in diagnostics
	header map[string]int
	rows   [][]string
}

// readTable loads a CSV file. A missing file is reported as found=false
// without error; every other I/O or syntax problem is fatal.
func readTable(path string) (t *table, found bool, err error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	t, err = parseTable(filepath.Base(path), f)
	if err != nil {
		return nil, true, err
	}
	return t, true, nil
}

func parseTable(name string, r io.Reader) (*table, error) {
	br := bufio.NewReader(r)
	if bom, _ := br.Peek(3); bytes.Equal(bom, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s: malformed CSV", name)
	}

	t := &table{name: name, header: map[string]int{}}
	if len(records) == 0 {
		return t, nil
	}
	for i, col := range records[0] {
		t.header[strings.TrimSpace(col)] = i
	}
	t.rows = records[1:]
	return t, nil
}

// require fails with ErrCodeMissingColumn naming the first absent column.
func (t *table) require(cols ...string) error {
	for _, col := range cols {
		if _, ok := t.header[col]; !ok {
			return errors.New(errors.ErrCodeMissingColumn, "%s: missing required column %q", t.name, col)
		}
	}
	return nil
}

// each calls fn for every data row in file order.
func (t *table) each(fn func(r row) error) error {
	for i, fields := range t.rows {
		if err := fn(row{t: t, line: i + 2, fields: fields}); err != nil {
			return err
		}
	}
	return nil
}

type row struct {
	t      *table
	line   int
	fields []string
}

// get returns the trimmed value of col, or "" for short rows.
func (r row) get(col string) string {
	i, ok := r.t.header[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r row) invalid(col string, cause error) error {
	return errors.Wrap(errors.ErrCodeInvalidValue, cause, "%s: line %d: column %q", r.t.name, r.line, col)
}

// validateAvatar checks a non-empty avatar column. A missing avatar only
// matters when rendering, so it is not rejected here.
func validateAvatar(ref string) error {
	if ref == "" {
		return nil
	}
	return errors.ValidateAvatarRef(ref)
}
