package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// Parser converts the raw text of one statement export into transaction records.
type Parser interface {
	Parse(r io.Reader) ([]model.TransactionRecord, error)
	Format() string
}

// Layout names a statement line layout.
type Layout string

const (
	// LayoutRow is "date <ignored> description... <filler> <filler> amount", one record per line.
	LayoutRow Layout = "row"
	// LayoutColumnar is three equal blocks of lines: dates, descriptions, amounts.
	LayoutColumnar Layout = "columnar"
	// LayoutDualDate is "[MM/DD] MM/DD description... amount", one record per line.
	LayoutDualDate Layout = "dual-date"
)

// Layouts lists every supported layout.
var Layouts = []Layout{LayoutRow, LayoutColumnar, LayoutDualDate}

// New builds the parser for layout. titleCase turns on title-casing of descriptions.
func New(layout Layout, format string, titleCase bool) (Parser, error) {
	switch layout {
	case LayoutRow:
		return &RowParser{Name: format, TitleCase: titleCase}, nil
	case LayoutColumnar:
		return &ColumnarParser{Name: format, TitleCase: titleCase}, nil
	case LayoutDualDate:
		return &DualDateParser{Name: format, TitleCase: titleCase}, nil
	}
	return nil, fmt.Errorf("unknown statement layout %q (want one of %v)", layout, Layouts)
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
	order   []string
}

// FileInfo describes a statement file in an input directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
	r.order = append(r.order, key)
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered format names in registration order.
func (r *Registry) Formats() []string {
	return append([]string(nil), r.order...)
}

// ParseFile opens path and runs p over it. Errors name the file.
func ParseFile(p Parser, path string) ([]model.TransactionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	recs, err := p.Parse(f)
	if err != nil {
		return nil, model.WithSource(err, path)
	}
	return recs, nil
}

// Scan returns the statement files directly inside dir, sorted by name.
// Sub-directories and hidden files are skipped. ext filters by extension
// (case-insensitive, e.g. ".pdf"); empty accepts every file.
func Scan(dir, ext string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if ext != "" && !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// readLines returns every line of r without line endings.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	return lines, nil
}
