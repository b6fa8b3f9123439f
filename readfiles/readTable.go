package readfiles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrFile  = errors.New("unable to read file")
	ErrParse = errors.New("unable to parse input")
)

// Table is a rectangular block of numbers read from a text file, one row
// per data line. A table with no rows has a nil Data.
type Table struct {
	Data *mat.Dense
}

func (tb *Table) Dims() (r, c int) {
	if tb.Data == nil {
		return
	}
	return tb.Data.Dims()
}

func (tb *Table) At(i, j int) float64 {
	return tb.Data.At(i, j)
}

func (tb *Table) Col(j int) (col []float64) {
	if tb.Data == nil {
		return
	}
	return mat.Col(nil, j, tb.Data)
}

type lineReader struct {
	reader *bufio.Reader
	lineNo int
}

func (lr *lineReader) getLine() (line string, err error) {
	line, err = lr.reader.ReadString('\n')
	if err == io.EOF && len(line) != 0 {
		err = nil
	}
	if err != nil {
		return
	}
	lr.lineNo++
	line = strings.TrimRight(line, "\r\n")
	return
}

func (lr *lineReader) skipLines(n int) (err error) {
	for i := 0; i < n; i++ {
		if _, err = lr.getLine(); err != nil {
			if err == io.EOF {
				err = fmt.Errorf("early end of file, expected %d header lines, found %d: %w",
					n, i, ErrParse)
			}
			return
		}
	}
	return
}

// ReadTable skips headerLines lines and parses everything after them as
// whitespace separated floats. Blank lines and lines starting with # are
// ignored. Every row must have the same number of columns as the first.
func ReadTable(r io.Reader, headerLines int) (tb *Table, err error) {
	var (
		lr   = &lineReader{reader: bufio.NewReader(r)}
		line string
		data []float64
		nc   int
		nr   int
	)
	if err = lr.skipLines(headerLines); err != nil {
		return
	}
	for {
		if line, err = lr.getLine(); err != nil {
			if err == io.EOF {
				err = nil
				break
			}
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if nr == 0 {
			nc = len(fields)
		} else if len(fields) != nc {
			err = fmt.Errorf("line %d has %d columns, expected %d: %w",
				lr.lineNo, len(fields), nc, ErrParse)
			return
		}
		for _, field := range fields {
			var f float64
			if f, err = strconv.ParseFloat(field, 64); err != nil {
				err = fmt.Errorf("line %d: bad number [%s]: %w", lr.lineNo, field, ErrParse)
				return
			}
			data = append(data, f)
		}
		nr++
	}
	tb = &Table{}
	if nr != 0 {
		tb.Data = mat.NewDense(nr, nc, data)
	}
	return
}

func ReadTableFile(filename string, headerLines int) (tb *Table, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		err = fmt.Errorf("%w %s: %v", ErrFile, filename, err)
		return
	}
	defer file.Close()
	if tb, err = ReadTable(file, headerLines); err != nil {
		if !errors.Is(err, ErrParse) {
			err = fmt.Errorf("%w %s: %v", ErrFile, filename, err)
			return
		}
		err = fmt.Errorf("%s: %w", filename, err)
	}
	return
}
