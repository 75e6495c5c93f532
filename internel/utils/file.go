package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"GoldLink/pkg/modem"

	"github.com/klauspost/compress/zstd"
)

// Column is one named waveform in an exported table.
type Column struct {
	Name   string
	Series modem.WaveSeries
}

type zstdWriter struct {
	*zstd.Encoder
	file *os.File
}

func (w zstdWriter) Close() error {
	if err := w.Encoder.Close(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

type zstdReader struct {
	*zstd.Decoder
	file *os.File
}

func (r zstdReader) Close() error {
	r.Decoder.Close()
	return r.file.Close()
}

// create opens filename for writing, compressing with zstd when the name ends in .zst
func create(filename string) (io.WriteCloser, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	if !strings.HasSuffix(filename, ".zst") {
		return file, nil
	}
	enc, err := zstd.NewWriter(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to start zstd: %w", err)
	}
	return zstdWriter{enc, file}, nil
}

func open(filename string) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	if !strings.HasSuffix(filename, ".zst") {
		return file, nil
	}
	dec, err := zstd.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to start zstd: %w", err)
	}
	return zstdReader{dec, file}, nil
}

// WriteSeries writes the columns as CSV: a time column taken from the longest
// series, then one amplitude column each. Shorter series leave their cells
// empty past their end.
func WriteSeries(filename string, columns ...Column) error {
	out, err := create(filename)
	if err != nil {
		return err
	}

	if err := writeSeries(out, columns); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

func writeSeries(out io.Writer, columns []Column) error {
	w := csv.NewWriter(out)

	header := []string{"time"}
	var longest modem.WaveSeries
	for _, c := range columns {
		header = append(header, c.Name)
		if len(c.Series) > len(longest) {
			longest = c.Series
		}
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	row := make([]string, len(header))
	for i, s := range longest {
		row[0] = strconv.FormatFloat(s.Time, 'g', -1, 64)
		for j, c := range columns {
			if i < len(c.Series) {
				row[j+1] = strconv.FormatFloat(c.Series[i].Amplitude, 'g', -1, 64)
			} else {
				row[j+1] = ""
			}
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ReadSeries reads a table written by WriteSeries.
func ReadSeries(filename string) ([]Column, error) {
	in, err := open(filename)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	records, err := csv.NewReader(in).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("failed to read file: %s has no header", filename)
	}

	columns := make([]Column, len(records[0])-1)
	for j := range columns {
		columns[j].Name = records[0][j+1]
	}
	for _, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		for j := range columns {
			if record[j+1] == "" {
				continue
			}
			a, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("failed to read file: %w", err)
			}
			columns[j].Series = append(columns[j].Series, modem.Sample{Time: t, Amplitude: a})
		}
	}
	return columns, nil
}
