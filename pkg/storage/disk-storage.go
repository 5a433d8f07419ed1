package storage

import (
	"bytes"
	"compress/gzip"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/matst80/slask-table/pkg/types"
)

//go:embed data.json
var bundledData []byte

// LoadBundledRecords decodes the dataset shipped with the binary.
func LoadBundledRecords() ([]types.Record, error) {
	records, err := decodeRecords(bytes.NewReader(bundledData))
	if err != nil {
		return nil, fmt.Errorf("bundled dataset: %w", err)
	}
	return records, nil
}

// LoadRecords reads a JSON array of records. Files ending in .gz are
// decompressed first. An empty name loads the bundled dataset.
func (d *DiskStorage) LoadRecords(name string) ([]types.Record, error) {
	if name == "" {
		return LoadBundledRecords()
	}
	var records []types.Record
	var err error
	if strings.HasSuffix(name, ".gz") {
		err = d.LoadGzippedJson(&records, name)
	} else {
		err = d.LoadJson(&records, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", name, err)
	}
	assignIds(records)
	logInvalidDates(records)
	return records, nil
}

func decodeRecords(r io.Reader) ([]types.Record, error) {
	var records []types.Record
	if err := sonic.ConfigDefault.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	assignIds(records)
	logInvalidDates(records)
	return records, nil
}

func assignIds(records []types.Record) {
	for i := range records {
		records[i].Id = types.ItemId(i)
	}
}

func logInvalidDates(records []types.Record) {
	invalid := 0
	for i := range records {
		if !records[i].CreatedAt.Valid || !records[i].UpdatedAt.Valid {
			invalid++
		}
	}
	if invalid > 0 {
		zap.L().Warn("records with unparseable timestamps", zap.Int("count", invalid))
	}
}

func (p *DiskStorage) LoadGzippedJson(data any, filename string) error {
	file, err := os.Open(p.GetFileName(filename))
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	err = sonic.ConfigDefault.NewDecoder(zipReader).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (p *DiskStorage) LoadJson(data any, filename string) error {
	file, err := os.Open(p.GetFileName(filename))
	if err != nil {
		return err
	}
	defer file.Close()

	err = sonic.ConfigDefault.NewDecoder(file).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
