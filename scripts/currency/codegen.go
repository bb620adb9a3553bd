package main

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
)

// currency mirrors one row of currency_data.csv: code, ISO 4217 numeric
// code (empty for crypto assets), minor-unit scale, display symbol, and
// kind ("fiat" or "crypto").
type currency struct {
	Code   string
	Num    string
	Scale  string
	Symbol string
	Kind   string
}

func main() {
	data, err := readCsvFile(filepath.Join("scripts", "currency", "currency_data.csv"))
	if err != nil {
		panic(fmt.Errorf("error reading CSV file: %v", err))
	}

	currs := convertDataToCurrencies(data)

	code, err := generateGoCode(filepath.Join("scripts", "currency", "currency_data.tmpl"), currs)
	if err != nil {
		panic(fmt.Errorf("error generating Go code: %v", err))
	}

	if err := writeToFile("currency_data.go", code); err != nil {
		panic(fmt.Errorf("error writing to file: %v", err))
	}
}

func readCsvFile(filename string) ([][]string, error) {
	in, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	reader := csv.NewReader(in)
	if _, err := reader.Read(); err != nil { // header
		return nil, err
	}
	return reader.ReadAll()
}

func convertDataToCurrencies(data [][]string) []currency {
	less := func(i, j int) bool {
		a, b := data[i][0], data[j][0]
		if a == "XXX" {
			return true
		}
		return a < b
	}
	sort.Slice(data, less)

	currs := make([]currency, 0, len(data))
	for _, rec := range data {
		currs = append(currs, currency{
			Code:   rec[0],
			Num:    rec[1],
			Scale:  rec[2],
			Symbol: rec[3],
			Kind:   rec[4],
		})
	}
	return currs
}

func generateGoCode(filename string, currs []currency) ([]byte, error) {
	fmap := template.FuncMap{
		"lower": strings.ToLower,
	}
	tmpl, err := template.New(filepath.Base(filename)).Funcs(fmap).ParseFiles(filename)
	if err != nil {
		return nil, err
	}

	var output bytes.Buffer
	if err := tmpl.Execute(&output, currs); err != nil {
		return nil, err
	}

	return format.Source(output.Bytes())
}

func writeToFile(filename string, content []byte) error {
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	writer := bufio.NewWriter(out)
	if _, err := writer.Write(content); err != nil {
		return err
	}
	return writer.Flush()
}
