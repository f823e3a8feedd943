package similarity

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/testgraph/pkg/errors"
)

// rawDataset mirrors the report service response. Pointers distinguish a
// missing key from an empty value.
type rawDataset struct {
	LCS     *rawReport `json:"lcs_report"`
	Cosine  *rawReport `json:"cosine_report"`
	Jaccard *rawReport `json:"jaccard_report"`
}

type rawReport struct {
	SimilarityType string           `json:"similarity_type"`
	Comparisons    *[]rawComparison `json:"comparisons"`
}

// rawComparison accepts both identifier spellings seen across producers.
type rawComparison struct {
	TestA      *string  `json:"testA"`
	TestASnake *string  `json:"test_a"`
	TestB      *string  `json:"testB"`
	TestBSnake *string  `json:"test_b"`
	Similarity *float64 `json:"similarity"`
}

func (d *rawDataset) report(m Metric) *rawReport {
	switch m {
	case MetricLCS:
		return d.LCS
	case MetricCosine:
		return d.Cosine
	case MetricJaccard:
		return d.Jaccard
	}
	return nil
}

// Decode parses a similarity dataset document.
//
// Comparison identifiers are normalized: "testA" and "test_a" (likewise
// "testB" and "test_b") are interchangeable, and when a record carries both
// spellings the non-empty camelCase value wins. An identifier that is present
// but empty counts as missing, so "" is never accepted as a test id. A report
// without "similarity_type" is labelled with its metric name.
//
// Decode fails with MALFORMED_INPUT if the document is not a single valid
// JSON value of the expected shape, a report or its comparison list is
// missing, or a comparison lacks a test identifier or a numeric similarity.
func Decode(data []byte) (Dataset, error) {
	var raw rawDataset
	if err := json.Unmarshal(data, &raw); err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode similarity dataset")
	}

	var ds Dataset
	for _, m := range MetricOrder {
		r, err := normalizeReport(m, raw.report(m))
		if err != nil {
			return Dataset{}, err
		}
		*ds.Report(m) = r
	}
	return ds, nil
}

// ReadDataset decodes a dataset from r. It does not close r.
func ReadDataset(r io.Reader) (Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Dataset{}, fmt.Errorf("read: %w", err)
	}
	return Decode(data)
}

// ReadDatasetFile decodes the dataset stored at path.
func ReadDatasetFile(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Dataset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Dataset{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data)
}

func normalizeReport(m Metric, raw *rawReport) (Report, error) {
	if raw == nil {
		return Report{}, errors.Malformed("missing %s", m.Key())
	}
	if raw.Comparisons == nil {
		return Report{}, errors.Malformed("%s: missing comparisons", m.Key())
	}

	r := Report{
		SimilarityType: raw.SimilarityType,
		Comparisons:    make([]Comparison, 0, len(*raw.Comparisons)),
	}
	if r.SimilarityType == "" {
		r.SimilarityType = string(m)
	}

	for i, rc := range *raw.Comparisons {
		a, ok := pick(rc.TestA, rc.TestASnake)
		if !ok {
			return Report{}, errors.Malformed("%s: comparison %d: missing testA", m.Key(), i)
		}
		b, ok := pick(rc.TestB, rc.TestBSnake)
		if !ok {
			return Report{}, errors.Malformed("%s: comparison %d: missing testB", m.Key(), i)
		}
		if rc.Similarity == nil {
			return Report{}, errors.Malformed("%s: comparison %d: missing similarity", m.Key(), i)
		}
		r.Comparisons = append(r.Comparisons, Comparison{TestA: a, TestB: b, Similarity: *rc.Similarity})
	}
	return r, nil
}

// pick returns the first non-empty spelling.
func pick(camel, snake *string) (string, bool) {
	if camel != nil && *camel != "" {
		return *camel, true
	}
	if snake != nil && *snake != "" {
		return *snake, true
	}
	return "", false
}
