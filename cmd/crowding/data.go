package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/factor-crowding/internal/config"
	"github.com/yourusername/factor-crowding/internal/dataset"
)

const dateLayout = "2006-01-02"

// loadDeclaredSeries reads every series declared in the data configuration
// from its CSV file (date,value rows with a header) and applies the declared
// unit conversion.
func loadDeclaredSeries(data config.DataConfig, log logrus.FieldLogger) ([]dataset.RawSeries, error) {
	raw := make([]dataset.RawSeries, 0, len(data.Series))
	for _, spec := range data.Series {
		series, err := loadSeriesFile(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to load series %q: %w", spec.Name, err)
		}
		log.WithFields(logrus.Fields{
			"series": spec.Name,
			"rows":   len(series.Index),
			"path":   spec.Path,
		}).Info("Loaded input series")
		raw = append(raw, series)
	}
	return raw, nil
}

func loadSeriesFile(spec config.SeriesConfig) (dataset.RawSeries, error) {
	file, err := os.Open(spec.Path)
	if err != nil {
		return dataset.RawSeries{}, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return dataset.RawSeries{}, err
	}
	if len(records) < 2 {
		return dataset.RawSeries{}, fmt.Errorf("file %s has no data rows", spec.Path)
	}

	// Price series are parsed as decimals so the return computation divides
	// exact price levels.
	if spec.Prices {
		return seriesFromPrices(spec, records[1:])
	}

	series := dataset.RawSeries{Name: spec.Name}
	for i, record := range records[1:] {
		if len(record) < 2 {
			return dataset.RawSeries{}, fmt.Errorf("row %d of %s is malformed", i+2, spec.Path)
		}
		date, err := time.Parse(dateLayout, record[0])
		if err != nil {
			return dataset.RawSeries{}, fmt.Errorf("row %d of %s: %w", i+2, spec.Path, err)
		}
		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return dataset.RawSeries{}, fmt.Errorf("row %d of %s: %w", i+2, spec.Path, err)
		}
		series.Index = append(series.Index, date)
		series.Values = append(series.Values, value)
	}
	if spec.Percent {
		series.Values = dataset.PercentToDecimal(series.Values)
	}
	return series, nil
}

func seriesFromPrices(spec config.SeriesConfig, rows [][]string) (dataset.RawSeries, error) {
	series := dataset.RawSeries{Name: spec.Name}
	prices := make([]decimal.Decimal, 0, len(rows))
	for i, record := range rows {
		if len(record) < 2 {
			return dataset.RawSeries{}, fmt.Errorf("row %d of %s is malformed", i+2, spec.Path)
		}
		date, err := time.Parse(dateLayout, record[0])
		if err != nil {
			return dataset.RawSeries{}, fmt.Errorf("row %d of %s: %w", i+2, spec.Path, err)
		}
		price, err := decimal.NewFromString(record[1])
		if err != nil {
			return dataset.RawSeries{}, fmt.Errorf("row %d of %s: %w", i+2, spec.Path, err)
		}
		series.Index = append(series.Index, date)
		prices = append(prices, price)
	}
	series.Values = dataset.ReturnsFromPrices(prices)
	return series, nil
}
