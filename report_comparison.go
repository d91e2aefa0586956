package folioperf

// ComparisonReport holds the portfolio series and its benchmark mirror over
// the same range, with start-to-end returns and the portfolio's
// money-weighted annualized return.
type ComparisonReport struct {
	Range           Range
	Benchmark       string
	Strategy        BenchmarkStrategy
	Portfolio       []TimeSeriesPoint
	BenchmarkSeries []TimeSeriesPoint
	PortfolioMeta   Metadata
	BenchmarkMeta   Metadata
	PortfolioReturn Percent // simple start-to-end change of the series
	BenchmarkReturn Percent
	XIRR            float64 // annualized money-weighted rate, as a ratio
	XIRRValid       bool
}

// NewComparison reconstructs the portfolio over the range and replays its
// cash flows against the benchmark. The benchmark is seeded with the
// portfolio's first reconstructed value, at the date that value actually
// exists: seeding at the nominal range start instead would skew the
// comparison whenever the two series start on different trading days.
func NewComparison(ledger *Ledger, rng Range, lookup PriceLookup, benchmark string, strategy BenchmarkStrategy) *ComparisonReport {
	report := &ComparisonReport{Range: rng, Benchmark: benchmark, Strategy: strategy}

	report.Portfolio, report.PortfolioMeta = Reconstruct(ledger, rng, lookup)
	if report.PortfolioMeta.NoData {
		report.BenchmarkMeta = newMetadata(ReasonNoPriceData)
		return report
	}

	first := report.Portfolio[0]
	report.BenchmarkSeries, report.BenchmarkMeta = SimulateBenchmark(
		first.Value, first.Date, ledger, benchmark, lookup, rng.To, strategy)

	report.PortfolioReturn = seriesReturn(report.Portfolio)
	report.BenchmarkReturn = seriesReturn(report.BenchmarkSeries)

	last := report.Portfolio[len(report.Portfolio)-1]
	flows := PortfolioCashFlows(ledger, last.Value, last.Date)
	report.XIRR, report.XIRRValid = XIRR(flows, 0.1)

	return report
}

// XIRRPercent returns the annualized money-weighted return as a Percent, for
// display. Meaningless when XIRRValid is false.
func (r *ComparisonReport) XIRRPercent() Percent { return Percent(100 * r.XIRR) }

// seriesReturn computes the simple start-to-end percentage change of a series.
func seriesReturn(series []TimeSeriesPoint) Percent {
	if len(series) < 2 {
		return 0
	}
	start, end := series[0].Value, series[len(series)-1].Value
	if start.IsZero() {
		return 0
	}
	return Percent(100 * end.Sub(start).InexactFloat64() / start.InexactFloat64())
}
