package analysis

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/rentfolio/internal/common"
	"github.com/bobmcallan/rentfolio/internal/interfaces"
	"github.com/bobmcallan/rentfolio/internal/models"
)

// minListingsForMedian is the number of real rent estimates required before
// the batch median rent-to-price ratio replaces the configured fallback.
const minListingsForMedian = 5

// defaultBatchWorkers caps concurrent per-listing analyses in a batch.
const defaultBatchWorkers = 8

// Service implements AnalysisService.
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
	workers int
}

// NewService creates a new analysis service. storage may be nil, in which
// case batch results are not persisted as snapshots.
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		workers: defaultBatchWorkers,
	}
}

// Analyze produces the full investment projection for one listing. It is a
// pure function of (listing, params): degenerate numeric inputs degrade to
// defined fallback values and never produce an error.
func (s *Service) Analyze(listing models.Listing, params models.AnalysisParams) *models.AnalysisResult {
	// A negative holding period degrades to an empty schedule, like the
	// termYears <= 0 guard in MonthlyPayment.
	if params.HoldingYears < 0 {
		params.HoldingYears = 0
	}

	price := listing.Price
	monthlyRent, rentFallback := resolveMonthlyRent(listing, params.FallbackRentRatio)

	up := computeUpfront(price, params)
	snapshot := projectYearOne(listing, params, monthlyRent, up)
	sched := projectSchedule(listing, params, monthlyRent, up)

	// Exit economics at the end of the holding period.
	years := params.HoldingYears
	futureValue := price
	if years > 0 {
		futureValue = sched.Equity[years-1].PropertyValue
	}
	remaining := RemainingBalance(up.LoanAmount, params.InterestRatePct, params.LoanTermYears, years)
	sellCosts := futureValue * params.SellClosingCostPct / 100
	netSaleProceeds := futureValue - remaining - sellCosts

	// IRR sequence: initial outflow, then annual cash flows with the sale
	// proceeds folded into the final year only.
	flows := make([]float64, 0, years+1)
	flows = append(flows, -up.InitialInvestment)
	flows = append(flows, sched.CashFlows...)
	if len(flows) > 1 {
		flows[len(flows)-1] += netSaleProceeds
	}
	irr := SolveIRR(flows)

	totalCashFlow := 0.0
	for _, cf := range sched.CashFlows {
		totalCashFlow += cf
	}
	totalProfit := totalCashFlow + netSaleProceeds - up.InitialInvestment

	annualizedROI := 0.0
	if up.InitialInvestment > 0 && years > 0 {
		annualizedROI = totalProfit / up.InitialInvestment / float64(years) * 100
	}

	paths := buildWealthPaths(price, params, up, sched)

	return &models.AnalysisResult{
		ZPID:         listing.ZPID,
		Address:      listing.FullAddress(),
		Price:        price,
		MonthlyRent:  monthlyRent,
		RentFallback: rentFallback,
		HoldingYears: years,

		InitialInvestment: up.InitialInvestment,
		DownPayment:       up.DownPayment,
		BuyClosingCosts:   up.BuyClosingCosts,
		LoanAmount:        up.LoanAmount,

		MonthlyPayment:       snapshot.MonthlyPayment,
		MonthlyCashFlow:      snapshot.MonthlyCashFlow,
		AnnualCashFlow:       snapshot.AnnualCashFlow,
		TotalMonthlyExpenses: snapshot.TotalMonthlyExpenses,
		EffectiveMonthlyRent: snapshot.EffectiveMonthlyRent,
		CapRatePct:           snapshot.CapRatePct,
		CashOnCashPct:        snapshot.CashOnCashPct,

		FutureValue:       futureValue,
		RemainingMortgage: remaining,
		SellClosingCosts:  sellCosts,
		NetSaleProceeds:   netSaleProceeds,

		TotalProfit:      totalProfit,
		AnnualizedROIPct: annualizedROI,
		IRRPct:           irr.Rate,
		IRRFound:         irr.Found,

		EquityGrowth:      sched.Equity,
		AnnualCashFlows:   sched.CashFlows,
		PropertyWealth:    paths.Property,
		BenchmarkWealth:   paths.Benchmark,
		BenchmarkDeployed: paths.Deployed,

		QualityFlags: detectQualityFlags(listing, monthlyRent, rentFallback, up),
	}
}

// AnalyzeBatch analyzes every listing against one shared parameter set.
// The fallback rent ratio is resolved once up front and threaded into each
// Analyze call, so per-listing results stay order-independent and pure.
func (s *Service) AnalyzeBatch(ctx context.Context, listings []models.Listing, params models.AnalysisParams) (*models.BatchResult, error) {
	start := time.Now()

	params.FallbackRentRatio = resolveFallbackRatio(listings, params.FallbackRentRatio)

	results := make([]*models.AnalysisResult, len(listings))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range listings {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.Analyze(listings[i], params)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &models.BatchResult{
		Results: make(map[string]*models.AnalysisResult, len(results)),
		Params:  params,
	}
	for _, r := range results {
		batch.Results[r.ZPID] = r
	}
	batch.Summary = summarize(results, params.FallbackRentRatio)

	s.persistSnapshots(ctx, results, params)

	s.logger.Info().
		Int("listings", len(listings)).
		Float64("fallbackRatio", params.FallbackRentRatio).
		Dur("elapsed", time.Since(start)).
		Msg("Batch analysis complete")

	return batch, nil
}

// persistSnapshots stores one snapshot per result. Persistence failures are
// logged and do not fail the batch.
func (s *Service) persistSnapshots(ctx context.Context, results []*models.AnalysisResult, params models.AnalysisParams) {
	if s.storage == nil {
		return
	}
	hash := params.Hash()
	for _, r := range results {
		snap := &models.AnalysisSnapshot{
			ID:         models.SnapshotKey(r.ZPID, hash),
			ZPID:       r.ZPID,
			ParamsHash: hash,
			Params:     params,
			Result:     r,
			CreatedAt:  time.Now(),
		}
		if err := s.storage.SnapshotStorage().SaveSnapshot(ctx, snap); err != nil {
			s.logger.Warn().Err(err).Str("zpid", r.ZPID).Msg("Failed to persist analysis snapshot")
		}
	}
}

// resolveFallbackRatio returns the batch median of observed monthly
// rent-to-price ratios when enough listings carry real rent estimates,
// otherwise the configured constant.
func resolveFallbackRatio(listings []models.Listing, configured float64) float64 {
	ratios := make([]float64, 0, len(listings))
	for _, l := range listings {
		if l.HasRentEstimate() && l.Price > 0 {
			ratios = append(ratios, l.RentEstimate/l.Price)
		}
	}
	if len(ratios) < minListingsForMedian {
		return configured
	}

	sort.Float64s(ratios)
	mid := len(ratios) / 2
	if len(ratios)%2 == 0 {
		return (ratios[mid-1] + ratios[mid]) / 2
	}
	return ratios[mid]
}

// summarize aggregates batch results for the portfolio summary strip.
func summarize(results []*models.AnalysisResult, fallbackRatio float64) models.BatchSummary {
	summary := models.BatchSummary{
		Properties:        len(results),
		FallbackRentRatio: fallbackRatio,
	}
	if len(results) == 0 {
		return summary
	}

	var totalCashFlow, totalROI float64
	for _, r := range results {
		totalCashFlow += r.MonthlyCashFlow
		totalROI += r.AnnualizedROIPct
		if r.MonthlyCashFlow > 0 {
			summary.PositiveCashFlow++
		}
	}
	summary.AvgMonthlyCashFlow = totalCashFlow / float64(len(results))
	summary.AvgAnnualizedROIPct = totalROI / float64(len(results))
	return summary
}
